package installer

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/logging"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// Seeder materializes one-time default files.
//
// Every regular file under the seed directory maps to the destination
// path given by its seed-relative path. A missing destination gets a
// verbatim copy; an existing destination, whatever its content or
// origin, is never touched again.
type Seeder struct {
	fs     types.FS
	paths  paths.Paths
	dryRun bool
	trace  TraceFunc
	logger zerolog.Logger
}

// NewSeeder creates a seeder for the given source and target
func NewSeeder(fs types.FS, p paths.Paths, dryRun bool, trace TraceFunc) *Seeder {
	if trace == nil {
		trace = NopTrace
	}
	return &Seeder{
		fs:     fs,
		paths:  p,
		dryRun: dryRun,
		trace:  trace,
		logger: logging.GetLogger("installer.seeder"),
	}
}

// Seed runs the seed pass. The seed directory is created empty when
// missing; an empty pass is valid.
func (s *Seeder) Seed() ([]types.Result, error) {
	root := s.paths.SeedDir()
	if !s.dryRun {
		if err := s.fs.MkdirAll(root, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create seed directory %s", root)
		}
	}

	var results []types.Result
	if err := s.walk(root, &results); err != nil {
		return results, err
	}
	return results, nil
}

func (s *Seeder) walk(dir string, results *[]types.Result) error {
	children, err := s.fs.ReadDir(dir)
	if err != nil {
		if s.dryRun && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read seed directory %s", dir)
	}

	for _, child := range children {
		path := filepath.Join(dir, child.Name())
		if child.IsDir() {
			if err := s.walk(path, results); err != nil {
				return err
			}
			continue
		}
		if !child.Type().IsRegular() {
			s.logger.Debug().Str("path", path).Msg("Skipping non-regular seed entry")
			continue
		}

		res, err := s.seedFile(path)
		if err != nil {
			return err
		}
		*results = append(*results, res)
	}

	return nil
}

func (s *Seeder) seedFile(path string) (types.Result, error) {
	rel, err := filepath.Rel(s.paths.SeedDir(), path)
	if err != nil {
		return types.Result{}, errors.Wrapf(err, errors.ErrInternal,
			"failed to compute seed-relative path for %s", path)
	}

	op := types.Operation{
		Source:      path,
		Target:      s.paths.TargetPath(rel),
		Description: "seed " + rel,
	}

	if _, err := s.fs.Lstat(op.Target); err == nil {
		s.logger.Debug().Str("target", op.Target).Msg("Destination exists, seed skipped")
		return types.Result{Operation: op, Action: types.ActionSeedKept}, nil
	} else if !os.IsNotExist(err) {
		return types.Result{}, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to inspect seed destination %s", op.Target)
	}

	if s.dryRun {
		s.trace(types.ActionPlanned, op.Target, op.Description)
		return types.Result{Operation: op, Action: types.ActionPlanned}, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return types.Result{}, errors.Wrapf(err, errors.ErrSeedCopy,
			"failed to read seed file %s", path)
	}

	perm := os.FileMode(0644)
	if info, err := s.fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := s.fs.MkdirAll(filepath.Dir(op.Target), 0755); err != nil {
		return types.Result{}, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create parent directories for %s", op.Target)
	}
	if err := s.fs.WriteFile(op.Target, data, perm); err != nil {
		return types.Result{}, errors.Wrapf(err, errors.ErrSeedCopy,
			"failed to copy seed file to %s", op.Target)
	}

	s.trace(types.ActionSeeded, op.Target, path)
	s.logger.Info().Str("target", op.Target).Str("seed", path).Msg("Seeded default file")
	return types.Result{Operation: op, Action: types.ActionSeeded}, nil
}
