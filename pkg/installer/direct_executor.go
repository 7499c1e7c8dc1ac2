package installer

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/logging"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// DirectExecutor applies operations straight to the filesystem, one at
// a time, aborting on the first failure.
type DirectExecutor struct {
	fs     types.FS
	paths  paths.Paths
	dryRun bool
	trace  TraceFunc
	logger zerolog.Logger
}

// NewDirectExecutor creates the default executor
func NewDirectExecutor(fs types.FS, p paths.Paths, dryRun bool, trace TraceFunc) *DirectExecutor {
	if trace == nil {
		trace = NopTrace
	}
	return &DirectExecutor{
		fs:     fs,
		paths:  p,
		dryRun: dryRun,
		trace:  trace,
		logger: logging.GetLogger("installer.executor"),
	}
}

// Execute applies the operations in order
func (e *DirectExecutor) Execute(ops []types.Operation) ([]types.Result, error) {
	results := make([]types.Result, 0, len(ops))

	for _, op := range ops {
		if e.dryRun {
			e.trace(types.ActionPlanned, op.Target, op.Description)
			results = append(results, types.Result{Operation: op, Action: types.ActionPlanned})
			continue
		}

		var (
			res types.Result
			err error
		)
		switch op.Type {
		case types.OperationCreateDir:
			res, err = e.ensureDir(op)
		case types.OperationCreateSymlink:
			res, err = e.link(op)
		default:
			err = errors.Newf(errors.ErrInternal, "unsupported operation type %q", op.Type)
		}
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

// ensureDir creates the destination directory if it is absent
func (e *DirectExecutor) ensureDir(op types.Operation) (types.Result, error) {
	if info, err := e.fs.Stat(op.Target); err == nil && info.IsDir() {
		return types.Result{Operation: op, Action: types.ActionDirExists}, nil
	}

	if err := e.fs.MkdirAll(op.Target, 0755); err != nil {
		return types.Result{}, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create directory %s", op.Target)
	}

	e.trace(types.ActionDirMade, op.Target, "")
	e.logger.Info().Str("dir", op.Target).Msg("Created destination directory")
	return types.Result{Operation: op, Action: types.ActionDirMade}, nil
}

// link is the link-creation primitive.
//
// A missing destination gets a fresh symlink. A destination that is
// not a symlink is renamed aside first, so nothing is clobbered
// silently. A destination that is already a symlink is removed and
// re-created in place; removal matters in particular when the stale
// link points at a directory, because creating the new link through it
// would place a link inside that directory instead of replacing it.
func (e *DirectExecutor) link(op types.Operation) (types.Result, error) {
	res := types.Result{Operation: op, Action: types.ActionLinked}

	info, lerr := e.fs.Lstat(op.Target)
	switch {
	case lerr != nil && !os.IsNotExist(lerr):
		return types.Result{}, errors.Wrapf(lerr, errors.ErrFileAccess,
			"failed to inspect destination %s", op.Target)

	case lerr == nil && info.Mode()&os.ModeSymlink == 0:
		backup := e.paths.BackupPath(op.Target)
		if err := e.fs.Rename(op.Target, backup); err != nil {
			return types.Result{}, errors.Wrapf(err, errors.ErrBackupRename,
				"failed to rename %s aside", op.Target)
		}
		e.trace(types.ActionBackedUp, op.Target, backup)
		e.logger.Info().Str("from", op.Target).Str("to", backup).Msg("Renamed pre-existing file aside")
		res.Action = types.ActionBackedUp
		res.BackupPath = backup

	case lerr == nil:
		if err := e.fs.Remove(op.Target); err != nil {
			return types.Result{}, errors.Wrapf(err, errors.ErrSymlinkCreate,
				"failed to remove existing symlink %s", op.Target)
		}
		res.Action = types.ActionRelinked
	}

	if err := e.fs.Symlink(op.Source, op.Target); err != nil {
		return types.Result{}, errors.Wrapf(err, errors.ErrSymlinkCreate,
			"failed to link %s to %s", op.Target, op.Source)
	}

	// The rename already produced its own trace line; the link itself
	// is always reported as a link.
	linkAction := res.Action
	if linkAction == types.ActionBackedUp {
		linkAction = types.ActionLinked
	}
	e.trace(linkAction, op.Target, op.Source)
	e.logger.Info().
		Str("target", op.Target).
		Str("source", op.Source).
		Str("action", string(res.Action)).
		Msg("Created symlink")
	return res, nil
}
