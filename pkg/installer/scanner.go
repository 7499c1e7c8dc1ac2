package installer

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotdeploy/pkg/config"
	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/logging"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/skiplist"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// Scanner enumerates and classifies the immediate children of the
// source root. Enumeration order is whatever the filesystem returns;
// nothing downstream relies on it.
type Scanner struct {
	fs     types.FS
	paths  paths.Paths
	cfg    *config.Config
	skip   *skiplist.SkipList
	logger zerolog.Logger
}

// NewScanner creates a scanner for the given source
func NewScanner(fs types.FS, p paths.Paths, cfg *config.Config, skip *skiplist.SkipList) *Scanner {
	return &Scanner{
		fs:     fs,
		paths:  p,
		cfg:    cfg,
		skip:   skip,
		logger: logging.GetLogger("installer.scanner"),
	}
}

// Scan classifies every child of the source root, hidden entries
// included. Skipped entries are returned too so callers can report
// them; they never produce operations.
func (s *Scanner) Scan() ([]types.Entry, error) {
	children, err := s.fs.ReadDir(s.paths.SourceRoot())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScanSource,
			"failed to read source directory %s", s.paths.SourceRoot())
	}

	entries := make([]types.Entry, 0, len(children))
	for _, child := range children {
		name := child.Name()
		if isReserved(name, s.cfg) {
			s.logger.Debug().Str("entry", name).Msg("Reserved control file, not deployed")
			continue
		}

		entry := types.Entry{
			Name: name,
			Path: s.paths.SourcePath(name),
			Kind: types.KindPlain,
		}

		switch {
		case s.skip.Contains(name):
			entry.Kind = types.KindSkipped
			s.logger.Debug().Str("entry", name).Msg("Entry on skip-list")
		case child.IsDir() && s.hasLinkEachMarker(entry.Path):
			entry.Kind = types.KindLinkEach
			s.logger.Debug().Str("entry", name).Msg("Link-each directory")
		}

		entries = append(entries, entry)
	}

	s.logger.Debug().Int("count", len(entries)).Msg("Source scan complete")
	return entries, nil
}

// hasLinkEachMarker reports whether a directory contains the marker
// file that makes its children link individually
func (s *Scanner) hasLinkEachMarker(dir string) bool {
	_, err := s.fs.Stat(filepath.Join(dir, s.cfg.LinkEachMarker))
	return err == nil
}

// isReserved reports whether name is one of the installer's own
// control files in the source root. These are excluded uncondition-
// ally; everything else is governed by the skip-list, which is
// expected to list itself.
func isReserved(name string, cfg *config.Config) bool {
	switch name {
	case cfg.SeedDir, config.ConfigFileName, config.EnvFileName:
		return true
	}
	return false
}
