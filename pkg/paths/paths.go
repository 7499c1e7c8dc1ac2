// Package paths provides centralized path handling for dotdeploy.
// It resolves the source and target roots, applies the source-misuse
// guard, and derives every path the installer touches.
package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotdeploy/pkg/config"
	"github.com/arthur-debert/dotdeploy/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for the
	// source directory location
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Paths provides centralized path management for dotdeploy
type Paths interface {
	SourceRoot() string
	TargetRoot() string

	SourcePath(rel string) string
	TargetPath(rel string) string

	SkipListPath() string
	SeedDir() string
	SocketDir() string

	// BackupPath returns the rename-aside path for a destination:
	// the backup prefix inserted before the basename, same parent dir.
	BackupPath(dest string) string
}

type paths struct {
	sourceRoot string
	targetRoot string
	cfg        *config.Config
}

// New resolves the source and target roots and validates the invocation.
//
// The source is taken from the explicit argument, then DOTFILES_ROOT,
// then the directory containing the running executable. The target
// defaults to the current working directory, which is expected to be
// the user's home directory.
//
// New fails with ErrSourceIsCwd when the computed source directory is
// the current directory: that is the classic misuse of running the
// tool from inside the source checkout instead of from the destination.
func New(sourceRoot, targetRoot string, cfg *config.Config) (Paths, error) {
	rawSource, err := resolveSourceRoot(sourceRoot)
	if err != nil {
		return nil, err
	}

	if filepath.Clean(rawSource) == "." {
		return nil, errors.New(errors.ErrSourceIsCwd,
			"source directory resolves to the current directory; run dotdeploy from the destination, not from inside the source")
	}

	absSource, err := filepath.Abs(expandHome(rawSource))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to resolve source directory")
	}

	if targetRoot == "" {
		targetRoot, err = os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
	}
	absTarget, err := filepath.Abs(expandHome(targetRoot))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to resolve target directory")
	}

	if absSource == absTarget {
		return nil, errors.New(errors.ErrSourceIsCwd,
			"source directory resolves to the current directory; run dotdeploy from the destination, not from inside the source")
	}

	return &paths{
		sourceRoot: absSource,
		targetRoot: absTarget,
		cfg:        cfg,
	}, nil
}

// ResolveSourceRoot resolves the source root the same way New does,
// without constructing a Paths. The command layer needs the source
// directory before the configuration can be loaded from it.
func ResolveSourceRoot(explicit string) (string, error) {
	raw, err := resolveSourceRoot(explicit)
	if err != nil {
		return "", err
	}

	if filepath.Clean(raw) == "." {
		return "", errors.New(errors.ErrSourceIsCwd,
			"source directory resolves to the current directory; run dotdeploy from the destination, not from inside the source")
	}

	abs, err := filepath.Abs(expandHome(raw))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to resolve source directory")
	}
	return abs, nil
}

// resolveSourceRoot determines the source root using the following priority:
// 1. Explicit value (the --source flag)
// 2. DOTFILES_ROOT environment variable
// 3. The directory containing the running executable
func resolveSourceRoot(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return root, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to locate executable")
	}
	return filepath.Dir(exe), nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

func (p *paths) SourceRoot() string {
	return p.sourceRoot
}

func (p *paths) TargetRoot() string {
	return p.targetRoot
}

func (p *paths) SourcePath(rel string) string {
	return filepath.Join(p.sourceRoot, rel)
}

func (p *paths) TargetPath(rel string) string {
	return filepath.Join(p.targetRoot, rel)
}

func (p *paths) SkipListPath() string {
	return filepath.Join(p.sourceRoot, p.cfg.SkipFile)
}

func (p *paths) SeedDir() string {
	return filepath.Join(p.sourceRoot, p.cfg.SeedDir)
}

func (p *paths) SocketDir() string {
	return filepath.Join(p.targetRoot, p.cfg.SocketDir)
}

func (p *paths) BackupPath(dest string) string {
	return filepath.Join(filepath.Dir(dest), p.cfg.BackupPrefix+filepath.Base(dest))
}
