package installer

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotdeploy/pkg/config"
	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/filesystem"
	"github.com/arthur-debert/dotdeploy/pkg/logging"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/skiplist"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// Options configures an Installer
type Options struct {
	// FS is the filesystem to operate on; defaults to the OS filesystem
	FS types.FS

	// Paths must be a validated paths instance
	Paths paths.Paths

	// Config holds the installer tunables
	Config *config.Config

	// DryRun renders the plan without mutating anything
	DryRun bool

	// Trace receives a line for every mutating action
	Trace TraceFunc
}

// Installer orchestrates one full deployment run
type Installer struct {
	fs     types.FS
	paths  paths.Paths
	cfg    *config.Config
	dryRun bool
	trace  TraceFunc
	logger zerolog.Logger
}

// New creates an installer from options
func New(opts Options) *Installer {
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	trace := opts.Trace
	if trace == nil {
		trace = NopTrace
	}
	return &Installer{
		fs:     fs,
		paths:  opts.Paths,
		cfg:    opts.Config,
		dryRun: opts.DryRun,
		trace:  trace,
		logger: logging.GetLogger("installer"),
	}
}

// Plan scans the source and returns the operations a run would apply,
// without mutating anything. Used by dry-run rendering and the status
// command.
func (i *Installer) Plan() ([]types.Entry, []types.Operation, error) {
	skip, err := skiplist.Load(i.fs, i.paths.SkipListPath())
	if err != nil {
		return nil, nil, err
	}

	entries, err := NewScanner(i.fs, i.paths, i.cfg, skip).Scan()
	if err != nil {
		return nil, nil, err
	}

	ops, err := BuildOperations(i.fs, i.paths, i.cfg, entries)
	if err != nil {
		return nil, nil, err
	}

	return entries, ops, nil
}

// Run executes a full deployment: link pass, seed pass, fixed
// directories. The first filesystem error aborts the rest of the run;
// re-running resumes where it left off.
func (i *Installer) Run() (*types.InstallResult, error) {
	entries, ops, err := i.Plan()
	if err != nil {
		return nil, err
	}

	result := &types.InstallResult{
		Entries: entries,
		DryRun:  i.dryRun,
	}

	executor := NewExecutor(i.fs, i.paths, i.dryRun, i.trace)
	linkResults, err := executor.Execute(ops)
	result.Results = append(result.Results, linkResults...)
	if err != nil {
		return result, err
	}

	seedResults, err := NewSeeder(i.fs, i.paths, i.dryRun, i.trace).Seed()
	result.Results = append(result.Results, seedResults...)
	if err != nil {
		return result, err
	}

	if !i.dryRun {
		if err := i.fs.MkdirAll(i.paths.SocketDir(), 0700); err != nil {
			return result, errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create socket directory %s", i.paths.SocketDir())
		}
	}

	i.logger.Info().
		Int("entries", len(entries)).
		Int("results", len(result.Results)).
		Bool("dryRun", i.dryRun).
		Msg("Deployment run complete")
	return result, nil
}
