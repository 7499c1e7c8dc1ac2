package installer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/logging"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// SynthfsExecutor batches operations through a synthfs pipeline. It is
// selected with DOTDEPLOY_SYNTHFS=true; the direct executor remains
// the default.
//
// The rename-aside and stale-link removal steps of the link primitive
// are not expressible as synthfs create operations, so they run as a
// direct pre-pass before the batch, the same way force-mode cleanup
// does in the direct path.
type SynthfsExecutor struct {
	fs         types.FS
	paths      paths.Paths
	dryRun     bool
	trace      TraceFunc
	filesystem synthfs.FileSystem
	logger     zerolog.Logger
}

// NewSynthfsExecutor creates a synthfs-based executor
func NewSynthfsExecutor(osfs types.FS, p paths.Paths, dryRun bool, trace TraceFunc) *SynthfsExecutor {
	if trace == nil {
		trace = NopTrace
	}
	return &SynthfsExecutor{
		fs:         osfs,
		paths:      p,
		dryRun:     dryRun,
		trace:      trace,
		filesystem: filesystem.NewOSFileSystem("/"),
		logger:     logging.GetLogger("installer.synthfs"),
	}
}

// Execute applies the operations as one synthfs batch
func (e *SynthfsExecutor) Execute(ops []types.Operation) ([]types.Result, error) {
	results := make([]types.Result, 0, len(ops))

	if e.dryRun {
		for _, op := range ops {
			e.trace(types.ActionPlanned, op.Target, op.Description)
			results = append(results, types.Result{Operation: op, Action: types.ActionPlanned})
		}
		return results, nil
	}

	// Pre-pass: clear the way for the create operations below.
	for _, op := range ops {
		if op.Type != types.OperationCreateSymlink {
			continue
		}
		res := types.Result{Operation: op, Action: types.ActionLinked}
		info, lerr := e.fs.Lstat(op.Target)
		switch {
		case lerr != nil && !os.IsNotExist(lerr):
			return nil, errors.Wrapf(lerr, errors.ErrFileAccess,
				"failed to inspect destination %s", op.Target)
		case lerr == nil && info.Mode()&os.ModeSymlink == 0:
			backup := e.paths.BackupPath(op.Target)
			if err := e.fs.Rename(op.Target, backup); err != nil {
				return nil, errors.Wrapf(err, errors.ErrBackupRename,
					"failed to rename %s aside", op.Target)
			}
			e.trace(types.ActionBackedUp, op.Target, backup)
			res.Action = types.ActionBackedUp
			res.BackupPath = backup
		case lerr == nil:
			if err := e.fs.Remove(op.Target); err != nil {
				return nil, errors.Wrapf(err, errors.ErrSymlinkCreate,
					"failed to remove existing symlink %s", op.Target)
			}
			res.Action = types.ActionRelinked
		}
		results = append(results, res)
	}

	synthOps := make([]synthfs.Operation, 0, len(ops))
	for _, op := range ops {
		if op.Type == types.OperationCreateDir {
			// synthfs validation rejects creating a directory that is
			// already there; an existing directory is simply kept.
			if info, err := e.fs.Stat(op.Target); err == nil && info.IsDir() {
				results = append(results, types.Result{Operation: op, Action: types.ActionDirExists})
				continue
			}
			results = append(results, types.Result{Operation: op, Action: types.ActionDirMade})
		}

		synthOp, err := e.convert(op)
		if err != nil {
			return nil, err
		}
		synthOps = append(synthOps, synthOp)
	}

	if len(synthOps) == 0 {
		e.logger.Info().Msg("No operations to execute")
		return results, nil
	}

	pipeline := synthfs.NewMemPipeline()
	for _, op := range synthOps {
		if err := pipeline.Add(op); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal,
				"failed to add operation to pipeline")
		}
	}

	ctx := context.Background()
	executor := synthfs.NewExecutor()

	e.logger.Info().Int("operationCount", len(synthOps)).Msg("Executing operation batch")

	result := executor.Run(ctx, pipeline, e.filesystem)
	if result.GetError() != nil {
		return nil, errors.Wrap(result.GetError(), errors.ErrSymlinkCreate,
			"failed to execute operation batch")
	}

	for _, op := range ops {
		if op.Type == types.OperationCreateSymlink {
			e.trace(types.ActionLinked, op.Target, op.Source)
		}
	}

	return results, nil
}

// convert maps a planned operation onto a synthfs operation
func (e *SynthfsExecutor) convert(op types.Operation) (synthfs.Operation, error) {
	switch op.Type {
	case types.OperationCreateDir:
		return e.convertCreateDir(op)
	case types.OperationCreateSymlink:
		return e.convertCreateSymlink(op)
	default:
		return nil, errors.Newf(errors.ErrInternal,
			"unsupported operation type: %s", op.Type)
	}
}

func (e *SynthfsExecutor) convertCreateDir(op types.Operation) (synthfs.Operation, error) {
	if op.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"create directory operation requires target")
	}

	// synthfs paths are relative to the filesystem root
	relPath, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Target)
	}

	opID := core.OperationID(fmt.Sprintf("create-dir-%s", op.Target))
	createOp := operations.NewCreateDirectoryOperation(opID, relPath)
	createOp.SetItem(&directoryItem{
		path: relPath,
		mode: 0755,
	})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

func (e *SynthfsExecutor) convertCreateSymlink(op types.Operation) (synthfs.Operation, error) {
	if op.Source == "" || op.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"symlink operation requires source and target")
	}

	relPath, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Target)
	}
	relSource, err := filepath.Rel("/", op.Source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert source path: %s", op.Source)
	}

	opID := core.OperationID(fmt.Sprintf("symlink-%s", op.Target))
	symlinkOp := operations.NewCreateSymlinkOperation(opID, relPath)
	symlinkOp.SetDescriptionDetail("target", relSource)
	symlinkOp.SetItem(&symlinkItem{
		path:   relPath,
		target: relSource,
	})

	return synthfs.NewOperationsPackageAdapter(symlinkOp), nil
}

// Item types for synthfs operations

// directoryItem implements the interface needed for directory operations
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }

// symlinkItem implements the interface needed for symlink operations
type symlinkItem struct {
	path   string
	target string
}

func (s *symlinkItem) Path() string   { return s.path }
func (s *symlinkItem) Type() string   { return "symlink" }
func (s *symlinkItem) Target() string { return s.target }
