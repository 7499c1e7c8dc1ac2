// Package status inspects the destination tree and reports, per
// planned operation, what state it is in. It never mutates anything.
package status

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotdeploy/pkg/logging"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// State describes the destination of one operation
type State string

const (
	// StateLinked means a symlink exists and points at the right source
	StateLinked State = "linked"

	// StateStale means a symlink exists but points elsewhere
	StateStale State = "stale"

	// StateConflict means something that is not a symlink occupies the path
	StateConflict State = "conflict"

	// StateMissing means nothing exists at the path yet
	StateMissing State = "missing"

	// StatePresent means a required directory exists
	StatePresent State = "present"
)

// FileStatus is the report for one destination path
type FileStatus struct {
	Path           string `json:"path" yaml:"path"`
	State          State  `json:"state" yaml:"state"`
	ExpectedSource string `json:"expected_source,omitempty" yaml:"expected_source,omitempty"`
	Message        string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Checker evaluates planned operations against the live destination
type Checker struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewChecker creates a checker over the given filesystem
func NewChecker(fs types.FS) *Checker {
	return &Checker{
		fs:     fs,
		logger: logging.GetLogger("status.checker"),
	}
}

// Check reports the state of every operation's destination
func (c *Checker) Check(ops []types.Operation) []FileStatus {
	statuses := make([]FileStatus, 0, len(ops))
	for _, op := range ops {
		switch op.Type {
		case types.OperationCreateDir:
			statuses = append(statuses, c.checkDir(op))
		case types.OperationCreateSymlink:
			statuses = append(statuses, c.checkSymlink(op))
		}
	}
	return statuses
}

func (c *Checker) checkDir(op types.Operation) FileStatus {
	status := FileStatus{Path: op.Target}

	info, err := c.fs.Stat(op.Target)
	switch {
	case os.IsNotExist(err):
		status.State = StateMissing
		status.Message = "directory not created yet"
	case err != nil:
		status.State = StateConflict
		status.Message = err.Error()
	case !info.IsDir():
		status.State = StateConflict
		status.Message = "path exists but is not a directory"
	default:
		status.State = StatePresent
	}

	return status
}

func (c *Checker) checkSymlink(op types.Operation) FileStatus {
	status := FileStatus{Path: op.Target, ExpectedSource: op.Source}

	info, err := c.fs.Lstat(op.Target)
	switch {
	case os.IsNotExist(err):
		status.State = StateMissing
		status.Message = "not deployed yet"
		return status
	case err != nil:
		status.State = StateConflict
		status.Message = err.Error()
		return status
	case info.Mode()&os.ModeSymlink == 0:
		status.State = StateConflict
		status.Message = "path exists but is not a symlink; a run would rename it aside"
		return status
	}

	target, err := c.fs.Readlink(op.Target)
	if err != nil {
		status.State = StateConflict
		status.Message = err.Error()
		return status
	}

	if target == op.Source {
		status.State = StateLinked
	} else {
		status.State = StateStale
		status.Message = "symlink points at " + target
	}
	return status
}
