package installer

import (
	"os"

	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// TraceFunc receives a line for every mutating action as it happens,
// giving the operator an audit trail of a run's extent.
type TraceFunc func(action types.ResultAction, target, detail string)

// NopTrace discards trace lines
func NopTrace(types.ResultAction, string, string) {}

// Executor applies planned operations to the destination tree
type Executor interface {
	Execute(ops []types.Operation) ([]types.Result, error)
}

// EnvSynthfsExecutor selects the synthfs batch executor when set to "true"
const EnvSynthfsExecutor = "DOTDEPLOY_SYNTHFS"

// UseSynthfsExecutor checks if the synthfs batch executor should be
// used instead of the direct one
func UseSynthfsExecutor() bool {
	return os.Getenv(EnvSynthfsExecutor) == "true"
}

// NewExecutor returns the configured executor implementation
func NewExecutor(fs types.FS, p paths.Paths, dryRun bool, trace TraceFunc) Executor {
	if UseSynthfsExecutor() {
		return NewSynthfsExecutor(fs, p, dryRun, trace)
	}
	return NewDirectExecutor(fs, p, dryRun, trace)
}
