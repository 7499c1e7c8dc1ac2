package installer_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotdeploy/pkg/installer"
	"github.com/arthur-debert/dotdeploy/pkg/testutil"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

func buildOps(t *testing.T, env *testutil.TestEnvironment) []types.Operation {
	t.Helper()
	entries := scan(t, env)
	ops, err := installer.BuildOperations(env.FS, env.Paths, env.Config, entries)
	require.NoError(t, err)
	return ops
}

func opsByTarget(ops []types.Operation) map[string]types.Operation {
	m := make(map[string]types.Operation, len(ops))
	for _, op := range ops {
		m[op.Target] = op
	}
	return m
}

func TestBuildOperationsPlainEntry(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	src := env.WriteSource("vimrc", "")

	ops := buildOps(t, env)
	require.Len(t, ops, 1)

	assert.Equal(t, types.OperationCreateSymlink, ops[0].Type)
	assert.Equal(t, src, ops[0].Source)
	assert.Equal(t, filepath.Join(env.TargetDir, "vimrc"), ops[0].Target)
}

func TestBuildOperationsSkippedEntryYieldsNothing(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteSource("README.md", "")
	env.WriteSkipList("README.md", env.Config.SkipFile)

	assert.Empty(t, buildOps(t, env))
}

func TestBuildOperationsLinkEachDirectory(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.MkSourceDir("config")
	env.MarkLinkEach("config")
	env.WriteSource("config/a.conf", "")
	env.WriteSource("config/b.conf", "")

	ops := buildOps(t, env)
	byTarget := opsByTarget(ops)

	dirOp, ok := byTarget[filepath.Join(env.TargetDir, "config")]
	require.True(t, ok, "expected a directory operation for config")
	assert.Equal(t, types.OperationCreateDir, dirOp.Type)

	for _, name := range []string{"a.conf", "b.conf"} {
		op, ok := byTarget[filepath.Join(env.TargetDir, "config", name)]
		require.True(t, ok, "expected a link operation for %s", name)
		assert.Equal(t, types.OperationCreateSymlink, op.Type)
		assert.Equal(t, filepath.Join(env.SourceDir, "config", name), op.Source)
	}

	// One dir plus one link per child; the marker file yields nothing.
	assert.Len(t, ops, 3)
	assert.NotContains(t, byTarget, filepath.Join(env.TargetDir, "config", env.Config.LinkEachMarker))
}

func TestBuildOperationsOneDestinationPerEntry(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteSource("vimrc", "")
	env.WriteSource("zshrc", "")
	env.MkSourceDir("vim")

	ops := buildOps(t, env)

	seen := make(map[string]int)
	for _, op := range ops {
		seen[op.Target]++
	}
	for target, n := range seen {
		assert.Equal(t, 1, n, "duplicate destination %s", target)
	}
	assert.Len(t, seen, 3)
}
