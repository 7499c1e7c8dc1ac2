package installer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotdeploy/pkg/installer"
	"github.com/arthur-debert/dotdeploy/pkg/testutil"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

func seed(t *testing.T, env *testutil.TestEnvironment) []types.Result {
	t.Helper()
	results, err := installer.NewSeeder(env.FS, env.Paths, false, nil).Seed()
	require.NoError(t, err)
	return results
}

func TestSeedCopiesMissingFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteSource("seed/x/y.conf", "default settings\n")

	results := seed(t, env)
	require.Len(t, results, 1)
	assert.Equal(t, types.ActionSeeded, results[0].Action)

	env.AssertFileContent(filepath.Join(env.TargetDir, "x", "y.conf"), "default settings\n")
}

func TestSeedNeverOverwrites(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteSource("seed/x/y.conf", "default settings\n")
	env.WriteTarget("x/y.conf", "local edits\n")

	results := seed(t, env)
	require.Len(t, results, 1)
	assert.Equal(t, types.ActionSeedKept, results[0].Action)

	env.AssertFileContent(filepath.Join(env.TargetDir, "x", "y.conf"), "local edits\n")
}

func TestSeedCopiesAtMostOnceAcrossRuns(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteSource("seed/gitconfig.local", "[user]\n")

	seed(t, env)
	dest := filepath.Join(env.TargetDir, "gitconfig.local")
	require.NoError(t, os.WriteFile(dest, []byte("edited\n"), 0644))

	results := seed(t, env)
	require.Len(t, results, 1)
	assert.Equal(t, types.ActionSeedKept, results[0].Action)
	env.AssertFileContent(dest, "edited\n")
}

func TestSeedCreatesMissingSeedDir(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	results := seed(t, env)
	assert.Empty(t, results, "empty seed pass is valid")

	info, err := os.Stat(env.Paths.SeedDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSeedWalksNestedDirectories(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteSource("seed/a/b/c/deep.conf", "deep\n")
	env.WriteSource("seed/top.conf", "top\n")

	results := seed(t, env)
	assert.Len(t, results, 2)

	env.AssertFileContent(filepath.Join(env.TargetDir, "a", "b", "c", "deep.conf"), "deep\n")
	env.AssertFileContent(filepath.Join(env.TargetDir, "top.conf"), "top\n")
}

func TestSeedDryRunCopiesNothing(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteSource("seed/x/y.conf", "default\n")

	results, err := installer.NewSeeder(env.FS, env.Paths, true, nil).Seed()
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, types.ActionPlanned, results[0].Action)
	env.AssertNotExists(filepath.Join(env.TargetDir, "x", "y.conf"))
}
