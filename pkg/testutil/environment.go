// Package testutil provides test environments and assertion helpers
// for installer tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotdeploy/pkg/config"
	"github.com/arthur-debert/dotdeploy/pkg/filesystem"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// TestEnvironment provides an isolated source and target tree on the
// real filesystem, with paths and config wired up.
type TestEnvironment struct {
	SourceDir string
	TargetDir string

	FS     types.FS
	Config *config.Config
	Paths  paths.Paths

	t *testing.T
}

// NewTestEnvironment creates temp source and target directories and
// resolves paths against them
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		SourceDir: t.TempDir(),
		TargetDir: t.TempDir(),
		FS:        filesystem.NewOS(),
		Config:    config.Default(),
		t:         t,
	}

	p, err := paths.New(env.SourceDir, env.TargetDir, env.Config)
	require.NoError(t, err, "failed to create paths")
	env.Paths = p

	return env
}

// WriteSource creates a file in the source tree, parents included,
// and returns its absolute path
func (env *TestEnvironment) WriteSource(rel, content string) string {
	env.t.Helper()
	return env.writeFile(filepath.Join(env.SourceDir, rel), content)
}

// WriteTarget creates a file in the target tree, parents included,
// and returns its absolute path
func (env *TestEnvironment) WriteTarget(rel, content string) string {
	env.t.Helper()
	return env.writeFile(filepath.Join(env.TargetDir, rel), content)
}

// MkSourceDir creates a directory in the source tree and returns its
// absolute path
func (env *TestEnvironment) MkSourceDir(rel string) string {
	env.t.Helper()
	path := filepath.Join(env.SourceDir, rel)
	require.NoError(env.t, os.MkdirAll(path, 0755))
	return path
}

// MarkLinkEach drops the link-each marker file into a source directory
func (env *TestEnvironment) MarkLinkEach(rel string) {
	env.t.Helper()
	env.WriteSource(filepath.Join(rel, env.Config.LinkEachMarker), "")
}

// WriteSkipList writes the skip-list file with the given basenames
func (env *TestEnvironment) WriteSkipList(names ...string) {
	env.t.Helper()
	content := ""
	for _, n := range names {
		content += n + "\n"
	}
	env.WriteSource(env.Config.SkipFile, content)
}

func (env *TestEnvironment) writeFile(path, content string) string {
	env.t.Helper()
	require.NoError(env.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(env.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// AssertSymlink fails the test unless path is a symlink pointing at
// wantTarget
func (env *TestEnvironment) AssertSymlink(path, wantTarget string) {
	env.t.Helper()

	info, err := os.Lstat(path)
	require.NoError(env.t, err, "expected symlink at %s", path)
	require.NotZero(env.t, info.Mode()&os.ModeSymlink, "%s is not a symlink", path)

	got, err := os.Readlink(path)
	require.NoError(env.t, err)
	require.Equal(env.t, wantTarget, got, "symlink %s points elsewhere", path)
}

// AssertNotExists fails the test if anything exists at path
func (env *TestEnvironment) AssertNotExists(path string) {
	env.t.Helper()
	_, err := os.Lstat(path)
	require.True(env.t, os.IsNotExist(err), "expected nothing at %s", path)
}

// AssertFileContent fails the test unless path is a file with exactly
// the given content
func (env *TestEnvironment) AssertFileContent(path, want string) {
	env.t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(env.t, err)
	require.Equal(env.t, want, string(data))
}
