package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/status"
)

// runCommand executes the root command with args and returns its
// combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCmd()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// setupDirs creates a populated source and an empty target directory.
func setupDirs(t *testing.T) (string, string) {
	t.Helper()

	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "dotfiles")
	target := filepath.Join(tmpDir, "home")
	require.NoError(t, os.MkdirAll(source, 0755))
	require.NoError(t, os.MkdirAll(target, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(source, "vimrc"), []byte("\" vim"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "zshrc"), []byte("# zsh"), 0644))
	return source, target
}

func TestInstallCommandCreatesSymlinks(t *testing.T) {
	source, target := setupDirs(t)

	out, err := runCommand(t, "install", "--source", source, "--target", target)
	require.NoError(t, err, "output: %s", out)

	link := filepath.Join(target, "vimrc")
	info, err := os.Lstat(link)
	require.NoError(t, err, "expected symlink %s to exist", link)
	assert.True(t, info.Mode()&os.ModeSymlink != 0, "expected %s to be a symlink", link)

	dest, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(source, "vimrc"), dest)

	assert.Contains(t, out, "linked")
}

func TestBareInvocationDeploys(t *testing.T) {
	source, target := setupDirs(t)

	out, err := runCommand(t, "--source", source, "--target", target)
	require.NoError(t, err, "output: %s", out)

	_, err = os.Lstat(filepath.Join(target, "vimrc"))
	require.NoError(t, err)
}

func TestInstallDryRunTouchesNothing(t *testing.T) {
	source, target := setupDirs(t)

	out, err := runCommand(t, "install", "--dry-run", "--source", source, "--target", target)
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "DRY RUN MODE")

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run must not create anything in the target")
}

func TestInstallBacksUpExistingFile(t *testing.T) {
	source, target := setupDirs(t)
	require.NoError(t, os.WriteFile(filepath.Join(target, "vimrc"), []byte("old"), 0644))

	_, err := runCommand(t, "install", "--source", source, "--target", target)
	require.NoError(t, err)

	backup, err := os.ReadFile(filepath.Join(target, "renamed-old-vimrc"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(backup))
}

func TestInstallRefusesSourceEqualsTarget(t *testing.T) {
	source, _ := setupDirs(t)

	_, err := runCommand(t, "install", "--source", source, "--target", source)
	require.Error(t, err)
	assert.Equal(t, errors.ErrSourceIsCwd, errors.GetErrorCode(err))
}

func TestStatusCommandJSON(t *testing.T) {
	source, target := setupDirs(t)

	_, err := runCommand(t, "install", "--source", source, "--target", target)
	require.NoError(t, err)

	out, err := runCommand(t, "status", "--format", "json", "--source", source, "--target", target)
	require.NoError(t, err, "output: %s", out)

	var statuses []status.FileStatus
	require.NoError(t, json.Unmarshal([]byte(out), &statuses))
	require.Len(t, statuses, 2)
	for _, s := range statuses {
		assert.Equal(t, status.StateLinked, s.State)
	}
}

func TestStatusBeforeInstallReportsMissing(t *testing.T) {
	source, target := setupDirs(t)

	out, err := runCommand(t, "status", "--source", source, "--target", target)
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "missing")
}

func TestStatusRejectsUnknownFormat(t *testing.T) {
	source, target := setupDirs(t)

	_, err := runCommand(t, "status", "--format", "xml", "--source", source, "--target", target)
	require.Error(t, err)
}

func TestGenConfigStdout(t *testing.T) {
	out, err := runCommand(t, "gen-config")
	require.NoError(t, err)
	assert.Contains(t, out, "skip_file")
	assert.Contains(t, out, ".symlinkignore")
	assert.Contains(t, out, "renamed-old-")
}

func TestGenConfigWrite(t *testing.T) {
	source, _ := setupDirs(t)

	out, err := runCommand(t, "gen-config", "-w", "--source", source)
	require.NoError(t, err, "output: %s", out)

	data, err := os.ReadFile(filepath.Join(source, ".dotdeploy.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "seed_dir")

	// A second write must not clobber the existing file.
	require.NoError(t, os.WriteFile(filepath.Join(source, ".dotdeploy.toml"), []byte("seed_dir = 'starters'\n"), 0644))
	out, err = runCommand(t, "gen-config", "-w", "--source", source)
	require.NoError(t, err)
	assert.Contains(t, out, "not overwriting")

	data, err = os.ReadFile(filepath.Join(source, ".dotdeploy.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "starters")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dotdeploy version")
}
