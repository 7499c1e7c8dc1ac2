package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ".symlinkignore", cfg.SkipFile)
	assert.Equal(t, ".symlink_each", cfg.LinkEachMarker)
	assert.Equal(t, "renamed-old-", cfg.BackupPrefix)
	assert.Equal(t, "seed", cfg.SeedDir)
	assert.Equal(t, filepath.Join(".ssh", "sockets"), cfg.SocketDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `backup_prefix = "saved-"
seed_dir = "defaults"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "saved-", cfg.BackupPrefix)
	assert.Equal(t, "defaults", cfg.SeedDir)
	// Untouched keys keep defaults
	assert.Equal(t, ".symlinkignore", cfg.SkipFile)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := `backup_prefix = "saved-"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
	t.Setenv("DOTDEPLOY_BACKUP_PREFIX", "moved-")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "moved-", cfg.BackupPrefix)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFileName),
		[]byte("DOTDEPLOY_SEED_DIR=bootstrap\n"), 0644))

	// godotenv does not overwrite already-set variables; make sure the
	// test environment is clean.
	require.NoError(t, os.Unsetenv("DOTDEPLOY_SEED_DIR"))
	t.Cleanup(func() { _ = os.Unsetenv("DOTDEPLOY_SEED_DIR") })

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "bootstrap", cfg.SeedDir)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty backup prefix", `backup_prefix = ""`},
		{"nested seed dir", `seed_dir = "a/b"`},
		{"absolute socket dir", `socket_dir = "/var/run/sockets"`},
		{"malformed toml", `backup_prefix = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(tt.content), 0644))

			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}
