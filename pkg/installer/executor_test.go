package installer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/dotdeploy/pkg/installer"
	"github.com/arthur-debert/dotdeploy/pkg/testutil"
)

func TestUseSynthfsExecutor(t *testing.T) {
	t.Setenv(installer.EnvSynthfsExecutor, "")
	assert.False(t, installer.UseSynthfsExecutor())

	t.Setenv(installer.EnvSynthfsExecutor, "true")
	assert.True(t, installer.UseSynthfsExecutor())

	t.Setenv(installer.EnvSynthfsExecutor, "1")
	assert.False(t, installer.UseSynthfsExecutor(), "only the literal \"true\" enables it")
}

func TestNewExecutorSelectsImplementation(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	t.Setenv(installer.EnvSynthfsExecutor, "")
	_, ok := installer.NewExecutor(env.FS, env.Paths, false, nil).(*installer.DirectExecutor)
	assert.True(t, ok, "default executor is the direct one")

	t.Setenv(installer.EnvSynthfsExecutor, "true")
	_, ok = installer.NewExecutor(env.FS, env.Paths, false, nil).(*installer.SynthfsExecutor)
	assert.True(t, ok)
}
