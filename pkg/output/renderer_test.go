package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/status"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

func TestTraceLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Trace(types.ActionLinked, "/home/user/.vimrc", "/dotfiles/vimrc")

	out := buf.String()
	assert.Contains(t, out, "linked")
	assert.Contains(t, out, "/home/user/.vimrc")
	assert.Contains(t, out, "/dotfiles/vimrc")
}

func TestRenderSummaryCounts(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.RenderSummary(&types.InstallResult{
		Results: []types.Result{
			{Action: types.ActionLinked},
			{Action: types.ActionLinked},
			{Action: types.ActionBackedUp},
			{Action: types.ActionSeeded},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "linked")
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "backed-up")
	assert.Contains(t, out, "seeded")
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).RenderSummary(&types.InstallResult{})
	assert.Contains(t, buf.String(), "nothing to do")
}

func TestRenderStatusesJSON(t *testing.T) {
	var buf bytes.Buffer
	statuses := []status.FileStatus{
		{Path: "/home/user/.vimrc", State: status.StateLinked, ExpectedSource: "/dotfiles/vimrc"},
	}

	require.NoError(t, NewRenderer(&buf).RenderStatuses(statuses, FormatJSON))

	var decoded []status.FileStatus
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, statuses, decoded)
}

func TestRenderStatusesYAML(t *testing.T) {
	var buf bytes.Buffer
	statuses := []status.FileStatus{
		{Path: "/home/user/.vimrc", State: status.StateMissing, Message: "not deployed yet"},
	}

	require.NoError(t, NewRenderer(&buf).RenderStatuses(statuses, FormatYAML))

	var decoded []status.FileStatus
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, statuses, decoded)
}

func TestRenderStatusesText(t *testing.T) {
	var buf bytes.Buffer
	statuses := []status.FileStatus{
		{Path: "/home/user/.vimrc", State: status.StateLinked},
		{Path: "/home/user/.zshrc", State: status.StateConflict, Message: "path exists but is not a symlink"},
	}

	require.NoError(t, NewRenderer(&buf).RenderStatuses(statuses, FormatText))

	out := buf.String()
	assert.Contains(t, out, ".vimrc")
	assert.Contains(t, out, "conflict")
	assert.Contains(t, out, "1 linked, 1 conflict")
}

func TestRenderStatusesUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(&buf).RenderStatuses(nil, "xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUsage))
}

func TestStyleFallback(t *testing.T) {
	// Undefined names come back as a usable zero style.
	assert.Equal(t, "plain", Style("NoSuchStyle").Render("plain"))
}
