package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/status"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// Format names accepted by RenderStatuses
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Renderer writes human-oriented output for a run
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Trace prints one audit-trail line per mutating action. The
// signature matches installer.TraceFunc.
func (r *Renderer) Trace(action types.ResultAction, target, detail string) {
	line := Style("Action").Render(string(action)) + " " + Style("Path").Render(target)
	if detail != "" {
		line += Style("Muted").Render(" -> " + detail)
	}
	fmt.Fprintln(r.out, line)
}

// RenderSummary prints the per-action counts for a finished run
func (r *Renderer) RenderSummary(result *types.InstallResult) {
	counts := make(map[types.ResultAction]int)
	for _, res := range result.Results {
		counts[res.Action]++
	}

	title := "Deployed"
	if result.DryRun {
		title = "Deployed (dry run)"
	}
	fmt.Fprintln(r.out, Style("Title").Render(title))

	order := []types.ResultAction{
		types.ActionLinked, types.ActionRelinked, types.ActionBackedUp,
		types.ActionDirMade, types.ActionDirExists,
		types.ActionSeeded, types.ActionSeedKept, types.ActionPlanned,
	}
	for _, action := range order {
		if n := counts[action]; n > 0 {
			fmt.Fprintf(r.out, "  %s %d\n", Style("Action").Render(string(action)), n)
		}
	}

	if len(result.Results) == 0 {
		fmt.Fprintln(r.out, Style("Muted").Render("  nothing to do"))
	}
}

// RenderError prints a run failure
func (r *Renderer) RenderError(err error) {
	fmt.Fprintln(r.out, Style("Error").Render(pterm.Error.Prefix.Text+" "+err.Error()))
}

// RenderStatuses prints a status report in the requested format
func (r *Renderer) RenderStatuses(statuses []status.FileStatus, format string) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode status report")
		}
		fmt.Fprintln(r.out, string(data))
		return nil

	case FormatYAML:
		data, err := yaml.Marshal(statuses)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode status report")
		}
		fmt.Fprint(r.out, string(data))
		return nil

	case FormatText, "":
		r.renderStatusText(statuses)
		return nil

	default:
		return errors.Newf(errors.ErrUsage, "unknown format %q", format)
	}
}

func (r *Renderer) renderStatusText(statuses []status.FileStatus) {
	if len(statuses) == 0 {
		fmt.Fprintln(r.out, Style("Muted").Render("nothing to deploy"))
		return
	}

	fmt.Fprintln(r.out, Style("Title").Render("Deployment status"))
	for _, s := range statuses {
		var badge string
		switch s.State {
		case status.StateLinked, status.StatePresent:
			badge = Style("Success").Render(string(s.State))
		case status.StateMissing:
			badge = Style("Muted").Render(string(s.State))
		case status.StateStale:
			badge = Style("Warning").Render(string(s.State))
		default:
			badge = Style("Error").Render(string(s.State))
		}

		line := fmt.Sprintf("  %-10s %s", badge, Style("Path").Render(s.Path))
		if s.Message != "" {
			line += "  " + Style("Muted").Render(s.Message)
		}
		fmt.Fprintln(r.out, line)
	}

	fmt.Fprintln(r.out, Style("Muted").Render(statusTotals(statuses)))
}

func statusTotals(statuses []status.FileStatus) string {
	counts := make(map[status.State]int)
	for _, s := range statuses {
		counts[s.State]++
	}

	parts := make([]string, 0, len(counts))
	for _, state := range []status.State{
		status.StateLinked, status.StatePresent, status.StateMissing,
		status.StateStale, status.StateConflict,
	} {
		if n := counts[state]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, state))
		}
	}
	return strings.Join(parts, ", ")
}
