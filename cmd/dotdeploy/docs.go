package main

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotdeploy/pkg/output"
)

//go:embed manual.md
var manualText string

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: MsgDocsShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !output.ColorEnabled() {
				cmd.Print(manualText)
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				cmd.Print(manualText)
				return nil
			}

			rendered, err := renderer.Render(manualText)
			if err != nil {
				cmd.Print(manualText)
				return nil
			}
			cmd.Print(rendered)
			return nil
		},
	}
}
