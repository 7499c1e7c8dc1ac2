package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotdeploy/pkg/filesystem"
	"github.com/arthur-debert/dotdeploy/pkg/installer"
	"github.com/arthur-debert/dotdeploy/pkg/output"
	"github.com/arthur-debert/dotdeploy/pkg/status"
)

func newStatusCmd(opts *globalOpts) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := initDeployment(opts)
			if err != nil {
				return err
			}

			log.Info().
				Str("source", p.SourceRoot()).
				Str("target", p.TargetRoot()).
				Msg("Checking deployment status")

			inst := installer.New(installer.Options{
				Paths:  p,
				Config: cfg,
			})
			_, ops, err := inst.Plan()
			if err != nil {
				return fmt.Errorf(MsgErrStatus, err)
			}

			statuses := status.NewChecker(filesystem.NewOS()).Check(ops)
			return output.NewRenderer(cmd.OutOrStdout()).RenderStatuses(statuses, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", output.FormatText, MsgFlagFormat)
	return cmd
}
