package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotdeploy/pkg/config"
	"github.com/arthur-debert/dotdeploy/pkg/installer"
	"github.com/arthur-debert/dotdeploy/pkg/output"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
)

func newInstallCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, opts)
		},
	}
}

// initDeployment resolves the source root, loads its configuration,
// and builds the validated paths instance. Every command that touches
// the source goes through here.
func initDeployment(opts *globalOpts) (paths.Paths, *config.Config, error) {
	src, err := paths.ResolveSourceRoot(opts.source)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	cfg, err := config.Load(src)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	p, err := paths.New(src, opts.target, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrInitPaths, err)
	}
	return p, cfg, nil
}

func runInstall(cmd *cobra.Command, opts *globalOpts) error {
	p, cfg, err := initDeployment(opts)
	if err != nil {
		return err
	}

	log.Info().
		Str("source", p.SourceRoot()).
		Str("target", p.TargetRoot()).
		Bool("dry_run", opts.dryRun).
		Msg("Deploying from source root")

	renderer := output.NewRenderer(cmd.OutOrStdout())

	inst := installer.New(installer.Options{
		Paths:  p,
		Config: cfg,
		DryRun: opts.dryRun,
		Trace:  renderer.Trace,
	})

	result, err := inst.Run()
	if result != nil {
		renderer.RenderSummary(result)
	}
	if err != nil {
		return fmt.Errorf(MsgErrInstall, err)
	}

	if opts.dryRun {
		cmd.Println(MsgDryRunNotice)
	}
	return nil
}
