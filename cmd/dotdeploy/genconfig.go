package main

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotdeploy/pkg/config"
	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
)

func newGenConfigCmd(opts *globalOpts) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := toml.Marshal(config.Default())
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to encode default configuration")
			}

			if !write {
				cmd.Print(string(data))
				return nil
			}

			src, err := paths.ResolveSourceRoot(opts.source)
			if err != nil {
				return err
			}
			dest := filepath.Join(src, config.ConfigFileName)

			if _, err := os.Lstat(dest); err == nil {
				cmd.Printf(MsgConfigExists, dest)
				return nil
			}

			if err := os.WriteFile(dest, data, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", dest)
			}
			cmd.Printf(MsgConfigWritten, dest)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}
