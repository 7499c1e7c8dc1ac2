package main

import (
	"os"

	"github.com/arthur-debert/dotdeploy/pkg/output"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output.NewRenderer(os.Stderr).RenderError(err)
		os.Exit(1)
	}
}
