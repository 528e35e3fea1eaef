package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jsyn/java/codebase"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(a.fs, a.cfg, version)
			return server.RunStdio()
		},
	}
}
