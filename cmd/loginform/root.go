package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "loginform",
		Short: "Serve a configurable login form",
		Long: `loginform serves a themeable username/password login page backed by a
YAML accounts file and signed session cookies.

Available subcommands:
  serve          - Start the HTTP server
  hash-password  - Print a bcrypt hash for the accounts file`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newHashPasswordCmd())
	return root
}
