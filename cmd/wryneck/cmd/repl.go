// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"
	"wryneck/internal/lsp"
	"wryneck/repl"
)

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse snippets interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "there"
			if current, err := user.Current(); err == nil {
				name = current.Username
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome to the wryneck REPL, %s! Type :help for commands.\n", name)

			return repl.Start(cmd.OutOrStdout(), a.fixedDialect(), a.cfg.Indent)
		},
	}
}

func (a *app) lspCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lsp.Serve(Version, a.cfg, debug)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "log every protocol message")
	return cmd
}
