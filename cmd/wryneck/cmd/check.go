// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"wryneck/internal/parser"
	"wryneck/internal/resolve"
)

func (a *app) checkCmd() *cobra.Command {
	var (
		watchFiles bool
		noWarnings bool
	)

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Report syntax errors and unresolved names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noWarnings {
				a.cfg.Check.Warnings = false
			}

			ok := a.checkAll(cmd, args)
			if !watchFiles {
				if !ok {
					return errFailed
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.ErrOrStderr(), color.CyanString("watching %d file(s), press Ctrl+C to stop", len(args)))
			return watch(ctx, args, a.cfg.Check.Debounce.Duration, func(path string) {
				fmt.Fprintln(cmd.ErrOrStderr(), color.CyanString("%s changed", path))
				a.checkAll(cmd, []string{path})
			})
		},
	}

	cmd.Flags().BoolVar(&watchFiles, "watch", false, "re-check files whenever they change")
	cmd.Flags().BoolVar(&noWarnings, "no-warnings", false, "only report errors")
	return cmd
}

// checkAll checks every file and reports whether all of them are free of
// errors.
func (a *app) checkAll(cmd *cobra.Command, paths []string) bool {
	ok := true
	for _, path := range paths {
		if !a.checkFile(cmd, path) {
			ok = false
		}
	}
	return ok
}

func (a *app) checkFile(cmd *cobra.Command, path string) bool {
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", color.RedString("error:"), path, err)
		return false
	}

	result := resolve.Check(path, source, parser.WithDialect(a.fixedDialect()))
	if result.Report(cmd.ErrOrStderr(), a.cfg.Check.Warnings) > 0 {
		return false
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d functions)\n", color.GreenString("ok"), path, len(result.Program.Functions))
	return true
}
