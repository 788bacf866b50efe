// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"wryneck/internal/format"
	"wryneck/internal/parser"
	"wryneck/internal/resolve"
	"wryneck/token"
)

func (a *app) fmtCmd() *cobra.Command {
	var (
		write   bool
		list    bool
		indent  int
		convert string
	)

	cmd := &cobra.Command{
		Use:   "fmt FILE...",
		Short: "Print files in canonical layout",
		Long: `Print files in canonical layout.

Files with syntax errors are reported and left untouched. --to rewrites
keywords into the other dialect; a file using a name that is a keyword of
the target dialect is refused.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if indent <= 0 {
				indent = a.cfg.Indent
			}

			var target *token.Dialect
			if convert != "" {
				d, err := token.DialectByName(convert)
				if err != nil {
					return err
				}
				target = d
			}

			failed := false
			for _, path := range args {
				changed, err := a.formatFile(cmd, path, indent, target, write, list)
				if err != nil {
					if !errors.Is(err, errFailed) {
						return err
					}
					failed = true
					continue
				}
				if list && changed {
					fmt.Fprintln(cmd.OutOrStdout(), path)
					failed = true
				}
			}

			if failed {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list files whose layout differs and exit non-zero")
	cmd.Flags().IntVar(&indent, "indent", 0, "spaces per indentation level (default from config)")
	cmd.Flags().StringVar(&convert, "to", "", "print in this dialect instead of the source's")
	return cmd
}

// formatFile formats one file and reports whether its text would change.
func (a *app) formatFile(cmd *cobra.Command, path string, indent int, target *token.Dialect, write, list bool) (bool, error) {
	source, err := readSource(path)
	if err != nil {
		return false, err
	}

	d, err := a.cfg.DialectFor(source)
	if err != nil {
		return false, err
	}

	result := resolve.Check(path, source, parser.WithDialect(d))
	if !result.Clean() {
		result.Report(cmd.ErrOrStderr(), false)
		return false, errFailed
	}

	if target == nil {
		target = d
	}
	if err := format.CheckNames(result.Syntax, target); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", color.RedString("error:"), path, err)
		return false, errFailed
	}
	formatted := format.Program(result.Syntax, target, indent)
	changed := formatted != source

	switch {
	case list:
	case write:
		if changed {
			info, err := os.Stat(path)
			if err != nil {
				return false, err
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return false, fmt.Errorf("failed to write %s: %w", path, err)
			}
			log.Infof("formatted %s", path)
		}
	default:
		fmt.Fprint(cmd.OutOrStdout(), formatted)
	}
	return changed, nil
}
