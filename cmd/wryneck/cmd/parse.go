// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"wryneck/grammar"
	"wryneck/internal/ast"
	"wryneck/internal/parser"
	"wryneck/internal/resolve"
)

func (a *app) parseCmd() *cobra.Command {
	var (
		dump   bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a file and print its syntax tree",
		Long: `Parse a file and print its syntax tree.

The tree is printed even when the file has syntax errors; broken parts show
up as "error". With --strict the file is parsed by the grammar parser,
which stops at the first error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strict || a.cfg.Strict {
				return a.parseStrict(cmd, args[0], dump)
			}
			return a.parse(cmd, args[0], dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "ast", false, "print the tree one node per line with positions")
	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first syntax error")
	return cmd
}

func (a *app) parse(cmd *cobra.Command, path string, dump bool) error {
	startTime := time.Now()

	source, err := readSource(path)
	if err != nil {
		return err
	}

	result := resolve.Check(path, source, parser.WithDialect(a.fixedDialect()))
	errorCount := result.Report(cmd.ErrOrStderr(), a.cfg.Check.Warnings)

	if result.Syntax != nil {
		printTree(cmd, result.Syntax, dump)
	}

	duration := formatDuration(time.Since(startTime))
	if errorCount > 0 || result.Failure != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("Parsing failed after %s", duration))
		return errFailed
	}

	log.Infof("parsed %s in %s", path, duration)
	fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("Successfully parsed %s in %s", path, duration))
	return nil
}

func (a *app) parseStrict(cmd *cobra.Command, path string, dump bool) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	prog, err := grammar.Parse(path, source, a.fixedDialect())
	if err != nil {
		grammar.ReportError(cmd.ErrOrStderr(), source, err)
		return errFailed
	}

	printTree(cmd, prog, dump)
	return nil
}

func printTree(cmd *cobra.Command, prog *ast.Program, dump bool) {
	if dump {
		fmt.Fprint(cmd.OutOrStdout(), ast.Dump(prog))
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), prog.String())
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
