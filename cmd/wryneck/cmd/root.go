// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"wryneck/internal/config"
	"wryneck/token"
)

// errFailed is returned by commands whose diagnostics were already printed.
var errFailed = errors.New("failed")

var log = commonlog.GetLogger("wryneck")

type app struct {
	cfgFile string
	dialect string
	noColor bool
	verbose int

	cfg *config.Config
}

// NewRootCmd builds the wryneck command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "wryneck",
		Short: "Parser and tooling for the wryneck language",
		Long: `wryneck parses programs written in either of its two dialects:

  classic  fn add(x, y) { *)> x + y; } [add(1, 2) = 3]
  emoji    🥚 add(x, y) { 🐔 x + y; } [add(1, 2) = 3]

Syntax errors never stop the parser; every command shows all of them.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: nearest wryneck.toml)")
	root.PersistentFlags().StringVar(&a.dialect, "dialect", "", "dialect: auto, classic or emoji (overrides the config)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity")

	root.AddCommand(
		a.parseCmd(),
		a.fmtCmd(),
		a.checkCmd(),
		a.replCmd(),
		a.lspCmd(),
		versionCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		}
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	commonlog.Configure(a.verbose, nil)

	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		dir := "."
		if len(args) > 0 {
			dir = filepath.Dir(args[0])
		}
		a.cfg, err = config.Find(dir)
	}
	if err != nil {
		return err
	}
	if a.cfg.Path != "" {
		log.Infof("using config %s", a.cfg.Path)
	}

	if a.dialect != "" {
		if a.dialect != config.DialectAuto {
			if _, err := token.DialectByName(a.dialect); err != nil {
				return err
			}
		}
		a.cfg.Dialect = a.dialect
	}

	if a.noColor || !a.cfg.Color {
		color.NoColor = true
	}
	return nil
}

// fixedDialect returns the configured dialect, or nil when it is detected
// per source.
func (a *app) fixedDialect() *token.Dialect {
	if a.cfg.Dialect == config.DialectAuto {
		return nil
	}
	d, _ := token.DialectByName(a.cfg.Dialect)
	return d
}

func readSource(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(source), nil
}
