// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"wryneck/internal/config"
	"wryneck/internal/lsp"
)

var version = "0.1.0"

var (
	verbosity int
	logFile   string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:           "wryneck-lsp",
	Short:         "Language server for wryneck sources",
	Args:          cobra.NoArgs,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var logPath *string
		if logFile != "" {
			logPath = &logFile
		}
		commonlog.Configure(verbosity, logPath)

		// Editors start the server in the workspace root, so look for
		// wryneck.toml from there.
		cfg, err := config.Find(".")
		if err != nil {
			return err
		}
		return lsp.Serve(version, cfg, debug)
	},
}

func init() {
	rootCmd.Flags().IntVar(&verbosity, "verbosity", 1, "log verbosity")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file instead of stderr")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log every protocol message")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wryneck-lsp: %v\n", err)
		os.Exit(1)
	}
}
