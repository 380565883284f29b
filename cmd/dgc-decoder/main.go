// Command dgc-decoder scans, decodes and verifies EU Digital Green
// Certificates. It is the CLI front-end named out-of-scope for the core
// decode/verify pipeline in spec.md §1, given concrete shape here so the
// pipeline is runnable end-to-end.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbosity int

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dgc-decoder",
		Short:         "Decode and verify EU Digital Green Certificates",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbosity)
		},
	}

	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v, -vv, -vvv)")

	root.AddCommand(newVerifyCommand())
	root.AddCommand(newDecodeCommand())
	root.AddCommand(newListKeystoreCommand())

	return root
}

// setupLogging maps the repeated -v flag to warn/info/debug/trace, per
// original_source/decoder/src/main.rs's verbosity-count convention.
func setupLogging(count int) {
	level := logrus.WarnLevel
	switch {
	case count >= 3:
		level = logrus.TraceLevel
	case count == 2:
		level = logrus.DebugLevel
	case count == 1:
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	cfg, err := loadConfig()
	if err == nil && cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func keystoreFlagDefault() string {
	cfg, err := loadConfig()
	if err != nil {
		return ""
	}
	return cfg.Keystore
}
