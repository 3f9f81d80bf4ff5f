// rstcheck compares simulation result files against checked-in references.
//
// Usage:
//
//	rstcheck check [reference candidate]
//	rstcheck suite -f suite.yaml [--parallel N] [--summary ascii|markdown|none]
//	rstcheck serve
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rstcheck/internal/logging"
	"rstcheck/internal/report"
)

// version is set at build time via -ldflags.
var version = "dev"

// errMismatch reports a failed verdict whose report has already been printed.
var errMismatch = errors.New("result mismatch")

type rootOpts struct {
	logLevel  string
	logFormat string
	color     string

	colorMode report.ColorMode
}

func newRoot() *rootOpts {
	return &rootOpts{}
}

func (opts *rootOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rstcheck",
		Short: "Compare simulation results against reference files",
		Long: "rstcheck compares a freshly produced result file against its reference\n" +
			"line by line and prints the differing lines followed by Success! or Error!.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.PersistentPreRunE,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
	}
	f := cmd.PersistentFlags()
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", "text", "Log format: text, json")
	f.StringVar(&opts.color, "color", "auto", "Color the report: auto, always, never")

	cmd.AddCommand(
		newCheck(opts).Command(),
		newSuite(opts).Command(),
		newServe(opts).Command(),
	)
	return cmd
}

func (opts *rootOpts) PersistentPreRunE(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	if !logging.ValidFormat(opts.logFormat) {
		return fmt.Errorf("unknown log format %q (want text or json)", opts.logFormat)
	}
	opts.colorMode, err = report.ParseColorMode(opts.color)
	if err != nil {
		return err
	}
	logging.Init(level, opts.logFormat, cmd.ErrOrStderr())
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRoot().Command().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errMismatch) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
