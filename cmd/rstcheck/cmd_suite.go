package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rstcheck/internal/compare"
	"rstcheck/internal/format"
	"rstcheck/internal/report"
	"rstcheck/internal/suite"
)

type suiteOpts struct {
	*rootOpts
	file     string
	parallel int
	summary  string
	format   string
}

func newSuite(parent *rootOpts) *suiteOpts {
	return &suiteOpts{rootOpts: parent}
}

func (opts *suiteOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suite",
		Short: "Run every comparison listed in a suite file",
		Long: `Runs the reference/candidate pairs listed in a YAML or JSON suite file.
Reports are printed in suite order followed by a summary table. Exits 1 if
any case mismatches or cannot be read.

Suite file:
  name: models
  parallel: 4
  cases:
    - name: msd
      reference: ref_rst/ref_ode_msd_model.csv
      candidate: rst/ode_msd_model.csv`,
		Args: cobra.NoArgs,
		RunE: opts.RunE,
	}
	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "Suite file (.yaml, .yml or .json); default runs the built-in default case")
	f.IntVar(&opts.parallel, "parallel", 0, "Cases compared at once (overrides the suite file; 0 keeps it)")
	f.StringVar(&opts.summary, "summary", "ascii", "Summary table: ascii, markdown, none")
	f.StringVar(&opts.format, "format", "text", "Output format: text, json")
	return cmd
}

func (opts *suiteOpts) RunE(cmd *cobra.Command, _ []string) error {
	mode, err := format.ParseMode(opts.summary)
	if err != nil {
		return err
	}
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", opts.format)
	}

	s := suite.Default()
	if opts.file != "" {
		if s, err = suite.LoadFromPath(opts.file); err != nil {
			return err
		}
	}
	if opts.parallel > 0 {
		s.Parallel = opts.parallel
	}

	out := cmd.OutOrStdout()
	var printer compare.Printer = compare.PlainPrinter{}
	if opts.format == "text" {
		printer = report.NewPrinter(opts.colorMode, out)
	}
	outcomes, err := suite.Run(cmd.Context(), s, printer)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		recs := make([]report.Record, 0, len(outcomes))
		for _, o := range outcomes {
			recs = append(recs, report.NewRecord(o.Case.Name, o.Case.Reference, o.Case.Candidate, o.Result, o.Err))
		}
		if err := report.WriteJSON(out, recs); err != nil {
			return err
		}
	} else {
		suite.WriteReports(out, outcomes)
		if table := suite.Summary(outcomes, mode); table != "" {
			fmt.Fprintf(out, "\n%s\n", table)
		}
	}

	if !suite.Passed(outcomes) {
		return errMismatch
	}
	return nil
}
