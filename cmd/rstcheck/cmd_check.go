package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rstcheck/internal/compare"
	"rstcheck/internal/report"
	"rstcheck/internal/suite"
)

type checkOpts struct {
	*rootOpts
	format string
	strict bool
}

func newCheck(parent *rootOpts) *checkOpts {
	return &checkOpts{rootOpts: parent}
}

func (opts *checkOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [reference candidate]",
		Short: "Compare one candidate file against its reference",
		Long: fmt.Sprintf(`Compares the candidate against the reference line by line.

With no arguments the default files are compared:
  reference: %s
  candidate: %s

A mismatch prints Error! but exits 0 unless --strict is set. A file that
cannot be opened aborts the check without a verdict and exits 1.`, suite.DefaultReference, suite.DefaultCandidate),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("check takes no arguments or exactly two (reference and candidate), got %d", len(args))
			}
			return nil
		},
		RunE: opts.RunE,
	}
	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "text", "Output format: text, json")
	f.BoolVar(&opts.strict, "strict", false, "Exit 1 when the files differ")
	return cmd
}

func (opts *checkOpts) RunE(cmd *cobra.Command, args []string) error {
	ref, cand := suite.DefaultReference, suite.DefaultCandidate
	if len(args) == 2 {
		ref, cand = args[0], args[1]
	}
	out := cmd.OutOrStdout()

	var (
		res *compare.Result
		err error
	)
	switch opts.format {
	case "text":
		res, err = compare.Check(out, ref, cand, compare.WithPrinter(report.NewPrinter(opts.colorMode, out)))
	case "json":
		res, err = compare.Compare(ref, cand)
		if err == nil {
			err = report.WriteJSON(out, report.NewRecord("", ref, cand, res, nil))
		}
	default:
		return fmt.Errorf("unknown format %q (want text or json)", opts.format)
	}
	if err != nil {
		return err
	}
	if opts.strict && !res.Match() {
		return errMismatch
	}
	return nil
}
