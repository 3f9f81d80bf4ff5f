package suite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"rstcheck/internal/compare"
	"rstcheck/internal/format"
	"rstcheck/internal/logging"
)

// Outcome is the result of one case. Output holds the case's text report;
// it has no verdict line when Err is set.
type Outcome struct {
	Case    Case
	Result  *compare.Result
	Output  []byte
	Err     error
	Elapsed time.Duration
}

// Passed reports whether the case reached a match verdict.
func (o Outcome) Passed() bool {
	return o.Err == nil && o.Result != nil && o.Result.Match()
}

// Run compares every case of s, at most s.Parallel at a time, and returns
// the outcomes in case order. An inaccessible file fails only its own case.
// Cases not yet started when ctx is canceled get ctx.Err() and Run returns
// that error alongside the partial outcomes.
func Run(ctx context.Context, s *Suite, p compare.Printer) ([]Outcome, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	limit := s.Parallel
	if limit < 1 {
		limit = 1
	}
	logger := logging.New("suite")
	logger.Info("running suite", "name", s.Name, "cases", len(s.Cases), "parallel", limit)

	outcomes := make([]Outcome, len(s.Cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range s.Cases {
		i, c := i, c
		g.Go(func() error {
			outcomes[i] = runCase(gctx, c, p)
			if err := outcomes[i].Err; err != nil {
				logger.Error("case failed", "case", c.Name, "error", err)
			} else {
				logger.Debug("case done", "case", c.Name, "verdict", outcomes[i].Result.Verdict())
			}
			return nil
		})
	}
	_ = g.Wait() // per-case errors live in Outcome.Err

	if err := ctx.Err(); err != nil {
		return outcomes, fmt.Errorf("suite %s: %w", s.Name, err)
	}
	return outcomes, nil
}

func runCase(ctx context.Context, c Case, p compare.Printer) Outcome {
	out := Outcome{Case: c}
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}
	var buf bytes.Buffer
	start := time.Now()
	res, err := compare.Check(&buf, c.Reference, c.Candidate, compare.WithPrinter(p))
	out.Elapsed = time.Since(start)
	out.Result = res
	out.Output = buf.Bytes()
	if err != nil {
		out.Err = fmt.Errorf("case %s: %w", c.Name, err)
	}
	return out
}

// Passed reports whether every case matched.
func Passed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if !o.Passed() {
			return false
		}
	}
	return len(outcomes) > 0
}

// WriteReports writes each case's text report in case order. Cases that
// failed before a verdict get their error appended.
func WriteReports(w io.Writer, outcomes []Outcome) {
	for _, o := range outcomes {
		_, _ = w.Write(o.Output)
		if o.Err != nil {
			fmt.Fprintf(w, "%v\n", o.Err)
		}
	}
}

// Summary renders one row per case with its verdict and line counts.
func Summary(outcomes []Outcome, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("Case", "Verdict", "Added", "Removed", "Time", "Candidate")
	var added, removed, passed int
	for _, o := range outcomes {
		verdict := "error"
		a, r := 0, 0
		if o.Err == nil && o.Result != nil {
			verdict = string(o.Result.Verdict())
			a, r = o.Result.Added(), o.Result.Removed()
		}
		if o.Passed() {
			passed++
		}
		added += a
		removed += r
		tb.Row(o.Case.Name, verdict, a, r, format.FmtDuration(o.Elapsed), format.TruncateLeft(o.Case.Candidate, 48))
	}
	tb.Footer(fmt.Sprintf("%d/%d passed", passed, len(outcomes)), "", added, removed, "", "")
	tb.Columns(
		format.ColumnConfig{Number: 1, Align: format.AlignLeft, MaxWidth: 32},
		format.ColumnConfig{Number: 2, Align: format.AlignCenter},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
	)
	return tb.String()
}
