package compare

import (
	"fmt"
	"io"
	"strings"
	"time"

	"rstcheck/internal/logging"
)

// Printer renders the stages of a comparison report.
type Printer interface {
	// Header announces that a check is starting.
	Header(w io.Writer)
	// Opened acknowledges the two files once both have been read.
	Opened(w io.Writer, reference, candidate string)
	// Entry prints one added or removed line.
	Entry(w io.Writer, e Entry)
	// Verdict prints the final line: "Success!" or "Error!".
	Verdict(w io.Writer, match bool)
}

const (
	HeaderText  = "Checking result..."
	SuccessText = "Success!"
	ErrorText   = "Error!"
)

// PlainPrinter writes the report as uncolored text.
type PlainPrinter struct{}

func (PlainPrinter) Header(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n\n", HeaderText)
}

func (PlainPrinter) Opened(w io.Writer, reference, candidate string) {
	fmt.Fprintf(w, "Read: %s\n", reference)
	fmt.Fprintf(w, "Read: %s\n\n", candidate)
}

func (PlainPrinter) Entry(w io.Writer, e Entry) {
	fmt.Fprint(w, Line(e))
}

func (PlainPrinter) Verdict(w io.Writer, match bool) {
	if match {
		fmt.Fprintln(w, SuccessText)
		return
	}
	fmt.Fprintln(w, ErrorText)
}

// Line renders e terminated by exactly one newline, so a final line without
// one does not run into the next entry.
func Line(e Entry) string {
	s := e.String()
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}

type checkOptions struct {
	printer Printer
}

// Option configures Check.
type Option func(*checkOptions)

// WithPrinter selects the report renderer. The default is PlainPrinter.
func WithPrinter(p Printer) Option {
	return func(o *checkOptions) {
		if p != nil {
			o.printer = p
		}
	}
}

// Compare reads both files, reference first, and returns the differing
// entries. A file that cannot be opened or read aborts the comparison.
func Compare(reference, candidate string) (*Result, error) {
	ref, err := ReadLines(reference)
	if err != nil {
		return nil, err
	}
	cand, err := ReadLines(candidate)
	if err != nil {
		return nil, err
	}
	return &Result{
		Reference: reference,
		Candidate: candidate,
		Entries:   Differences(Diff(ref, cand)),
	}, nil
}

// Check compares reference against candidate and writes a human-readable
// report to w: a header, the two opened paths, every differing line, and a
// verdict. When either file is inaccessible the error is returned and no
// verdict is written.
func Check(w io.Writer, reference, candidate string, opts ...Option) (*Result, error) {
	o := checkOptions{printer: PlainPrinter{}}
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.New("compare")
	start := time.Now()

	o.printer.Header(w)

	res, err := Compare(reference, candidate)
	if err != nil {
		logger.Debug("comparison aborted", "reference", reference, "candidate", candidate, "error", err)
		return nil, err
	}
	o.printer.Opened(w, reference, candidate)

	for _, e := range res.Entries {
		o.printer.Entry(w, e)
	}
	o.printer.Verdict(w, res.Match())

	logger.Debug("comparison complete",
		"reference", reference,
		"candidate", candidate,
		"verdict", res.Verdict(),
		"added", res.Added(),
		"removed", res.Removed(),
		"elapsed", time.Since(start))
	return res, nil
}
