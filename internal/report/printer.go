// Package report renders comparison reports for terminals and machines.
//
// The plain text layout is owned by compare.PlainPrinter; this package adds a
// colored variant of the same layout and a JSON encoding of results.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"rstcheck/internal/compare"
)

// ColorMode selects when the report is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

// ColorEnabled reports whether f is a terminal that should receive color.
// NO_COLOR and TERM=dumb always disable it.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// NewPrinter returns the printer for mode. out is only inspected in auto mode.
func NewPrinter(mode ColorMode, out io.Writer) compare.Printer {
	switch mode {
	case ColorAlways:
		return NewStyled(termenv.ANSI)
	case ColorNever:
		return compare.PlainPrinter{}
	}
	if f, ok := out.(*os.File); ok && ColorEnabled(f) {
		return NewStyled(termenv.ANSI)
	}
	return compare.PlainPrinter{}
}

// Styled prints the plain layout with added lines in green, removed lines in
// red, and a colored verdict.
type Styled struct {
	header  lipgloss.Style
	path    lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// NewStyled builds a Styled printer for the given color profile.
// termenv.Ascii yields output identical to compare.PlainPrinter.
func NewStyled(profile termenv.Profile) *Styled {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return &Styled{
		header:  r.NewStyle().Bold(true),
		path:    r.NewStyle().Foreground(lipgloss.Color("6")),
		added:   r.NewStyle().Foreground(lipgloss.Color("2")).TabWidth(lipgloss.NoTabConversion),
		removed: r.NewStyle().Foreground(lipgloss.Color("1")).TabWidth(lipgloss.NoTabConversion),
		success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (s *Styled) Header(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n\n", s.header.Render(compare.HeaderText))
}

func (s *Styled) Opened(w io.Writer, reference, candidate string) {
	fmt.Fprintf(w, "Read: %s\n", s.path.Render(reference))
	fmt.Fprintf(w, "Read: %s\n\n", s.path.Render(candidate))
}

func (s *Styled) Entry(w io.Writer, e compare.Entry) {
	line := strings.TrimSuffix(compare.Line(e), "\n")
	switch e.Kind {
	case compare.Added:
		line = s.added.Render(line)
	case compare.Removed:
		line = s.removed.Render(line)
	}
	fmt.Fprintln(w, line)
}

func (s *Styled) Verdict(w io.Writer, match bool) {
	if match {
		fmt.Fprintln(w, s.success.Render(compare.SuccessText))
		return
	}
	fmt.Fprintln(w, s.failure.Render(compare.ErrorText))
}
