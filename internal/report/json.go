package report

import (
	"encoding/json"
	"fmt"
	"io"

	"rstcheck/internal/compare"
)

// Record is the machine-readable form of one comparison.
type Record struct {
	Name      string          `json:"name,omitempty"`
	Reference string          `json:"reference"`
	Candidate string          `json:"candidate"`
	Verdict   compare.Verdict `json:"verdict,omitempty"`
	Added     int             `json:"added"`
	Removed   int             `json:"removed"`
	Entries   []compare.Entry `json:"entries,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// NewRecord converts a result. A nil res with a non-nil err records a
// comparison that never reached a verdict.
func NewRecord(name, reference, candidate string, res *compare.Result, err error) Record {
	rec := Record{Name: name, Reference: reference, Candidate: candidate}
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	if res == nil {
		return rec
	}
	rec.Verdict = res.Verdict()
	rec.Added = res.Added()
	rec.Removed = res.Removed()
	rec.Entries = res.Entries
	return rec
}

// WriteJSON encodes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
