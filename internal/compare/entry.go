package compare

// Kind classifies one line of a line-level differential.
type Kind int

const (
	Unchanged Kind = iota // present in both files
	Added                 // present only in the candidate
	Removed               // present only in the reference
)

// Prefix returns the two-character marker used by line-oriented diff output.
func (k Kind) Prefix() string {
	switch k {
	case Added:
		return "+ "
	case Removed:
		return "- "
	default:
		return "  "
	}
}

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// MarshalText lets Kind appear as a word in JSON reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one line record of a differential. Text keeps its line ending.
type Entry struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// String renders the entry with its diff marker, e.g. "+ b,3\n".
func (e Entry) String() string {
	return e.Kind.Prefix() + e.Text
}

// Verdict is the binary outcome of a comparison.
type Verdict string

const (
	VerdictMatch    Verdict = "match"
	VerdictMismatch Verdict = "mismatch"
)

// Result holds the differing entries between a reference and a candidate.
// It is derived per comparison and never persisted.
type Result struct {
	Reference string  `json:"reference"`
	Candidate string  `json:"candidate"`
	Entries   []Entry `json:"entries,omitempty"`
}

// Match reports whether the two files held the same line sequence.
func (r *Result) Match() bool {
	return len(r.Entries) == 0
}

func (r *Result) Verdict() Verdict {
	if r.Match() {
		return VerdictMatch
	}
	return VerdictMismatch
}

// Added counts lines present only in the candidate.
func (r *Result) Added() int {
	return r.count(Added)
}

// Removed counts lines present only in the reference.
func (r *Result) Removed() int {
	return r.count(Removed)
}

func (r *Result) count(k Kind) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == k {
			n++
		}
	}
	return n
}
