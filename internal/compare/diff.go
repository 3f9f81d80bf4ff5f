package compare

import (
	"github.com/pmezard/go-difflib/difflib"
)

const (
	// pairCutoff is the character similarity a removed and an added line
	// must exceed to be reported together as a changed pair.
	pairCutoff = 0.75
	// pairWindow bounds how far from the diagonal of a replaced block a
	// pairing partner is searched for.
	pairWindow = 10
)

// Diff computes the full line-level differential between reference and
// candidate. Lines are compared byte for byte, line endings included.
// Autojunk is off so long runs of repeated lines still align.
//
// Inside a replaced block, similar lines are paired so each changed line
// reads as "- old" immediately followed by "+ new". Runs with no similar
// partner are dumped whole, shorter run first.
func Diff(reference, candidate []string) []Entry {
	m := difflib.NewMatcherWithJunk(reference, candidate, false, nil)
	var entries []Entry
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			entries = appendLines(entries, Unchanged, reference[op.I1:op.I2])
		case 'd':
			entries = appendLines(entries, Removed, reference[op.I1:op.I2])
		case 'i':
			entries = appendLines(entries, Added, candidate[op.J1:op.J2])
		case 'r':
			entries = pairReplace(entries, reference, op.I1, op.I2, candidate, op.J1, op.J2)
		}
	}
	return entries
}

// pairReplace walks the candidate side of a replaced block and, for each
// line, looks for the most similar reference line within pairWindow of the
// diagonal. Lines between two pairs are emitted by dumpGap.
func pairReplace(dst []Entry, a []string, alo, ahi int, b []string, blo, bhi int) []Entry {
	cruncher := difflib.NewMatcher(nil, nil)
	gapI, gapJ := alo, blo
	for j := blo; j < bhi; j++ {
		cruncher.SetSeq2(chars(b[j]))
		diag := alo + (j - blo)
		lo, hi := max(diag-pairWindow, gapI), min(diag+pairWindow+1, ahi)
		if lo >= hi {
			break
		}
		bestI, bestRatio := -1, pairCutoff
		for i := lo; i < hi; i++ {
			cruncher.SetSeq1(chars(a[i]))
			if cruncher.RealQuickRatio() <= bestRatio || cruncher.QuickRatio() <= bestRatio {
				continue
			}
			if r := cruncher.Ratio(); r > bestRatio {
				bestI, bestRatio = i, r
			}
		}
		if bestI < 0 {
			continue
		}

		dst = dumpGap(dst, a, gapI, bestI, b, gapJ, j)
		if a[bestI] == b[j] {
			dst = append(dst, Entry{Kind: Unchanged, Text: a[bestI]})
		} else {
			dst = append(dst, Entry{Kind: Removed, Text: a[bestI]}, Entry{Kind: Added, Text: b[j]})
		}
		gapI, gapJ = bestI+1, j+1
	}
	return dumpGap(dst, a, gapI, ahi, b, gapJ, bhi)
}

// dumpGap emits unpaired lines. When both sides are non-empty the shorter
// run comes first; on a tie removed lines lead.
func dumpGap(dst []Entry, a []string, alo, ahi int, b []string, blo, bhi int) []Entry {
	if bhi-blo < ahi-alo {
		dst = appendLines(dst, Added, b[blo:bhi])
		return appendLines(dst, Removed, a[alo:ahi])
	}
	dst = appendLines(dst, Removed, a[alo:ahi])
	return appendLines(dst, Added, b[blo:bhi])
}

// chars splits a line into single-character elements for similarity scoring.
func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Differences filters a differential down to its added and removed entries.
func Differences(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind != Unchanged {
			out = append(out, e)
		}
	}
	return out
}

func appendLines(dst []Entry, k Kind, lines []string) []Entry {
	for _, l := range lines {
		dst = append(dst, Entry{Kind: k, Text: l})
	}
	return dst
}
