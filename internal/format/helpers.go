package format

import (
	"fmt"
	"time"
)

// FmtDuration formats a duration as "1.234s", or "Xm Ys" past a minute.
func FmtDuration(d time.Duration) string {
	if d >= time.Minute {
		s := int(d.Seconds())
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	}
	return fmt.Sprintf("%d.%03ds", int(d.Seconds()), d.Milliseconds()%1000)
}

// TruncateLeft shortens s to maxLen characters, keeping its tail and
// prefixing "...". File paths stay recognisable by their base name.
func TruncateLeft(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[len(s)-maxLen:]
	}
	return "..." + s[len(s)-(maxLen-3):]
}
