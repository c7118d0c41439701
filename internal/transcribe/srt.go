package transcribe

import (
	"fmt"
	"io"
	"strings"
)

// FormatTimestamp renders seconds as an SRT timestamp, HH:MM:SS,mmm with a
// comma as the decimal separator. Milliseconds are truncated, not rounded:
// downstream players treat the value as "no later than", and rounding up can
// push a cue past the following one.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(seconds * 1000)

	hours := totalMillis / 3_600_000
	minutes := (totalMillis % 3_600_000) / 60_000
	secs := (totalMillis % 60_000) / 1000
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// WriteSRT writes the segments as an SRT document: 1-based sequence numbers,
// a timestamp line, the trimmed cue text and a blank separator line.
func WriteSRT(w io.Writer, segments []Segment) error {
	for i, seg := range segments {
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatTimestamp(seg.Start),
			FormatTimestamp(seg.End),
			strings.TrimSpace(seg.Text),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
