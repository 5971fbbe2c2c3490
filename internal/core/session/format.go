package session

import "fmt"

// FormatRemaining renders seconds as minutes:seconds with two-digit seconds.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
