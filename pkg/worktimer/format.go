package worktimer

import "fmt"

// FormatElapsed renders seconds as HH:MM:SS. Hours are not wrapped at 24
// and widen past two digits when needed.
func FormatElapsed(seconds uint64) string {
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}
