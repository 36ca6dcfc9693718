package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/eventlog"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/worktimer"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[eventlog.Category]int
	Sessions         map[string]*SessionStats
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single session.
type SessionStats struct {
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	Starts      int
	Stops       int
	AreaExits   int
	Notices     int
	Errors      int
	FinalState  string
	LongestRun  uint64
	TotalWorked uint64
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := collectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(path string) (*Stats, error) {
	reader, err := eventlog.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[eventlog.Category]int),
		Sessions:         make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}

		switch {
		case event.Lifecycle != nil:
			sess.FinalState = event.Lifecycle.NewState
		case event.Timer != nil:
			countTimer(sess, event.Timer)
		case event.Notice != nil:
			sess.Notices++
		case event.Error != nil:
			sess.Errors++
		}
	}
	return stats, nil
}

func countTimer(sess *SessionStats, t *eventlog.TimerEvent) {
	switch t.To {
	case worktimer.StateRunning.String():
		sess.Starts++
	case worktimer.StateStopped.String():
		sess.Stops++
		if t.Reason == worktimer.ReasonExitedArea.String() {
			sess.AreaExits++
		}
		sess.TotalWorked += t.ElapsedSeconds
		if t.ElapsedSeconds > sess.LongestRun {
			sess.LongestRun = t.ElapsedSeconds
		}
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== geoclock Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for c := eventlog.CategoryLifecycle; c <= eventlog.CategoryError; c++ {
		if count := stats.EventsByCategory[c]; count > 0 {
			fmt.Fprintf(w, "  %-13s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	type sessionInfo struct {
		id    string
		stats *SessionStats
	}
	sessions := make([]sessionInfo, 0, len(stats.Sessions))
	for id, s := range stats.Sessions {
		sessions = append(sessions, sessionInfo{id, s})
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
	})

	for _, s := range sessions {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenID(s.id), s.stats.Events,
			s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Second))
		if s.stats.FinalState != "" {
			fmt.Fprintf(w, "           State: %s\n", s.stats.FinalState)
		}
		fmt.Fprintf(w, "           Starts: %d, stops: %d (area exits: %d)\n",
			s.stats.Starts, s.stats.Stops, s.stats.AreaExits)
		if s.stats.Stops > 0 {
			fmt.Fprintf(w, "           Worked: %s (longest run %s)\n",
				worktimer.FormatElapsed(s.stats.TotalWorked), worktimer.FormatElapsed(s.stats.LongestRun))
		}
		if s.stats.Notices > 0 || s.stats.Errors > 0 {
			fmt.Fprintf(w, "           Notices: %d, errors: %d\n", s.stats.Notices, s.stats.Errors)
		}
	}
}
