// Package commands implements the geoclock-log CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/eventlog"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/worktimer"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	SessionID string
	Category  *eventlog.Category
}

// ParseCategoryFlag parses a -category flag value.
func ParseCategoryFlag(s string) (eventlog.Category, error) {
	c, ok := eventlog.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (valid: lifecycle, timer, containment, notice, error)", s)
	}
	return c, nil
}

// RunView prints every matching event of the log at path.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	reader, err := eventlog.NewFilteredReader(path, eventlog.Filter{
		SessionID: filter.SessionID,
		Category:  filter.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes one line per event: timestamp [session] CATEGORY details.
func formatEvent(w io.Writer, event eventlog.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")
	fmt.Fprintf(w, "%s [%s] %-11s ", ts, shortenID(event.SessionID), event.Category)

	switch {
	case event.Lifecycle != nil:
		from := event.Lifecycle.OldState
		if from == "" {
			from = "-"
		}
		fmt.Fprintf(w, "%s -> %s", from, event.Lifecycle.NewState)
	case event.Timer != nil:
		fmt.Fprintf(w, "%s -> %s", event.Timer.From, event.Timer.To)
		if event.Timer.Reason != "" {
			fmt.Fprintf(w, " (%s)", event.Timer.Reason)
		}
		if event.Timer.ElapsedSeconds > 0 {
			fmt.Fprintf(w, " after %s", worktimer.FormatElapsed(event.Timer.ElapsedSeconds))
		}
	case event.Containment != nil:
		fmt.Fprintf(w, "%s -> %s", event.Containment.Old, event.Containment.New)
	case event.Notice != nil:
		fmt.Fprintf(w, "%s", event.Notice.Kind)
		if event.Notice.Message != "" {
			fmt.Fprintf(w, ": %q", event.Notice.Message)
		}
	case event.Error != nil:
		fmt.Fprintf(w, "%s: %s", event.Error.Source, event.Error.Message)
	default:
		fmt.Fprint(w, "(empty)")
	}
	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
