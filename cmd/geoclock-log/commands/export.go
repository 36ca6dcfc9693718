package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/eventlog"
)

// RunExport exports the log file to the specified format. An empty output
// writes to w.
func RunExport(path, format, output string, w io.Writer) error {
	reader, err := eventlog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *eventlog.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

func exportCSV(reader *eventlog.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "category", "from", "to", "reason", "elapsed_seconds", "message"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := cw.Write(csvRecord(event)); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return cw.Error()
}

func csvRecord(event eventlog.Event) []string {
	var from, to, reason, elapsed, message string
	switch {
	case event.Lifecycle != nil:
		from, to = event.Lifecycle.OldState, event.Lifecycle.NewState
	case event.Timer != nil:
		from, to, reason = event.Timer.From, event.Timer.To, event.Timer.Reason
		elapsed = strconv.FormatUint(event.Timer.ElapsedSeconds, 10)
	case event.Containment != nil:
		from, to = event.Containment.Old, event.Containment.New
	case event.Notice != nil:
		reason, message = event.Notice.Kind, event.Notice.Message
	case event.Error != nil:
		reason, message = event.Error.Source, event.Error.Message
	}
	return []string{
		event.Timestamp.UTC().Format(time.RFC3339Nano),
		event.SessionID,
		event.Category.String(),
		from, to, reason, elapsed, message,
	}
}
