// Command geoclock-log views and analyzes geoclock session event logs.
//
// Log files are written by geoclock when it runs with -event-log.
//
// Usage:
//
//	geoclock-log <command> [flags] <file.gclog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	stats    Show per-session statistics
//
// Examples:
//
//	# View all events
//	geoclock-log view session.gclog
//
//	# View only timer transitions
//	geoclock-log view -category timer session.gclog
//
//	# Export to CSV
//	geoclock-log export -format csv -o events.csv session.gclog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/techb2bnew/GeoFencing-Demo-App/cmd/geoclock-log/commands"
)

const usage = `geoclock-log - geoclock Event Log Analyzer

Usage:
  geoclock-log <command> [flags] <file.gclog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  stats    Show per-session statistics

Use "geoclock-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `geoclock-log view - View log file in human-readable format

Usage:
  geoclock-log view [flags] <file.gclog>

Flags:
`)
		fs.PrintDefaults()
	}

	sessionID := fs.String("session", "", "Filter by session ID")
	category := fs.String("category", "", "Filter by category (lifecycle, timer, containment, notice, error)")

	path := parseArgs(fs, args)

	filter := commands.ViewFilter{SessionID: *sessionID}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `geoclock-log export - Export log file to JSON or CSV format

Usage:
  geoclock-log export [flags] <file.gclog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path := parseArgs(fs, args)
	if err := commands.RunExport(path, *format, *output, os.Stdout); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `geoclock-log stats - Show per-session statistics

Usage:
  geoclock-log stats <file.gclog>

`)
	}

	path := parseArgs(fs, args)
	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}

// parseArgs parses flags and returns the log file argument.
func parseArgs(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
