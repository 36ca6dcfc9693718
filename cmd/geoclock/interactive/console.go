// Package interactive provides the interactive command-line interface
// for geoclock.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/session"
)

// Controller is the part of a session the console drives.
type Controller interface {
	RequestStart(ctx context.Context) (session.View, error)
	RequestStop(ctx context.Context) (session.View, error)
	Toggle(ctx context.Context) (session.View, error)
	Snapshot() session.View
}

// Mover injects positions. It is nil when positions come from elsewhere.
type Mover interface {
	Push(ctx context.Context, p geo.GeoPoint) error
	Fail(ctx context.Context, err error) error
}

// Console handles interactive mode for geoclock.
type Console struct {
	ctrl  Controller
	mover Mover
	rl    *readline.Instance
	out   io.Writer
}

// New creates a console reading commands from the terminal. ctrl may be nil
// and set later with SetController, before Run.
func New(ctrl Controller, mover Mover) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "geoclock> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{ctrl: ctrl, mover: mover, rl: rl, out: rl.Stdout()}, nil
}

// SetController sets the session the console drives.
func (c *Console) SetController(ctrl Controller) {
	c.ctrl = ctrl
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.out
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if quit := c.Execute(ctx, line); quit {
			cancel()
			return
		}
	}
}

// Execute runs one command line and reports whether the user asked to quit.
func (c *Console) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()
	case "start":
		c.show(c.ctrl.RequestStart(ctx))
	case "stop":
		c.show(c.ctrl.RequestStop(ctx))
	case "toggle", "t":
		c.show(c.ctrl.Toggle(ctx))
	case "status", "s":
		c.printView(c.ctrl.Snapshot())
	case "move", "m":
		c.cmdMove(ctx, args)
	case "fail":
		c.cmdFail(ctx, args)
	case "quit", "exit", "q":
		fmt.Fprintln(c.out, "Exiting...")
		return true
	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (c *Console) cmdMove(ctx context.Context, args []string) {
	if c.mover == nil {
		fmt.Fprintln(c.out, "Positions come from the configured source; move is unavailable")
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: move <lat> <lon>")
		return
	}
	lat, err1 := strconv.ParseFloat(args[0], 64)
	lon, err2 := strconv.ParseFloat(args[1], 64)
	if err := errors.Join(err1, err2); err != nil {
		fmt.Fprintf(c.out, "Invalid coordinates: %v\n", err)
		return
	}
	if err := c.mover.Push(ctx, geo.GeoPoint{Latitude: lat, Longitude: lon}); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func (c *Console) cmdFail(ctx context.Context, args []string) {
	if c.mover == nil {
		fmt.Fprintln(c.out, "Positions come from the configured source; fail is unavailable")
		return
	}
	msg := "simulated provider fault"
	if len(args) > 0 {
		msg = strings.Join(args, " ")
	}
	if err := c.mover.Fail(ctx, errors.New(msg)); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func (c *Console) show(v session.View, err error) {
	switch {
	case errors.Is(err, session.ErrNotInside):
		fmt.Fprintln(c.out, "Cannot start: you are not inside the designated area")
	case err != nil:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
	c.printView(v)
}

func (c *Console) printView(v session.View) {
	state := "stopped"
	if v.Running {
		state = "running"
	}
	fmt.Fprintf(c.out, "Session:  %s (%s)\n", v.SessionID, v.Lifecycle)
	fmt.Fprintf(c.out, "Timer:    %s %s\n", v.Elapsed, state)
	fmt.Fprintf(c.out, "Area:     %s\n", v.Containment)
	if v.Target != nil {
		fmt.Fprintf(c.out, "Target:   %s (radius %.1f m)\n", v.Target.Center, v.Target.RadiusMeters)
	}
	if v.Position != nil {
		fmt.Fprintf(c.out, "Position: %s (%.1f m away)\n", v.Position, v.DistanceMeters)
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `Commands:
  start            Start the timer (only inside the area)
  stop             Stop and reset the timer
  toggle, t        Start or stop
  status, s        Show timer and position
  move <lat> <lon> Report a position (feed source only)
  fail [message]   Report a position provider error (feed source only)
  help, ?          Show this help
  quit, q          Exit`)
}
