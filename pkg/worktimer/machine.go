package worktimer

import (
	"errors"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
)

// Timer errors.
var (
	ErrNotInside = errors.New("start rejected: device is not inside the area")
)

// State is the timer state.
type State uint8

const (
	// StateStopped means elapsed time is not accumulating.
	StateStopped State = iota

	// StateRunning means one second is added per tick.
	StateRunning
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "STOPPED"
	case StateRunning:
		return "RUNNING"
	default:
		return "UNKNOWN"
	}
}

// Reason explains why a transition happened.
type Reason uint8

const (
	// ReasonNone is used for outcomes without a state change.
	ReasonNone Reason = iota

	// ReasonUserStart is an explicit start request.
	ReasonUserStart

	// ReasonUserStop is an explicit stop request.
	ReasonUserStop

	// ReasonExitedArea is a forced stop after leaving the geofence.
	ReasonExitedArea
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "NONE"
	case ReasonUserStart:
		return "USER_START"
	case ReasonUserStop:
		return "USER_STOP"
	case ReasonExitedArea:
		return "EXITED_AREA"
	default:
		return "UNKNOWN"
	}
}

// Outcome describes the effect of one event on the machine.
type Outcome struct {
	From    State
	To      State
	Reason  Reason
	Elapsed uint64

	// Changed is true when the state or the elapsed counter changed.
	Changed bool
}

// Transitioned reports whether the state itself changed.
func (o Outcome) Transitioned() bool {
	return o.From != o.To
}

// Status is a read-only copy of the machine.
type Status struct {
	State          State
	ElapsedSeconds uint64
	Containment    geo.Containment
}

// Running reports whether the timer is running.
func (s Status) Running() bool {
	return s.State == StateRunning
}

// Machine is the timer state machine.
type Machine struct {
	state       State
	elapsed     uint64
	containment geo.Containment
}

// NewMachine returns a stopped machine with unknown containment.
func NewMachine() *Machine {
	return &Machine{
		state:       StateStopped,
		containment: geo.ContainmentUnknown,
	}
}

// Status returns the current state.
func (m *Machine) Status() Status {
	return Status{
		State:          m.state,
		ElapsedSeconds: m.elapsed,
		Containment:    m.containment,
	}
}

// Start handles a user start request.
// It is a no-op when already running and fails with ErrNotInside unless the
// latest containment is Inside.
func (m *Machine) Start() (Outcome, error) {
	if m.state == StateRunning {
		return m.unchanged(), nil
	}
	if m.containment != geo.ContainmentInside {
		return m.unchanged(), ErrNotInside
	}

	m.state = StateRunning
	m.elapsed = 0
	return Outcome{
		From:    StateStopped,
		To:      StateRunning,
		Reason:  ReasonUserStart,
		Elapsed: 0,
		Changed: true,
	}, nil
}

// Stop handles a user stop request. Stopping a stopped machine is a no-op.
func (m *Machine) Stop() Outcome {
	if m.state == StateStopped {
		return m.unchanged()
	}
	return m.halt(ReasonUserStop)
}

// Tick adds one elapsed second while running and is ignored otherwise.
func (m *Machine) Tick() Outcome {
	if m.state != StateRunning {
		return m.unchanged()
	}
	m.elapsed++
	return Outcome{
		From:    StateRunning,
		To:      StateRunning,
		Elapsed: m.elapsed,
		Changed: true,
	}
}

// Observe records the containment derived from a position sample.
// Leaving the area while running forces a stop and resets elapsed time.
func (m *Machine) Observe(c geo.Containment) Outcome {
	prev := m.containment
	m.containment = c

	if m.state == StateRunning && c != geo.ContainmentInside {
		return m.halt(ReasonExitedArea)
	}

	out := m.unchanged()
	out.Changed = prev != c
	return out
}

func (m *Machine) halt(reason Reason) Outcome {
	m.state = StateStopped
	m.elapsed = 0
	return Outcome{
		From:    StateRunning,
		To:      StateStopped,
		Reason:  reason,
		Elapsed: 0,
		Changed: true,
	}
}

func (m *Machine) unchanged() Outcome {
	return Outcome{
		From:    m.state,
		To:      m.state,
		Reason:  ReasonNone,
		Elapsed: m.elapsed,
	}
}
