package session

import (
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/worktimer"
)

// View is a read-only projection of the session for presentation.
type View struct {
	SessionID string
	Lifecycle Lifecycle

	Running        bool
	ElapsedSeconds uint64

	// Elapsed is ElapsedSeconds formatted as HH:MM:SS.
	Elapsed string

	Containment geo.Containment

	// Position and DistanceMeters describe the latest valid sample.
	// Position is nil until one arrives.
	Position       *geo.GeoPoint
	DistanceMeters float64

	// Target is nil until the address is resolved.
	Target *geo.Target
}

// ToggleEnabled reports whether the start/stop control should accept input:
// a running timer can always be stopped, a stopped one only started inside.
func (v View) ToggleEnabled() bool {
	if v.Lifecycle != LifecycleWatching {
		return false
	}
	return v.Running || v.Containment == geo.ContainmentInside
}

func (v View) clone() View {
	if v.Position != nil {
		p := *v.Position
		v.Position = &p
	}
	if v.Target != nil {
		t := *v.Target
		v.Target = &t
	}
	return v
}

func (v *View) applyStatus(st worktimer.Status) {
	v.Running = st.Running()
	v.ElapsedSeconds = st.ElapsedSeconds
	v.Elapsed = worktimer.FormatElapsed(st.ElapsedSeconds)
	v.Containment = st.Containment
}
