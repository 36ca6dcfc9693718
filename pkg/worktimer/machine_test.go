package worktimer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
)

func TestMachineInitialState(t *testing.T) {
	m := NewMachine()
	st := m.Status()

	assert.Equal(t, StateStopped, st.State)
	assert.Equal(t, uint64(0), st.ElapsedSeconds)
	assert.Equal(t, geo.ContainmentUnknown, st.Containment)
	assert.False(t, st.Running())
}

func TestMachineStartRequiresInside(t *testing.T) {
	tests := []struct {
		name        string
		containment geo.Containment
		wantErr     error
		wantState   State
	}{
		{"Unknown", geo.ContainmentUnknown, ErrNotInside, StateStopped},
		{"Outside", geo.ContainmentOutside, ErrNotInside, StateStopped},
		{"Inside", geo.ContainmentInside, nil, StateRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			if tt.containment != geo.ContainmentUnknown {
				m.Observe(tt.containment)
			}

			out, err := m.Start()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, out.Changed)
			} else {
				require.NoError(t, err)
				assert.Equal(t, ReasonUserStart, out.Reason)
				assert.True(t, out.Transitioned())
			}
			assert.Equal(t, tt.wantState, m.Status().State)
		})
	}
}

func TestMachineTicksWhileRunning(t *testing.T) {
	m := NewMachine()
	m.Observe(geo.ContainmentInside)
	_, err := m.Start()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		out := m.Tick()
		assert.Equal(t, uint64(i+1), out.Elapsed)
		assert.False(t, out.Transitioned())
	}
	assert.Equal(t, uint64(5), m.Status().ElapsedSeconds)
}

func TestMachineTickIgnoredWhenStopped(t *testing.T) {
	m := NewMachine()
	out := m.Tick()

	assert.False(t, out.Changed)
	assert.Equal(t, uint64(0), m.Status().ElapsedSeconds)
}

func TestMachineExitResetsAndDoesNotResume(t *testing.T) {
	m := NewMachine()
	m.Observe(geo.ContainmentInside)
	_, err := m.Start()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		m.Tick()
	}

	out := m.Observe(geo.ContainmentOutside)
	assert.Equal(t, StateRunning, out.From)
	assert.Equal(t, StateStopped, out.To)
	assert.Equal(t, ReasonExitedArea, out.Reason)
	assert.Equal(t, uint64(0), out.Elapsed)
	assert.Equal(t, uint64(0), m.Status().ElapsedSeconds)

	// Coming back inside must not restart the timer.
	out = m.Observe(geo.ContainmentInside)
	assert.False(t, out.Transitioned())
	assert.True(t, out.Changed)
	assert.Equal(t, StateStopped, m.Status().State)

	_, err = m.Start()
	require.NoError(t, err)
	assert.Equal(t, StateRunning, m.Status().State)
	assert.Equal(t, uint64(0), m.Status().ElapsedSeconds)
}

func TestMachineStayingInsideKeepsRunning(t *testing.T) {
	m := NewMachine()
	m.Observe(geo.ContainmentInside)
	_, _ = m.Start()
	m.Tick()

	out := m.Observe(geo.ContainmentInside)
	assert.False(t, out.Changed)
	assert.Equal(t, StateRunning, m.Status().State)
	assert.Equal(t, uint64(1), m.Status().ElapsedSeconds)
}

func TestMachineStopResets(t *testing.T) {
	m := NewMachine()
	m.Observe(geo.ContainmentInside)
	_, _ = m.Start()
	m.Tick()
	m.Tick()

	out := m.Stop()
	assert.Equal(t, ReasonUserStop, out.Reason)
	assert.Equal(t, StateStopped, m.Status().State)
	assert.Equal(t, uint64(0), m.Status().ElapsedSeconds)
}

func TestMachineStopIdempotent(t *testing.T) {
	m := NewMachine()
	m.Observe(geo.ContainmentInside)

	before := m.Status()
	out := m.Stop()
	assert.False(t, out.Changed)
	assert.Equal(t, before, m.Status())

	out = m.Stop()
	assert.False(t, out.Changed)
	assert.Equal(t, before, m.Status())
}

func TestMachineStartWhileRunningIsNoop(t *testing.T) {
	m := NewMachine()
	m.Observe(geo.ContainmentInside)
	_, _ = m.Start()
	m.Tick()

	out, err := m.Start()
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, uint64(1), m.Status().ElapsedSeconds)
}

func TestMachineRunningImpliesInside(t *testing.T) {
	events := []func(m *Machine){
		func(m *Machine) { m.Observe(geo.ContainmentInside) },
		func(m *Machine) { _, _ = m.Start() },
		func(m *Machine) { m.Tick() },
		func(m *Machine) { m.Observe(geo.ContainmentOutside) },
		func(m *Machine) { _, _ = m.Start() },
		func(m *Machine) { m.Tick() },
		func(m *Machine) { m.Observe(geo.ContainmentInside) },
		func(m *Machine) { m.Tick() },
		func(m *Machine) { _, _ = m.Start() },
		func(m *Machine) { m.Stop() },
	}

	m := NewMachine()
	for i, ev := range events {
		ev(m)
		st := m.Status()
		if st.Running() {
			assert.Equal(t, geo.ContainmentInside, st.Containment, "event %d", i)
		}
	}
}

func TestStateAndReasonStrings(t *testing.T) {
	assert.Equal(t, "STOPPED", StateStopped.String())
	assert.Equal(t, "RUNNING", StateRunning.String())
	assert.Equal(t, "UNKNOWN", State(7).String())
	assert.Equal(t, "EXITED_AREA", ReasonExitedArea.String())
	assert.Equal(t, "USER_STOP", ReasonUserStop.String())
}
