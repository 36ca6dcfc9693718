package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTickerRejectsInvalidInterval(t *testing.T) {
	_, err := NewTicker(clockwork.NewFakeClock(), 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTicker(clockwork.NewFakeClock(), -time.Second)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTickerFiresOncePerInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tk, err := NewTicker(clock, DefaultInterval)
	require.NoError(t, err)
	defer tk.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	// Nothing before the first interval has passed.
	clock.Advance(999 * time.Millisecond)
	select {
	case <-tk.C():
		t.Fatal("tick delivered before one interval elapsed")
	default:
	}

	clock.Advance(time.Millisecond)
	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatal("expected tick after one interval")
	}
}

func TestTickerStopIdempotent(t *testing.T) {
	tk, err := NewTicker(clockwork.NewFakeClock(), DefaultInterval)
	require.NoError(t, err)

	assert.False(t, tk.Stopped())
	assert.NotNil(t, tk.C())

	tk.Stop()
	tk.Stop()

	assert.True(t, tk.Stopped())
	assert.Nil(t, tk.C())
}

func TestTickerNoTickAfterStop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tk, err := NewTicker(clock, DefaultInterval)
	require.NoError(t, err)

	tk.Stop()
	clock.Advance(5 * time.Second)

	select {
	case <-tk.C():
		t.Fatal("stopped ticker delivered a tick")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestNilTicker(t *testing.T) {
	var tk *Ticker
	assert.Nil(t, tk.C())
	assert.True(t, tk.Stopped())
	tk.Stop()
}
