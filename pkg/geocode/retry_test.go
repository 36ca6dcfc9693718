package geocode_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geocode"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geocode/mocks"
)

var office = geo.GeoPoint{Latitude: 30.7046, Longitude: 76.7179}

func TestPolicyDelay(t *testing.T) {
	tests := []struct {
		name   string
		policy geocode.Policy
		want   []time.Duration
	}{
		{
			name:   "Fixed",
			policy: geocode.Policy{Mode: geocode.BackoffFixed, Initial: 100 * time.Millisecond, Max: time.Second},
			want:   []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond},
		},
		{
			name:   "Linear",
			policy: geocode.Policy{Mode: geocode.BackoffLinear, Initial: 100 * time.Millisecond, Max: 250 * time.Millisecond},
			want:   []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 250 * time.Millisecond},
		},
		{
			name:   "Exponential",
			policy: geocode.Policy{Mode: geocode.BackoffExponential, Initial: 50 * time.Millisecond, Max: 160 * time.Millisecond},
			want:   []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 160 * time.Millisecond},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, want := range tt.want {
				assert.Equal(t, want, tt.policy.Delay(i+1), "retry %d", i+1)
			}
			assert.Equal(t, time.Duration(0), tt.policy.Delay(0))
		})
	}

	exp := geocode.Policy{Mode: geocode.BackoffExponential, Initial: time.Second, Max: time.Minute}
	assert.Equal(t, time.Minute, exp.Delay(100))
}

func TestPolicyDelayNeverOverflows(t *testing.T) {
	exp := geocode.Policy{Mode: geocode.BackoffExponential, Initial: 10 * time.Second, Max: time.Minute}
	lin := geocode.Policy{Mode: geocode.BackoffLinear, Initial: time.Hour, Max: 2 * time.Hour}
	uncapped := geocode.Policy{Mode: geocode.BackoffExponential, Initial: time.Second}

	for _, n := range []int{5, 30, 31, 32, 33, 63, 64, 1000} {
		assert.Equal(t, time.Minute, exp.Delay(n), "exponential retry %d", n)
		assert.Positive(t, uncapped.Delay(n), "uncapped retry %d", n)
	}
	assert.Equal(t, 2*time.Hour, lin.Delay(math.MaxInt32))
	assert.Equal(t, 2*time.Hour, lin.Delay(math.MaxInt64))
}

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, geocode.DefaultPolicy().Validate())
	assert.ErrorIs(t, geocode.Policy{Mode: "random"}.Validate(), geocode.ErrInvalidPolicy)
	assert.ErrorIs(t, geocode.Policy{Mode: geocode.BackoffFixed, MaxRetries: -1}.Validate(), geocode.ErrInvalidPolicy)
	assert.ErrorIs(t, geocode.Policy{Mode: geocode.BackoffFixed, MaxRetries: 2}.Validate(), geocode.ErrInvalidPolicy)
}

func TestRetryingSucceedsAfterTransientFailure(t *testing.T) {
	inner := mocks.NewMockGeocoder(t)
	inner.EXPECT().Resolve(mock.Anything, "office").Return(geo.GeoPoint{}, geocode.ErrUnavailable).Once()
	inner.EXPECT().Resolve(mock.Anything, "office").Return(office, nil).Once()

	clock := clockwork.NewFakeClock()
	policy := geocode.Policy{Mode: geocode.BackoffFixed, Initial: time.Second, Max: time.Second, MaxRetries: 3}
	g, err := geocode.NewRetrying(inner, policy, clock, nil)
	require.NoError(t, err)

	type result struct {
		p   geo.GeoPoint
		err error
	}
	done := make(chan result, 1)
	go func() {
		p, err := g.Resolve(context.Background(), "office")
		done <- result{p, err}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, office, r.p)
	case <-time.After(time.Second):
		t.Fatal("resolve did not finish")
	}
}

func TestRetryingDoesNotRetryPermanentErrors(t *testing.T) {
	inner := mocks.NewMockGeocoder(t)
	inner.EXPECT().Resolve(mock.Anything, "nowhere").
		Return(geo.GeoPoint{}, fmt.Errorf("%w for nowhere", geocode.ErrNoResults)).Once()

	policy := geocode.Policy{Mode: geocode.BackoffFixed, Initial: time.Second, Max: time.Second, MaxRetries: 3}
	g, err := geocode.NewRetrying(inner, policy, clockwork.NewFakeClock(), nil)
	require.NoError(t, err)

	_, err = g.Resolve(context.Background(), "nowhere")
	assert.ErrorIs(t, err, geocode.ErrNoResults)
}

func TestRetryingDefaultPolicySingleCall(t *testing.T) {
	inner := mocks.NewMockGeocoder(t)
	inner.EXPECT().Resolve(mock.Anything, "office").Return(geo.GeoPoint{}, geocode.ErrUnavailable).Once()

	g, err := geocode.NewRetrying(inner, geocode.DefaultPolicy(), nil, nil)
	require.NoError(t, err)

	_, err = g.Resolve(context.Background(), "office")
	assert.ErrorIs(t, err, geocode.ErrUnavailable)
}

func TestRetryingHonorsContext(t *testing.T) {
	inner := mocks.NewMockGeocoder(t)
	inner.EXPECT().Resolve(mock.Anything, "office").Return(geo.GeoPoint{}, geocode.ErrUnavailable).Once()

	policy := geocode.Policy{Mode: geocode.BackoffFixed, Initial: time.Hour, Max: time.Hour, MaxRetries: 5}
	g, err := geocode.NewRetrying(inner, policy, clockwork.NewFakeClock(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = g.Resolve(ctx, "office")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
