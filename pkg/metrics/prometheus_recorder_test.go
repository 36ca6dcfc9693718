package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCounters(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncTick()
	pr.IncTick()
	pr.IncTransition("USER_START")
	pr.IncTransition("EXITED_AREA")
	pr.IncTransition("EXITED_AREA")
	pr.IncAreaExit()
	pr.IncRejectedStart()
	pr.IncPositionError()

	assert.Equal(t, 2.0, testutil.ToFloat64(pr.ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.transitions.WithLabelValues("USER_START")))
	assert.Equal(t, 2.0, testutil.ToFloat64(pr.transitions.WithLabelValues("EXITED_AREA")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.areaExits))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.rejectedStarts))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.positionErrors))
}

func TestPrometheusRecorderGauges(t *testing.T) {
	pr := NewPrometheusRecorder(nil)

	pr.SetRunning(true)
	pr.SetInside(true)
	pr.SetElapsed(42)
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.running))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.inside))
	assert.Equal(t, 42.0, testutil.ToFloat64(pr.elapsed))

	pr.SetRunning(false)
	pr.SetInside(false)
	pr.SetElapsed(0)
	assert.Zero(t, testutil.ToFloat64(pr.running))
	assert.Zero(t, testutil.ToFloat64(pr.inside))
	assert.Zero(t, testutil.ToFloat64(pr.elapsed))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncTick()
		pr.IncTransition("USER_STOP")
		pr.SetRunning(true)
	})
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncAreaExit()

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	n, err := testutil.GatherAndCount(reg, "geoclock_area_exits_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expected := `
# HELP geoclock_area_exits_total Forced stops caused by leaving the area
# TYPE geoclock_area_exits_total counter
geoclock_area_exits_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "geoclock_area_exits_total"))
}
