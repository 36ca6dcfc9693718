package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/eventlog"
)

func TestFormatTimerEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[3])
	out := buf.String()

	assert.Contains(t, out, "2026-03-02T09:01:32.000Z")
	assert.Contains(t, out, "[aaaaaaaa]")
	assert.Contains(t, out, "TIMER")
	assert.Contains(t, out, "RUNNING -> STOPPED (EXITED_AREA) after 00:01:30")
}

func TestFormatNoticeAndError(t *testing.T) {
	events := sampleEvents()

	var buf bytes.Buffer
	formatEvent(&buf, events[4])
	assert.Contains(t, buf.String(), `EXITED_AREA: "You are outside the designated area!"`)

	buf.Reset()
	formatEvent(&buf, events[7])
	assert.Contains(t, buf.String(), "geocode: no geocoding results")

	buf.Reset()
	formatEvent(&buf, eventlog.Event{SessionID: "x"})
	assert.Contains(t, buf.String(), "(empty)")
}

func TestRunView(t *testing.T) {
	path := writeLog(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunView(path, ViewFilter{}, &buf))
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 8)

	timer := eventlog.CategoryTimer
	buf.Reset()
	require.NoError(t, RunView(path, ViewFilter{SessionID: sessionA, Category: &timer}, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	for _, l := range lines {
		assert.Contains(t, l, "TIMER")
	}
}

func TestRunViewMissingFile(t *testing.T) {
	err := RunView(filepath.Join(t.TempDir(), "nope.gclog"), ViewFilter{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestParseCategoryFlag(t *testing.T) {
	c, err := ParseCategoryFlag("containment")
	require.NoError(t, err)
	assert.Equal(t, eventlog.CategoryContainment, c)

	_, err = ParseCategoryFlag("wire")
	assert.Error(t, err)
}
