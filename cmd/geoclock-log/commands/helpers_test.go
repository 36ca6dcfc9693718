package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/eventlog"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

const (
	sessionA = "aaaaaaaa-1111-2222-3333-444444444444"
	sessionB = "bbbbbbbb-1111-2222-3333-444444444444"
)

// sampleEvents is a session that starts, works 90 seconds, leaves the area,
// restarts and is stopped by the user after 30 seconds.
func sampleEvents() []eventlog.Event {
	at := func(s int) time.Time { return t0.Add(time.Duration(s) * time.Second) }
	return []eventlog.Event{
		{Timestamp: at(0), SessionID: sessionA, Category: eventlog.CategoryLifecycle,
			Lifecycle: &eventlog.LifecycleEvent{OldState: "AWAITING_PERMISSION", NewState: "WATCHING"}},
		{Timestamp: at(1), SessionID: sessionA, Category: eventlog.CategoryContainment,
			Containment: &eventlog.ContainmentEvent{Old: "UNKNOWN", New: "INSIDE"}},
		{Timestamp: at(2), SessionID: sessionA, Category: eventlog.CategoryTimer,
			Timer: &eventlog.TimerEvent{From: "STOPPED", To: "RUNNING", Reason: "USER_START"}},
		{Timestamp: at(92), SessionID: sessionA, Category: eventlog.CategoryTimer,
			Timer: &eventlog.TimerEvent{From: "RUNNING", To: "STOPPED", Reason: "EXITED_AREA", ElapsedSeconds: 90}},
		{Timestamp: at(92), SessionID: sessionA, Category: eventlog.CategoryNotice,
			Notice: &eventlog.NoticeEvent{Kind: "EXITED_AREA", Message: "You are outside the designated area!"}},
		{Timestamp: at(100), SessionID: sessionA, Category: eventlog.CategoryTimer,
			Timer: &eventlog.TimerEvent{From: "STOPPED", To: "RUNNING", Reason: "USER_START"}},
		{Timestamp: at(130), SessionID: sessionA, Category: eventlog.CategoryTimer,
			Timer: &eventlog.TimerEvent{From: "RUNNING", To: "STOPPED", Reason: "USER_STOP", ElapsedSeconds: 30}},
		{Timestamp: at(140), SessionID: sessionB, Category: eventlog.CategoryError,
			Error: &eventlog.ErrorEvent{Source: "geocode", Message: "no geocoding results"}},
	}
}

func writeLog(t *testing.T, events []eventlog.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.gclog")
	fl, err := eventlog.NewFileLogger(path)
	require.NoError(t, err)
	for _, e := range events {
		fl.Log(e)
	}
	require.NoError(t, fl.Close())
	return path
}
