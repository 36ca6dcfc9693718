package eventlog

import (
	"strings"
	"time"
)

// Event is one entry of the session trace.
// Exactly one payload pointer is set, matching Category.
type Event struct {
	Timestamp time.Time `cbor:"1,keyasint"`
	SessionID string    `cbor:"2,keyasint"`
	Category  Category  `cbor:"3,keyasint"`

	Lifecycle   *LifecycleEvent   `cbor:"10,keyasint,omitempty"`
	Timer       *TimerEvent       `cbor:"11,keyasint,omitempty"`
	Containment *ContainmentEvent `cbor:"12,keyasint,omitempty"`
	Notice      *NoticeEvent      `cbor:"13,keyasint,omitempty"`
	Error       *ErrorEvent       `cbor:"14,keyasint,omitempty"`
}

// Category classifies an event.
type Category uint8

const (
	CategoryLifecycle   Category = 0
	CategoryTimer       Category = 1
	CategoryContainment Category = 2
	CategoryNotice      Category = 3
	CategoryError       Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryTimer:
		return "TIMER"
	case CategoryContainment:
		return "CONTAINMENT"
	case CategoryNotice:
		return "NOTICE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name, ignoring case.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryLifecycle; c <= CategoryError; c++ {
		if strings.EqualFold(s, c.String()) {
			return c, true
		}
	}
	return 0, false
}

// LifecycleEvent records a session lifecycle change.
type LifecycleEvent struct {
	OldState string `cbor:"1,keyasint,omitempty"`
	NewState string `cbor:"2,keyasint"`
}

// TimerEvent records a timer state transition.
type TimerEvent struct {
	From   string `cbor:"1,keyasint"`
	To     string `cbor:"2,keyasint"`
	Reason string `cbor:"3,keyasint,omitempty"`

	// ElapsedSeconds is the elapsed time right before the transition.
	ElapsedSeconds uint64 `cbor:"4,keyasint"`
}

// ContainmentEvent records a change of the Inside/Outside state.
type ContainmentEvent struct {
	Old string `cbor:"1,keyasint"`
	New string `cbor:"2,keyasint"`
}

// NoticeEvent records a user-visible notice.
type NoticeEvent struct {
	Kind    string `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint,omitempty"`
}

// ErrorEvent records a failure reported by a collaborator.
type ErrorEvent struct {
	Source  string `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`
}
