// Package permission models the OS location permission prompt.
//
// A session queries its Gate once before subscribing to positions. When the
// gate denies access, positions are never observed and the timer can never
// start.
package permission

import (
	"context"
	"errors"
)

// ErrPlatform wraps failures of the platform permission API itself.
var ErrPlatform = errors.New("permission request failed")

// Status is the outcome of a permission request.
type Status uint8

const (
	// Denied means location access was refused.
	Denied Status = iota

	// Granted means location access was allowed.
	Granted
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Granted:
		return "GRANTED"
	case Denied:
		return "DENIED"
	default:
		return "UNKNOWN"
	}
}

// Gate requests location permission.
type Gate interface {
	Request(ctx context.Context) (Status, error)
}

// Func adapts a function to the Gate interface.
type Func func(ctx context.Context) (Status, error)

// Request calls f.
func (f Func) Request(ctx context.Context) (Status, error) {
	return f(ctx)
}

// Static always answers with a fixed status.
type Static Status

// Request returns the fixed status.
func (s Static) Request(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Denied, err
	}
	return Status(s), nil
}

// Scope is one platform permission.
type Scope string

// Common location scopes.
const (
	ScopeFineLocation       Scope = "fine_location"
	ScopeCoarseLocation     Scope = "coarse_location"
	ScopeBackgroundLocation Scope = "background_location"
)

// Prompter asks the platform for a single scope.
type Prompter interface {
	Prompt(ctx context.Context, scope Scope) (Status, error)
}

// Answers is a Prompter with fixed per-scope answers. Unlisted scopes are granted.
type Answers map[Scope]Status

// Prompt returns the recorded answer for scope.
func (a Answers) Prompt(ctx context.Context, scope Scope) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Denied, err
	}
	if st, ok := a[scope]; ok {
		return st, nil
	}
	return Granted, nil
}

// Scopes grants only when every listed scope is granted. Scopes are
// requested in order and the first refusal stops the sequence.
type Scopes struct {
	Prompter Prompter
	Required []Scope
}

// Request prompts for each required scope.
func (g Scopes) Request(ctx context.Context) (Status, error) {
	for _, scope := range g.Required {
		st, err := g.Prompter.Prompt(ctx, scope)
		if err != nil {
			return Denied, errors.Join(ErrPlatform, err)
		}
		if st != Granted {
			return Denied, nil
		}
	}
	return Granted, nil
}

// AndroidScopes returns the scopes a foreground-and-background Android
// client asks for. Background location is only requested on API level 29+.
func AndroidScopes(apiLevel int) []Scope {
	scopes := []Scope{ScopeFineLocation, ScopeCoarseLocation}
	if apiLevel >= 29 {
		scopes = append(scopes, ScopeBackgroundLocation)
	}
	return scopes
}

var (
	_ Gate = Func(nil)
	_ Gate = Static(Granted)
	_ Gate = Scopes{}

	_ Prompter = Answers(nil)
)
