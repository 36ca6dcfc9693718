// Package push registers the device for remote notifications.
//
// Registration is independent of the work timer: failures are reported to
// the caller and logged, and never affect a running session.
package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Push errors.
var (
	ErrNotAuthorized = errors.New("push notifications not authorized")
	ErrNotRegistered = errors.New("device not registered for remote messages")
)

// AuthStatus is the notification authorization state.
type AuthStatus uint8

const (
	NotDetermined AuthStatus = iota
	Denied
	Authorized
	Provisional
)

// String returns the status name.
func (s AuthStatus) String() string {
	switch s {
	case NotDetermined:
		return "NOT_DETERMINED"
	case Denied:
		return "DENIED"
	case Authorized:
		return "AUTHORIZED"
	case Provisional:
		return "PROVISIONAL"
	default:
		return "UNKNOWN"
	}
}

// Enabled reports whether notifications may be delivered.
func (s AuthStatus) Enabled() bool {
	return s == Authorized || s == Provisional
}

// Registrar is the platform messaging API.
type Registrar interface {
	RequestPermission(ctx context.Context) (AuthStatus, error)
	RegisterDevice(ctx context.Context) error
	Token(ctx context.Context) (string, error)
}

// Registration is the result of a successful Register call.
type Registration struct {
	Status AuthStatus
	Token  string
}

// Register asks for permission, registers the device and fetches its token.
// A nil logger disables logging.
func Register(ctx context.Context, r Registrar, logger *slog.Logger) (Registration, error) {
	status, err := r.RequestPermission(ctx)
	if err != nil {
		logWarn(ctx, logger, "push permission request failed", err)
		return Registration{}, fmt.Errorf("request permission: %w", err)
	}
	if !status.Enabled() {
		if logger != nil {
			logger.InfoContext(ctx, "push notifications disabled", "status", status.String())
		}
		return Registration{Status: status}, ErrNotAuthorized
	}

	if err := r.RegisterDevice(ctx); err != nil {
		logWarn(ctx, logger, "push device registration failed", err)
		return Registration{Status: status}, fmt.Errorf("register device: %w", err)
	}

	token, err := r.Token(ctx)
	if err != nil {
		logWarn(ctx, logger, "push token fetch failed", err)
		return Registration{Status: status}, fmt.Errorf("fetch token: %w", err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "push registration complete", "status", status.String(), "token", token)
	}
	return Registration{Status: status, Token: token}, nil
}

func logWarn(ctx context.Context, logger *slog.Logger, msg string, err error) {
	if logger != nil {
		logger.WarnContext(ctx, msg, "error", err)
	}
}

// Local is an in-process Registrar for hosts without a messaging service.
// It grants the configured status and issues a random installation token once
// the device is registered.
type Local struct {
	status AuthStatus

	mu    sync.Mutex
	token string
}

// NewLocal creates a Local registrar that answers permission requests with status.
func NewLocal(status AuthStatus) *Local {
	return &Local{status: status}
}

// RequestPermission returns the configured status.
func (l *Local) RequestPermission(ctx context.Context) (AuthStatus, error) {
	if err := ctx.Err(); err != nil {
		return NotDetermined, err
	}
	return l.status, nil
}

// RegisterDevice issues the installation token. Repeated calls keep it.
func (l *Local) RegisterDevice(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !l.status.Enabled() {
		return ErrNotAuthorized
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.token == "" {
		l.token = uuid.New().String()
	}
	return nil
}

// Token returns the installation token.
func (l *Local) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.token == "" {
		return "", ErrNotRegistered
	}
	return l.token, nil
}

var _ Registrar = (*Local)(nil)
