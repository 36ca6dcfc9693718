package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/eventlog"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/metrics"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/permission"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/schedule"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/worktimer"
)

// Session is one work timer session bound to a single geofence.
type Session struct {
	cfg     Config
	deps    Deps
	id      string
	clock   clockwork.Clock
	logger  *slog.Logger
	events  eventlog.Logger
	metrics metrics.Recorder

	// ctx lives until Close; the position subscription is bound to it.
	ctx    context.Context
	cancel context.CancelFunc

	intents    chan intent
	stopped    chan struct{}
	finishOnce sync.Once
	closeOnce  sync.Once

	mu       sync.RWMutex
	view     View
	onUpdate []func(View)
	onNotice []func(Notice)

	// Owned by the loop goroutine once it runs.
	machine *worktimer.Machine
	target  geo.Target
	ticker  *schedule.Ticker
}

// New creates an idle session.
func New(cfg Config, deps Deps) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	var events eventlog.Logger = eventlog.NoopLogger{}
	if cfg.EventLog != nil {
		events = cfg.EventLog
	}
	var rec metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics != nil {
		rec = cfg.Metrics
	}

	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New().String()

	return &Session{
		cfg:     cfg,
		deps:    deps,
		id:      id,
		clock:   clock,
		logger:  cfg.Logger,
		events:  events,
		metrics: rec,
		ctx:     ctx,
		cancel:  cancel,
		intents: make(chan intent),
		stopped: make(chan struct{}),
		view: View{
			SessionID: id,
			Lifecycle: LifecycleIdle,
			Elapsed:   worktimer.FormatElapsed(0),
		},
		machine: worktimer.NewMachine(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// OnUpdate registers a callback invoked after every state change.
// Callbacks run on the session goroutine and must not call back into the
// session's blocking methods.
func (s *Session) OnUpdate(fn func(View)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = append(s.onUpdate, fn)
}

// OnNotice registers a callback invoked for every notice.
func (s *Session) OnNotice(fn func(Notice)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onNotice = append(s.onNotice, fn)
}

// Snapshot returns the current view.
func (s *Session) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.clone()
}

// Done is closed once the session has stopped for good.
func (s *Session) Done() <-chan struct{} {
	return s.stopped
}

// Start runs setup and launches the event loop. ctx bounds setup only; the
// loop runs until Close.
//
// Setup resolves the address, asks for permission and subscribes to
// positions, in that order. A failure at any step leaves the session Failed
// and emits the matching notice.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.view.Lifecycle {
	case LifecycleIdle:
	case LifecycleClosed:
		s.mu.Unlock()
		return ErrNotActive
	default:
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.mu.Unlock()

	setupCtx, stop := context.WithCancel(ctx)
	defer stop()
	unregister := context.AfterFunc(s.ctx, stop)
	defer unregister()

	if !s.advance(LifecycleResolving) {
		return s.abort()
	}
	s.debugLog("resolving address", "address", s.cfg.Address)

	point, err := s.deps.Geocoder.Resolve(setupCtx, s.cfg.Address)
	var target geo.Target
	if err == nil {
		target, err = geo.NewTarget(point, s.cfg.RadiusMeters)
	}
	if err != nil {
		return s.fail(NoticeGeocodeFailed, "geocode", fmt.Errorf("%w: %w", ErrGeocodeFailed, err))
	}
	s.target = target
	s.mu.Lock()
	s.view.Target = &target
	s.mu.Unlock()
	s.debugLog("address resolved", "center", target.Center.String(), "radius", target.RadiusMeters)

	if !s.advance(LifecycleAwaitingPermission) {
		return s.abort()
	}
	status, err := s.deps.Permission.Request(setupCtx)
	switch {
	case err != nil:
		return s.fail(NoticePermissionDenied, "permission", fmt.Errorf("%w: %w", ErrPermissionDenied, err))
	case status != permission.Granted:
		return s.fail(NoticePermissionDenied, "permission", ErrPermissionDenied)
	}

	sub, err := s.deps.Positions.Watch(s.ctx, s.cfg.Watch)
	if err != nil {
		return s.fail(NoticePositionError, "position", fmt.Errorf("%w: %w", ErrWatchFailed, err))
	}

	if !s.advance(LifecycleWatching) {
		sub.Cancel()
		return s.abort()
	}
	s.debugLog("watching positions", "session", s.id)

	go s.loop(sub)
	return nil
}

// Run starts the session and blocks until ctx is done or the session is
// closed, then closes it.
func (s *Session) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-s.stopped:
	}
	s.Close()
	return nil
}

// Close stops the loop, the ticker and the position subscription, and waits
// until no callback is running. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		prev := s.view.Lifecycle
		s.view.Lifecycle = LifecycleClosed
		s.mu.Unlock()

		s.cancel()
		if prev == LifecycleIdle || prev == LifecycleFailed {
			s.finish()
		}
		<-s.stopped

		s.recordLifecycle(prev, LifecycleClosed)
		s.debugLog("session closed", "session", s.id)
	})
	return nil
}

// RequestStart asks the loop to start the timer. It fails with ErrNotInside
// unless the latest position is inside the area.
func (s *Session) RequestStart(ctx context.Context) (View, error) {
	return s.request(ctx, intentStart)
}

// RequestStop asks the loop to stop the timer and reset it.
func (s *Session) RequestStop(ctx context.Context) (View, error) {
	return s.request(ctx, intentStop)
}

// Toggle stops a running timer or starts a stopped one.
func (s *Session) Toggle(ctx context.Context) (View, error) {
	return s.request(ctx, intentToggle)
}

func (s *Session) request(ctx context.Context, kind intentKind) (View, error) {
	if s.Snapshot().Lifecycle != LifecycleWatching {
		return s.Snapshot(), ErrNotActive
	}

	in := intent{kind: kind, reply: make(chan reply, 1)}
	select {
	case s.intents <- in:
	case <-s.stopped:
		return s.Snapshot(), ErrNotActive
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}

	select {
	case r := <-in.reply:
		return r.view, r.err
	case <-s.stopped:
		return s.Snapshot(), ErrNotActive
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
}

// advance moves the lifecycle forward unless the session was closed meanwhile.
func (s *Session) advance(to Lifecycle) bool {
	s.mu.Lock()
	from := s.view.Lifecycle
	if from == LifecycleClosed {
		s.mu.Unlock()
		return false
	}
	s.view.Lifecycle = to
	s.mu.Unlock()

	s.recordLifecycle(from, to)
	s.publish()
	return true
}

func (s *Session) fail(kind NoticeKind, source string, err error) error {
	if s.ctx.Err() != nil {
		s.finish()
		return ErrNotActive
	}
	if s.logger != nil {
		s.logger.Warn("session setup failed", "session", s.id, "error", err)
	}
	s.recordError(source, err)

	if s.advance(LifecycleFailed) {
		s.notify(Notice{Kind: kind, Message: err.Error(), Err: err})
	}
	s.finish()
	return err
}

func (s *Session) abort() error {
	s.finish()
	return ErrNotActive
}

func (s *Session) finish() {
	s.finishOnce.Do(func() { close(s.stopped) })
}

func (s *Session) publish() {
	s.mu.RLock()
	v := s.view.clone()
	fns := append([]func(View){}, s.onUpdate...)
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (s *Session) notify(n Notice) {
	s.mu.RLock()
	fns := append([]func(Notice){}, s.onNotice...)
	s.mu.RUnlock()

	s.record(eventlog.Event{
		Category: eventlog.CategoryNotice,
		Notice:   &eventlog.NoticeEvent{Kind: n.Kind.String(), Message: n.Message},
	})
	for _, fn := range fns {
		fn(n)
	}
}

func (s *Session) record(ev eventlog.Event) {
	ev.Timestamp = s.clock.Now()
	ev.SessionID = s.id
	s.events.Log(ev)
}

func (s *Session) recordLifecycle(from, to Lifecycle) {
	s.record(eventlog.Event{
		Category:  eventlog.CategoryLifecycle,
		Lifecycle: &eventlog.LifecycleEvent{OldState: from.String(), NewState: to.String()},
	})
}

func (s *Session) recordError(source string, err error) {
	s.record(eventlog.Event{
		Category: eventlog.CategoryError,
		Error:    &eventlog.ErrorEvent{Source: source, Message: err.Error()},
	})
}

func (s *Session) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
