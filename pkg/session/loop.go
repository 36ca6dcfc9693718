package session

import (
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/eventlog"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/position"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/schedule"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/worktimer"
)

type intentKind uint8

const (
	intentStart intentKind = iota
	intentStop
	intentToggle
)

type intent struct {
	kind  intentKind
	reply chan reply
}

type reply struct {
	view View
	err  error
}

// loop is the only goroutine that touches the machine, the target and the ticker.
func (s *Session) loop(sub position.Subscription) {
	defer s.finish()
	defer sub.Cancel()
	defer s.shutdown()

	updates := sub.Updates()
	for {
		if s.ctx.Err() != nil {
			return
		}

		select {
		case <-s.ctx.Done():
			return
		case in := <-s.intents:
			s.handleIntent(in)
		case u := <-updates:
			s.handleUpdate(u)
		case <-s.ticker.C():
			s.handleTick()
		}
	}
}

func (s *Session) handleIntent(in intent) {
	before := s.machine.Status()

	var (
		out worktimer.Outcome
		err error
	)
	switch in.kind {
	case intentStart:
		out, err = s.machine.Start()
	case intentStop:
		out = s.machine.Stop()
	case intentToggle:
		if before.Running() {
			out = s.machine.Stop()
		} else {
			out, err = s.machine.Start()
		}
	}

	if err != nil {
		s.metrics.IncRejectedStart()
		s.debugLog("start rejected", "containment", before.Containment.String())
	}

	s.apply(out, before.ElapsedSeconds)
	if out.Changed {
		s.publish()
	}
	in.reply <- reply{view: s.Snapshot(), err: err}
}

func (s *Session) handleUpdate(u position.Update) {
	if u.Err != nil {
		s.metrics.IncPositionError()
		if s.logger != nil {
			s.logger.Warn("position update failed", "session", s.id, "error", u.Err)
		}
		s.recordError("position", u.Err)
		s.notify(Notice{Kind: NoticePositionError, Message: u.Err.Error(), Err: u.Err})
		return
	}
	if u.Sample == nil {
		return
	}

	res := geo.Evaluate(u.Sample.Point, s.target)
	c := res.Containment()
	before := s.machine.Status()
	out := s.machine.Observe(c)

	if before.Containment != c {
		s.metrics.SetInside(c == geo.ContainmentInside)
		s.record(eventlog.Event{
			Category: eventlog.CategoryContainment,
			Containment: &eventlog.ContainmentEvent{
				Old: before.Containment.String(),
				New: c.String(),
			},
		})
		s.debugLog("containment changed", "from", before.Containment.String(), "to", c.String(),
			"distance", res.DistanceMeters)
	}

	p := u.Sample.Point
	s.mu.Lock()
	s.view.Position = &p
	s.view.DistanceMeters = res.DistanceMeters
	s.mu.Unlock()

	s.apply(out, before.ElapsedSeconds)
	s.publish()

	if out.Reason == worktimer.ReasonExitedArea {
		s.metrics.IncAreaExit()
		s.notify(Notice{Kind: NoticeExitedArea, Message: ExitedAreaMessage})
	}
}

func (s *Session) handleTick() {
	out := s.machine.Tick()
	if !out.Changed {
		return
	}
	s.metrics.IncTick()
	s.metrics.SetElapsed(out.Elapsed)
	s.syncView()
	s.publish()
}

// apply keeps the ticker, trace and metrics in line with a machine outcome.
// elapsed is the counter value before the event.
func (s *Session) apply(out worktimer.Outcome, elapsed uint64) {
	if out.Transitioned() {
		switch out.To {
		case worktimer.StateRunning:
			s.startTicker()
		case worktimer.StateStopped:
			s.stopTicker()
		}

		s.record(eventlog.Event{
			Category: eventlog.CategoryTimer,
			Timer: &eventlog.TimerEvent{
				From:           out.From.String(),
				To:             out.To.String(),
				Reason:         out.Reason.String(),
				ElapsedSeconds: elapsed,
			},
		})
		s.metrics.IncTransition(out.Reason.String())
		s.metrics.SetRunning(out.To == worktimer.StateRunning)
		s.metrics.SetElapsed(out.Elapsed)
		s.debugLog("timer transition", "from", out.From.String(), "to", out.To.String(),
			"reason", out.Reason.String(), "elapsed", elapsed)
	}
	s.syncView()
}

func (s *Session) startTicker() {
	s.stopTicker()
	t, err := schedule.NewTicker(s.clock, s.cfg.TickInterval)
	if err != nil {
		// Unreachable with a validated Config.
		s.recordError("schedule", err)
		return
	}
	s.ticker = t
}

func (s *Session) stopTicker() {
	s.ticker.Stop()
	s.ticker = nil
}

// shutdown stops the timer without callbacks once the loop is told to exit.
func (s *Session) shutdown() {
	s.stopTicker()
	if s.machine.Status().Running() {
		s.machine.Stop()
		s.metrics.SetRunning(false)
		s.metrics.SetElapsed(0)
	}
	s.syncView()
}

func (s *Session) syncView() {
	st := s.machine.Status()
	s.mu.Lock()
	s.view.applyStatus(st)
	s.mu.Unlock()
}
