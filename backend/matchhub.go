// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backend

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// tickPeriod is the countdown cadence.
const tickPeriod = time.Second

// ErrMatchClosed is returned by MatchHub calls made after Close.
var ErrMatchClosed = errors.New("match closed")

// Ticker is the periodic source driving the countdown.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the TickerFunc backed by time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// MatchHubOptions configures a MatchHub.
type MatchHubOptions struct {
	LocalTeamName   string
	VisitorTeamName string
	Minutes         int

	// NewTicker defaults to NewTimeTicker.
	NewTicker TickerFunc

	// OnTick and OnExpire run on the hub goroutine after a tick is applied.
	// They must not call back into the hub.
	OnTick   func(MatchState)
	OnExpire func(MatchState)

	Debug bool
}

type matchRequest struct {
	name  string
	apply func(*MatchState)
	reply chan MatchState
}

// MatchHub owns a MatchState and serializes every change to it on a single
// goroutine, the countdown included. The ticker only exists while the clock
// is running with time left, and is stopped as soon as that stops being true.
type MatchHub struct {
	requests chan matchRequest
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	// Owned by the run goroutine.
	state  *MatchState
	ticker Ticker

	newTicker TickerFunc
	onTick    func(MatchState)
	onExpire  func(MatchState)
	debug     bool
}

// NewMatchHub creates a hub with a fresh match and starts its loop.
func NewMatchHub(opts MatchHubOptions) *MatchHub {
	newTicker := opts.NewTicker
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	h := &MatchHub{
		requests:  make(chan matchRequest),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		state:     NewMatchState(opts.LocalTeamName, opts.VisitorTeamName, opts.Minutes),
		newTicker: newTicker,
		onTick:    opts.OnTick,
		onExpire:  opts.OnExpire,
		debug:     opts.Debug,
	}
	go h.run()
	return h
}

func (h *MatchHub) run() {
	defer close(h.done)
	defer h.stopTicker()

	for {
		var tickC <-chan time.Time
		if h.ticker != nil {
			tickC = h.ticker.C()
		}

		select {
		case req := <-h.requests:
			req.apply(h.state)
			h.syncTicker()
			if h.debug {
				log.Printf("MatchHub: %s (remaining=%d running=%v events=%d)", req.name, h.state.RemainingSeconds, h.state.TimerRunning, len(h.state.History))
			}
			req.reply <- h.state.Clone()
		case <-tickC:
			if !h.state.Tick() {
				h.syncTicker()
				continue
			}
			h.syncTicker()
			if h.onTick != nil {
				h.onTick(h.state.Clone())
			}
			if h.state.RemainingSeconds == 0 {
				log.Printf("MatchHub: clock expired at %s", FormatClock(h.state.ElapsedSeconds()))
				if h.onExpire != nil {
					h.onExpire(h.state.Clone())
				}
			}
		case <-h.stop:
			return
		}
	}
}

// syncTicker starts or stops the ticker to match the clock state.
func (h *MatchHub) syncTicker() {
	want := h.state.TimerRunning && h.state.RemainingSeconds > 0
	switch {
	case want && h.ticker == nil:
		h.ticker = h.newTicker(tickPeriod)
	case !want && h.ticker != nil:
		h.stopTicker()
	}
}

func (h *MatchHub) stopTicker() {
	if h.ticker != nil {
		h.ticker.Stop()
		h.ticker = nil
	}
}

// Close stops the loop and its ticker. No tick is applied once Close returns.
func (h *MatchHub) Close() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
	<-h.done
}

func (h *MatchHub) do(ctx context.Context, name string, fn func(*MatchState)) (MatchState, error) {
	req := matchRequest{name: name, apply: fn, reply: make(chan MatchState, 1)}
	select {
	case h.requests <- req:
	case <-h.stop:
		return MatchState{}, ErrMatchClosed
	case <-ctx.Done():
		return MatchState{}, ctx.Err()
	}
	// Once received, the request is always answered.
	select {
	case s := <-req.reply:
		return s, nil
	case <-ctx.Done():
		return MatchState{}, ctx.Err()
	}
}

// Snapshot returns a copy of the current match.
func (h *MatchHub) Snapshot(ctx context.Context) (MatchState, error) {
	return h.do(ctx, "snapshot", func(*MatchState) {})
}

// SetTeamName renames one side.
func (h *MatchHub) SetTeamName(ctx context.Context, team, name string) (MatchState, error) {
	return h.do(ctx, "rename", func(m *MatchState) {
		if team == SideLocal {
			m.LocalTeamName = name
		} else {
			m.VisitorTeamName = name
		}
	})
}

// ConfigureDuration changes the match length without touching the clock.
func (h *MatchHub) ConfigureDuration(ctx context.Context, minutes int) (MatchState, error) {
	return h.do(ctx, "duration", func(m *MatchState) {
		m.ConfigureDuration(minutes)
	})
}

// ToggleTimer starts or pauses the countdown.
func (h *MatchHub) ToggleTimer(ctx context.Context) (MatchState, error) {
	return h.do(ctx, "toggle", func(m *MatchState) {
		m.ToggleTimer()
	})
}

// ResetTimer stops the countdown and refills the clock.
func (h *MatchHub) ResetTimer(ctx context.Context) (MatchState, error) {
	return h.do(ctx, "reset", func(m *MatchState) {
		m.ResetTimer()
	})
}

// RecordEvent appends a scoring event.
func (h *MatchHub) RecordEvent(ctx context.Context, team string, points int, eventKind string) (ScoreEvent, MatchState, error) {
	var ev ScoreEvent
	s, err := h.do(ctx, "record", func(m *MatchState) {
		ev = m.RecordEvent(team, points, eventKind)
	})
	return ev, s, err
}

// Score records a scoring action from the table.
func (h *MatchHub) Score(ctx context.Context, team string, action ScoringAction) (ScoreEvent, MatchState, error) {
	return h.RecordEvent(ctx, team, action.Points, action.Kind)
}

// UndoLast reverts the most recent event. ok is false if the history was
// empty.
func (h *MatchHub) UndoLast(ctx context.Context) (ev ScoreEvent, ok bool, s MatchState, err error) {
	s, err = h.do(ctx, "undo", func(m *MatchState) {
		ev, ok = m.UndoLast()
	})
	return ev, ok, s, err
}

// Summary renders the current match for sharing.
func (h *MatchHub) Summary(ctx context.Context) (string, error) {
	s, err := h.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return s.FormatSummary(), nil
}
