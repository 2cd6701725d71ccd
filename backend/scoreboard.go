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
	"slices"

	"github.com/google/uuid"
)

// ScoreEvent is a single entry of the match history. It is never modified
// after creation.
type ScoreEvent struct {
	ID          string `json:"id"`
	Team        string `json:"team"` // "local" or "visitor"
	Points      int    `json:"points"`
	EventKind   string `json:"eventKind"`
	ElapsedTime string `json:"elapsedTime"` // M:SS
}

// MatchState is the scoreboard of one match: team names, scores, the
// countdown clock and the event history.
//
// LocalScore and VisitorScore always equal the sum of Points in History for
// the matching side. Every method below preserves that.
type MatchState struct {
	LocalTeamName        string       `json:"localTeamName"`
	VisitorTeamName      string       `json:"visitorTeamName"`
	LocalScore           int          `json:"localScore"`
	VisitorScore         int          `json:"visitorScore"`
	MatchDurationSeconds int          `json:"matchDurationSeconds"`
	RemainingSeconds     int          `json:"remainingSeconds"`
	TimerRunning         bool         `json:"timerRunning"`
	History              []ScoreEvent `json:"history"`
}

// NewMatchState returns a stopped match with a full clock.
func NewMatchState(localName, visitorName string, minutes int) *MatchState {
	if localName == "" {
		localName = DefaultLocalTeamName
	}
	if visitorName == "" {
		visitorName = DefaultVisitorTeamName
	}
	if minutes <= 0 {
		minutes = DefaultMatchMinutes
	}
	return &MatchState{
		LocalTeamName:        localName,
		VisitorTeamName:      visitorName,
		MatchDurationSeconds: minutes * 60,
		RemainingSeconds:     minutes * 60,
		History:              make([]ScoreEvent, 0),
	}
}

// Clone returns a deep copy, safe to hand out of the hub goroutine.
func (m *MatchState) Clone() MatchState {
	c := *m
	c.History = slices.Clone(m.History)
	if c.History == nil {
		c.History = make([]ScoreEvent, 0)
	}
	return c
}

// ConfigureDuration sets the match length. The clock is left alone: callers
// that want the new length on the clock must call ResetTimer.
func (m *MatchState) ConfigureDuration(minutes int) {
	m.MatchDurationSeconds = minutes * 60
}

// ToggleTimer starts or pauses the clock.
func (m *MatchState) ToggleTimer() {
	m.TimerRunning = !m.TimerRunning
}

// Tick advances the countdown by one second. It reports whether the clock
// moved; a paused or expired clock does not.
func (m *MatchState) Tick() bool {
	if !m.TimerRunning || m.RemainingSeconds <= 0 {
		return false
	}
	m.RemainingSeconds--
	return true
}

// ResetTimer stops the clock and refills it to the configured duration.
func (m *MatchState) ResetTimer() {
	m.RemainingSeconds = m.MatchDurationSeconds
	m.TimerRunning = false
}

// TimerState derives the clock state from the remaining time and run flag.
func (m *MatchState) TimerState() string {
	switch {
	case m.RemainingSeconds <= 0:
		return TimerExpired
	case m.TimerRunning:
		return TimerRunning
	default:
		return TimerStopped
	}
}

// ElapsedSeconds is the match time played so far.
func (m *MatchState) ElapsedSeconds() int {
	return m.MatchDurationSeconds - m.RemainingSeconds
}

// RecordEvent appends a scoring event stamped with the current match time
// and credits its points. Inputs come from the fixed scoring table and are
// not checked here.
func (m *MatchState) RecordEvent(team string, points int, eventKind string) ScoreEvent {
	ev := ScoreEvent{
		ID:          uuid.NewString(),
		Team:        team,
		Points:      points,
		EventKind:   eventKind,
		ElapsedTime: FormatClock(m.ElapsedSeconds()),
	}
	m.History = append(m.History, ev)
	m.addPoints(team, points)
	return ev
}

// Score records a scoring action from the table for one side.
func (m *MatchState) Score(team string, action ScoringAction) ScoreEvent {
	return m.RecordEvent(team, action.Points, action.Kind)
}

// UndoLast removes the most recent event and takes its points back.
// It returns false, leaving the state untouched, when there is nothing to undo.
func (m *MatchState) UndoLast() (ScoreEvent, bool) {
	if len(m.History) == 0 {
		return ScoreEvent{}, false
	}
	last := m.History[len(m.History)-1]
	m.History = m.History[:len(m.History)-1]
	m.addPoints(last.Team, -last.Points)
	return last, true
}

// TeamName returns the display name of a side.
func (m *MatchState) TeamName(team string) string {
	if team == SideLocal {
		return m.LocalTeamName
	}
	return m.VisitorTeamName
}

func (m *MatchState) addPoints(team string, points int) {
	if team == SideLocal {
		m.LocalScore += points
	} else {
		m.VisitorScore += points
	}
}
