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
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ErrMatchNotOpen is returned by match operations while no match is open.
var ErrMatchNotOpen = errors.New("no match open")

// Options configures a Session.
type Options struct {
	MatchMinutes    int
	LocalTeamName   string
	VisitorTeamName string
	RosterFile      string
	ExportDir       string
	Debug           bool

	// Now defaults to time.Now. It sets the initially selected date.
	Now func() time.Time
	// NewTicker drives match clocks. Defaults to NewTimeTicker.
	NewTicker TickerFunc
	// OnExpire is called on the match goroutine when a clock runs out.
	OnExpire func(MatchState)
}

// Session is everything one user works with: the roster, attendance, the
// post-match checklist and at most one open match.
// Like the panels it stands in for, it is driven from a single goroutine.
type Session struct {
	opts Options

	roster     *Roster
	attendance *Attendance
	checklist  *Checklist
	date       time.Time

	match *MatchHub
}

// NewSession seeds a session. Every player starts absent on today's date.
func NewSession(opts Options) (*Session, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MatchMinutes <= 0 {
		opts.MatchMinutes = DefaultMatchMinutes
	}

	var roster *Roster
	if opts.RosterFile != "" {
		var err error
		if roster, err = LoadRosterFile(opts.RosterFile); err != nil {
			return nil, fmt.Errorf("load roster %s: %w", opts.RosterFile, err)
		}
		log.Printf("Roster: loaded %d players from %s", roster.Len(), opts.RosterFile)
	} else {
		roster = DefaultRoster()
	}

	s := &Session{
		opts:       opts,
		roster:     roster,
		attendance: NewAttendance(),
		checklist:  NewChecklist(),
		date:       opts.Now(),
	}
	today := s.DateKey()
	for _, p := range roster.List() {
		s.attendance.MarkAbsent(p.ID, today)
	}
	return s, nil
}

// Roster returns the session roster.
func (s *Session) Roster() *Roster { return s.roster }

// Attendance returns the session attendance book.
func (s *Session) Attendance() *Attendance { return s.attendance }

// Checklist returns the post-match checklist.
func (s *Session) Checklist() *Checklist { return s.checklist }

// DateKey is the key of the selected date.
func (s *Session) DateKey() string { return DateKey(s.date) }

// SelectDate changes the date used for attendance.
func (s *Session) SelectDate(d time.Time) { s.date = d }

// AddPlayer adds a player and marks them absent on the selected date.
func (s *Session) AddPlayer(name, nickname, position string) (Player, error) {
	p, err := s.roster.Add(name, nickname, position)
	if err != nil {
		return Player{}, err
	}
	s.attendance.MarkAbsent(p.ID, s.DateKey())
	return p, nil
}

// EditPlayer updates a player. Attendance is unchanged.
func (s *Session) EditPlayer(id, name, nickname, position string) (Player, error) {
	return s.roster.Edit(id, name, nickname, position)
}

// DeletePlayer removes a player and their attendance.
func (s *Session) DeletePlayer(id string) error {
	if err := s.roster.Delete(id); err != nil {
		return err
	}
	s.attendance.Remove(id)
	return nil
}

// ToggleAbsence flips a player's absence on the selected date.
func (s *Session) ToggleAbsence(id string) (Player, bool, error) {
	p, err := s.roster.Get(id)
	if err != nil {
		return Player{}, false, err
	}
	return p, s.attendance.Toggle(id, s.DateKey()), nil
}

// AttendanceSummary is the attendance on the selected date.
func (s *Session) AttendanceSummary() AttendanceSummary {
	return s.attendance.Summarize(s.DateKey(), s.roster.List())
}

// ExportAttendance writes the selected date's sheet to path, or to the
// default file name in the export directory when path is empty.
func (s *Session) ExportAttendance(path string) (string, error) {
	summary := s.AttendanceSummary()
	if path == "" {
		path = filepath.Join(s.opts.ExportDir, AttendanceFileName(summary.DateKey))
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export: %w", err)
	}
	if err := ExportAttendance(f, summary); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	return path, nil
}

// OpenMatch opens the match panel. An already open match is returned as is.
func (s *Session) OpenMatch() *MatchHub {
	if s.match != nil {
		return s.match
	}
	s.match = NewMatchHub(MatchHubOptions{
		LocalTeamName:   s.opts.LocalTeamName,
		VisitorTeamName: s.opts.VisitorTeamName,
		Minutes:         s.opts.MatchMinutes,
		NewTicker:       s.opts.NewTicker,
		OnExpire:        s.opts.OnExpire,
		Debug:           s.opts.Debug,
	})
	if s.opts.Debug {
		log.Printf("Session: match opened (%d min)", s.opts.MatchMinutes)
	}
	return s.match
}

// Match returns the open match.
func (s *Session) Match() (*MatchHub, error) {
	if s.match == nil {
		return nil, ErrMatchNotOpen
	}
	return s.match, nil
}

// CloseMatch closes the match panel, stopping its clock and discarding its
// state.
func (s *Session) CloseMatch() {
	if s.match == nil {
		return
	}
	s.match.Close()
	s.match = nil
	if s.opts.Debug {
		log.Printf("Session: match closed")
	}
}

// Close releases the session.
func (s *Session) Close() {
	s.CloseMatch()
}
