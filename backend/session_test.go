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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

var testNow = time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

func newTestSession(t *testing.T, opts Options) (*Session, *tickerFactory) {
	t.Helper()
	f := &tickerFactory{}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	if opts.NewTicker == nil {
		opts.NewTicker = f.New
	}
	if opts.ExportDir == "" {
		opts.ExportDir = t.TempDir()
	}
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s, f
}

func TestNewSessionEveryoneAbsentToday(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	if s.DateKey() != "2026-03-14" {
		t.Fatalf("Unexpected date %s", s.DateKey())
	}
	sum := s.AttendanceSummary()
	if sum.Total != 15 || sum.Absent != 15 || sum.Present != 0 {
		t.Errorf("Unexpected totals %+v", sum)
	}

	// Other dates have no records.
	s.SelectDate(testNow.AddDate(0, 0, 7))
	sum = s.AttendanceSummary()
	if sum.DateKey != "2026-03-21" || sum.Present != 15 {
		t.Errorf("Unexpected totals on another date %+v", sum)
	}
}

func TestSessionDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("ART", -3*3600)
	late := time.Date(2026, 3, 14, 22, 0, 0, 0, loc) // 01:00 UTC next day
	s, _ := newTestSession(t, Options{Now: func() time.Time { return late }})
	if s.DateKey() != "2026-03-15" {
		t.Errorf("Expected the UTC day, got %s", s.DateKey())
	}
}

func TestSessionPlayers(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	today := s.DateKey()

	p, absent, err := s.ToggleAbsence("3")
	if err != nil {
		t.Fatalf("ToggleAbsence failed: %v", err)
	}
	if p.Name != "Ángel Domínguez" || absent {
		t.Errorf("Expected Ángel present, got %s absent=%v", p.Name, absent)
	}
	if _, _, err := s.ToggleAbsence("nope"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("Expected ErrPlayerNotFound, got %v", err)
	}

	added, err := s.AddPlayer("Juan Pérez", "Juancho", "Pilar")
	if err != nil {
		t.Fatalf("AddPlayer failed: %v", err)
	}
	if !s.Attendance().IsAbsent(added.ID, today) {
		t.Error("New player should start absent on the selected date")
	}

	// A player added on another date is absent there only.
	s.SelectDate(testNow.AddDate(0, 0, 1))
	other, _ := s.AddPlayer("Pedro", "", "")
	if !s.Attendance().IsAbsent(other.ID, "2026-03-15") || s.Attendance().IsAbsent(other.ID, today) {
		t.Error("New player absence should be keyed on the selected date")
	}
	s.SelectDate(testNow)

	edited, err := s.EditPlayer(added.ID, "Juan Pérez", "", "Hooker")
	if err != nil {
		t.Fatalf("EditPlayer failed: %v", err)
	}
	if edited.Position != "Hooker" || !s.Attendance().IsAbsent(added.ID, today) {
		t.Errorf("Edit changed attendance or missed a field: %+v", edited)
	}

	if err := s.DeletePlayer(added.ID); err != nil {
		t.Fatalf("DeletePlayer failed: %v", err)
	}
	if s.Attendance().IsAbsent(added.ID, today) {
		t.Error("Deleted player kept attendance records")
	}
	if err := s.DeletePlayer(added.ID); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("Expected ErrPlayerNotFound, got %v", err)
	}

	sum := s.AttendanceSummary()
	if sum.Total != 16 || sum.Present != 2 || sum.Absent != 14 {
		t.Errorf("Unexpected totals %+v", sum)
	}
}

func TestSessionRosterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	os.WriteFile(path, []byte(`[{"id": 1, "name": "Pedro"}, {"id": 2, "name": "Ana"}]`), 0644)

	s, _ := newTestSession(t, Options{RosterFile: path})
	if got := names(s.Roster().List()); len(got) != 2 || got[0] != "Ana" {
		t.Errorf("Unexpected roster %q", got)
	}
	if !s.Attendance().IsAbsent("1", s.DateKey()) {
		t.Error("Loaded players should start absent")
	}

	if _, err := NewSession(Options{RosterFile: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("Expected an error for a missing roster file")
	}
}

func TestSessionExportAttendance(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.ToggleAbsence("12")

	path, err := s.ExportAttendance("")
	if err != nil {
		t.Fatalf("ExportAttendance failed: %v", err)
	}
	if filepath.Base(path) != "Control_Asistencia_2026-03-14.xlsx" {
		t.Errorf("Unexpected file name %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("excelize.OpenFile: %v", err)
	}
	defer f.Close()
	if got, _ := f.GetCellValue("Asistencia", "A2"); got != "Agustín Romero" {
		t.Errorf("A2 = %q", got)
	}
	if got, _ := f.GetCellValue("Asistencia", "B2"); got != "Sí" {
		t.Errorf("B2 = %q", got)
	}

	custom := filepath.Join(t.TempDir(), "lista.xlsx")
	if path, err = s.ExportAttendance(custom); err != nil || path != custom {
		t.Errorf("ExportAttendance(%s) = %s, %v", custom, path, err)
	}

	if _, err := s.ExportAttendance(filepath.Join(t.TempDir(), "no", "such", "dir.xlsx")); err == nil {
		t.Error("Expected an error for an unwritable path")
	}
}

func TestSessionMatchLifecycle(t *testing.T) {
	ctx := context.Background()
	s, f := newTestSession(t, Options{MatchMinutes: 40, LocalTeamName: "Pumas"})

	if _, err := s.Match(); !errors.Is(err, ErrMatchNotOpen) {
		t.Fatalf("Expected ErrMatchNotOpen, got %v", err)
	}

	m := s.OpenMatch()
	if s.OpenMatch() != m {
		t.Error("OpenMatch should return the open match")
	}
	st, _ := m.Snapshot(ctx)
	if st.MatchDurationSeconds != 2400 || st.LocalTeamName != "Pumas" || st.VisitorTeamName != DefaultVisitorTeamName {
		t.Errorf("Unexpected new match %+v", st)
	}

	m.ToggleTimer(ctx)
	m.Score(ctx, SideLocal, ScoringActions[0])
	tk := f.last()

	s.CloseMatch()
	if !tk.stopped.Load() {
		t.Error("Closing the match should stop its clock")
	}
	if _, err := m.Snapshot(ctx); !errors.Is(err, ErrMatchClosed) {
		t.Errorf("Expected ErrMatchClosed, got %v", err)
	}
	if _, err := s.Match(); !errors.Is(err, ErrMatchNotOpen) {
		t.Errorf("Expected ErrMatchNotOpen, got %v", err)
	}
	s.CloseMatch()

	// Reopening starts from scratch.
	st, _ = s.OpenMatch().Snapshot(ctx)
	if st.LocalScore != 0 || len(st.History) != 0 || st.RemainingSeconds != 2400 {
		t.Errorf("Reopened match kept state: %+v", st)
	}
}
