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

// Attendance records absences by player and date key. A player with no entry
// for a date counts as present.
type Attendance struct {
	absent map[string]map[string]bool // playerID -> dateKey -> absent
}

// NewAttendance returns an empty attendance book.
func NewAttendance() *Attendance {
	return &Attendance{absent: make(map[string]map[string]bool)}
}

// MarkAbsent resets a player's record to a single absence on dateKey.
// New players start this way.
func (a *Attendance) MarkAbsent(playerID, dateKey string) {
	a.absent[playerID] = map[string]bool{dateKey: true}
}

// Toggle flips the player's absence on dateKey and returns the new value.
func (a *Attendance) Toggle(playerID, dateKey string) bool {
	days, ok := a.absent[playerID]
	if !ok {
		days = make(map[string]bool)
		a.absent[playerID] = days
	}
	days[dateKey] = !days[dateKey]
	return days[dateKey]
}

// IsAbsent reports whether the player is absent on dateKey.
func (a *Attendance) IsAbsent(playerID, dateKey string) bool {
	return a.absent[playerID][dateKey]
}

// Remove drops every record of a player.
func (a *Attendance) Remove(playerID string) {
	delete(a.absent, playerID)
}

// AttendanceRow is one line of an attendance sheet.
type AttendanceRow struct {
	Player Player `json:"player"`
	Absent bool   `json:"absent"`
}

// AttendanceSummary is the attendance of a roster on one date.
type AttendanceSummary struct {
	DateKey string          `json:"dateKey"`
	Rows    []AttendanceRow `json:"rows"`
	Total   int             `json:"total"`
	Present int             `json:"present"`
	Absent  int             `json:"absent"`
}

// Summarize builds the sheet for players on dateKey, in roster order.
func (a *Attendance) Summarize(dateKey string, players []Player) AttendanceSummary {
	s := AttendanceSummary{
		DateKey: dateKey,
		Rows:    make([]AttendanceRow, 0, len(players)),
		Total:   len(players),
	}
	for _, p := range players {
		absent := a.IsAbsent(p.ID, dateKey)
		if absent {
			s.Absent++
		} else {
			s.Present++
		}
		s.Rows = append(s.Rows, AttendanceRow{Player: p, Absent: absent})
	}
	return s
}
