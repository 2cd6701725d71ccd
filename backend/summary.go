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
	"fmt"
	"net/url"
	"strings"
)

// FormatClock renders seconds as M:SS. Minutes are not capped at 59.
// A negative value, possible when the duration is shortened without a reset,
// keeps its sign in front: -75 is "-1:15".
func FormatClock(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%d:%02d", sign, seconds/60, seconds%60)
}

// EventLine describes one history entry in the share format.
func (m *MatchState) EventLine(ev ScoreEvent) string {
	return fmt.Sprintf("%s para %s en el minuto %s", ev.EventKind, m.TeamName(ev.Team), ev.ElapsedTime)
}

// FormatSummary renders the result and the incidents of the match, oldest
// first.
func (m *MatchState) FormatSummary() string {
	var sb strings.Builder
	sb.WriteString("Partido:\n")
	fmt.Fprintf(&sb, "%s %d - %d %s\n", m.LocalTeamName, m.LocalScore, m.VisitorScore, m.VisitorTeamName)
	sb.WriteString("\nIncidencias:")
	for _, ev := range m.History {
		sb.WriteString("\n")
		sb.WriteString(m.EventLine(ev))
	}
	return sb.String()
}

// ShareURL builds a messaging share link carrying text. Nothing is sent.
func ShareURL(text string) string {
	return ShareBaseURL + encodeURIComponent(text)
}

// encodeURIComponent escapes text for a query value with spaces as %20.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
