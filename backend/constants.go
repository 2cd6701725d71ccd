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

// Team sides
const (
	SideLocal   = "local"
	SideVisitor = "visitor"
)

// Event kinds
const (
	EventTry        = "TRY"
	EventConversion = "CONVERSION"
	EventPenal      = "PENAL"
)

// ScoringAction is one entry of the fixed scoring table.
type ScoringAction struct {
	Kind   string `json:"kind"`
	Points int    `json:"points"`
}

// ScoringActions is the closed set of scoring actions, in display order.
// Adding a kind here is the only way to extend what can be recorded.
var ScoringActions = []ScoringAction{
	{Kind: EventTry, Points: 5},
	{Kind: EventConversion, Points: 2},
	{Kind: EventPenal, Points: 3},
}

// Match defaults
const (
	DefaultMatchMinutes    = 35
	DefaultLocalTeamName   = "Equipo Local"
	DefaultVisitorTeamName = "Equipo Visitante"
)

// Timer states
const (
	TimerStopped = "stopped"
	TimerRunning = "running"
	TimerExpired = "expired"
)

const (
	// DateKeyLayout is the layout of attendance date keys.
	DateKeyLayout = "2006-01-02"

	// ShareBaseURL receives the percent-encoded text of a share link.
	ShareBaseURL = "https://api.whatsapp.com/send?text="

	maxNameLen = 100
)
