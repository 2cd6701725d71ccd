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
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// The scoreboard trusts its callers. These helpers turn raw user input into
// the values it expects.

// ParseMinutes parses a match length in whole minutes.
func ParseMinutes(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid minutes %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("minutes must be positive, got %d", n)
	}
	return n, nil
}

// ParseSide parses a team side. "l" and "v" are accepted as shorthands.
func ParseSide(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SideLocal, "l":
		return SideLocal, nil
	case SideVisitor, "v":
		return SideVisitor, nil
	default:
		return "", fmt.Errorf("unknown side %q (want local or visitor)", s)
	}
}

// ParseScoringAction looks up a scoring action by kind, ignoring case.
func ParseScoringAction(s string) (ScoringAction, error) {
	for _, a := range ScoringActions {
		if strings.EqualFold(a.Kind, strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return ScoringAction{}, fmt.Errorf("unknown scoring action %q", s)
}

// ParseDateKey parses a YYYY-MM-DD date as a UTC day.
func ParseDateKey(s string) (time.Time, error) {
	d, err := time.Parse(DateKeyLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

// DateKey returns the attendance key of a moment: its UTC calendar day.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// validateStringLen checks if the string length is within the limit.
func validateStringLen(s string, max int, name string) error {
	if utf8.RuneCountInString(s) > max {
		return fmt.Errorf("%s too long (max %d chars)", name, max)
	}
	return nil
}

// validatePlayerFields checks the free-text fields of a roster entry.
func validatePlayerFields(name, nickname, position string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("missing name")
	}
	if err := validateStringLen(name, maxNameLen, "name"); err != nil {
		return err
	}
	if err := validateStringLen(nickname, maxNameLen, "nickname"); err != nil {
		return err
	}
	return validateStringLen(position, maxNameLen, "position")
}
