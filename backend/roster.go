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
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/ttbt-io/matchkeeper/backend/search"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

//go:embed seed/players.json
var seedPlayers []byte

// ErrPlayerNotFound is returned for roster lookups of unknown IDs.
var ErrPlayerNotFound = errors.New("player not found")

// Player is a roster entry.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Position string `json:"position"`
}

// UnmarshalJSON accepts numeric IDs as well as strings, so hand-written
// roster files with "id": 3 load as "3".
func (p *Player) UnmarshalJSON(data []byte) error {
	type alias Player
	var raw struct {
		alias
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Player(raw.alias)
	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || string(id) == "null":
		p.ID = ""
	case id[0] == '"':
		return json.Unmarshal(id, &p.ID)
	default:
		p.ID = string(id)
	}
	return nil
}

// Roster is the in-memory player list. Insertion order is kept; the seed is
// sorted by name. A Roster is not safe for concurrent use.
type Roster struct {
	players []Player
}

// NewRoster returns a roster holding players sorted by name in Spanish
// collation order.
func NewRoster(players []Player) *Roster {
	sorted := slices.Clone(players)
	sortByName(sorted)
	return &Roster{players: sorted}
}

// LoadRoster decodes a JSON array of players.
func LoadRoster(r io.Reader) (*Roster, error) {
	var players []Player
	if err := json.NewDecoder(r).Decode(&players); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	for i, p := range players {
		if p.ID == "" {
			return nil, fmt.Errorf("roster entry %d has no id", i)
		}
		if err := validatePlayerFields(p.Name, p.Nickname, p.Position); err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
	}
	return NewRoster(players), nil
}

// LoadRosterFile reads a roster from a JSON file.
func LoadRosterFile(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadRoster(f)
}

// DefaultRoster returns the bundled roster.
func DefaultRoster() *Roster {
	r, err := LoadRoster(bytes.NewReader(seedPlayers))
	if err != nil {
		// The seed is compiled in; failing here is a build defect.
		log.Fatalf("Roster: bundled seed is invalid: %v", err)
	}
	return r
}

func sortByName(players []Player) {
	c := collate.New(language.Spanish)
	slices.SortStableFunc(players, func(a, b Player) int {
		return c.CompareString(a.Name, b.Name)
	})
}

// List returns a copy of the roster in display order.
func (r *Roster) List() []Player {
	return slices.Clone(r.players)
}

// Len returns the number of players.
func (r *Roster) Len() int {
	return len(r.players)
}

// Get returns the player with the given ID.
func (r *Roster) Get(id string) (Player, error) {
	i := r.index(id)
	if i < 0 {
		return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return r.players[i], nil
}

// Add appends a new player with a fresh ID.
func (r *Roster) Add(name, nickname, position string) (Player, error) {
	if err := validatePlayerFields(name, nickname, position); err != nil {
		return Player{}, err
	}
	p := Player{
		ID:       uuid.NewString(),
		Name:     name,
		Nickname: nickname,
		Position: position,
	}
	r.players = append(r.players, p)
	return p, nil
}

// Edit replaces the name, nickname and position of a player.
func (r *Roster) Edit(id, name, nickname, position string) (Player, error) {
	i := r.index(id)
	if i < 0 {
		return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	if err := validatePlayerFields(name, nickname, position); err != nil {
		return Player{}, err
	}
	r.players[i].Name = name
	r.players[i].Nickname = nickname
	r.players[i].Position = position
	return r.players[i], nil
}

// Delete removes a player.
func (r *Roster) Delete(id string) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	r.players = slices.Delete(r.players, i, i+1)
	return nil
}

// Find returns the players matching a query such as
// `position:pilar nickname:"el tano" juan`. Every key:value argument must
// match its field and every bare word must match some field. Matching is a
// case-insensitive substring test.
func (r *Roster) Find(query string) []Player {
	return r.Match(search.Parse(query))
}

// Match returns the players matching a parsed query. An empty query matches
// everyone.
func (r *Roster) Match(q search.Query) []Player {
	out := make([]Player, 0)
	for _, p := range r.players {
		if matchPlayer(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matchPlayer(p Player, q search.Query) bool {
	for _, a := range q.Args {
		var field string
		switch a.Key {
		case "name":
			field = p.Name
		case "nickname", "apodo":
			field = p.Nickname
		case "position", "pos":
			field = p.Position
		case "id":
			if p.ID != a.Value {
				return false
			}
			continue
		default:
			return false
		}
		if !containsFold(field, a.Value) {
			return false
		}
	}
	for _, w := range q.Words {
		if !containsFold(p.Name, w) && !containsFold(p.Nickname, w) && !containsFold(p.Position, w) {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *Roster) index(id string) int {
	return slices.IndexFunc(r.players, func(p Player) bool { return p.ID == id })
}
