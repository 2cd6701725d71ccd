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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/ttbt-io/matchkeeper/backend/search"
)

// errQuit ends the console loop.
var errQuit = errors.New("quit")

const helpText = `Commands:
  date [YYYY-MM-DD]                         show or select the attendance date
  players [query]                           list or search the roster (name: nickname: position:)
  player add name:N [nickname:A] [position:P]
  player edit id:ID [name:N] [nickname:A] [position:P]
  player del id:ID
  absent ID                                 toggle absence on the selected date
  attendance                                attendance list for the selected date
  share [match]                             share link for attendance or the match summary
  export [FILE]                             write the attendance sheet (.xlsx)
  tasks                                     third half checklist
  task add NAME responsible:R
  task del N
  match open|close|show
  teams [local:NAME] [visitor:NAME]
  duration MINUTES                          does not reset the clock
  start                                     start or pause the clock
  reset                                     stop and refill the clock
  clock
  score local|visitor TRY|CONVERSION|PENAL
  undo
  summary
  quit`

// Console is a line-oriented front end to a Session.
type Console struct {
	s   *Session
	out io.Writer
}

// NewConsole returns a console writing to out.
func NewConsole(s *Session, out io.Writer) *Console {
	return &Console{s: s, out: out}
}

// Run executes commands read from in until EOF, "quit", or ctx is done.
// Command errors are reported and do not stop the loop.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := c.Exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// Exec runs a single command line.
func (c *Console) Exec(ctx context.Context, line string) error {
	q := search.Parse(line)
	if len(q.Words) == 0 {
		if len(q.Args) == 0 {
			return nil
		}
		return fmt.Errorf("missing command")
	}
	if c.s.opts.Debug {
		log.Printf("Console: %q", line)
	}

	cmd := strings.ToLower(q.Word(0))
	switch cmd {
	case "help", "?":
		fmt.Fprintln(c.out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	case "date":
		return c.date(q)
	case "players":
		return c.players(q)
	case "player":
		return c.player(q)
	case "absent":
		return c.absent(q)
	case "attendance":
		fmt.Fprintln(c.out, AttendanceMessage(c.s.AttendanceSummary()))
		return nil
	case "share":
		return c.share(ctx, q)
	case "export":
		path, err := c.s.ExportAttendance(q.Text(1))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "exported %s\n", path)
		return nil
	case "tasks":
		c.printTasks()
		return nil
	case "task":
		return c.task(q)
	case "match":
		return c.match(ctx, q)
	}

	m, err := c.s.Match()
	if err != nil {
		if isMatchCommand(cmd) {
			return fmt.Errorf("%w (use: match open)", err)
		}
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return c.matchCommand(ctx, m, cmd, q)
}

func isMatchCommand(cmd string) bool {
	switch cmd {
	case "teams", "duration", "start", "pause", "reset", "clock", "score", "undo", "summary":
		return true
	}
	return false
}

func (c *Console) date(q search.Query) error {
	if arg := q.Word(1); arg != "" {
		d, err := ParseDateKey(arg)
		if err != nil {
			return err
		}
		c.s.SelectDate(d)
	}
	fmt.Fprintf(c.out, "date %s\n", c.s.DateKey())
	return nil
}

func (c *Console) players(q search.Query) error {
	filter := search.Query{Args: q.Args, Words: q.Words[1:]}
	players := c.s.Roster().Match(filter)
	dateKey := c.s.DateKey()
	for _, p := range players {
		mark := ""
		if c.s.Attendance().IsAbsent(p.ID, dateKey) {
			mark = "  [ausente]"
		}
		fmt.Fprintf(c.out, "%s  %s (%s) - %s%s\n", p.ID, p.Name, p.Nickname, p.Position, mark)
	}
	fmt.Fprintf(c.out, "%d players\n", len(players))
	return nil
}

func (c *Console) player(q search.Query) error {
	switch strings.ToLower(q.Word(1)) {
	case "add":
		name, _ := q.Get("name")
		nickname, _ := q.Get("nickname")
		position, _ := q.Get("position")
		p, err := c.s.AddPlayer(name, nickname, position)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "added %s  %s\n", p.ID, p.Name)
		return nil
	case "edit":
		id := playerID(q, 2)
		p, err := c.s.Roster().Get(id)
		if err != nil {
			return err
		}
		if v, ok := q.Get("name"); ok {
			p.Name = v
		}
		if v, ok := q.Get("nickname"); ok {
			p.Nickname = v
		}
		if v, ok := q.Get("position"); ok {
			p.Position = v
		}
		if p, err = c.s.EditPlayer(id, p.Name, p.Nickname, p.Position); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "updated %s  %s (%s) - %s\n", p.ID, p.Name, p.Nickname, p.Position)
		return nil
	case "del", "delete":
		id := playerID(q, 2)
		if err := c.s.DeletePlayer(id); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "deleted %s\n", id)
		return nil
	default:
		return fmt.Errorf("usage: player add|edit|del")
	}
}

// playerID takes the id: argument, or else the bare word at position i.
func playerID(q search.Query, i int) string {
	if id, ok := q.Get("id"); ok {
		return id
	}
	return q.Word(i)
}

func (c *Console) absent(q search.Query) error {
	p, absent, err := c.s.ToggleAbsence(playerID(q, 1))
	if err != nil {
		return err
	}
	status := "presente"
	if absent {
		status = "ausente"
	}
	fmt.Fprintf(c.out, "%s: %s el %s\n", p.Name, status, c.s.DateKey())
	return nil
}

func (c *Console) share(ctx context.Context, q search.Query) error {
	if strings.EqualFold(q.Word(1), "match") {
		m, err := c.s.Match()
		if err != nil {
			return err
		}
		text, err := m.Summary(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, ShareURL(text))
		return nil
	}
	fmt.Fprintln(c.out, ShareURL(AttendanceMessage(c.s.AttendanceSummary())))
	return nil
}

func (c *Console) printTasks() {
	items := c.s.Checklist().Items()
	for i, t := range items {
		fmt.Fprintf(c.out, "%d. %s - Responsable: %s\n", i+1, t.Name, t.Responsible)
	}
	fmt.Fprintf(c.out, "%d tasks\n", len(items))
}

func (c *Console) task(q search.Query) error {
	switch strings.ToLower(q.Word(1)) {
	case "add":
		name, ok := q.Get("name")
		if !ok {
			name = q.Text(2)
		}
		responsible, _ := q.Get("responsible")
		t, err := c.s.Checklist().Add(name, responsible)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "added %s - Responsable: %s\n", t.Name, t.Responsible)
		return nil
	case "del", "delete":
		n, err := strconv.Atoi(q.Word(2))
		if err != nil {
			return fmt.Errorf("usage: task del N")
		}
		t, err := c.s.Checklist().Delete(n - 1)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "deleted %s\n", t.Name)
		return nil
	default:
		return fmt.Errorf("usage: task add|del")
	}
}

func (c *Console) match(ctx context.Context, q search.Query) error {
	switch strings.ToLower(q.Word(1)) {
	case "open":
		m := c.s.OpenMatch()
		return c.printMatch(ctx, m)
	case "close":
		c.s.CloseMatch()
		fmt.Fprintln(c.out, "match closed")
		return nil
	case "show", "":
		m, err := c.s.Match()
		if err != nil {
			return err
		}
		return c.printMatch(ctx, m)
	default:
		return fmt.Errorf("usage: match open|close|show")
	}
}

func (c *Console) matchCommand(ctx context.Context, m *MatchHub, cmd string, q search.Query) error {
	switch cmd {
	case "teams":
		for _, side := range []string{SideLocal, SideVisitor} {
			name, ok := q.Get(side)
			if !ok {
				continue
			}
			if err := validateStringLen(name, maxNameLen, "team name"); err != nil {
				return err
			}
			if _, err := m.SetTeamName(ctx, side, name); err != nil {
				return err
			}
		}
		return c.printMatch(ctx, m)
	case "duration":
		minutes, err := ParseMinutes(q.Word(1))
		if err != nil {
			return err
		}
		s, err := m.ConfigureDuration(ctx, minutes)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "duration %d min (clock %s, reset to apply)\n", s.MatchDurationSeconds/60, FormatClock(s.RemainingSeconds))
		return nil
	case "start", "pause":
		if _, err := m.ToggleTimer(ctx); err != nil {
			return err
		}
		return c.printMatch(ctx, m)
	case "reset":
		if _, err := m.ResetTimer(ctx); err != nil {
			return err
		}
		return c.printMatch(ctx, m)
	case "clock":
		return c.printMatch(ctx, m)
	case "score":
		side, err := ParseSide(q.Word(1))
		if err != nil {
			return err
		}
		action, err := ParseScoringAction(q.Word(2))
		if err != nil {
			return err
		}
		ev, s, err := m.Score(ctx, side, action)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, s.EventLine(ev))
		return c.printMatch(ctx, m)
	case "undo":
		ev, ok, s, err := m.UndoLast(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.out, "nothing to undo")
			return nil
		}
		fmt.Fprintf(c.out, "undone: %s\n", s.EventLine(ev))
		return c.printMatch(ctx, m)
	case "summary":
		text, err := m.Summary(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, text)
		return nil
	}
	return fmt.Errorf("unknown command %q (try help)", cmd)
}

func (c *Console) printMatch(ctx context.Context, m *MatchHub) error {
	s, err := m.Snapshot(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s %d - %d %s  [%s %s]\n",
		s.LocalTeamName, s.LocalScore, s.VisitorScore, s.VisitorTeamName,
		FormatClock(s.RemainingSeconds), s.TimerState())
	return nil
}
