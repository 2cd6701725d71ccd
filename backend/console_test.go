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
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestConsole(t *testing.T) (*Console, *Session, *tickerFactory, *bytes.Buffer) {
	t.Helper()
	s, f := newTestSession(t, Options{})
	var out bytes.Buffer
	return NewConsole(s, &out), s, f, &out
}

func TestConsoleScript(t *testing.T) {
	c, _, _, out := newTestConsole(t)

	script := strings.Join([]string{
		"date",
		"players pos:pilar",
		"absent 3",
		`player add name:"Juan Pérez" nickname:Juancho position:Pilar`,
		"attendance",
		"task add Comprar hielo responsible:Ana",
		"tasks",
		"task del 1",
		"score local try",
		"match open",
		`teams local:Pumas visitor:"Teros RC"`,
		"score local try",
		"score v penal",
		"undo",
		"summary",
		"match close",
		"bogus",
		"",
		"quit",
		"players",
	}, "\n")

	if err := c.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"date 2026-03-14\n",
		"3  Ángel Domínguez (Tano) - Pilar  [ausente]\n",
		"1  Santiago Ruiz (Santi) - Pilar  [ausente]\n2 players\n",
		"Ángel Domínguez: presente el 2026-03-14\n",
		"  Juan Pérez\n",
		"Ángel Domínguez: Presente\n",
		"Juan Pérez: Ausente\n",
		"Total de jugadores: 16\nTotal presentes: 1\nTotal ausentes: 15\n",
		"added Comprar hielo - Responsable: Ana\n",
		"1. Comprar hielo - Responsable: Ana\n1 tasks\n",
		"deleted Comprar hielo\n",
		"error: no match open (use: match open)\n",
		"Equipo Local 0 - 0 Equipo Visitante  [35:00 stopped]\n",
		"Pumas 0 - 0 Teros RC  [35:00 stopped]\n",
		"TRY para Pumas en el minuto 0:00\nPumas 5 - 0 Teros RC  [35:00 stopped]\n",
		"PENAL para Teros RC en el minuto 0:00\n",
		"undone: PENAL para Teros RC en el minuto 0:00\nPumas 5 - 0 Teros RC",
		"Partido:\nPumas 5 - 0 Teros RC\n\nIncidencias:\nTRY para Pumas en el minuto 0:00\n",
		"match closed\n",
		"error: unknown command \"bogus\" (try help)\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Output lacks %q\nFull output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "16 players") {
		t.Error("Commands after quit were executed")
	}
}

func TestConsoleClock(t *testing.T) {
	ctx := context.Background()
	c, _, f, out := newTestConsole(t)

	run := func(line string) string {
		t.Helper()
		out.Reset()
		if err := c.Exec(ctx, line); err != nil {
			t.Fatalf("Exec(%q) failed: %v", line, err)
		}
		return out.String()
	}

	run("match open")
	if got := run("start"); !strings.Contains(got, "[35:00 running]") {
		t.Errorf("start: %q", got)
	}
	tk := f.last()
	for i := 0; i < 75; i++ {
		tk.ch <- time.Now()
	}
	if got := run("pause"); !strings.Contains(got, "[33:45 stopped]") {
		t.Errorf("pause: %q", got)
	}
	if got := run("score visitor conversion"); !strings.HasPrefix(got, "CONVERSION para Equipo Visitante en el minuto 1:15\n") {
		t.Errorf("score: %q", got)
	}
	if got := run("duration 40"); got != "duration 40 min (clock 33:45, reset to apply)\n" {
		t.Errorf("duration: %q", got)
	}
	if got := run("reset"); !strings.Contains(got, "[40:00 stopped]") {
		t.Errorf("reset: %q", got)
	}
	if got := run("undo"); !strings.HasPrefix(got, "undone: CONVERSION") {
		t.Errorf("undo: %q", got)
	}
	if got := run("undo"); got != "nothing to undo\n" {
		t.Errorf("undo on empty: %q", got)
	}
}

func TestConsoleShareAndExport(t *testing.T) {
	ctx := context.Background()
	c, s, _, out := newTestConsole(t)

	if err := c.Exec(ctx, "share"); err != nil {
		t.Fatalf("share failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), ShareBaseURL+"Listado%20de%20asistencia") {
		t.Errorf("Unexpected attendance link %q", out.String())
	}

	if err := c.Exec(ctx, "share match"); !errors.Is(err, ErrMatchNotOpen) {
		t.Errorf("Expected ErrMatchNotOpen, got %v", err)
	}
	c.Exec(ctx, "match open")
	out.Reset()
	if err := c.Exec(ctx, "share match"); err != nil {
		t.Fatalf("share match failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), ShareBaseURL+"Partido%3A%0AEquipo%20Local%200%20-%200") {
		t.Errorf("Unexpected match link %q", out.String())
	}

	out.Reset()
	if err := c.Exec(ctx, "export"); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	want := "exported " + filepath.Join(s.opts.ExportDir, "Control_Asistencia_2026-03-14.xlsx") + "\n"
	if out.String() != want {
		t.Errorf("export: %q, want %q", out.String(), want)
	}
}

func TestConsoleErrors(t *testing.T) {
	ctx := context.Background()
	c, _, _, _ := newTestConsole(t)
	c.Exec(ctx, "match open")

	for _, line := range []string{
		"date 14/03/2026",
		"player",
		"player add nickname:Sin",
		"player edit id:nope name:X",
		"player del 999",
		"absent 999",
		"task add responsible:Ana",
		"task del x",
		"task del 3",
		"task",
		"match reopen",
		"duration 0",
		"score middle try",
		"score local drop",
		"teams local:" + strings.Repeat("x", maxNameLen+1),
		"name:foo",
	} {
		if err := c.Exec(ctx, line); err == nil {
			t.Errorf("Exec(%q) should fail", line)
		}
	}
}

func TestConsoleDateAndEdit(t *testing.T) {
	ctx := context.Background()
	c, s, _, out := newTestConsole(t)

	if err := c.Exec(ctx, "date 2026-03-21"); err != nil {
		t.Fatalf("date failed: %v", err)
	}
	if out.String() != "date 2026-03-21\n" || s.DateKey() != "2026-03-21" {
		t.Errorf("date: %q, selected %s", out.String(), s.DateKey())
	}

	out.Reset()
	if err := c.Exec(ctx, `player edit 3 nickname:"El Tano"`); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if out.String() != "updated 3  Ángel Domínguez (El Tano) - Pilar\n" {
		t.Errorf("edit: %q", out.String())
	}

	out.Reset()
	if err := c.Exec(ctx, "player del id:3"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := s.Roster().Get("3"); !errors.Is(err, ErrPlayerNotFound) {
		t.Error("Player was not deleted")
	}
}

func TestConsoleRunStopsOnCancel(t *testing.T) {
	c, _, _, out := newTestConsole(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, strings.NewReader("tasks\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Commands ran after cancel: %q", out.String())
	}
}
