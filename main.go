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

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ttbt-io/matchkeeper/backend"
)

// main loads the configuration and runs the console on stdin/stdout.
func main() {
	cfg, err := backend.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	matchMinutes := flag.Int("minutes", cfg.MatchMinutes, "Match length in minutes")
	localTeam := flag.String("local", cfg.LocalTeamName, "Name of the local team")
	visitorTeam := flag.String("visitor", cfg.VisitorTeamName, "Name of the visiting team")
	rosterFile := flag.String("roster", cfg.RosterFile, "JSON roster to load instead of the bundled one")
	exportDir := flag.String("export-dir", cfg.ExportDir, "Directory for attendance exports")
	debugMode := flag.Bool("debug", cfg.Debug, "Enable debug mode")
	flag.Parse()

	if *matchMinutes <= 0 {
		log.Fatalf("--minutes must be positive, got %d", *matchMinutes)
	}

	cfg.MatchMinutes = *matchMinutes
	cfg.LocalTeamName = *localTeam
	cfg.VisitorTeamName = *visitorTeam
	cfg.RosterFile = *rosterFile
	cfg.ExportDir = *exportDir
	cfg.Debug = *debugMode

	opts := cfg.Options()
	opts.OnExpire = func(s backend.MatchState) {
		log.Printf("Final: %s %d - %d %s", s.LocalTeamName, s.LocalScore, s.VisitorScore, s.VisitorTeamName)
	}

	session, err := backend.NewSession(opts)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	console := backend.NewConsole(session, os.Stdout)
	done := make(chan error, 1)
	go func() {
		done <- console.Run(ctx, os.Stdin)
	}()

	// Wait for the console to finish or an interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			log.Printf("Console error: %v", err)
		}
		session.Close()
	case <-stop:
		// The console goroutine may be mid-command; the process exit takes
		// the match clock with it.
		log.Println("Shutting down...")
		cancel()
	}
}
