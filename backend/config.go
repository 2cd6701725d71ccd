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

	"github.com/caarlos0/env/v11"
)

// Config holds the environment defaults. Command line flags override them.
type Config struct {
	MatchMinutes    int    `env:"MK_MATCH_MINUTES" envDefault:"35"`
	LocalTeamName   string `env:"MK_LOCAL_TEAM"    envDefault:"Equipo Local"`
	VisitorTeamName string `env:"MK_VISITOR_TEAM"  envDefault:"Equipo Visitante"`
	RosterFile      string `env:"MK_ROSTER_FILE"`
	ExportDir       string `env:"MK_EXPORT_DIR"    envDefault:"."`
	Debug           bool   `env:"MK_DEBUG"`
}

// LoadConfig parses Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MatchMinutes <= 0 {
		return Config{}, fmt.Errorf("MK_MATCH_MINUTES must be positive, got %d", cfg.MatchMinutes)
	}
	return cfg, nil
}

// Options returns session options for this configuration.
func (c Config) Options() Options {
	return Options{
		MatchMinutes:    c.MatchMinutes,
		LocalTeamName:   c.LocalTeamName,
		VisitorTeamName: c.VisitorTeamName,
		RosterFile:      c.RosterFile,
		ExportDir:       c.ExportDir,
		Debug:           c.Debug,
	}
}
