/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/dc0d/onexit"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/launix-de/natcore/rb"
)

type SettingsT struct {
	MaxDepth int    // grammar nesting limit
	Trace    bool   // write a chrome trace of every parse
	TraceDir string // folder for trace files
	History  string // readline history file
}

var Settings SettingsT = SettingsT{rb.DefaultMaxDepth, false, "", ".natcore-history.tmp"}

// LoadSettings applies, in this order, the JSON settings file, a .env file
// and the NATCORE_* environment variables. Missing files are not an error.
func LoadSettings(s *SettingsT, filename string, dotenv ...string) error {
	if data, err := os.ReadFile(filename); err == nil {
		if err := json.Unmarshal(data, s); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if v, ok := os.LookupEnv("NATCORE_MAXDEPTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NATCORE_MAXDEPTH: %w", err)
		}
		s.MaxDepth = n
	}
	if v, ok := os.LookupEnv("NATCORE_TRACE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NATCORE_TRACE: %w", err)
		}
		s.Trace = b
	}
	if v, ok := os.LookupEnv("NATCORE_TRACEDIR"); ok {
		s.TraceDir = v
	}
	if v, ok := os.LookupEnv("NATCORE_HISTORY"); ok {
		s.History = v
	}
	return nil
}

// NewEnv builds the execution context for the settings. The returned
// function closes the trace file; it is also run on exit signals.
func NewEnv(s SettingsT) (*rb.Env, func(), error) {
	env := rb.NewEnv()
	env.MaxDepth = s.MaxDepth
	if !s.Trace {
		return env, func() {}, nil
	}
	f, err := os.Create(filepath.Join(s.TraceDir, "trace_"+uuid.NewString()+".json"))
	if err != nil {
		return nil, nil, err
	}
	env.Trace = rb.NewTrace(f)
	var once sync.Once
	closeTrace := func() {
		once.Do(func() { env.Trace.Close() })
	}
	onexit.Register(closeTrace) // close trace file on exit
	return env, closeTrace, nil
}
