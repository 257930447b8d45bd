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
	"os"
	"path/filepath"
	"testing"

	"github.com/launix-de/natcore/rb"
)

// unsetEnv clears a variable for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadSettings(t *testing.T) {
	for _, key := range []string{"NATCORE_MAXDEPTH", "NATCORE_TRACE", "NATCORE_TRACEDIR", "NATCORE_HISTORY"} {
		unsetEnv(t, key)
	}
	dir := t.TempDir()
	settingsFile := filepath.Join(dir, "settings.json")
	os.WriteFile(settingsFile, []byte(`{"MaxDepth": 100, "History": "from-json"}`), 0644)
	dotenv := filepath.Join(dir, ".env")
	os.WriteFile(dotenv, []byte("NATCORE_HISTORY=from-dotenv\nNATCORE_TRACEDIR=/tmp/traces\n"), 0644)
	t.Setenv("NATCORE_MAXDEPTH", "200")

	s := Settings
	if err := LoadSettings(&s, settingsFile, dotenv); err != nil {
		t.Fatal(err)
	}
	if s.MaxDepth != 200 {
		t.Fatalf("environment should override the settings file, got %d", s.MaxDepth)
	}
	if s.History != "from-dotenv" || s.TraceDir != "/tmp/traces" {
		t.Fatalf(".env not applied: %+v", s)
	}
	if s.Trace {
		t.Fatalf("trace should keep its default")
	}
}

func TestLoadSettingsMissingFiles(t *testing.T) {
	unsetEnv(t, "NATCORE_MAXDEPTH")
	dir := t.TempDir()
	s := Settings
	if err := LoadSettings(&s, filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env")); err != nil {
		t.Fatalf("missing files are fine: %v", err)
	}
	if s != Settings {
		t.Fatalf("defaults changed: %+v", s)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "settings.json")
	os.WriteFile(broken, []byte(`{"MaxDepth": "deep"}`), 0644)
	s := Settings
	if err := LoadSettings(&s, broken, filepath.Join(dir, "none.env")); err == nil {
		t.Fatalf("expected a decode error")
	}
	t.Setenv("NATCORE_TRACE", "maybe")
	s = Settings
	if err := LoadSettings(&s, filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env")); err == nil {
		t.Fatalf("expected a bool parse error")
	}
}

func TestNewEnvTrace(t *testing.T) {
	dir := t.TempDir()
	s := Settings
	s.Trace = true
	s.TraceDir = dir
	s.MaxDepth = 77
	env, closeTrace, err := NewEnv(s)
	if err != nil {
		t.Fatal(err)
	}
	if env.MaxDepth != 77 {
		t.Fatalf("max depth not applied")
	}
	source := filepath.Join(dir, "prog.rb")
	os.WriteFile(source, []byte("1 + 2\n"), 0644)
	if !parseAndPrint(env, source) {
		t.Fatalf("parse failed")
	}
	closeTrace()
	closeTrace()
	files, _ := filepath.Glob(filepath.Join(dir, "trace_*.json"))
	if len(files) != 1 {
		t.Fatalf("expected one trace file, got %v", files)
	}
	data, _ := os.ReadFile(files[0])
	var events []map[string]any
	if err := json.Unmarshal(data, &events); err != nil {
		t.Fatalf("trace is not valid JSON: %v\n%s", err, data)
	}
	if len(events) == 0 {
		t.Fatalf("no events traced")
	}
}

func TestIncomplete(t *testing.T) {
	for src, want := range map[string]bool{
		"1 + 2":         false,
		"1 +":           true,
		"foo(1,":        true,
		"foo(1":         true,
		"foo(1)":        false,
		"'open":         true,
		`"a\"`:          true,
		`"a\\"`:         false,
		"'(' + 1":       false,
		"":              false,
		"puts 'x'   \t": false,
	} {
		if got := incomplete(src); got != want {
			t.Fatalf("incomplete(%q) = %v, expected %v", src, got, want)
		}
	}
}

func TestCommand(t *testing.T) {
	env := rb.NewEnv()
	for _, args := range [][]string{{"heap"}, {"symbols"}, {"methods", "Integer"}, {"methods", "Nope"}, {"methods"}, {"help"}, {}} {
		if !command(env, args) {
			t.Fatalf("%v should keep the prompt open", args)
		}
	}
	if command(env, []string{"quit"}) || command(env, []string{"q"}) {
		t.Fatalf(":quit should end the prompt")
	}
}
