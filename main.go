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
/*
	natcore: tagged values and the surface parser of a small Ruby runtime

	parses source files, command line snippets or prompt input into
	S-expression ASTs and prints them
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/launix-de/natcore/parser"
	"github.com/launix-de/natcore/rb"
)

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return "dummy"
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

var errorColor = color.New(color.FgRed, color.Bold)

func printError(source string, err error) {
	errorColor.Fprintln(os.Stderr, source+": "+err.Error())
}

func printValue(env *rb.Env, v rb.Value) {
	if ex := rb.Rescue(func() {
		fmt.Println(rb.Inspect(env, v))
	}); ex != nil {
		printError("inspect", ex)
	}
}

func parseAndPrint(env *rb.Env, filename string) bool {
	result, err := parser.ParseFile(env, filename)
	if err != nil {
		printError(filename, err)
		return false
	}
	printValue(env, result)
	env.Heap.Sweep()
	return true
}

// watch reparses files whenever they change on disk
func watch(env *rb.Env, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, f := range files {
		if err := watcher.Add(f); err != nil {
			return err
		}
	}
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed := map[string]bool{event.Name: true}
			// flush all other events
			for {
				time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
				select {
				case event := <-watcher.Events:
					changed[event.Name] = true
					continue
				default:
				}
				break
			}
			for name := range changed {
				fmt.Println("reparsing " + name + " ...")
				parseAndPrint(env, name)
				watcher.Add(name) // text editors rename, so we have to rewatch
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError("watch", err)
		}
	}
}

func main() {
	var commands arrayFlags
	flag.Var(&commands, "c", "Parse a snippet given on the command line")
	settingsFile := flag.String("settings", "settings.json", "Settings file (JSON)")
	maxDepth := flag.Int("maxdepth", 0, "Maximum grammar nesting depth (0: from settings)")
	trace := flag.Bool("trace", false, "Write a chrome trace of every parse")
	watchFlag := flag.Bool("watch", false, "Reparse the given files whenever they change")
	replFlag := flag.Bool("repl", false, "Open a prompt after processing the arguments")
	flag.Parse()
	files := flag.Args()

	if err := LoadSettings(&Settings, *settingsFile); err != nil {
		printError("settings", err)
		os.Exit(2)
	}
	if *maxDepth > 0 {
		Settings.MaxDepth = *maxDepth
	}
	if *trace {
		Settings.Trace = true
	}
	env, closeTrace, err := NewEnv(Settings)
	if err != nil {
		printError("trace", err)
		os.Exit(2)
	}

	ok := true
	for _, command := range commands {
		result, err := parser.Parse(env, command)
		if err != nil {
			printError("command line", err)
			ok = false
			continue
		}
		printValue(env, result)
		env.Heap.Sweep()
	}
	for _, f := range files {
		ok = parseAndPrint(env, f) && ok
	}

	if *watchFlag && len(files) > 0 {
		if err := watch(env, files); err != nil {
			printError("watch", err)
			ok = false
		}
	} else if *replFlag || (len(commands) == 0 && len(files) == 0) {
		if err := Repl(env, Settings.History); err != nil {
			printError("prompt", err)
			ok = false
		}
	}

	closeTrace()
	if !ok {
		os.Exit(1)
	}
}
