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
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/launix-de/natcore/parser"
	"github.com/launix-de/natcore/rb"
)

const newprompt = "\033[32m>\033[0m "
const contprompt = "\033[32m.\033[0m "
const resultprompt = "\033[31m=\033[0m "

func Repl(env *rb.Env, history string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       history,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	l.CaptureExitSignal()

	var last rb.Value
	oldline := ""
	for {
		line, err := l.Readline()
		line = oldline + line
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			oldline = ""
			l.SetPrompt(newprompt)
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if !command(env, strings.Fields(line[1:])) {
				return nil
			}
			continue
		}

		result, err := parser.Parse(env, line)
		if err != nil && incomplete(line) {
			// keep oldline
			oldline = line + "\n"
			l.SetPrompt(contprompt)
			continue
		}
		oldline = ""
		l.SetPrompt(newprompt)
		if err != nil {
			printError("user prompt", err)
			continue
		}
		fmt.Print(resultprompt)
		printValue(env, result)
		last = result
		env.Heap.Sweep(last)
	}
}

// command runs a :meta command; false ends the prompt.
func command(env *rb.Env, args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "quit", "q":
		return false
	case "heap":
		fmt.Println(env.Heap)
	case "symbols":
		syms := rb.Symbols()
		names := make([]string, len(syms))
		for i, sym := range syms {
			names[i] = sym.Name
		}
		fmt.Println(len(syms), "symbols:", strings.Join(names, " "))
	case "methods":
		if len(args) < 2 {
			fmt.Println("usage: :methods ClassName")
			break
		}
		class := rb.FindClass(args[1])
		if class == nil {
			fmt.Println("unknown class", args[1])
			break
		}
		for k := class; k != nil; k = k.Superclass {
			for _, m := range k.Methods() {
				fmt.Printf("%s#%s\t%s\n", k.Name, m.Name, m.Desc)
			}
		}
	default:
		fmt.Println("commands: :heap :symbols :methods ClassName :quit")
	}
	return true
}

// incomplete reports input that may still be completed on the next line:
// an open string or paren, or a trailing operator or comma.
func incomplete(src string) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
	}
	if quote != 0 || depth > 0 {
		return true
	}
	trimmed := strings.TrimRight(src, " \t")
	return trimmed != "" && strings.ContainsAny(trimmed[len(trimmed)-1:], "+-*/,(")
}
