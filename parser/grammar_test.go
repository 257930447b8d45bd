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
package parser

import (
	"strings"
	"testing"

	packrat "github.com/launix-de/go-packrat/v2"
	"github.com/launix-de/natcore/rb"
)

// a tiny word list grammar: words separated by spaces and commas
func wordGrammar() *Grammar {
	g := NewGrammar()
	g.Define("List", and(g.Ref("Word"), many(and(g.Ref("Comma"), g.Ref("Word"))), packrat.NewEndParser(true)), func(n *Node, env *rb.Env) rb.Value {
		items := make([]rb.Value, n.Len())
		for i, c := range n.Children {
			items[i] = c.Eval(env)
		}
		return env.NewArray(items...)
	})
	g.Define("Comma", atom(","), nil).Hidden = true
	g.Define("Word", token(`[a-z]+`), func(n *Node, env *rb.Env) rb.Value {
		return env.NewString(n.Text())
	})
	g.SetStart("List")
	return g
}

func TestGrammarHiddenRules(t *testing.T) {
	env := rb.NewEnv()
	got := rb.Inspect(env, wordGrammar().Run(env, "  ab , cd,ef  "))
	if got != `["ab", "cd", "ef"]` {
		t.Fatalf("unexpected result %s", got)
	}
}

func TestGrammarTokensAreContiguous(t *testing.T) {
	env := rb.NewEnv()
	ex := rb.Rescue(func() {
		wordGrammar().Run(env, "a b")
	})
	if ex == nil || ex.Kind != "SyntaxError" {
		t.Fatalf("separator inside a token must not be skipped, got %v", ex)
	}
}

func TestGrammarDefaultAction(t *testing.T) {
	g := NewGrammar()
	g.Define("Pair", and(g.Ref("A"), g.Ref("B")), nil)
	g.Define("A", atom("a"), func(n *Node, env *rb.Env) rb.Value { return rb.NewInteger(1) })
	g.Define("B", atom("b"), func(n *Node, env *rb.Env) rb.Value { return rb.NewInteger(2) })
	g.SetStart("Pair")
	v := g.Run(rb.NewEnv(), "a b")
	if !v.IsFastInteger() || v.FastInteger() != 1 {
		t.Fatalf("rules without an action yield their first child, got %v", v)
	}
}

func TestGrammarNodeText(t *testing.T) {
	g := NewGrammar()
	var text string
	g.Define("Start", and(g.Ref("Number"), packrat.NewEndParser(true)), nil)
	g.Define("Number", token(`[0-9]+`), func(n *Node, env *rb.Env) rb.Value {
		text = n.Text()
		return env.Nil()
	})
	g.SetStart("Start")
	g.Run(rb.NewEnv(), "   123 ")
	if text != "123" {
		t.Fatalf("node text should be the token only: %q", text)
	}
}

func TestGrammarOrderedChoice(t *testing.T) {
	g := NewGrammar()
	var picked string
	g.Define("Start", and(or(g.Ref("Long"), g.Ref("Short")), packrat.NewEndParser(true)), nil)
	g.Define("Long", atom("abc"), func(n *Node, env *rb.Env) rb.Value {
		picked = "long"
		return env.Nil()
	})
	g.Define("Short", token(`a[a-z]*`), func(n *Node, env *rb.Env) rb.Value {
		picked = "short"
		return env.Nil()
	})
	g.SetStart("Start")
	g.Run(rb.NewEnv(), "abc")
	if picked != "long" {
		t.Fatalf("first alternative should win, got %s", picked)
	}
	g.Run(rb.NewEnv(), "abd")
	if picked != "short" {
		t.Fatalf("second alternative should match, got %s", picked)
	}
}

func TestGrammarDepthLimit(t *testing.T) {
	g := NewGrammar()
	g.Define("Nested", or(and(atom("["), g.Ref("Nested"), atom("]")), atom("x")), nil)
	g.SetStart("Nested")
	env := rb.NewEnv()
	env.MaxDepth = 10
	g.Run(env, "[[[x]]]")
	ex := rb.Rescue(func() {
		g.Run(env, strings.Repeat("[", 20)+"x"+strings.Repeat("]", 20))
	})
	if ex == nil || ex.Kind != "SystemStackError" {
		t.Fatalf("expected SystemStackError, got %v", ex)
	}
	// the limit is per match
	g.Run(env, "[[[x]]]")
}

func TestGrammarUndefinedRule(t *testing.T) {
	g := NewGrammar()
	g.Define("Start", g.Ref("Missing"), nil)
	g.SetStart("Start")
	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "undefined rule Missing") {
			t.Fatalf("expected an undefined rule panic, got %v", r)
		}
	}()
	g.Run(rb.NewEnv(), "x")
}
