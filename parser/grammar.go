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
	"regexp"
	"sync"

	packrat "github.com/launix-de/go-packrat/v2"
	"github.com/launix-de/natcore/rb"
)

// Action turns a rule match into a value. Children are evaluated on demand
// through Node.Eval, so an action decides which parts of its match to build.
type Action func(n *Node, env *rb.Env) rb.Value

// Rule is a named packrat parser of a grammar. Matches of a rule become
// Nodes; matches of the anonymous parsers inside it are flattened.
type Rule struct {
	Name    string
	Pattern packrat.Parser
	Action  Action
	Hidden  bool // consumed for sequencing, never a child of the parent match
	grammar *Grammar
}

// Grammar is a table of named rules composed by name through Ref.
type Grammar struct {
	rules     map[string]*Rule
	separator *regexp.Regexp
	start     string

	m        sync.Mutex // one match at a time, guards depth
	depth    int
	maxDepth int
}

// NewGrammar creates an empty grammar that separates tokens by tabs and spaces.
func NewGrammar() *Grammar {
	return &Grammar{rules: make(map[string]*Rule), separator: regexp.MustCompile("^[\t ]+")}
}

func (g *Grammar) Define(name string, p packrat.Parser, action Action) *Rule {
	r := &Rule{Name: name, Pattern: p, Action: action, grammar: g}
	g.rules[name] = r
	return r
}

// SetSeparator sets the skipper regex; it must be anchored with ^.
func (g *Grammar) SetSeparator(skipper *regexp.Regexp) { g.separator = skipper }

func (g *Grammar) SetStart(name string) { g.start = name }

func (g *Grammar) Rule(name string) *Rule { return g.rules[name] }

func (g *Grammar) mustRule(name string) *Rule {
	r, ok := g.rules[name]
	if !ok {
		panic("grammar: undefined rule " + name)
	}
	return r
}

// Match runs the rule's pattern and wraps the result into a node owned by
// the rule.
func (r *Rule) Match(s *packrat.Scanner) *packrat.Node {
	g := r.grammar
	g.depth++
	if g.depth > g.maxDepth {
		rb.Raise("SystemStackError", "stack level too deep")
	}
	m := r.Pattern.Match(s)
	g.depth--
	if m == nil {
		return nil
	}
	return &packrat.Node{m.Matched, m.Start, r, []*packrat.Node{m}}
}

func (r *Rule) String() string { return r.Name }

type refParser struct { // forward declaration of a rule
	grammar *Grammar
	name    string
	rule    *Rule // once resolved
}

// Ref refers to a rule by name, so rules may be defined in any order and
// may recurse.
func (g *Grammar) Ref(name string) packrat.Parser {
	return &refParser{grammar: g, name: name}
}

func (p *refParser) Match(s *packrat.Scanner) *packrat.Node {
	if p.rule == nil {
		p.rule = p.grammar.mustRule(p.name)
	}
	return p.rule.Match(s)
}

// Node is a successful rule match.
type Node struct {
	Rule     *Rule
	Children []*Node
	text     string
}

// Text is the matched input without the leading separator.
func (n *Node) Text() string { return n.text }

func (n *Node) Len() int { return len(n.Children) }

func (n *Node) At(i int) *Node { return n.Children[i] }

// Eval runs the rule's action. Rules without an action evaluate all their
// children in order and yield the first result.
func (n *Node) Eval(env *rb.Env) rb.Value {
	if n.Rule.Action != nil {
		return n.Rule.Action(n, env)
	}
	var first rb.Value
	for i, c := range n.Children {
		v := c.Eval(env)
		if i == 0 {
			first = v
		}
	}
	return first
}

func (g *Grammar) node(m *packrat.Node) *Node {
	text := m.Matched
	if loc := g.separator.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	}
	n := &Node{Rule: m.Parser.(*Rule), text: text}
	for _, c := range m.Children {
		g.collect(n, c)
	}
	return n
}

// collect adds the outermost non-hidden rule matches below m to n.
func (g *Grammar) collect(n *Node, m *packrat.Node) {
	if m == nil {
		return
	}
	if r, ok := m.Parser.(*Rule); ok {
		if !r.Hidden {
			n.Children = append(n.Children, g.node(m))
		}
		return
	}
	for _, c := range m.Children {
		g.collect(n, c)
	}
}

func (g *Grammar) match(input string, maxDepth int) *Node {
	g.m.Lock()
	defer g.m.Unlock()
	g.depth, g.maxDepth = 0, maxDepth
	if g.maxDepth <= 0 {
		g.maxDepth = rb.DefaultMaxDepth
	}
	root := g.mustRule(g.start)
	scanner := packrat.NewScanner(input, g.separator)
	m, err := packrat.Parse(root, scanner)
	for m != nil && m.Parser != packrat.Parser(root) && len(m.Children) == 1 {
		m = m.Children[0] // unwrap to the start rule's own node
	}
	if err != nil || m == nil || m.Parser != packrat.Parser(root) {
		rb.Raise("SyntaxError", "syntax error")
	}
	return g.node(m)
}

// Run matches input against the start rule and evaluates the match. A
// failed match raises SyntaxError.
func (g *Grammar) Run(env *rb.Env, input string) rb.Value {
	return g.match(input, env.MaxDepth).Eval(env)
}
