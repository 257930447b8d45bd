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
	"strconv"
	"strings"

	packrat "github.com/launix-de/go-packrat/v2"
	"github.com/launix-de/natcore/rb"
)

var (
	symBlock = rb.Intern("block")
	symCall  = rb.Intern("call")
	symLit   = rb.Intern("lit")
	symStr   = rb.Intern("str")
)

var language = newLanguage()

func atom(text string) packrat.Parser { return packrat.NewAtomParser(text, false, true) }

// token matches a regex after skipping the separator; the match itself is
// contiguous
func token(pattern string) packrat.Parser { return packrat.NewRegexParser(pattern, false, true) }

func and(parsers ...packrat.Parser) packrat.Parser { return packrat.NewAndParser(parsers...) }

func or(parsers ...packrat.Parser) packrat.Parser { return packrat.NewOrParser(parsers...) }

func maybe(p packrat.Parser) packrat.Parser { return packrat.NewMaybeParser(p) }

func many(p packrat.Parser) packrat.Parser {
	return packrat.NewKleeneParser(p, packrat.NewEmptyParser())
}

func newLanguage() *Grammar {
	g := NewGrammar()
	ref := g.Ref

	g.Define("Nl", maybe(atom("\n")), nil).Hidden = true
	g.Define("EndOfExpression", token(`[;\n]`), nil).Hidden = true

	g.Define("Garbage", token(`(?s).+`), func(n *Node, env *rb.Env) rb.Value {
		rb.Raise("SyntaxError", "syntax error")
		return env.Nil()
	})

	g.Define("Program", or(
		and(ref("ValidProgram"), packrat.NewEndParser(true)),
		and(ref("ValidProgram"), ref("Garbage")),
		ref("Garbage"),
	), nil)
	g.SetStart("Program")

	g.Define("ValidProgram", and(
		ref("Expression"),
		many(and(ref("EndOfExpression"), ref("Expression"))),
	), func(n *Node, env *rb.Env) rb.Value {
		block := &rb.ArrayObject{Items: []rb.Value{rb.NewReference(symBlock)}}
		for _, item := range n.Children {
			block.Push(item.Eval(env))
		}
		return rb.NewReference(env.Heap.Allocate(block))
	})

	g.Define("Expression", or(
		ref("Sum"),
		ref("CallWithParens"),
		ref("CallWithoutParens"),
		ref("DqString"),
		ref("SqString"),
		ref("Numeric"),
	), nil)

	// operand (operator operand)*, folded to the left
	g.Define("Sum", and(ref("Product"), many(and(ref("SumOperator"), ref("Nl"), ref("Product")))), binaryOperation)
	g.Define("SumOperator", token(`[+\-]`), internText)
	g.Define("Product", and(ref("Atomic"), many(and(ref("ProductOperator"), ref("Nl"), ref("Atomic")))), binaryOperation)
	g.Define("ProductOperator", token(`[*/]`), internText)

	g.Define("Atomic", or(
		ref("Numeric"),
		and(atom("("), ref("Nl"), ref("Sum"), ref("Nl"), atom(")")),
		ref("CallWithParens"),
		ref("CallWithoutParens"),
		ref("DqString"),
		ref("SqString"),
	), nil)
	g.Define("Numeric", or(ref("Float"), ref("Integer")), nil)

	g.Define("CallWithoutParens", and(ref("Identifier"), maybe(ref("Args"))), implicitSelfCall)
	g.Define("CallWithParens", and(ref("Identifier"), atom("("), ref("Nl"), maybe(ref("Args")), ref("Nl"), atom(")")), implicitSelfCall)
	g.Define("Args", and(ref("Expression"), many(and(atom(","), ref("Nl"), ref("Expression")))), func(n *Node, env *rb.Env) rb.Value {
		// unpacked by implicitSelfCall, so not tracked by the heap
		args := &rb.ArrayObject{Items: make([]rb.Value, n.Len())}
		for i, item := range n.Children {
			args.Items[i] = item.Eval(env)
		}
		return rb.NewReference(args)
	})
	g.Define("Identifier", token(`[a-z_][a-zA-Z0-9_]*`), internText)

	g.Define("Float", token(`-?[0-9]+\.[0-9]+`), func(n *Node, env *rb.Env) rb.Value {
		f, err := strconv.ParseFloat(n.Text(), 64)
		if err != nil {
			rb.Raise("SyntaxError", "syntax error")
		}
		return env.NewArray(rb.NewReference(symLit), env.NewFloatObject(f))
	})
	g.Define("Integer", token(`-?[0-9]+`), func(n *Node, env *rb.Env) rb.Value {
		i, err := strconv.ParseInt(n.Text(), 10, 64)
		if err != nil {
			rb.Raise("SyntaxError", "syntax error") // out of range
		}
		return env.NewArray(rb.NewReference(symLit), env.NewIntegerObject(i))
	})

	// a backslash always takes the next character along
	g.Define("DqString", token(`(?s)"(?:\\.|[^"\\])*"`), func(n *Node, env *rb.Env) rb.Value {
		return env.NewArray(rb.NewReference(symStr), env.NewString(unescapeDouble(quoted(n.Text()))))
	})
	g.Define("SqString", token(`(?s)'(?:\\.|[^'\\])*'`), func(n *Node, env *rb.Env) rb.Value {
		return env.NewArray(rb.NewReference(symStr), env.NewString(unescapeSingle(quoted(n.Text()))))
	})

	return g
}

func internText(n *Node, env *rb.Env) rb.Value {
	return env.NewSymbol(n.Text())
}

func binaryOperation(n *Node, env *rb.Env) rb.Value {
	left := n.At(0).Eval(env)
	for i := 1; i+1 < n.Len(); i += 2 {
		op := n.At(i).Eval(env)
		right := n.At(i + 1).Eval(env)
		left = env.NewArray(rb.NewReference(symCall), left, op, right)
	}
	return left
}

// [:call, nil, name, args...]
func implicitSelfCall(n *Node, env *rb.Env) rb.Value {
	call := &rb.ArrayObject{Items: []rb.Value{rb.NewReference(symCall), env.Nil(), n.At(0).Eval(env)}}
	if n.Len() > 1 {
		args := n.At(1).Eval(env).ObjectOrNil().(*rb.ArrayObject)
		for _, arg := range args.Items {
			call.Push(arg)
		}
	}
	return rb.NewReference(env.Heap.Allocate(call))
}

// quoted strips the surrounding quote characters.
func quoted(s string) string {
	return s[1 : len(s)-1]
}

// \n and \t are translated, any other escaped character stands for itself
func unescapeDouble(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// only \\ and \' are escapes; any other backslash is kept with its character
func unescapeSingle(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case '\\', '\'':
				b.WriteByte(s[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
