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

import "github.com/launix-de/natcore/rb"

// ParserClass exposes the parser to the runtime as Parser.parse(source).
var ParserClass = rb.DefineClass("Parser", rb.ObjectClass)

func init() {
	rb.DeclareSingleton(ParserClass, &rb.Declaration{
		Name:         "parse",
		Desc:         "parses a source string into an S-expression AST, raises SyntaxError",
		MinParameter: 1,
		MaxParameter: 1,
		Visibility:   rb.Public,
		Fn: func(env *rb.Env, self rb.Value, args []rb.Value, block *rb.Block) rb.Value {
			source, ok := args[0].ObjectOrNil().(*rb.StringObject)
			if !ok {
				rb.Raisef("TypeError", "no implicit conversion of %s into String", rb.ClassName(args[0]))
			}
			return MustParse(env, source.Str)
		},
	})
}
