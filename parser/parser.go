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

// Parse turns source text into a [:block, expr...] AST. Every failure of
// the grammar comes back as an *rb.Exception of kind SyntaxError (or
// SystemStackError when the nesting limit of env is exceeded).
func Parse(env *rb.Env, source string) (result rb.Value, err error) {
	if ex := rb.Rescue(func() {
		result = MustParse(env, source)
	}); ex != nil {
		return rb.Value{}, ex
	}
	return result, nil
}

// MustParse is Parse for callers inside the interpreter: errors are raised.
func MustParse(env *rb.Env, source string) (result rb.Value) {
	if env.Trace != nil {
		env.Trace.Duration("parse", "parser", func() {
			result = language.Run(env, source)
		})
		return
	}
	return language.Run(env, source)
}
