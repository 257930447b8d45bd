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
package rb

import (
	"math"
	"strconv"
	"strings"
)

// Inspect renders v in language notation by sending it inspect.
func Inspect(env *Env, v Value) string {
	result := v.Send(env, Intern("inspect"), nil, nil)
	if s, ok := result.ObjectOrNil().(*StringObject); ok {
		return s.Str
	}
	return result.String()
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if abs := math.Abs(f); f != 0 && (abs < 1e-4 || abs >= 1e16) {
		// 1e+20 -> 1.0e+20
		s := strconv.FormatFloat(f, 'e', -1, 64)
		if i := strings.IndexByte(s, 'e'); !strings.Contains(s[:i], ".") {
			s = s[:i] + ".0" + s[i:]
		}
		return s
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func inspectArray(env *Env, a *ArrayObject) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range a.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Inspect(env, item))
	}
	b.WriteByte(']')
	return b.String()
}
