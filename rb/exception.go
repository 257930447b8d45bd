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

import "fmt"

// Exception is a language level exception. It travels through panic like
// every other error of the interpreter and is caught with Rescue.
type Exception struct {
	Kind    string
	Message string
}

func (e *Exception) Error() string {
	return e.Kind + ": " + e.Message
}

// Is lets errors.Is match on the kind alone.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	return ok && t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func Raise(kind, message string) {
	panic(&Exception{kind, message})
}

func Raisef(kind, format string, args ...any) {
	panic(&Exception{kind, fmt.Sprintf(format, args...)})
}

// Rescue runs fn and returns the language exception it raised, if any.
// Other panics (tag mismatches, guard violations, runtime errors) keep
// unwinding.
func Rescue(fn func()) (ex *Exception) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Exception); ok {
				ex = e
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}
