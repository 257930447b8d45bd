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

// DefaultMaxDepth bounds grammar rule nesting while parsing.
const DefaultMaxDepth = 4096

// Env is the execution context handed to every operation that may allocate.
// It is not safe for concurrent use; each thread of execution owns one.
type Env struct {
	Heap     *Heap
	Trace    *Tracefile // nil: tracing off
	MaxDepth int
}

func NewEnv() *Env {
	return &Env{Heap: NewHeap(), MaxDepth: DefaultMaxDepth}
}

func (en *Env) Nil() Value { return NewReference(NilObj) }

// boxed constructors, all tracked by the heap

func (en *Env) NewIntegerObject(i int64) Value {
	return NewReference(en.Heap.Allocate(&IntegerObject{Int: i}))
}

func (en *Env) NewFloatObject(f float64) Value {
	return NewReference(en.Heap.Allocate(&FloatObject{Float: f}))
}

func (en *Env) NewString(s string) Value {
	return NewReference(en.Heap.Allocate(&StringObject{Str: s}))
}

func (en *Env) NewArray(items ...Value) Value {
	return NewReference(en.Heap.Allocate(&ArrayObject{Items: items}))
}

func (en *Env) NewSymbol(name string) Value {
	return NewReference(Intern(name))
}
