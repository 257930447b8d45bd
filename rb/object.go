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

import "unsafe"

// Object is a heap resident language object. Values reference objects but
// never own them.
type Object interface {
	Class() *Class
	// ComputeSize approximates the memory held by the object.
	ComputeSize() uint
	// Each visits the values the object references (for the heap sweep).
	Each(fn func(Value))
}

const (
	valueSize       = uint(unsafe.Sizeof(Value{}))
	goAllocOverhead = uint(16)
)

type IntegerObject struct {
	Int int64
}

func (o *IntegerObject) Class() *Class { return IntegerClass }
func (o *IntegerObject) ComputeSize() uint { return goAllocOverhead + 8 }
func (o *IntegerObject) Each(func(Value)) {}

type FloatObject struct {
	Float float64
}

func (o *FloatObject) Class() *Class { return FloatClass }
func (o *FloatObject) ComputeSize() uint { return goAllocOverhead + 8 }
func (o *FloatObject) Each(func(Value)) {}

type StringObject struct {
	Str string
}

func (o *StringObject) Class() *Class { return StringClass }
func (o *StringObject) ComputeSize() uint { return goAllocOverhead + 16 + uint(len(o.Str)) }
func (o *StringObject) Each(func(Value)) {}

type ArrayObject struct {
	Items []Value
}

func (o *ArrayObject) Class() *Class { return ArrayClass }

func (o *ArrayObject) ComputeSize() uint {
	return goAllocOverhead + 24 + valueSize*uint(cap(o.Items))
}

func (o *ArrayObject) Each(fn func(Value)) {
	for _, item := range o.Items {
		fn(item)
	}
}

func (o *ArrayObject) Push(v Value) { o.Items = append(o.Items, v) }

func (o *ArrayObject) Len() int { return len(o.Items) }

// At supports negative indices counting from the end; out of range yields
// the empty Value.
func (o *ArrayObject) At(i int) Value {
	if i < 0 {
		i += len(o.Items)
	}
	if i < 0 || i >= len(o.Items) {
		return Value{}
	}
	return o.Items[i]
}

type NilObject struct{}

// NilObj is the single language nil.
var NilObj = &NilObject{}

func (o *NilObject) Class() *Class { return NilClass }
func (o *NilObject) ComputeSize() uint { return 0 }
func (o *NilObject) Each(func(Value)) {}

type BoolObject struct {
	value bool
}

var (
	TrueObj  = &BoolObject{true}
	FalseObj = &BoolObject{false}
)

func (o *BoolObject) Class() *Class {
	if o.value {
		return TrueClass
	}
	return FalseClass
}

func (o *BoolObject) ComputeSize() uint { return 0 }
func (o *BoolObject) Each(func(Value)) {}

// Bool returns the language true or false.
func Bool(b bool) Value {
	if b {
		return NewReference(TrueObj)
	}
	return NewReference(FalseObj)
}

// Block is the optional block argument of a send.
type Block struct {
	Fn func(env *Env, args []Value) Value
}

func (b *Block) Call(env *Env, args ...Value) Value {
	return b.Fn(env, args)
}
