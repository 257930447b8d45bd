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
	"fmt"
	"math"
	"strconv"
)

// Tag selects which payload slot of a Value is valid.
type Tag uint8

const (
	TagReference Tag = iota
	TagFastInteger
	TagFastDouble
)

func (t Tag) String() string {
	switch t {
	case TagReference:
		return "reference"
	case TagFastInteger:
		return "fast integer"
	case TagFastDouble:
		return "fast double"
	default:
		return "tag " + strconv.Itoa(int(t))
	}
}

// Value is the handle the interpreter passes around: a fast native integer,
// a fast native double or a non-owning reference to a heap Object.
// The zero Value is an empty reference (not the language nil).
type Value struct {
	tag     Tag
	guarded bool
	bits    uint64 // int64 or float64 bits for the fast tags, 0 otherwise
	obj     Object // only set for TagReference
}

// TagMismatch is panicked when a fast accessor is used on the wrong tag.
type TagMismatch struct {
	Want Tag
	Got  Tag
}

func (e *TagMismatch) Error() string {
	return fmt.Sprintf("tag mismatch: %s accessor used on a %s value", e.Want, e.Got)
}

// GuardViolation is panicked when a guarded Value is promoted to an object.
type GuardViolation struct {
	Value Value
}

func (e *GuardViolation) Error() string {
	return fmt.Sprintf("%s is a guarded Value, which means you must call Unguard() on it before promoting it to an object", e.Value)
}

//
// Constructors
//

func NewInteger(i int64) Value {
	return Value{tag: TagFastInteger, bits: uint64(i)}
}

func NewDouble(f float64) Value {
	return Value{tag: TagFastDouble, bits: math.Float64bits(f)}
}

func NewReference(obj Object) Value {
	return Value{tag: TagReference, obj: obj}
}

//
// Accessors
//

func (v Value) Tag() Tag { return v.tag }

func (v Value) IsReference() bool { return v.tag == TagReference }

func (v Value) IsFastInteger() bool { return v.tag == TagFastInteger }

func (v Value) IsFastDouble() bool { return v.tag == TagFastDouble }

func (v Value) FastInteger() int64 {
	if v.tag != TagFastInteger {
		panic(&TagMismatch{TagFastInteger, v.tag})
	}
	return int64(v.bits)
}

func (v Value) FastDouble() float64 {
	if v.tag != TagFastDouble {
		panic(&TagMismatch{TagFastDouble, v.tag})
	}
	return math.Float64frombits(v.bits)
}

// ObjectOrNil returns the referenced object without ever promoting.
// Fast values yield nil.
func (v Value) ObjectOrNil() Object {
	if v.tag == TagReference {
		return v.obj
	}
	return nil
}

// IsEmpty reports an empty reference, the zero Value.
func (v Value) IsEmpty() bool { return v.tag == TagReference && v.obj == nil }

// Present is the truthiness used by AST building code: everything but the
// empty Value, fast values included.
func (v Value) Present() bool { return !v.IsEmpty() }

// Object returns the heap object behind v. Fast values are boxed through the
// heap on every call; the box is not cached on v.
func (v Value) Object(env *Env) Object {
	if v.guarded {
		panic(&GuardViolation{v})
	}
	switch v.tag {
	case TagFastInteger:
		return env.Heap.Allocate(&IntegerObject{Int: int64(v.bits)})
	case TagFastDouble:
		return env.Heap.Allocate(&FloatObject{Float: math.Float64frombits(v.bits)})
	default:
		return v.obj
	}
}

// Guard forbids promotion of v and returns it.
func (v *Value) Guard() Value {
	v.guarded = true
	return *v
}

// Unguard allows promotion of v again and returns it.
func (v *Value) Unguard() Value {
	v.guarded = false
	return *v
}

func (v Value) IsGuarded() bool { return v.guarded }

// Equal is the low level identity check, not the language-level ==.
// Integers are widened when compared with doubles; references compare by
// identity and never equal a fast value.
func (v Value) Equal(other Value) bool {
	switch v.tag {
	case TagFastInteger:
		switch other.tag {
		case TagFastInteger:
			return int64(v.bits) == int64(other.bits)
		case TagFastDouble:
			return float64(int64(v.bits)) == math.Float64frombits(other.bits)
		}
		return false
	case TagFastDouble:
		switch other.tag {
		case TagFastInteger:
			return math.Float64frombits(v.bits) == float64(int64(other.bits))
		case TagFastDouble:
			return math.Float64frombits(v.bits) == math.Float64frombits(other.bits)
		}
		return false
	default:
		return other.tag == TagReference && v.obj == other.obj
	}
}

// Send promotes the receiver and dispatches name to it.
func (v Value) Send(env *Env, name *SymbolObject, args []Value, block *Block) Value {
	return dispatch(env, v, name, args, block, false)
}

// PublicSend is Send restricted to public methods.
func (v Value) PublicSend(env *Env, name *SymbolObject, args []Value, block *Block) Value {
	return dispatch(env, v, name, args, block, true)
}

// String is a debugging representation that never promotes.
func (v Value) String() string {
	switch v.tag {
	case TagFastInteger:
		return "Value(" + strconv.FormatInt(int64(v.bits), 10) + ")"
	case TagFastDouble:
		return "Value(" + strconv.FormatFloat(math.Float64frombits(v.bits), 'g', -1, 64) + ")"
	default:
		if v.obj == nil {
			return "Value(empty)"
		}
		return fmt.Sprintf("Value(%s %p)", v.obj.Class().Name, v.obj)
	}
}
