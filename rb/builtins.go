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
	"strconv"
	"unicode/utf8"
)

func numeric(v Value) (i int64, f float64, isFloat bool, ok bool) {
	switch v.Tag() {
	case TagFastInteger:
		return v.FastInteger(), 0, false, true
	case TagFastDouble:
		return 0, v.FastDouble(), true, true
	}
	switch o := v.ObjectOrNil().(type) {
	case *IntegerObject:
		return o.Int, 0, false, true
	case *FloatObject:
		return 0, o.Float, true, true
	}
	return 0, 0, false, false
}

// ClassName names the class of v without promoting it.
func ClassName(v Value) string {
	switch v.Tag() {
	case TagFastInteger:
		return IntegerClass.Name
	case TagFastDouble:
		return FloatClass.Name
	}
	switch o := v.ObjectOrNil().(type) {
	case nil:
		return "empty Value"
	case *NilObject:
		return "nil"
	case *Class:
		return ClassClass.Name
	default:
		return o.Class().Name
	}
}

func intOp(op byte, a, b int64) int64 {
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	}
	if b == 0 {
		Raise("ZeroDivisionError", "divided by 0")
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q-- // floored division
	}
	return q
}

func floatOp(op byte, a, b float64) float64 {
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	}
	return a / b
}

// arithmetic results stay on the fast path, no boxing
func arith(op byte) MethodFunc {
	return func(env *Env, self Value, args []Value, block *Block) Value {
		a, af, aFloat, _ := numeric(self)
		b, bf, bFloat, ok := numeric(args[0])
		if !ok {
			Raisef("TypeError", "%s can't be coerced into %s", ClassName(args[0]), ClassName(self))
		}
		if !aFloat && !bFloat {
			return NewInteger(intOp(op, a, b))
		}
		if !aFloat {
			af = float64(a)
		}
		if !bFloat {
			bf = float64(b)
		}
		return NewDouble(floatOp(op, af, bf))
	}
}

func numEqual(env *Env, self Value, args []Value, block *Block) Value {
	a, af, aFloat, _ := numeric(self)
	b, bf, bFloat, ok := numeric(args[0])
	if !ok {
		return Bool(false)
	}
	if !aFloat && !bFloat {
		return Bool(a == b)
	}
	if !aFloat {
		af = float64(a)
	}
	if !bFloat {
		bf = float64(b)
	}
	return Bool(af == bf)
}

func numInspect(env *Env, self Value, args []Value, block *Block) Value {
	i, f, isFloat, _ := numeric(self)
	if isFloat {
		return env.NewString(formatFloat(f))
	}
	return env.NewString(strconv.FormatInt(i, 10))
}

func selfString(self Value) *StringObject {
	return self.ObjectOrNil().(*StringObject)
}

func stringArg(v Value) string {
	s, ok := v.ObjectOrNil().(*StringObject)
	if !ok {
		Raisef("TypeError", "no implicit conversion of %s into String", ClassName(v))
	}
	return s.Str
}

func init() {
	// Object
	Declare(ObjectClass, &Declaration{"inspect", "returns a human readable representation", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return env.NewString("#<" + self.ObjectOrNil().Class().Name + ">")
		}})
	Declare(ObjectClass, &Declaration{"to_s", "returns a string representation", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return self.Send(env, Intern("inspect"), nil, nil)
		}})
	Declare(ObjectClass, &Declaration{"==", "identity comparison", 1, 1, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return Bool(self.Equal(args[0]))
		}})
	Declare(ObjectClass, &Declaration{"equal?", "identity comparison", 1, 1, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return Bool(self.Equal(args[0]))
		}})
	Declare(ObjectClass, &Declaration{"class", "returns the class of the receiver", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			if _, ok := self.ObjectOrNil().(*Class); ok {
				return NewReference(ClassClass)
			}
			return NewReference(self.ObjectOrNil().Class())
		}})
	Declare(ObjectClass, &Declaration{"nil?", "true only for nil", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return Bool(false)
		}})
	Declare(ObjectClass, &Declaration{"initialize", "default initializer", 0, -1, Private,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return env.Nil()
		}})

	// Class
	className := func(env *Env, self Value, args []Value, block *Block) Value {
		return env.NewString(self.ObjectOrNil().(*Class).Name)
	}
	Declare(ClassClass, &Declaration{"inspect", "returns the class name", 0, 0, Public, className})
	Declare(ClassClass, &Declaration{"name", "returns the class name", 0, 0, Public, className})

	// Integer and Float
	for _, c := range []*Class{IntegerClass, FloatClass} {
		Declare(c, &Declaration{"+", "adds a number", 1, 1, Public, arith('+')})
		Declare(c, &Declaration{"-", "subtracts a number", 1, 1, Public, arith('-')})
		Declare(c, &Declaration{"*", "multiplies by a number", 1, 1, Public, arith('*')})
		Declare(c, &Declaration{"/", "divides by a number; integer division is floored", 1, 1, Public, arith('/')})
		Declare(c, &Declaration{"==", "numeric equality", 1, 1, Public, numEqual})
		Declare(c, &Declaration{"inspect", "decimal representation", 0, 0, Public, numInspect})
		Declare(c, &Declaration{"to_s", "decimal representation", 0, 0, Public, numInspect})
		Declare(c, &Declaration{"to_i", "truncates to an integer", 0, 0, Public,
			func(env *Env, self Value, args []Value, block *Block) Value {
				i, f, isFloat, _ := numeric(self)
				if isFloat {
					return NewInteger(int64(f))
				}
				return NewInteger(i)
			}})
		Declare(c, &Declaration{"to_f", "converts to a float", 0, 0, Public,
			func(env *Env, self Value, args []Value, block *Block) Value {
				i, f, isFloat, _ := numeric(self)
				if isFloat {
					return NewDouble(f)
				}
				return NewDouble(float64(i))
			}})
	}

	// String
	Declare(StringClass, &Declaration{"+", "concatenates two strings", 1, 1, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return env.NewString(selfString(self).Str + stringArg(args[0]))
		}})
	Declare(StringClass, &Declaration{"==", "compares string contents", 1, 1, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			other, ok := args[0].ObjectOrNil().(*StringObject)
			return Bool(ok && other.Str == selfString(self).Str)
		}})
	Declare(StringClass, &Declaration{"inspect", "quoted representation", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return env.NewString(strconv.Quote(selfString(self).Str))
		}})
	Declare(StringClass, &Declaration{"to_s", "returns self", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return self
		}})
	Declare(StringClass, &Declaration{"length", "number of characters", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return NewInteger(int64(utf8.RuneCountInString(selfString(self).Str)))
		}})

	// Symbol
	Declare(SymbolClass, &Declaration{"inspect", "returns :name", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return env.NewString(":" + self.ObjectOrNil().(*SymbolObject).Name)
		}})
	Declare(SymbolClass, &Declaration{"to_s", "returns the name", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return env.NewString(self.ObjectOrNil().(*SymbolObject).Name)
		}})

	// Array
	Declare(ArrayClass, &Declaration{"inspect", "inspects every element", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return env.NewString(inspectArray(env, self.ObjectOrNil().(*ArrayObject)))
		}})
	Declare(ArrayClass, &Declaration{"size", "number of elements", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return NewInteger(int64(self.ObjectOrNil().(*ArrayObject).Len()))
		}})
	Declare(ArrayClass, &Declaration{"[]", "element at index, negative counts from the end", 1, 1, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			i, _, isFloat, ok := numeric(args[0])
			if !ok || isFloat {
				Raisef("TypeError", "no implicit conversion of %s into Integer", ClassName(args[0]))
			}
			item := self.ObjectOrNil().(*ArrayObject).At(int(i))
			if item.IsEmpty() {
				return env.Nil()
			}
			return item
		}})

	// nil, true, false
	Declare(NilClass, &Declaration{"inspect", "returns nil", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return env.NewString("nil")
		}})
	Declare(NilClass, &Declaration{"to_s", "returns the empty string", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return env.NewString("")
		}})
	Declare(NilClass, &Declaration{"nil?", "true", 0, 0, Public,
		func(env *Env, self Value, args []Value, block *Block) Value {
			return Bool(true)
		}})
	boolInspect := func(env *Env, self Value, args []Value, block *Block) Value {
		return env.NewString(strconv.FormatBool(self.ObjectOrNil().(*BoolObject).value))
	}
	Declare(TrueClass, &Declaration{"inspect", "returns true", 0, 0, Public, boolInspect})
	Declare(FalseClass, &Declaration{"inspect", "returns false", 0, 0, Public, boolInspect})
}
