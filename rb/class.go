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
	"sort"
	"strconv"
)

type Visibility uint8

const (
	Public Visibility = iota
	Private
)

// MethodFunc implements a method; self is always a reference.
type MethodFunc func(env *Env, self Value, args []Value, block *Block) Value

type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int // -1 for variadic
	Visibility   Visibility
	Fn           MethodFunc
}

// Class is a method table with single inheritance. Classes are objects
// themselves; their singleton methods live on a lazily created metaclass.
type Class struct {
	Name       string
	Superclass *Class
	methods    map[*SymbolObject]*Declaration
	meta       *Class
}

var classes = make(map[string]*Class)

var (
	ObjectClass  = DefineClass("Object", nil)
	ClassClass   = DefineClass("Class", ObjectClass)
	IntegerClass = DefineClass("Integer", ObjectClass)
	FloatClass   = DefineClass("Float", ObjectClass)
	StringClass  = DefineClass("String", ObjectClass)
	SymbolClass  = DefineClass("Symbol", ObjectClass)
	ArrayClass   = DefineClass("Array", ObjectClass)
	NilClass     = DefineClass("NilClass", ObjectClass)
	TrueClass    = DefineClass("TrueClass", ObjectClass)
	FalseClass   = DefineClass("FalseClass", ObjectClass)
)

// DefineClass creates (or reopens) the named class.
func DefineClass(name string, superclass *Class) *Class {
	if c, ok := classes[name]; ok {
		return c
	}
	c := &Class{Name: name, Superclass: superclass, methods: make(map[*SymbolObject]*Declaration)}
	classes[name] = c
	return c
}

func FindClass(name string) *Class {
	return classes[name]
}

func (c *Class) Class() *Class { return c.singleton() }

func (c *Class) ComputeSize() uint {
	return goAllocOverhead + 64 + 16*uint(len(c.methods))
}

func (c *Class) Each(func(Value)) {}

func (c *Class) singleton() *Class {
	if c.meta == nil {
		super := ClassClass
		if c.Superclass != nil {
			super = c.Superclass.singleton()
		}
		c.meta = &Class{Name: "#<Class:" + c.Name + ">", Superclass: super, methods: make(map[*SymbolObject]*Declaration)}
	}
	return c.meta
}

// Declare adds an instance method to the class.
func Declare(c *Class, def *Declaration) {
	c.methods[Intern(def.Name)] = def
}

// DeclareSingleton adds a method callable on the class object itself.
func DeclareSingleton(c *Class, def *Declaration) {
	Declare(c.singleton(), def)
}

// FindMethod walks the superclass chain.
func (c *Class) FindMethod(name *SymbolObject) *Declaration {
	for k := c; k != nil; k = k.Superclass {
		if m, ok := k.methods[name]; ok {
			return m
		}
	}
	return nil
}

// Methods lists the methods declared directly on c, ordered by name.
func (c *Class) Methods() []*Declaration {
	result := make([]*Declaration, 0, len(c.methods))
	for _, m := range c.methods {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (d *Declaration) arity() string {
	if d.MaxParameter < 0 {
		return strconv.Itoa(d.MinParameter) + "+"
	}
	if d.MinParameter == d.MaxParameter {
		return strconv.Itoa(d.MinParameter)
	}
	return fmt.Sprintf("%d..%d", d.MinParameter, d.MaxParameter)
}

func describeReceiver(obj Object) string {
	switch o := obj.(type) {
	case *NilObject:
		return "nil"
	case *Class:
		return "class " + o.Name
	}
	return "an instance of " + obj.Class().Name
}

func dispatch(env *Env, v Value, name *SymbolObject, args []Value, block *Block, publicOnly bool) Value {
	self := v.Object(env)
	if self == nil {
		Raisef("NoMethodError", "undefined method '%s' for an empty Value", name.Name)
	}
	m := self.Class().FindMethod(name)
	if m == nil {
		Raisef("NoMethodError", "undefined method '%s' for %s", name.Name, describeReceiver(self))
	}
	if publicOnly && m.Visibility == Private {
		Raisef("NoMethodError", "private method '%s' called for %s", name.Name, describeReceiver(self))
	}
	if len(args) < m.MinParameter || (m.MaxParameter >= 0 && len(args) > m.MaxParameter) {
		Raisef("ArgumentError", "wrong number of arguments (given %d, expected %s)", len(args), m.arity())
	}
	return m.Fn(env, NewReference(self), args, block)
}
