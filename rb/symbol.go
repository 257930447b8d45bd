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

import "sync"
import "github.com/launix-de/NonLockingReadMap"

// SymbolObject is an interned name. Two symbols with the same name are the
// same pointer, so symbols compare by identity.
type SymbolObject struct {
	Name string
}

/* implement NonLockingReadMap */
func (s SymbolObject) GetKey() string { return s.Name }

func (s SymbolObject) ComputeSize() uint { return goAllocOverhead + 16 + uint(len(s.Name)) }

func (s *SymbolObject) Class() *Class { return SymbolClass }

func (s *SymbolObject) Each(func(Value)) {}

func (s *SymbolObject) String() string { return s.Name }

// reads never block; writers are serialized so a name is only ever inserted once
var symbols NonLockingReadMap.NonLockingReadMap[SymbolObject, string] = NonLockingReadMap.New[SymbolObject, string]()
var symbolsWrite sync.Mutex

// Intern returns the unique symbol for name.
func Intern(name string) *SymbolObject {
	if sym := symbols.Get(name); sym != nil {
		return sym
	}
	symbolsWrite.Lock()
	defer symbolsWrite.Unlock()
	if sym := symbols.Get(name); sym != nil {
		return sym
	}
	sym := &SymbolObject{Name: name}
	symbols.Set(sym)
	return sym
}

// Symbols lists every interned symbol ordered by name.
func Symbols() []*SymbolObject {
	return append([]*SymbolObject(nil), symbols.GetAll()...)
}
