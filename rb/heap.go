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

	"github.com/docker/go-units"
	"github.com/edwingeng/deque"
	"github.com/google/btree"
)

type heapEntry struct {
	id   uint64
	obj  Object
	size uint // at allocation time
}

// Heap tracks every boxed object handed out by promotion and literal
// construction. Memory is reclaimed by the Go collector; Sweep only ends the
// tracking of objects no root reaches any more.
type Heap struct {
	objects     *btree.BTreeG[heapEntry]
	nextID      uint64
	allocations uint64
	bytes       uint
}

func NewHeap() *Heap {
	return &Heap{
		objects: btree.NewG[heapEntry](8, func(a, b heapEntry) bool {
			return a.id < b.id
		}),
	}
}

func (h *Heap) Allocate(obj Object) Object {
	h.nextID++
	h.allocations++
	size := obj.ComputeSize()
	h.objects.ReplaceOrInsert(heapEntry{h.nextID, obj, size})
	h.bytes += size
	return obj
}

// Len is the number of tracked objects.
func (h *Heap) Len() int { return h.objects.Len() }

// Bytes approximates the memory of all tracked objects.
func (h *Heap) Bytes() uint { return h.bytes }

// Allocations counts every Allocate call since creation.
func (h *Heap) Allocations() uint64 { return h.allocations }

// Sweep stops tracking every object not reachable from roots and returns
// how many were dropped.
func (h *Heap) Sweep(roots ...Value) int {
	// breadth first worklist
	marked := make(map[Object]bool)
	work := deque.NewDeque()
	for _, root := range roots {
		work.PushBack(root)
	}
	for !work.Empty() {
		obj := work.Front().(Value).ObjectOrNil()
		work.PopFront()
		if obj == nil || marked[obj] {
			continue
		}
		marked[obj] = true
		obj.Each(func(child Value) {
			work.PushBack(child)
		})
	}

	var dead []heapEntry
	h.objects.Ascend(func(e heapEntry) bool {
		if !marked[e.obj] {
			dead = append(dead, e)
		}
		return true
	})
	for _, e := range dead {
		h.objects.Delete(e)
		h.bytes -= e.size
	}
	return len(dead)
}

func (h *Heap) String() string {
	return fmt.Sprintf("%d objects, %s tracked, %d allocations", h.Len(), units.HumanSize(float64(h.bytes)), h.allocations)
}
