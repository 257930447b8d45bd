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
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"testing"
)

func TestInternIsIdentity(t *testing.T) {
	a := Intern("some_name")
	b := Intern("some_" + "name")
	if a != b {
		t.Fatalf("same name must intern to the same symbol")
	}
	if Intern("other_name") == a {
		t.Fatalf("different names must differ")
	}
	if !NewReference(a).Equal(NewReference(b)) {
		t.Fatalf("symbol values compare by identity")
	}
}

func TestInternConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*SymbolObject, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Intern("raced_symbol")
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		if r != results[0] {
			t.Fatalf("concurrent interning produced two symbols")
		}
	}
}

func TestSymbolsOrdered(t *testing.T) {
	Intern("zz_last")
	Intern("aa_first")
	syms := Symbols()
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.Name
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("symbols not ordered: %v", names)
	}
}

func TestHeapSweep(t *testing.T) {
	env := NewEnv()
	keep := env.NewArray(env.NewString("child"), NewInteger(1))
	env.NewString("garbage")
	env.NewIntegerObject(3)
	if env.Heap.Len() != 4 {
		t.Fatalf("expected 4 tracked objects, got %d", env.Heap.Len())
	}
	size := env.Heap.Bytes()
	if dropped := env.Heap.Sweep(keep); dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", dropped)
	}
	if env.Heap.Len() != 2 || env.Heap.Bytes() >= size {
		t.Fatalf("sweep should keep the array and its child: %s", env.Heap)
	}
	if env.Heap.Sweep() != 2 || env.Heap.Len() != 0 || env.Heap.Bytes() != 0 {
		t.Fatalf("sweep without roots drops everything: %s", env.Heap)
	}
	if env.Heap.Allocations() != 4 {
		t.Fatalf("allocation counter is monotonic")
	}
	if !strings.Contains(env.Heap.String(), "0 objects") {
		t.Fatalf("unexpected stats: %s", env.Heap)
	}
}

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func TestTraceIsValidJSON(t *testing.T) {
	var out bufferCloser
	tr := NewTrace(&out)
	ran := false
	tr.Duration("parse", "parser", func() { ran = true })
	tr.Event("file.rb", "parser", "i")
	tr.Close()
	if !ran || !out.closed {
		t.Fatalf("duration must run f and close must close the file")
	}
	var events []map[string]any
	if err := json.Unmarshal(out.Bytes(), &events); err != nil {
		t.Fatalf("trace is not JSON: %v\n%s", err, out.String())
	}
	if len(events) != 3 || events[0]["ph"] != "B" || events[1]["ph"] != "E" || events[2]["name"] != "file.rb" {
		t.Fatalf("unexpected events: %v", events)
	}
}
