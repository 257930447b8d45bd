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

import "io"
import "sync"
import "time"
import "encoding/json"

// Tracefile writes events in the chrome://tracing JSON array format.
type Tracefile struct {
	isFirst bool
	file    io.WriteCloser
	start   time.Time
	m       sync.Mutex
}

type traceEvent struct {
	Name  string `json:"name"`
	Cat   string `json:"cat"`
	Ph    string `json:"ph"`
	Ts    int64  `json:"ts"` // microseconds since trace start
	Pid   int    `json:"pid"`
	Tid   int    `json:"tid"`
	Scope string `json:"s"`
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	return &Tracefile{isFirst: true, file: file, start: time.Now()}
}

func (t *Tracefile) Close() error {
	t.m.Lock()
	defer t.m.Unlock()
	t.file.Write([]byte("]"))
	return t.file.Close()
}

// Duration records f as a begin/end pair.
func (t *Tracefile) Duration(name string, cat string, f func()) {
	t.Event(name, cat, "B")
	defer t.Event(name, cat, "E")
	f()
}

// Event writes a single event; typ is B/E for begin/end or i for instant events.
func (t *Tracefile) Event(name string, cat string, typ string) {
	b, _ := json.Marshal(traceEvent{name, cat, typ, time.Since(t.start).Microseconds(), 0, 0, "g"})
	t.m.Lock()
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	t.file.Write(b)
	t.m.Unlock()
}
