/*
Copyright (C) 2024  Carl-Philip Hänsch

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
package lyra

import "io"
import "os"
import "sync"
import "time"
import "path/filepath"
import "encoding/json"
import "github.com/dc0d/onexit"

// Tracefile writes function calls in the chrome trace event format
// (load it in chrome://tracing or perfetto).
type Tracefile struct {
	isFirst bool
	closed  bool
	file    io.WriteCloser
	m       sync.Mutex
}

// trace files still open; one exit hook closes them all
var openTraces struct {
	sync.Mutex
	files map[*Tracefile]struct{}
	hook  sync.Once
}

func trackTrace(t *Tracefile) {
	openTraces.hook.Do(func() {
		onexit.Register(closeOpenTraces) // close trace files on exit
	})
	openTraces.Lock()
	defer openTraces.Unlock()
	if openTraces.files == nil {
		openTraces.files = make(map[*Tracefile]struct{})
	}
	openTraces.files[t] = struct{}{}
}

func untrackTrace(t *Tracefile) {
	openTraces.Lock()
	defer openTraces.Unlock()
	delete(openTraces.files, t)
}

func closeOpenTraces() {
	openTraces.Lock()
	files := openTraces.files
	openTraces.files = nil
	openTraces.Unlock()
	for t := range files {
		t.Close()
	}
}

// SetTrace opens or closes the trace file of this interpreter. The file is
// named after the interpreter ID and placed in Settings.TraceDir.
func (in *Interpreter) SetTrace(on bool) error {
	if in.trace != nil {
		untrackTrace(in.trace)
		in.trace.Close()
		in.trace = nil
	}
	in.Settings.Trace = on
	if !on {
		return nil
	}
	name := filepath.Join(in.Settings.TraceDir, "trace_"+in.ID.String()+".json")
	f, err := os.Create(name)
	if err != nil {
		in.Settings.Trace = false
		return WrapHost(err, "cannot open trace file")
	}
	in.trace = NewTrace(f)
	trackTrace(in.trace)
	return nil
}

// TraceSpan runs f; with tracing on, the run shows up as one span called
// name in the trace file.
func (in *Interpreter) TraceSpan(name string, f func()) {
	if in.trace == nil {
		f()
		return
	}
	in.trace.Duration(name, "lyra", f)
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	result := new(Tracefile)
	result.file = file
	result.isFirst = true
	return result
}

func (t *Tracefile) Close() {
	t.m.Lock()
	defer t.m.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.file.Write([]byte("]"))
	t.file.Close()
}

func (t *Tracefile) Duration(name string, cat string, f func()) {
	t.EventHalf(name, cat, "B", 0, 0)
	defer t.EventHalf(name, cat, "E", 0, 0)
	f()
}

func (t *Tracefile) EventHalf(name string, cat string, typ string, tid int, pid int) {
	ts := time.Since(start).Microseconds()
	t.EventFull(name, cat, typ, ts, tid, pid)
}

/*
	@name string function
	@cat string comma separated categories (for filtering)
	@typ B/E for begin/end, X for events
	@ts timestamp in microseconds
*/
func (t *Tracefile) EventFull(name string, cat string, typ string, ts int64, tid int, pid int) {
	t.m.Lock()
	defer t.m.Unlock()
	if t.closed {
		return
	}
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	event := struct {
		Name string `json:"name"`
		Cat  string `json:"cat"`
		Ph   string `json:"ph"`
		Ts   int64  `json:"ts"`
		Pid  int    `json:"pid"`
		Tid  int    `json:"tid"`
		S    string `json:"s"`
	}{name, cat, typ, ts, pid, tid, "g"}
	b, _ := json.Marshal(event)
	t.file.Write(b)
}

var start time.Time = time.Now()
