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
package corelib

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/launix-de/lyra/lyra"
)

func TestSettings_ReadWrite(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(settings)", `("Trace" #f "TracePrint" #f "TraceDir" "" "MaxDepth" 10000)`)
	expect(t, in, `(settings "MaxDepth")`, "10000")
	expect(t, in, `(settings 'MaxDepth 50)`, "#t")
	if in.Settings.MaxDepth != 50 {
		t.Fatalf("MaxDepth not applied: %d", in.Settings.MaxDepth)
	}
	expectErr(t, in, `(settings "MaxDepth" -1)`, lyra.ErrType)
	expectErr(t, in, `(settings "Colour")`, lyra.ErrName)
	expectErr(t, in, `(settings "Colour" 1)`, lyra.ErrName)
	expectErr(t, in, `(settings 1)`, lyra.ErrType)
}

func TestSettings_MaxDepthLimitsRecursion(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, `(settings "MaxDepth" 200)`, "#t")
	err := expectErr(t, in, `
		(define (deep n) (if (= n 0) 0 (+ 1 (deep (- n 1)))))
		(deep 1000)`, lyra.ErrHost)
	if len(lyra.StackOf(err)) == 0 {
		t.Fatalf("expected a backtrace")
	}
	// tail calls are not limited
	expect(t, in, `
		(define (flat n) (if (= n 0) 'ok (flat (- n 1))))
		(flat 1000)`, "ok")
}

func TestSettings_Trace(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	dir := t.TempDir()
	expect(t, in, `(settings "TraceDir" `+strconv.Quote(dir)+`)`, "#t")
	expect(t, in, `(settings "Trace" #t)`, "#t")
	expect(t, in, "(inc 1)", "2")
	expect(t, in, `(settings "Trace" #f)`, "#t")
	data, err := os.ReadFile(filepath.Join(dir, "trace_"+in.ID.String()+".json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 2 || data[0] != '[' || data[len(data)-1] != ']' {
		t.Fatalf("trace file is not a closed json array: %q", data)
	}
}
