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
	"strings"
	"testing"

	"github.com/launix-de/lyra/lyra"
)

func TestMeta_ParseAndEval(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, `(parse "(+ 1 2) 'x")`, "((+ 1 2) (quote x))")
	expect(t, in, `(eval! (parse "(define y 5) (+ y 1)"))`, "6")
	expect(t, in, "y", "5")
	// eval! sees the local environment of its caller
	expect(t, in, `(let ((z 3)) (eval! '((* z z))))`, "9")
	expectErr(t, in, `(parse "(1 2")`, lyra.ErrSyntax)
	expectErr(t, in, "(eval! 5)", lyra.ErrType)
}

func TestMeta_CallWithEnv(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(call-with-env! + '(1 2 3))", "6")
	expect(t, in, "(call-with-env! (lambda (a b) (list b a)) (list 1 2))", "(2 1)")
	expectErr(t, in, "(call-with-env! car '(1 2))", lyra.ErrArity)
	expectErr(t, in, "(call-with-env! 'car '(1))", lyra.ErrType)
}

func TestMeta_CallStack(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, `
		(define (inner) (call-stack!))
		(define (outer) (cons 'x (inner)))
		(cdr (outer))`, "(<function call-stack!> <function inner> <function outer>)")
	expect(t, in, "(call-stack!)", "(<function call-stack!>)")
}

func TestMeta_GlobalEnv(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(define fresh-binding 77) (car (global-env!))", "(fresh-binding . 77)")
}

func TestMeta_Measure(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(define runs 0) (float? (measure 5 (lambda () (define runs (+ runs 1)))))", "#t")
	expect(t, in, "runs", "5")
	expectErr(t, in, "(measure 0 (lambda () 1))", lyra.ErrType)
	expect(t, in, "(float? (time!))", "#t")
}

func TestMeta_Median(t *testing.T) {
	if m := median([]float64{3, 1, 2}); m != 2 {
		t.Fatalf("odd count: got %v", m)
	}
	// even count: mean of the two middle samples
	if m := median([]float64{4, 1, 3, 2}); m != 2.5 {
		t.Fatalf("even count: got %v", m)
	}
	if m := median([]float64{7}); m != 7 {
		t.Fatalf("single sample: got %v", m)
	}
}

func TestMeta_MeasureTraced(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	dir := t.TempDir()
	expect(t, in, `(settings "TraceDir" `+strconv.Quote(dir)+`)`, "#t")
	expect(t, in, `(settings "Trace" #t)`, "#t")
	expect(t, in, "(float? (measure 2 (lambda () 1)))", "#t")
	expect(t, in, `(settings "Trace" #f)`, "#t")
	data, err := os.ReadFile(filepath.Join(dir, "trace_"+in.ID.String()+".json"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), `"name":"measure"`); n < 4 {
		t.Fatalf("expected a span per run, trace has %d measure events:\n%s", n, data)
	}
}

func TestMeta_Help(t *testing.T) {
	in, out := newTestInterpreter(t, "")
	expect(t, in, "(help)", "'()")
	if !strings.Contains(out.String(), "-- Primitive operators --") || !strings.Contains(out.String(), "  car: ") {
		t.Fatalf("help listing incomplete:\n%s", out.String())
	}
	out.Reset()
	expect(t, in, `(help "vector-iterate")`, "'()")
	if !strings.Contains(out.String(), "Help for: vector-iterate") {
		t.Fatalf("unexpected help output:\n%s", out.String())
	}
	out.Reset()
	expect(t, in, "(help car)", "'()")
	if !strings.Contains(out.String(), "Help for: car") {
		t.Fatalf("unexpected help output:\n%s", out.String())
	}
	out.Reset()
	expect(t, in, "(define (sq x) (p* x x)) (help sq)", "'()")
	if !strings.Contains(out.String(), "Help for: sq") || !strings.Contains(out.String(), "parameters (x)") {
		t.Fatalf("unexpected help output:\n%s", out.String())
	}
	expectErr(t, in, `(help "no-such-function")`, lyra.ErrName)
}

func TestMeta_Introspection(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, `(symbols! "vector-s")`, `("vector-set!" "vector-size")`)
	expect(t, in, "(interpreter-id!)", `"`+in.ID.String()+`"`)
	expect(t, in, "(string? (memory!))", "#t")
}

func TestMeta_StringCollate(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, `(string-collate "a" "b")`, "-1")
	expect(t, in, `(string-collate "b" "a")`, "1")
	expect(t, in, `(string-collate "x" "x")`, "0")
	// digit runs compare numerically
	expect(t, in, `(string-collate "item9" "item10")`, "-1")
	expect(t, in, `(string-collate "a" "B" "de")`, "-1")
	expectErr(t, in, `(string-collate "a" "b" "not a locale")`, lyra.ErrType)
}
