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
	"testing"

	"github.com/launix-de/lyra/lyra"
)

func TestCore_Arithmetic(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(+ 1 2 3)", "6")
	expect(t, in, "(+)", "0")
	expect(t, in, `(+ "a" "b" "c")`, `"abc"`)
	expect(t, in, "(+ 1 2.5)", "3.5")
	expect(t, in, "(- 5)", "-5")
	expect(t, in, "(- 10 1 2)", "7")
	// two operands leave a single bare value in the rest parameter
	expect(t, in, "(+ 5)", "5")
	expect(t, in, "(+ 1 2)", "3")
	expect(t, in, "(- 10 1)", "9")
	expect(t, in, "(* 6 7)", "42")
	expect(t, in, "(/ 8 2)", "4")
	expect(t, in, "(* 2 3 4)", "24")
	expect(t, in, "(*)", "1")
	expect(t, in, "(/ 7 2)", "3")
	expect(t, in, "(/ -7 2)", "-4")
	expect(t, in, "(/ 7.0 2)", "3.5")
	expect(t, in, "(% -7 3)", "2")
	expect(t, in, "(inc 41)", "42")
	expect(t, in, "(dec 43)", "42")
	expectErr(t, in, "(/ 1 0)", lyra.ErrType)
	expectErr(t, in, `(- "a" 1)`, lyra.ErrType)
}

func TestCore_Comparison(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(= 1 1 1)", "#t")
	expect(t, in, "(= 1 1.0)", "#t")
	expect(t, in, "(= '(1 2) (list 1 2))", "#t")
	expect(t, in, "(= 1 2)", "#f")
	expect(t, in, "(= '(1) '(1))", "#t")
	expect(t, in, "(= '(1 2) '(1 2) '(1 3))", "#f")
	expect(t, in, "(< 1 2)", "#t")
	expect(t, in, "(>= 2 3)", "#f")
	expect(t, in, "(< 1 2 3)", "#t")
	expect(t, in, "(< 1 3 2)", "#f")
	expect(t, in, "(> 3 2 1)", "#t")
	expect(t, in, "(<= 2 2 3)", "#t")
	expect(t, in, "(>= 3 3 4)", "#f")
	expect(t, in, `(< "abc" "abd")`, "#t")
	expectErr(t, in, `(< 1 "a")`, lyra.ErrType)
}

func TestCore_Logic(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(not '())", "#t")
	expect(t, in, "(not 0)", "#f")
	expect(t, in, "(and)", "#t")
	expect(t, in, "(and 1 2)", "2")
	expect(t, in, "(and 1 #f (fail-if-evaluated))", "#f")
	expect(t, in, "(or)", "#f")
	expect(t, in, "(or #f 2)", "2")
	expect(t, in, "(or '() #f)", "#f")
	expect(t, in, "(or 1 (fail-if-evaluated))", "1")
	// the first operand of or is evaluated only once
	expect(t, in, `
		(define c 0)
		(define (tick) (define c (+ c 1)) c)
		(or (tick) 5)
		c`, "1")
}

func TestCore_Sequencing(t *testing.T) {
	in, out := newTestInterpreter(t, "")
	expect(t, in, "(begin 1 2 3)", "3")
	expect(t, in, "(begin)", "'()")
	expect(t, in, "(when #t 1 2)", "2")
	expect(t, in, "(when #f 1)", "'()")
	expect(t, in, "(unless #f 7)", "7")
	expect(t, in, "(unless 1 7)", "'()")
	// a single form that is itself a call
	expect(t, in, "(begin (list 1 2))", "(1 2)")
	expect(t, in, "(when #t (list 1 2))", "(1 2)")
	expect(t, in, "(and 1 (list 1 2))", "(1 2)")
	expect(t, in, `(begin (print "a") (print "b") 3)`, "3")
	if out.String() != "ab" {
		t.Fatalf("begin evaluated out of order: %q", out.String())
	}
}

func TestCore_Lists(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(null? '())", "#t")
	expect(t, in, "(length '(1 2 3))", "3")
	expect(t, in, "(length '())", "0")
	expect(t, in, "(reverse '(1 2 3))", "(3 2 1)")
	expect(t, in, "(map inc '(1 2 3))", "(2 3 4)")
	expect(t, in, "(filter (lambda (x) (> x 1)) '(1 2 3))", "(2 3)")
	expect(t, in, "(append '(1 2) '(3))", "(1 2 3)")
	expect(t, in, "(nth '(a b c) 1)", "b")
	expect(t, in, "(fold + 0 '(1 2 3))", "6")
}

func TestCore_LongLists(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, `
		(define (range n acc) (if (= n 0) acc (range (- n 1) (cons n acc))))
		(define xs (range 50000 '()))
		(list (length (map inc xs)) (fold + 0 xs))`, "(50000 1250025000)")
}

func TestCore_TailLoop(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, `
		(define (count n acc) (if (= n 0) acc (count (- n 1) (+ acc 1))))
		(count 100000 0)`, "100000")
	expect(t, in, `
		(define (count-cond n) (cond ((= n 0) 'done) (#t (count-cond (dec n)))))
		(count-cond 100000)`, "done")
	expect(t, in, `
		(define (count-when n) (if (= n 0) 'done (begin (inc n) (count-when (dec n)))))
		(count-when 100000)`, "done")
}

func TestCore_Println(t *testing.T) {
	in, out := newTestInterpreter(t, "")
	expect(t, in, `(println "x = " 1 " " '(1 2))`, "'()")
	if got := out.String(); got != "x = 1 (1 2)\n" {
		t.Fatalf("unexpected output %q", got)
	}
	out.Reset()
	expect(t, in, `(println '(1 2))`, "'()")
	expect(t, in, `(print "a" "b")`, "'()")
	if got := out.String(); got != "(1 2)\nab" {
		t.Fatalf("unexpected output %q", got)
	}
}
