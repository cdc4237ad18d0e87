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

func TestLists_Basics(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(list)", "'()")
	expect(t, in, "(list 1 2 3)", "(1 2 3)")
	expect(t, in, "(cons 1 2)", "(1 . 2)")
	expect(t, in, "(cons 1 '())", "(1)")
	expect(t, in, "(car '(1 2))", "1")
	expect(t, in, "(cdr '(1 2))", "(2)")
	expect(t, in, "(car '())", "'()")
	expect(t, in, "(cdr '())", "'()")
	expectErr(t, in, "(car 5)", lyra.ErrType)
	expectErr(t, in, "(cdr \"x\")", lyra.ErrType)
}

func TestLists_Mutation(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(define p (list 1 2)) (set-car! p 9)", "9")
	expect(t, in, "p", "(9 2)")
	expect(t, in, "(set-cdr! p 3) p", "(9 . 3)")
	// a cyclic list still prints
	expect(t, in, "(define q (list 1 2)) (set-cdr! (cdr q) q) (car (cdr (cdr q)))", "1")
	expect(t, in, "(string q)", `"(1 2 . ...)"`)
	expectErr(t, in, "(set-car! '() 1)", lyra.ErrType)
}

func TestLists_TypeTags(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(lyra-type-id (cons 1 2))", "1")
	expect(t, in, "(lyra-type-id (pcons 1 2 42))", "42")
	expect(t, in, "(pair? (pcons 1 2 42))", "#t")
	expect(t, in, "(car (pcons 1 2 42))", "1")
	expectErr(t, in, "(pcons 1 2 'x)", lyra.ErrType)
}

func TestVectors(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(vector 1 2 3)", "[1 2 3]")
	expect(t, in, "(vector)", "[]")
	expect(t, in, "(define v (vector 'a 'b)) (vector-get v 1)", "b")
	expect(t, in, "(vector-set! v 0 'z) v", "[z b]")
	expect(t, in, "(vector-append! v 'c)", "[z b c]")
	expect(t, in, "(vector-size v)", "3")
	expect(t, in, "(lyra-type-id (pvector 7 1 2))", "7")
	expect(t, in, "(vector? (pvector 7 1 2))", "#t")
	expectErr(t, in, "(vector-get v 3)", lyra.ErrType)
	expectErr(t, in, "(vector-get v -1)", lyra.ErrType)
	expectErr(t, in, "(vector-get '(1) 0)", lyra.ErrType)
}

func TestVectors_Iterate(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(vector-iterate (vector 1 2 3) 0 (lambda (acc x i) (+ acc (* x i))))", "8")
	expect(t, in, "(vector-iterate (vector) 'empty (lambda (acc x i) x))", "empty")
	// items appended while iterating are visited too
	expect(t, in, `
		(define v (vector 3))
		(vector-iterate v 0 (lambda (acc x i)
			(if (> x 0) (vector-append! v (- x 1)) '())
			(+ acc 1)))`, "4")
}
