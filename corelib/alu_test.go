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

func TestFloorDivision(t *testing.T) {
	cases := []struct{ x, y, div, mod int64 }{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
		{6, 3, 2, 0},
		{-6, 3, -2, 0},
	}
	for _, c := range cases {
		if got := floorDiv(c.x, c.y); got != c.div {
			t.Fatalf("floorDiv(%d, %d) = %d, expected %d", c.x, c.y, got, c.div)
		}
		if got := floorMod(c.x, c.y); got != c.mod {
			t.Fatalf("floorMod(%d, %d) = %d, expected %d", c.x, c.y, got, c.mod)
		}
	}
	if got := floatMod(-7.5, 2); got != 0.5 {
		t.Fatalf("floatMod(-7.5, 2) = %v, expected 0.5", got)
	}
}

func TestPrimitives_Arithmetic(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(p+ 1 2)", "3")
	expect(t, in, "(p+ 1 2.5)", "3.5")
	expect(t, in, `(p+ "foo" "bar")`, `"foobar"`)
	expect(t, in, "(p- 1 3)", "-2")
	expect(t, in, "(p* 4 2.5)", "10.0")
	expect(t, in, "(p/ 9 3)", "3")
	expect(t, in, "(p/ 1.0 4)", "0.25")
	expect(t, in, "(p% 7 -3)", "-2")
	expectErr(t, in, "(p/ 1 0)", lyra.ErrType)
	expectErr(t, in, "(p% 1 0)", lyra.ErrType)
	expectErr(t, in, `(p+ 1 "a")`, lyra.ErrType)
	expectErr(t, in, "(p+ 1)", lyra.ErrArity)
}

func TestPrimitives_Bitwise(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(p& 12 10)", "8")
	expect(t, in, "(p| 12 3)", "15")
	expect(t, in, "(p^ 5 1)", "4")
	expect(t, in, "(p<< 1 4)", "16")
	expect(t, in, "(p>> -16 2)", "-4")
	expect(t, in, "(p& 0xff 0b1010)", "10")
	expectErr(t, in, "(p& 1.0 1)", lyra.ErrType)
	expectErr(t, in, "(p<< 1 -1)", lyra.ErrType)
}

func TestPrimitives_Comparison(t *testing.T) {
	in, _ := newTestInterpreter(t, "")
	expect(t, in, "(p= 'a 'a)", "#t")
	expect(t, in, `(p= "a" "a")`, "#t")
	expect(t, in, "(p= 2 2.0)", "#t")
	expect(t, in, "(p= '(1 (2)) '(1 (2)))", "#t")
	expect(t, in, "(p= car car)", "#t")
	expect(t, in, "(p= car cdr)", "#f")
	expect(t, in, "(p< 1 1.5)", "#t")
	expect(t, in, "(p> 2 1)", "#t")
	expect(t, in, `(p> "a" "b")`, "#f")
	expectErr(t, in, "(p< '() 1)", lyra.ErrType)
}
