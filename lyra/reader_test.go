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

import (
	"errors"
	"strings"
	"testing"
)

func TestReader_Literals(t *testing.T) {
	cases := []struct {
		src  string
		want Value
	}{
		{"42", NewInt(42)},
		{"-7", NewInt(-7)},
		{"0x1F", NewInt(31)},
		{"-0x10", NewInt(-16)},
		{"0b101", NewInt(5)},
		{"3.25", NewFloat(3.25)},
		{"-0.5", NewFloat(-0.5)},
		{"#t", NewBool(true)},
		{"#f", NewBool(false)},
		{"'()", Nil},
		{"()", Nil},
		{`"a\"b\\c\nd"`, NewString("a\"b\\c\nd")},
		{"foo-bar?", NewSymbol("foo-bar?")},
		{"-", NewSymbol("-")},
		{"1.", NewSymbol("1.")},
	}
	for _, c := range cases {
		got := mustRead(t, c.src)
		if got.Tag() != c.want.Tag() || !Equal(got, c.want) {
			t.Fatalf("read %q: expected %s (%v), got %s (%v)", c.src, c.want, c.want.Tag(), got, got.Tag())
		}
	}
}

func TestReader_QuoteShorthand(t *testing.T) {
	got := mustRead(t, "'sym")
	if !Equal(got, List(NewSymbol("quote"), NewSymbol("sym"))) {
		t.Fatalf("'sym read as %s", got)
	}
	got = mustRead(t, "'(1 2)")
	if !Equal(got, List(NewSymbol("quote"), List(NewInt(1), NewInt(2)))) {
		t.Fatalf("'(1 2) read as %s", got)
	}
}

func TestReader_CommentsAndCommas(t *testing.T) {
	forms, err := Read("test", "; leading comment\n(a, b) ; trailing\n c")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(forms))
	}
	if !Equal(forms[0], List(NewSymbol("a"), NewSymbol("b"))) {
		t.Fatalf("first form: %s", forms[0])
	}
}

func TestReader_Errors(t *testing.T) {
	incomplete := []string{"(a (b)", `"open`, "'", `("a\"`}
	for _, src := range incomplete {
		_, err := Read("test", src)
		if !errors.Is(err, ErrSyntax) || !IsIncomplete(err) {
			t.Fatalf("read %q: expected incomplete SyntaxError, got %v", src, err)
		}
	}
	broken := []string{")", "(a))", "[1 2]", "99999999999999999999"}
	for _, src := range broken {
		_, err := Read("test", src)
		if !errors.Is(err, ErrSyntax) || IsIncomplete(err) {
			t.Fatalf("read %q: expected SyntaxError, got %v", src, err)
		}
	}
}

func TestReader_ErrorPosition(t *testing.T) {
	_, err := Read("file.lyra", "(a)\n  (b ]")
	if err == nil || !strings.Contains(err.Error(), "file.lyra:2:6") {
		t.Fatalf("expected position file.lyra:2:6, got %v", err)
	}
}

func TestReader_PrintReadSymmetry(t *testing.T) {
	values := []Value{
		NewInt(-12), NewFloat(2.0), NewFloat(0.125), NewBool(true), NewBool(false),
		NewString("quote \" and \\ and\nnewline"), NewSymbol("some-symbol"), Nil,
		List(NewInt(1), List(NewString("x"), NewFloat(1.5)), Nil, NewSymbol("y")),
	}
	for _, v := range values {
		text := Serialize(v)
		back, err := ReadOne("test", text)
		if err != nil {
			t.Fatalf("read back %q: %v", text, err)
		}
		if back.Tag() != v.Tag() || !Equal(back, v) {
			t.Fatalf("%q read back as %s", text, back)
		}
	}
}
