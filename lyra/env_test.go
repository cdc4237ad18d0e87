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
	"testing"
)

func lookupIn(t *testing.T, en *Env, name string) Value {
	t.Helper()
	v, err := en.Lookup(Intern(name))
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return v
}

func TestEnv_BindParams(t *testing.T) {
	params := List(NewSymbol("a"), NewSymbol("b"))
	cases := []struct {
		args Value
		a, b string
	}{
		{List(NewInt(1), NewInt(2)), "1", "2"},
		{List(NewInt(1)), "1", "'()"},
		{Nil, "'()", "'()"},
		// more arguments than parameters: the last one takes the rest
		{List(NewInt(1), NewInt(2), NewInt(3), NewInt(4)), "1", "(2 3 4)"},
		{List(NewInt(1), NewInt(2), NewInt(3)), "1", "(2 3)"},
		// a single remaining list argument is bound as it is
		{List(NewInt(1), List(NewInt(2), NewInt(3))), "1", "(2 3)"},
	}
	for _, c := range cases {
		en := NewFrame(nil, BindParams(params, c.args))
		if got := Serialize(lookupIn(t, en, "a")); got != c.a {
			t.Fatalf("args %s: a = %s, expected %s", Serialize(c.args), got, c.a)
		}
		if got := Serialize(lookupIn(t, en, "b")); got != c.b {
			t.Fatalf("args %s: b = %s, expected %s", Serialize(c.args), got, c.b)
		}
	}
}

func TestEnv_LookupSkipsDivider(t *testing.T) {
	in := New()
	in.Define("g", NewInt(1))
	local := NewFrame(in.Env(), List(Cons(NewSymbol("l"), NewInt(2))))
	if lookupIn(t, local, "g").Int() != 1 || lookupIn(t, local, "l").Int() != 2 {
		t.Fatalf("lookup through divider failed")
	}
	if local.Global() != in.GlobalEnv() {
		t.Fatalf("Global() must find the global frame")
	}
	if !in.Env().IsDivider() || !in.GlobalEnv().IsGlobal() {
		t.Fatalf("frame kinds mixed up")
	}
	_, err := local.Lookup(Intern("missing-symbol"))
	if !errors.Is(err, ErrName) {
		t.Fatalf("expected NameError, got %v", err)
	}
}

func TestEnv_RedefinitionShadows(t *testing.T) {
	in := New()
	in.Define("x", NewInt(1))
	in.Define("x", NewInt(2))
	if lookupIn(t, in.Env(), "x").Int() != 2 {
		t.Fatalf("newest definition must win")
	}
	// the old binding is still in the frame
	n, _ := Length(in.GlobalEnv().Bindings())
	if n != 2 {
		t.Fatalf("expected 2 bindings, got %d", n)
	}
}
