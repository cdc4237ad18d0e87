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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/launix-de/lyra/lyra"
)

// newTestInterpreter returns a fully bootstrapped interpreter that reads
// input and writes into the returned buffer.
func newTestInterpreter(t *testing.T, input string) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	in, err := New(lyra.WithOutput(&out, &out), lyra.WithInput(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { in.Close() })
	return in, &out
}

// expect evaluates src and compares the serialized result.
func expect(t *testing.T, in *Interpreter, src, want string) {
	t.Helper()
	v, err := in.EvalString("test", src)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	if got := lyra.Serialize(v); got != want {
		t.Fatalf("eval %q: expected %s, got %s", src, want, got)
	}
}

func expectErr(t *testing.T, in *Interpreter, src string, kind *lyra.Error) error {
	t.Helper()
	_, err := in.EvalString("test", src)
	if err == nil {
		t.Fatalf("eval %q: expected %v, got no error", src, kind.Kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("eval %q: expected %v, got %v", src, kind.Kind, err)
	}
	return err
}
