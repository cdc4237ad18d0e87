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
	"bytes"
	"errors"
	"testing"
)

// newTestInterpreter returns an interpreter with a handful of natives, enough
// to write loops without the native library.
func newTestInterpreter(t *testing.T, opts ...Option) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	in := New(append([]Option{WithOutput(&out, &out)}, opts...)...)
	t.Cleanup(func() { in.Close() })
	in.DefineNative("=", 2, 2, func(in *Interpreter, en *Env, a []Value) (Value, error) {
		return NewBool(Equal(a[0], a[1])), nil
	})
	in.DefineNative("<", 2, 2, func(in *Interpreter, en *Env, a []Value) (Value, error) {
		less, ok := Less(a[0], a[1])
		if !ok {
			return Nil, Errorf(TypeError, "<: cannot compare")
		}
		return NewBool(less), nil
	})
	in.DefineNative("+", 2, 2, func(in *Interpreter, en *Env, a []Value) (Value, error) {
		if !a[0].IsInt() || !a[1].IsInt() {
			return Nil, Errorf(TypeError, "+: expected ints")
		}
		return NewInt(a[0].Int() + a[1].Int()), nil
	})
	in.DefineNative("-", 2, 2, func(in *Interpreter, en *Env, a []Value) (Value, error) {
		if !a[0].IsInt() || !a[1].IsInt() {
			return Nil, Errorf(TypeError, "-: expected ints")
		}
		return NewInt(a[0].Int() - a[1].Int()), nil
	})
	in.DefineNative("list", 0, Unbounded, func(in *Interpreter, en *Env, a []Value) (Value, error) {
		return List(a...), nil
	})
	in.DefineNative("cons", 2, 2, func(in *Interpreter, en *Env, a []Value) (Value, error) {
		return Cons(a[0], a[1]), nil
	})
	in.DefineNative("car", 1, 1, func(in *Interpreter, en *Env, a []Value) (Value, error) {
		return a[0].Car(), nil
	})
	in.DefineNative("cdr", 1, 1, func(in *Interpreter, en *Env, a []Value) (Value, error) {
		return a[0].Cdr(), nil
	})
	in.DefineNative("fail", 0, 0, func(in *Interpreter, en *Env, a []Value) (Value, error) {
		return Nil, Errorf(TypeError, "fail called")
	})
	in.DefineNative("call-stack!", 0, 0, func(in *Interpreter, en *Env, a []Value) (Value, error) {
		var items []Value
		for _, f := range in.CallStack() {
			items = append(items, NewFunction(f))
		}
		return List(items...), nil
	})
	return in, &out
}

// run evaluates src at top level and fails the test on error.
func run(t *testing.T, in *Interpreter, src string) Value {
	t.Helper()
	v, err := in.EvalString("test", src)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

// runErr evaluates src and expects an error of the given kind.
func runErr(t *testing.T, in *Interpreter, src string, kind *Error) error {
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

func mustRead(t *testing.T, src string) Value {
	t.Helper()
	v, err := ReadOne("test", src)
	if err != nil {
		t.Fatalf("read %q: %v", src, err)
	}
	return v
}
