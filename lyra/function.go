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

import "fmt"

// Unbounded as Max accepts any number of arguments.
const Unbounded = -1

// NativeFunc is the host implementation of a builtin. It receives the
// evaluated arguments (raw forms for native macros) and the caller's
// environment.
type NativeFunc func(in *Interpreter, en *Env, a []Value) (Value, error)

// Function is a closure or a native builtin.
type Function struct {
	Name     string // diagnostics only
	Min, Max int
	Macro    bool

	// closures
	Params Value
	Body   Value // list of forms
	En     *Env

	native NativeFunc
}

func NewNative(name string, min, max int, fn NativeFunc) *Function {
	if max != Unbounded && max < min {
		panic("lyra: native " + name + " has max < min")
	}
	return &Function{Name: name, Min: min, Max: max, native: fn}
}

func (f *Function) IsNative() bool { return f.native != nil }

func (f *Function) String() string {
	kind := "function"
	if f.Macro {
		kind = "macro"
	}
	return "<" + kind + " " + f.Name + ">"
}

func (f *Function) arityString() string {
	if f.Max == Unbounded {
		return fmt.Sprintf("%d..", f.Min)
	}
	if f.Min == f.Max {
		return fmt.Sprint(f.Min)
	}
	return fmt.Sprintf("%d..%d", f.Min, f.Max)
}

func (f *Function) checkArity(given int) error {
	if given < f.Min {
		return Errorf(ArityError, "%s: too few arguments (given %d, expected %s)", f.Name, given, f.arityString())
	}
	if f.Max != Unbounded && given > f.Max {
		return Errorf(ArityError, "%s: too many arguments (given %d, expected %s)", f.Name, given, f.arityString())
	}
	return nil
}

// newClosure builds a function from a parameter list and a body. A
// parameter list whose second-to-last entry is & makes the last parameter
// a rest parameter.
func newClosure(params, body Value, en *Env, macro bool) (*Function, error) {
	if !IsProperList(params) {
		return nil, Errorf(SyntaxError, "parameter list must be a proper list: %s", Serialize(params))
	}
	names := ToSlice(params)
	for _, p := range names {
		if !p.IsSymbol() {
			return nil, Errorf(SyntaxError, "parameter must be a symbol: %s", Serialize(p))
		}
	}
	if !IsProperList(body) {
		return nil, Errorf(SyntaxError, "function body must be a proper list")
	}
	f := &Function{Name: "lambda", Macro: macro, Body: body, En: en}
	n := len(names)
	if n >= 2 && names[n-2].SymbolEquals(symRest) {
		names = append(names[:n-2:n-2], names[n-1])
		params = List(names...)
		f.Min, f.Max = n-2, Unbounded
	} else {
		f.Min, f.Max = n, n
	}
	f.Params = params
	return f, nil
}
