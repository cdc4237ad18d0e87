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
	"fmt"
	"time"
)

// tailCall is the request a self call in tail position hands back to the
// invocation loop of fn instead of nesting a call.
type tailCall struct {
	fn   *Function
	args Value
}

func newTailCall(fn *Function, args Value) Value {
	return Value{tag: tagTailCall, ref: &tailCall{fn, args}}
}

// top is the innermost function currently executing.
func (in *Interpreter) top() *Function {
	if len(in.stack) == 0 {
		return nil
	}
	return in.stack[len(in.stack)-1]
}

// invoke runs f as a nested call: f is on the call-stack tracker exactly
// while apply runs, whichever way apply returns.
func (in *Interpreter) invoke(f *Function, args Value, en *Env) (result Value, err error) {
	if err := in.interrupted(); err != nil {
		return Nil, withBacktrace(err, in.stack)
	}
	if limit := in.Settings.MaxDepth; limit > 0 && len(in.stack) >= limit {
		return Nil, withBacktrace(Errorf(HostError, "call depth limit exceeded (%d)", limit), in.stack)
	}
	depth := len(in.stack)
	in.stack = append(in.stack, f)
	defer func() {
		in.stack = in.stack[:depth]
	}()

	if in.trace != nil {
		in.trace.EventHalf(f.Name, "lyra", "B", 0, 0)
		defer in.trace.EventHalf(f.Name, "lyra", "E", 0, 0)
	}
	if in.Settings.TracePrint {
		start := time.Now()
		defer func() {
			fmt.Fprintln(in.Stdout, "trace", time.Since(start).String(), f.Name)
		}()
	}

	result, err = in.apply(f, args, en)
	if err != nil {
		err = withBacktrace(err, in.stack)
	}
	return
}

// apply checks arity and runs f. Callers are responsible for the tracker.
func (in *Interpreter) apply(f *Function, args Value, en *Env) (Value, error) {
	n, err := argCount(f, args)
	if err != nil {
		return Nil, err
	}
	if err := f.checkArity(n); err != nil {
		return Nil, err
	}
	if f.native != nil {
		return in.callNative(f, ToSlice(args), en)
	}
	return in.runClosure(f, args)
}

func argCount(f *Function, args Value) (int, error) {
	if !IsProperList(args) {
		return 0, Errorf(TypeError, "%s: arguments must form a proper list", f.Name)
	}
	n, _ := Length(args)
	return n, nil
}

// callNative runs a builtin; a Go panic inside it becomes a HostError.
func (in *Interpreter) callNative(f *Function, args []Value, en *Env) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = Nil
			err = Errorf(HostError, "%s: %v", f.Name, r)
		}
	}()
	result, err = f.native(in, en, args)
	if err == nil && result.tag == tagTailCall {
		err = Errorf(HostError, "%s: returned an internal value", f.Name)
	}
	return
}

// runClosure evaluates the body of f in a fresh frame. A self tail call of
// this invocation surfaces as a tailCall value and restarts the loop with
// the new arguments, so the Go stack does not grow.
func (in *Interpreter) runClosure(f *Function, args Value) (Value, error) {
	for {
		frame := NewFrame(f.En, BindParams(f.Params, args))
		result, err := in.evalBody(f.Body, frame, true)
		if err != nil {
			return Nil, err
		}
		if result.tag != tagTailCall {
			return result, nil
		}
		tc := result.ref.(*tailCall)
		if tc.fn != f {
			return Nil, Errorf(HostError, "tail call to %s escaped its invocation", tc.fn.Name)
		}
		n, err := argCount(f, tc.args)
		if err != nil {
			return Nil, err
		}
		if err := f.checkArity(n); err != nil {
			return Nil, err
		}
		if err := in.interrupted(); err != nil {
			return Nil, err
		}
		args = tc.args
	}
}
