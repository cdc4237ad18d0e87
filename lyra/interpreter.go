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
	"bufio"
	"context"
	"io"
	"os"

	"github.com/google/uuid"
)

type Settings struct {
	Trace      bool   // write a chrome trace of all function calls
	TracePrint bool   // print the duration of every call to Stdout
	TraceDir   string // folder for trace files
	MaxDepth   int    // nested (non tail) calls before a HostError; 0 = unlimited
}

var DefaultSettings = Settings{false, false, "", 10000}

// Interpreter holds all mutable state of one Lyra instance: the global
// frame and the call-stack tracker. Instances are independent of each
// other but a single instance must only be used by one goroutine at a time.
type Interpreter struct {
	ID       uuid.UUID
	Settings Settings
	Stdin    *bufio.Reader
	Stdout   io.Writer
	Stderr   io.Writer

	global *Env       // the global frame
	root   *Env       // divider in front of the global frame
	stack  []*Function // call-stack tracker, innermost last
	trace  *Tracefile
	done   <-chan struct{} // closed when the evaluation is to be interrupted
}

type Option func(*Interpreter)

func WithOutput(stdout, stderr io.Writer) Option {
	return func(in *Interpreter) {
		in.Stdout = stdout
		in.Stderr = stderr
	}
}

func WithInput(r io.Reader) Option {
	return func(in *Interpreter) { in.Stdin = bufio.NewReader(r) }
}

func WithSettings(s Settings) Option {
	return func(in *Interpreter) { in.Settings = s }
}

// WithContext interrupts a running evaluation at the next function call
// once ctx is cancelled.
func WithContext(ctx context.Context) Option {
	return func(in *Interpreter) { in.done = ctx.Done() }
}

func (in *Interpreter) interrupted() error {
	select {
	case <-in.done:
		return Errorf(HostError, "evaluation interrupted")
	default:
		return nil
	}
}

// New creates an interpreter with an empty global frame. Builtins are
// installed afterwards through Declare (see package corelib).
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		ID:       uuid.New(),
		Settings: DefaultSettings,
		Stdin:    bufio.NewReader(os.Stdin),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
	in.global = newGlobalFrame()
	in.root = newDivider(in.global)
	for _, opt := range opts {
		opt(in)
	}
	if in.Settings.Trace {
		if err := in.SetTrace(true); err != nil {
			ReportError(in.Stderr, err)
		}
	}
	return in
}

// Close releases the trace file. The interpreter stays usable.
func (in *Interpreter) Close() error {
	return in.SetTrace(false)
}

// Env is the top-level environment: the divider followed by the global
// frame. Closures created at top level capture it.
func (in *Interpreter) Env() *Env { return in.root }

// GlobalEnv returns the live global frame. Callers should treat it as
// read-only; its bindings are the same pairs define prepends to.
func (in *Interpreter) GlobalEnv() *Env { return in.global }

// Define binds name in the global frame.
func (in *Interpreter) Define(name string, v Value) {
	in.global.define(Intern(name), v)
}

// CallStack returns a snapshot of the functions currently executing,
// innermost first.
func (in *Interpreter) CallStack() []*Function {
	return reversed(in.stack)
}

// Eval evaluates a single expression.
func (in *Interpreter) Eval(expr Value, en *Env) (Value, error) {
	return in.eval(expr, en, false)
}

// EvalAll evaluates top-level forms in order and returns the last value.
func (in *Interpreter) EvalAll(forms []Value, en *Env) (Value, error) {
	return in.EvalAllContext(context.Background(), forms, en)
}

// EvalAllContext is EvalAll with a cancellation check between forms; a
// running form is never interrupted.
func (in *Interpreter) EvalAllContext(ctx context.Context, forms []Value, en *Env) (result Value, err error) {
	result = Nil
	for _, form := range forms {
		if err = ctx.Err(); err != nil {
			return Nil, WrapHost(err, "evaluation aborted")
		}
		if result, err = in.eval(form, en, false); err != nil {
			return Nil, err
		}
	}
	return result, nil
}

// EvalList evaluates a list of forms and keeps the last value, the way
// function bodies are run.
func (in *Interpreter) EvalList(forms Value, en *Env) (Value, error) {
	if !IsProperList(forms) {
		return Nil, Errorf(TypeError, "expected a list of forms, got %s", Serialize(forms))
	}
	return in.evalBody(forms, en, false)
}

// EvalString reads and evaluates source text at top level.
func (in *Interpreter) EvalString(source, code string) (Value, error) {
	forms, err := Read(source, code)
	if err != nil {
		return Nil, err
	}
	return in.EvalAll(forms, in.root)
}

// Apply calls f with an already evaluated argument list. It is the entry
// point for natives that call back into Lyra functions.
func (in *Interpreter) Apply(f *Function, args Value, en *Env) (Value, error) {
	if en == nil {
		en = in.root
	}
	return in.invoke(f, args, en)
}

// Call is Apply with the arguments given as Go values.
func (in *Interpreter) Call(f *Function, en *Env, args ...Value) (Value, error) {
	return in.Apply(f, List(args...), en)
}
