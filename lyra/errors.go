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
	"fmt"
	"io"
)

type Kind int

const (
	SyntaxError Kind = iota + 1
	NameError
	ArityError
	TypeError
	HostError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case NameError:
		return "NameError"
	case ArityError:
		return "ArityError"
	case TypeError:
		return "TypeError"
	case HostError:
		return "HostError"
	}
	return "Error"
}

// Error is the failure type of every core operation.
type Error struct {
	Kind       Kind
	Msg        string
	Err        error // wrapped host error, if any
	incomplete bool  // input ended inside a form or string
}

// sentinels for errors.Is
var (
	ErrSyntax = &Error{Kind: SyntaxError}
	ErrName   = &Error{Kind: NameError}
	ErrArity  = &Error{Kind: ArityError}
	ErrType   = &Error{Kind: TypeError}
	ErrHost   = &Error{Kind: HostError}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels (no message) by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapHost turns a Go error from I/O or the OS into a HostError.
func WrapHost(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: HostError, Msg: fmt.Sprintf(format, args...), Err: err}
}

// IsIncomplete reports whether a reader error was caused by input ending
// inside an open list or string; a REPL keeps reading in that case.
func IsIncomplete(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.incomplete
}

// Backtrace is attached to an error by the innermost function frame it
// unwinds through and holds the call stack at that moment.
type Backtrace struct {
	Err   error
	Stack []*Function // innermost first
}

func (b *Backtrace) Error() string { return b.Err.Error() }

func (b *Backtrace) Unwrap() error { return b.Err }

// StackOf returns the call stack recorded when err was raised, if any.
func StackOf(err error) []*Function {
	var b *Backtrace
	if errors.As(err, &b) {
		return b.Stack
	}
	return nil
}

func withBacktrace(err error, stack []*Function) error {
	var b *Backtrace
	if errors.As(err, &b) {
		return err
	}
	return &Backtrace{Err: err, Stack: reversed(stack)}
}

func reversed(stack []*Function) []*Function {
	result := make([]*Function, len(stack))
	for i, f := range stack {
		result[len(stack)-1-i] = f
	}
	return result
}

// ReportError prints an error and its backtrace the way the CLI and the
// REPL show it.
func ReportError(w io.Writer, err error) {
	fmt.Fprintln(w, "error:", err)
	for _, f := range StackOf(err) {
		fmt.Fprintln(w, "  in", f)
	}
}
