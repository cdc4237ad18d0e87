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

// Package corelib is the native library of Lyra: primitive operators,
// lists, vectors, type coercions, streams and introspection. Importing it
// declares the natives; Init installs them into an interpreter and
// LoadCore runs the bootstrap library written in Lyra itself.
package corelib

import (
	"context"
	_ "embed"

	"github.com/launix-de/lyra/lyra"
)

type Value = lyra.Value
type Env = lyra.Env
type Interpreter = lyra.Interpreter
type DeclarationParameter = lyra.DeclarationParameter

//go:embed core.lyra
var coreSource string

// Init installs all natives and the stream variables into the global
// frame of in.
func Init(in *lyra.Interpreter) {
	in.InstallDeclarations()
	in.Define("stdin", lyra.NewInt(StreamStdin))
	in.Define("stdout", lyra.NewInt(StreamStdout))
	in.Define("stderr", lyra.NewInt(StreamStderr))
}

// LoadCore evaluates the embedded bootstrap library.
func LoadCore(in *lyra.Interpreter) error {
	forms, err := lyra.Read("core.lyra", coreSource)
	if err != nil {
		return err
	}
	_, err = in.EvalAllContext(context.Background(), forms, in.Env())
	return err
}

// New returns an interpreter with natives and the bootstrap library.
func New(opts ...lyra.Option) (*lyra.Interpreter, error) {
	in := lyra.New(opts...)
	Init(in)
	if err := LoadCore(in); err != nil {
		in.Close()
		return nil, err
	}
	return in, nil
}

//
// argument helpers
//

func typeError(fn string, i int, want string, got lyra.Value) error {
	return lyra.Errorf(lyra.TypeError, "%s: argument %d must be %s, got %s", fn, i+1, want, lyra.Serialize(got))
}

func argInt(fn string, a []lyra.Value, i int) (int64, error) {
	if !a[i].IsInt() {
		return 0, typeError(fn, i, "an int", a[i])
	}
	return a[i].Int(), nil
}

func argString(fn string, a []lyra.Value, i int) (string, error) {
	if !a[i].IsString() {
		return "", typeError(fn, i, "a string", a[i])
	}
	return a[i].Str(), nil
}

func argFunction(fn string, a []lyra.Value, i int) (*lyra.Function, error) {
	if !a[i].IsFunction() {
		return nil, typeError(fn, i, "a function", a[i])
	}
	return a[i].Function(), nil
}

func argVector(fn string, a []lyra.Value, i int) (*lyra.Vector, error) {
	if !a[i].IsVector() {
		return nil, typeError(fn, i, "a vector", a[i])
	}
	return a[i].Vector(), nil
}

func argPair(fn string, a []lyra.Value, i int) (*lyra.Pair, error) {
	if !a[i].IsPair() {
		return nil, typeError(fn, i, "a pair", a[i])
	}
	return a[i].Pair(), nil
}
