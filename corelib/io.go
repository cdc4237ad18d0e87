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
	"context"
	"io"
	"os"
	"strings"

	"github.com/launix-de/lyra/lyra"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// stream handles bound to stdin, stdout and stderr
const (
	StreamStdin  = 0
	StreamStdout = 1
	StreamStderr = 2
)

func writerOf(in *Interpreter, fn string, a []Value, i int) (io.Writer, error) {
	h, err := argInt(fn, a, i)
	if err != nil {
		return nil, err
	}
	switch h {
	case StreamStdout:
		return in.Stdout, nil
	case StreamStderr:
		return in.Stderr, nil
	}
	return nil, lyra.Errorf(lyra.TypeError, "%s: %d is not an output stream", fn, h)
}

func printValues(in *Interpreter, a []Value, fn, end string) error {
	var sb strings.Builder
	for _, v := range a {
		sb.WriteString(toString(v))
	}
	sb.WriteString(end)
	if _, err := io.WriteString(in.Stdout, sb.String()); err != nil {
		return lyra.WrapHost(err, fn)
	}
	return nil
}

// decompress wraps r according to the file extension.
func decompress(path string, r io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(path, ".xz"):
		return xz.NewReader(r)
	case strings.HasSuffix(path, ".lz4"):
		return lz4.NewReader(r), nil
	}
	return r, nil
}

// ReadSource reads a whole file; .xz and .lz4 files are decompressed.
func ReadSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", lyra.WrapHost(err, "cannot open %s", path)
	}
	defer f.Close()
	r, err := decompress(path, f)
	if err != nil {
		return "", lyra.WrapHost(err, "cannot decompress %s", path)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", lyra.WrapHost(err, "cannot read %s", path)
	}
	return string(data), nil
}

// WriteSource writes a whole file; .xz and .lz4 files are compressed.
func WriteSource(path string, content string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return lyra.WrapHost(err, "cannot create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = lyra.WrapHost(cerr, "cannot write %s", path)
		}
	}()
	var w io.WriteCloser
	switch {
	case strings.HasSuffix(path, ".xz"):
		if w, err = xz.NewWriter(f); err != nil {
			return lyra.WrapHost(err, "cannot compress %s", path)
		}
	case strings.HasSuffix(path, ".lz4"):
		w = lz4.NewWriter(f)
	default:
		if _, err = io.WriteString(f, content); err != nil {
			return lyra.WrapHost(err, "cannot write %s", path)
		}
		return nil
	}
	if _, err = io.WriteString(w, content); err != nil {
		return lyra.WrapHost(err, "cannot write %s", path)
	}
	if err = w.Close(); err != nil {
		return lyra.WrapHost(err, "cannot write %s", path)
	}
	return nil
}

// LoadFile reads and evaluates a source file at top level and returns the
// value of its last form.
func LoadFile(ctx context.Context, in *Interpreter, path string) (Value, error) {
	code, err := ReadSource(path)
	if err != nil {
		return lyra.Nil, err
	}
	forms, err := lyra.Read(path, code)
	if err != nil {
		return lyra.Nil, err
	}
	return in.EvalAllContext(ctx, forms, in.Env())
}

func init() {
	lyra.DeclareTitle("Streams and files")

	lyra.Declare(&lyra.Declaration{
		Name: "sprint!", Desc: "writes a value to stdout or stderr; the optional formatter turns the value into the text to print",
		MinParameter: 2, MaxParameter: 3,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "stream", Type: "int", Desc: "stdout or stderr"},
			DeclarationParameter{Name: "value", Type: "any", Desc: "value to print; strings are printed raw"},
			DeclarationParameter{Name: "formatter", Type: "func", Desc: "optional function of (value) returning the text"},
		}, Returns: "nil",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			w, err := writerOf(in, "sprint!", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			v := a[1]
			if len(a) == 3 {
				f, err := argFunction("sprint!", a, 2)
				if err != nil {
					return lyra.Nil, err
				}
				if v, err = in.Call(f, en, v); err != nil {
					return lyra.Nil, err
				}
			}
			if _, err := io.WriteString(w, toString(v)); err != nil {
				return lyra.Nil, lyra.WrapHost(err, "sprint!")
			}
			return lyra.Nil, nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "print", Desc: "writes all values to stdout",
		MinParameter: 0, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "value...", Type: "any", Desc: "values to print; strings are printed raw"},
		}, Returns: "nil",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.Nil, printValues(in, a, "print", "")
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "println", Desc: "writes all values and a newline to stdout",
		MinParameter: 0, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "value...", Type: "any", Desc: "values to print; strings are printed raw"},
		}, Returns: "nil",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.Nil, printValues(in, a, "println", "\n")
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "sread!", Desc: "reads one line including its newline from stdin; '() at end of input",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "stream", Type: "int", Desc: "stdin"},
		}, Returns: "string|nil",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			h, err := argInt("sread!", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			if h != StreamStdin {
				return lyra.Nil, lyra.Errorf(lyra.TypeError, "sread!: %d is not an input stream", h)
			}
			line, err := in.Stdin.ReadString('\n')
			if err == io.EOF && line == "" {
				return lyra.Nil, nil
			}
			if err != nil && err != io.EOF {
				return lyra.Nil, lyra.WrapHost(err, "sread!")
			}
			return lyra.NewString(line), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "slurp!", Desc: "reads a whole file into a string; .xz and .lz4 files are decompressed",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "path", Type: "string", Desc: "file name"},
		}, Returns: "string",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			path, err := argString("slurp!", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			content, err := ReadSource(path)
			if err != nil {
				return lyra.Nil, err
			}
			return lyra.NewString(content), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "spit!", Desc: "writes a string to a file and returns its length; .xz and .lz4 files are compressed",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "path", Type: "string", Desc: "file name"},
			DeclarationParameter{Name: "content", Type: "string", Desc: "file content"},
		}, Returns: "int",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			path, err := argString("spit!", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			content, err := argString("spit!", a, 1)
			if err != nil {
				return lyra.Nil, err
			}
			if err := WriteSource(path, content); err != nil {
				return lyra.Nil, err
			}
			return lyra.NewInt(int64(len(content))), nil
		}, Macro: false,
	})
}
