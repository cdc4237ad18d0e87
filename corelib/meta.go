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
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/launix-de/lyra/lyra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// median of the sorted samples; the two middle ones are averaged
func median(samples []float64) float64 {
	sort.Float64s(samples)
	n := len(samples)
	return (samples[(n-1)/2] + samples[n/2]) / 2
}

// collators are expensive to build, so they are kept per locale
var collators struct {
	sync.Mutex
	byLocale map[string]*collate.Collator
}

func collatorFor(locale string) (*collate.Collator, error) {
	collators.Lock()
	defer collators.Unlock()
	if c, ok := collators.byLocale[locale]; ok {
		return c, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, lyra.Errorf(lyra.TypeError, "string-collate: unknown locale %q", locale)
	}
	c := collate.New(tag, collate.Numeric)
	if collators.byLocale == nil {
		collators.byLocale = make(map[string]*collate.Collator)
	}
	collators.byLocale[locale] = c
	return c, nil
}

// HeapSize reports the allocated heap in human readable form.
func HeapSize() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return units.HumanSize(float64(m.HeapAlloc))
}

func init() {
	lyra.DeclareTitle("Meta")

	lyra.Declare(&lyra.Declaration{
		Name: "eval!", Desc: "evaluates a list of forms in the caller's environment and returns the value of the last one",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "forms", Type: "list", Desc: "forms to evaluate, e.g. the result of parse"},
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return in.EvalList(a[0], en)
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "call-with-env!", Desc: "calls f with an already evaluated argument list",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "f", Type: "func", Desc: "function to call"},
			DeclarationParameter{Name: "args", Type: "list", Desc: "arguments"},
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			f, err := argFunction("call-with-env!", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			return in.Apply(f, a[1], en)
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "parse", Desc: "reads source text and returns the list of its forms",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "code", Type: "string", Desc: "source text"},
		}, Returns: "list",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			code, err := argString("parse", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			forms, err := lyra.Read("parse", code)
			if err != nil {
				return lyra.Nil, err
			}
			return lyra.List(forms...), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "global-env!", Desc: "returns the bindings of the global frame as a list of (name . value) pairs, newest first",
		MinParameter: 0, MaxParameter: 0,
		Params: []DeclarationParameter{}, Returns: "list",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return in.GlobalEnv().Bindings(), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "time!", Desc: "returns the unix time in seconds",
		MinParameter: 0, MaxParameter: 0,
		Params: []DeclarationParameter{}, Returns: "number",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.NewFloat(float64(time.Now().UnixNano()) / 1e9), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "call-stack!", Desc: "returns the functions currently executing, innermost first",
		MinParameter: 0, MaxParameter: 0,
		Params: []DeclarationParameter{}, Returns: "list",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			stack := in.CallStack()
			items := make([]Value, len(stack))
			for i, f := range stack {
				items[i] = lyra.NewFunction(f)
			}
			return lyra.List(items...), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "measure", Desc: "runs f n times and returns the median duration in milliseconds",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "n", Type: "int", Desc: "number of runs"},
			DeclarationParameter{Name: "f", Type: "func", Desc: "function without parameters"},
		}, Returns: "number",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			n, err := argInt("measure", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			if n < 1 {
				return lyra.Nil, lyra.Errorf(lyra.TypeError, "measure: need at least one run, got %d", n)
			}
			f, err := argFunction("measure", a, 1)
			if err != nil {
				return lyra.Nil, err
			}
			durations := make([]float64, n)
			for i := range durations {
				start := time.Now()
				in.TraceSpan("measure", func() {
					_, err = in.Call(f, en)
				})
				if err != nil {
					return lyra.Nil, err
				}
				durations[i] = float64(time.Since(start).Nanoseconds()) / 1e6
			}
			return lyra.NewFloat(median(durations)), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "help", Desc: "lists all functions or prints the documentation of one",
		MinParameter: 0, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "name", Type: "string|symbol", Desc: "function to explain"},
		}, Returns: "nil",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			name := ""
			if len(a) == 1 {
				switch {
				case a[0].IsSymbol():
					name = a[0].Symbol().String()
				case a[0].IsString():
					name = a[0].Str()
				case a[0].IsFunction():
					f := a[0].Function()
					if !f.IsNative() && lyra.LookupDeclaration(f.Name) == nil {
						fmt.Fprintln(in.Stdout, "Help for: "+f.Name)
						fmt.Fprintln(in.Stdout, "===")
						fmt.Fprintln(in.Stdout, "")
						fmt.Fprintln(in.Stdout, "defined in lyra, parameters "+lyra.Serialize(f.Params))
						return lyra.Nil, nil
					}
					name = f.Name
				default:
					return lyra.Nil, typeError("help", 0, "a name", a[0])
				}
			}
			return lyra.Nil, lyra.Help(in.Stdout, name)
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "symbols!", Desc: "returns all interned symbol names starting with prefix, sorted",
		MinParameter: 0, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "prefix", Type: "string", Desc: "name prefix, default all"},
		}, Returns: "list",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			prefix := ""
			if len(a) == 1 {
				var err error
				if prefix, err = argString("symbols!", a, 0); err != nil {
					return lyra.Nil, err
				}
			}
			names := lyra.SymbolsWithPrefix(prefix)
			items := make([]Value, len(names))
			for i, name := range names {
				items[i] = lyra.NewString(name)
			}
			return lyra.List(items...), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "interpreter-id!", Desc: "returns the unique id of this interpreter",
		MinParameter: 0, MaxParameter: 0,
		Params: []DeclarationParameter{}, Returns: "string",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.NewString(in.ID.String()), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "memory!", Desc: "returns the allocated heap size, e.g. \"12.3MB\"",
		MinParameter: 0, MaxParameter: 0,
		Params: []DeclarationParameter{}, Returns: "string",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.NewString(HeapSize()), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "string-collate", Desc: "compares two strings by the rules of a locale; returns -1, 0 or 1. Digit runs compare as numbers.",
		MinParameter: 2, MaxParameter: 3,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "a", Type: "string", Desc: "first string"},
			DeclarationParameter{Name: "b", Type: "string", Desc: "second string"},
			DeclarationParameter{Name: "locale", Type: "string", Desc: "BCP 47 tag, default \"en\""},
		}, Returns: "int",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			x, err := argString("string-collate", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			y, err := argString("string-collate", a, 1)
			if err != nil {
				return lyra.Nil, err
			}
			locale := "en"
			if len(a) == 3 {
				if locale, err = argString("string-collate", a, 2); err != nil {
					return lyra.Nil, err
				}
			}
			c, err := collatorFor(locale)
			if err != nil {
				return lyra.Nil, err
			}
			collators.Lock()
			r := c.CompareString(x, y)
			collators.Unlock()
			return lyra.NewInt(int64(r)), nil
		}, Macro: false,
	})
}
