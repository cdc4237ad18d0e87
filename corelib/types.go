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
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/launix-de/lyra/lyra"
)

// leading numbers of a string, the rest is ignored like in most scripting
// languages
var leadingInt = regexp.MustCompile(`^\s*[-+]?[0-9]+`)
var leadingFloat = regexp.MustCompile(`^\s*[-+]?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?`)

func toInt(v Value) (Value, error) {
	switch v.Tag() {
	case lyra.TagNil:
		return lyra.NewInt(0), nil
	case lyra.TagInt:
		return v, nil
	case lyra.TagFloat:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
			return lyra.Nil, lyra.Errorf(lyra.TypeError, "int: %s does not fit into an int", lyra.Serialize(v))
		}
		return lyra.NewInt(int64(f)), nil
	case lyra.TagStr:
		m := leadingInt.FindString(v.Str())
		if m == "" {
			return lyra.NewInt(0), nil
		}
		i, err := strconv.ParseInt(strings.TrimSpace(m), 10, 64)
		if err != nil {
			return lyra.Nil, lyra.Errorf(lyra.TypeError, "int: %s is out of range", lyra.Serialize(v))
		}
		return lyra.NewInt(i), nil
	}
	return lyra.Nil, typeError("int", 0, "a number, string or '()", v)
}

func toFloat(v Value) (Value, error) {
	switch v.Tag() {
	case lyra.TagNil:
		return lyra.NewFloat(0), nil
	case lyra.TagInt, lyra.TagFloat:
		return lyra.NewFloat(v.Number()), nil
	case lyra.TagStr:
		m := leadingFloat.FindString(v.Str())
		if m == "" {
			return lyra.NewFloat(0), nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
		if err != nil {
			return lyra.Nil, lyra.Errorf(lyra.TypeError, "float: %s is out of range", lyra.Serialize(v))
		}
		return lyra.NewFloat(f), nil
	}
	return lyra.Nil, typeError("float", 0, "a number, string or '()", v)
}

// toString is the display form; '() becomes the empty string.
func toString(v Value) string {
	if v.IsNil() {
		return ""
	}
	return lyra.String(v)
}

func predicate(name, desc string, test func(v Value) bool) {
	lyra.Declare(&lyra.Declaration{
		Name: name, Desc: desc,
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "value", Type: "any", Desc: "value to test"},
		}, Returns: "bool",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.NewBool(test(a[0])), nil
		}, Macro: false,
	})
}

func init() {
	lyra.DeclareTitle("Types")

	lyra.Declare(&lyra.Declaration{
		Name: "lyra-type-id", Desc: "returns the type tag of a value: the tag given to pcons/pvector, else 0 nil, 1 pair, 2 int, 3 float, 4 bool, 5 string, 6 vector, 7 symbol; functions have none ('())",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "value", Type: "any", Desc: "value to inspect"},
		}, Returns: "int|nil",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.TypeID(a[0]), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "bit-match?", Desc: "true if both are ints and every bit of a is set in b",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "a", Type: "int", Desc: "bit mask"},
			DeclarationParameter{Name: "b", Type: "int", Desc: "value to test"},
		}, Returns: "bool",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			if !a[0].IsInt() || !a[1].IsInt() {
				return lyra.NewBool(false), nil
			}
			return lyra.NewBool(a[0].Int()&a[1].Int() == a[0].Int()), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "int", Desc: "converts to int: floats are truncated, strings parsed from their leading digits, '() is 0",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "value", Type: "number|string|nil", Desc: "value to convert"},
		}, Returns: "int",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return toInt(a[0])
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "float", Desc: "converts to float: strings are parsed from their leading number, '() is 0.0",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "value", Type: "number|string|nil", Desc: "value to convert"},
		}, Returns: "number",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return toFloat(a[0])
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "string", Desc: "converts any value to its display string; '() becomes \"\"",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "value", Type: "any", Desc: "value to convert"},
		}, Returns: "string",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.NewString(toString(a[0])), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "bool", Desc: "#f for #f and '(), #t for everything else",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "value", Type: "any", Desc: "value to convert"},
		}, Returns: "bool",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.NewBool(a[0].Truthy()), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p-hash", Desc: "hash of a value; equal values have equal hashes",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "value", Type: "any", Desc: "value to hash"},
		}, Returns: "int",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.NewInt(int64(lyra.Hash(a[0]))), nil
		}, Macro: false,
	})

	predicate("nil?", "true for '()", Value.IsNil)
	predicate("pair?", "true for pairs, tagged or not", Value.IsPair)
	predicate("symbol?", "true for symbols", Value.IsSymbol)
	predicate("string?", "true for strings", Value.IsString)
	predicate("int?", "true for ints", Value.IsInt)
	predicate("float?", "true for floats", Value.IsFloat)
	predicate("number?", "true for ints and floats", Value.IsNumber)
	predicate("bool?", "true for #t and #f", Value.IsBool)
	predicate("vector?", "true for vectors, tagged or not", Value.IsVector)
	predicate("function?", "true for functions and macros", Value.IsFunction)
}
