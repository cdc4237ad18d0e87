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

import "github.com/launix-de/lyra/lyra"

func vectorIndex(fn string, a []Value, vec *lyra.Vector) (int, error) {
	i, err := argInt(fn, a, 1)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= int64(len(vec.Items)) {
		return 0, lyra.Errorf(lyra.TypeError, "%s: index %d out of range (size %d)", fn, i, len(vec.Items))
	}
	return int(i), nil
}

func init() {
	lyra.DeclareTitle("Vectors")

	lyra.Declare(&lyra.Declaration{
		Name: "vector", Desc: "returns its arguments as a vector",
		MinParameter: 0, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "item...", Type: "any", Desc: "vector items"},
		}, Returns: "vector",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.NewVector(append([]Value(nil), a...)), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "pvector", Desc: "creates a vector that reports tag as its lyra-type-id",
		MinParameter: 1, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "tag", Type: "int", Desc: "type id"},
			DeclarationParameter{Name: "item...", Type: "any", Desc: "vector items"},
		}, Returns: "vector",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			tag, err := argInt("pvector", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			return lyra.NewTaggedVector(append([]Value(nil), a[1:]...), tag), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "vector-get", Desc: "returns the item at index",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "vector", Type: "vector", Desc: "vector to read"},
			DeclarationParameter{Name: "index", Type: "int", Desc: "0 based index"},
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			vec, err := argVector("vector-get", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			i, err := vectorIndex("vector-get", a, vec)
			if err != nil {
				return lyra.Nil, err
			}
			return vec.Items[i], nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "vector-set!", Desc: "overwrites the item at index and returns the vector",
		MinParameter: 3, MaxParameter: 3,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "vector", Type: "vector", Desc: "vector to change"},
			DeclarationParameter{Name: "index", Type: "int", Desc: "0 based index"},
			DeclarationParameter{Name: "value", Type: "any", Desc: "new item"},
		}, Returns: "vector",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			vec, err := argVector("vector-set!", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			i, err := vectorIndex("vector-set!", a, vec)
			if err != nil {
				return lyra.Nil, err
			}
			vec.Items[i] = a[2]
			return a[0], nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "vector-append!", Desc: "appends an item and returns the vector",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "vector", Type: "vector", Desc: "vector to change"},
			DeclarationParameter{Name: "value", Type: "any", Desc: "new item"},
		}, Returns: "vector",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			vec, err := argVector("vector-append!", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			vec.Items = append(vec.Items, a[1])
			return a[0], nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "vector-size", Desc: "returns the number of items",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "vector", Type: "vector", Desc: "vector to measure"},
		}, Returns: "int",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			vec, err := argVector("vector-size", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			return lyra.NewInt(int64(len(vec.Items))), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "vector-iterate", Desc: "folds over a vector: calls (f acc item index) for every item and returns the last acc",
		MinParameter: 3, MaxParameter: 3,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "vector", Type: "vector", Desc: "vector to iterate"},
			DeclarationParameter{Name: "acc", Type: "any", Desc: "initial accumulator"},
			DeclarationParameter{Name: "f", Type: "func", Desc: "function of (acc item index) returning the next acc"},
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			vec, err := argVector("vector-iterate", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			f, err := argFunction("vector-iterate", a, 2)
			if err != nil {
				return lyra.Nil, err
			}
			acc := a[1]
			// the length is read on every step; f may append
			for i := 0; i < len(vec.Items); i++ {
				if acc, err = in.Call(f, en, acc, vec.Items[i], lyra.NewInt(int64(i))); err != nil {
					return lyra.Nil, err
				}
			}
			return acc, nil
		}, Macro: false,
	})
}
