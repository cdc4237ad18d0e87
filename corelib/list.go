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

func init() {
	lyra.DeclareTitle("Lists")

	lyra.Declare(&lyra.Declaration{
		Name: "list", Desc: "returns its arguments as a list",
		MinParameter: 0, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "item...", Type: "any", Desc: "list items"},
		}, Returns: "list",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.List(a...), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "car", Desc: "returns the first slot of a pair; (car '()) is '()",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "pair", Type: "list", Desc: "pair or '()"},
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			if a[0].IsNil() {
				return lyra.Nil, nil
			}
			p, err := argPair("car", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			return p.Car, nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "cdr", Desc: "returns the second slot of a pair; (cdr '()) is '()",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "pair", Type: "list", Desc: "pair or '()"},
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			if a[0].IsNil() {
				return lyra.Nil, nil
			}
			p, err := argPair("cdr", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			return p.Cdr, nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "cons", Desc: "creates a new pair",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "car", Type: "any", Desc: "first slot"},
			DeclarationParameter{Name: "cdr", Type: "any", Desc: "second slot, usually a list"},
		}, Returns: "list",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.Cons(a[0], a[1]), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "pcons", Desc: "creates a pair that reports tag as its lyra-type-id",
		MinParameter: 3, MaxParameter: 3,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "car", Type: "any", Desc: "first slot"},
			DeclarationParameter{Name: "cdr", Type: "any", Desc: "second slot"},
			DeclarationParameter{Name: "tag", Type: "int", Desc: "type id"},
		}, Returns: "list",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			tag, err := argInt("pcons", a, 2)
			if err != nil {
				return lyra.Nil, err
			}
			return lyra.NewTaggedPair(a[0], a[1], tag), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "set-car!", Desc: "overwrites the first slot of a pair and returns the new value",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "pair", Type: "list", Desc: "pair to change"},
			DeclarationParameter{Name: "value", Type: "any", Desc: "new first slot"},
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			p, err := argPair("set-car!", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			p.Car = a[1]
			return a[1], nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "set-cdr!", Desc: "overwrites the second slot of a pair and returns the new value",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "pair", Type: "list", Desc: "pair to change"},
			DeclarationParameter{Name: "value", Type: "any", Desc: "new second slot"},
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			p, err := argPair("set-cdr!", a, 0)
			if err != nil {
				return lyra.Nil, err
			}
			p.Cdr = a[1]
			return a[1], nil
		}, Macro: false,
	})
}
