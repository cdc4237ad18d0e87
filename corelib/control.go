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

// Macros over an arbitrary number of forms are natives: a rest parameter
// bound to a single remaining form could not be told apart from a list of
// forms.

var (
	symLet     = lyra.NewSymbol("let")
	symIf      = lyra.NewSymbol("if")
	symAnd     = lyra.NewSymbol("and")
	symOr      = lyra.NewSymbol("or")
	symOrValue = lyra.NewSymbol("__or_value")
)

// sequence wraps forms into (let () forms...)
func sequence(forms []Value) Value {
	return lyra.Cons(symLet, lyra.Cons(lyra.Nil, lyra.List(forms...)))
}

func formsParameter(desc string) DeclarationParameter {
	return DeclarationParameter{Name: "form...", Type: "any", Desc: desc}
}

func init() {
	lyra.DeclareTitle("Control flow")

	lyra.Declare(&lyra.Declaration{
		Name: "begin", Desc: "evaluates the forms in order and returns the value of the last one",
		MinParameter: 0, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{formsParameter("forms to evaluate")}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return sequence(a), nil
		}, Macro: true,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "when", Desc: "evaluates the forms if the condition holds; '() otherwise",
		MinParameter: 1, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "condition", Type: "any", Desc: "anything except #f and '() counts as true"},
			formsParameter("forms to evaluate"),
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.List(symIf, a[0], sequence(a[1:]), lyra.Nil), nil
		}, Macro: true,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "unless", Desc: "evaluates the forms if the condition does not hold; '() otherwise",
		MinParameter: 1, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "condition", Type: "any", Desc: "anything except #f and '() counts as true"},
			formsParameter("forms to evaluate"),
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.List(symIf, a[0], lyra.Nil, sequence(a[1:])), nil
		}, Macro: true,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "and", Desc: "returns #f at the first false operand, else the last operand; #t without operands",
		MinParameter: 0, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{formsParameter("operands, evaluated left to right")}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			switch len(a) {
			case 0:
				return lyra.NewBool(true), nil
			case 1:
				return a[0], nil
			}
			return lyra.List(symIf, a[0], lyra.Cons(symAnd, lyra.List(a[1:]...)), lyra.NewBool(false)), nil
		}, Macro: true,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "or", Desc: "returns the first true operand; #f if there is none",
		MinParameter: 0, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{formsParameter("operands, evaluated left to right")}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			switch len(a) {
			case 0:
				return lyra.NewBool(false), nil
			case 1:
				return a[0], nil
			}
			return lyra.List(symLet,
				lyra.List(lyra.List(symOrValue, a[0])),
				lyra.List(symIf, symOrValue, symOrValue, lyra.Cons(symOr, lyra.List(a[1:]...)))), nil
		}, Macro: true,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "=", Desc: "#t if all operands are structurally equal",
		MinParameter: 1, MaxParameter: lyra.Unbounded,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "value...", Type: "any", Desc: "values to compare"},
		}, Returns: "bool",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			for i := 1; i < len(a); i++ {
				if !lyra.Equal(a[i-1], a[i]) {
					return lyra.NewBool(false), nil
				}
			}
			return lyra.NewBool(true), nil
		}, Macro: false,
	})
}
