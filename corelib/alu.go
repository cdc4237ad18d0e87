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

	"github.com/launix-de/lyra/lyra"
)

// arith applies an int or a float version of an operator: two ints stay
// int, as soon as one operand is a float the result is a float.
func arith(name string, a []Value, ints func(x, y int64) (int64, error), floats func(x, y float64) float64) (Value, error) {
	for i := range a {
		if !a[i].IsNumber() {
			return lyra.Nil, typeError(name, i, "a number", a[i])
		}
	}
	if a[0].IsInt() && a[1].IsInt() {
		r, err := ints(a[0].Int(), a[1].Int())
		if err != nil {
			return lyra.Nil, err
		}
		return lyra.NewInt(r), nil
	}
	return lyra.NewFloat(floats(a[0].Number(), a[1].Number())), nil
}

// bitwise operators only accept ints
func bitwise(name string, a []Value, op func(x, y int64) (int64, error)) (Value, error) {
	x, err := argInt(name, a, 0)
	if err != nil {
		return lyra.Nil, err
	}
	y, err := argInt(name, a, 1)
	if err != nil {
		return lyra.Nil, err
	}
	r, err := op(x, y)
	if err != nil {
		return lyra.Nil, err
	}
	return lyra.NewInt(r), nil
}

// integer division and modulo round towards negative infinity
func floorDiv(x, y int64) int64 {
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q
}

func floorMod(x, y int64) int64 {
	m := x % y
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

func floatMod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

func divisionByZero(name string) error {
	return lyra.Errorf(lyra.TypeError, "%s: division by zero", name)
}

func twoOperands(typ string) []DeclarationParameter {
	return []DeclarationParameter{
		DeclarationParameter{Name: "a", Type: typ, Desc: "first operand"},
		DeclarationParameter{Name: "b", Type: typ, Desc: "second operand"},
	}
}

func init() {
	lyra.DeclareTitle("Primitive operators")

	lyra.Declare(&lyra.Declaration{
		Name: "p=", Desc: "structural equality; ints and floats compare by value, functions by identity",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("any"), Returns: "bool",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return lyra.NewBool(lyra.Equal(a[0], a[1])), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p<", Desc: "compares two numbers or two strings",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("number|string"), Returns: "bool",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			less, ok := lyra.Less(a[0], a[1])
			if !ok {
				return lyra.Nil, lyra.Errorf(lyra.TypeError, "p<: cannot compare %s and %s", lyra.Serialize(a[0]), lyra.Serialize(a[1]))
			}
			return lyra.NewBool(less), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p>", Desc: "compares two numbers or two strings",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("number|string"), Returns: "bool",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			greater, ok := lyra.Less(a[1], a[0])
			if !ok {
				return lyra.Nil, lyra.Errorf(lyra.TypeError, "p>: cannot compare %s and %s", lyra.Serialize(a[0]), lyra.Serialize(a[1]))
			}
			return lyra.NewBool(greater), nil
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p+", Desc: "adds two numbers or concatenates two strings",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("number|string"), Returns: "number|string",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			if a[0].IsString() && a[1].IsString() {
				return lyra.NewString(a[0].Str() + a[1].Str()), nil
			}
			return arith("p+", a, func(x, y int64) (int64, error) { return x + y, nil }, func(x, y float64) float64 { return x + y })
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p-", Desc: "subtracts b from a",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("number"), Returns: "number",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return arith("p-", a, func(x, y int64) (int64, error) { return x - y, nil }, func(x, y float64) float64 { return x - y })
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p*", Desc: "multiplies two numbers",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("number"), Returns: "number",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return arith("p*", a, func(x, y int64) (int64, error) { return x * y, nil }, func(x, y float64) float64 { return x * y })
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p/", Desc: "divides a by b; two ints give the floored int quotient",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("number"), Returns: "number",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return arith("p/", a, func(x, y int64) (int64, error) {
				if y == 0 {
					return 0, divisionByZero("p/")
				}
				return floorDiv(x, y), nil
			}, func(x, y float64) float64 { return x / y })
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p%", Desc: "modulo; the result has the sign of b",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("number"), Returns: "number",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return arith("p%", a, func(x, y int64) (int64, error) {
				if y == 0 {
					return 0, divisionByZero("p%")
				}
				return floorMod(x, y), nil
			}, floatMod)
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p&", Desc: "bitwise and",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("int"), Returns: "int",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return bitwise("p&", a, func(x, y int64) (int64, error) { return x & y, nil })
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p|", Desc: "bitwise or",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("int"), Returns: "int",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return bitwise("p|", a, func(x, y int64) (int64, error) { return x | y, nil })
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p^", Desc: "bitwise exclusive or",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("int"), Returns: "int",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return bitwise("p^", a, func(x, y int64) (int64, error) { return x ^ y, nil })
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p<<", Desc: "shifts a left by b bits",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("int"), Returns: "int",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return bitwise("p<<", a, func(x, y int64) (int64, error) {
				if y < 0 {
					return 0, lyra.Errorf(lyra.TypeError, "p<<: negative shift count %d", y)
				}
				return x << uint64(y), nil
			})
		}, Macro: false,
	})
	lyra.Declare(&lyra.Declaration{
		Name: "p>>", Desc: "arithmetic shift of a right by b bits",
		MinParameter: 2, MaxParameter: 2,
		Params: twoOperands("int"), Returns: "int",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return bitwise("p>>", a, func(x, y int64) (int64, error) {
				if y < 0 {
					return 0, lyra.Errorf(lyra.TypeError, "p>>: negative shift count %d", y)
				}
				return x >> uint64(y), nil
			})
		}, Macro: false,
	})
}
