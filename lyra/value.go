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
	"fmt"
	"math"
)

// Tag identifies the variant stored in a Value. The numbering of the first
// eight tags equals the structural type ids reported by (lyra-type-id).
type Tag uint8

const (
	TagNil Tag = iota
	TagPair
	TagInt
	TagFloat
	TagBool
	TagStr
	TagVector
	TagSymbol
	TagFunction
	tagTailCall // never leaves the invocation loop
)

func (t Tag) String() string {
	switch t {
	case TagNil:
		return "nil"
	case TagPair:
		return "pair"
	case TagInt:
		return "int"
	case TagFloat:
		return "float"
	case TagBool:
		return "bool"
	case TagStr:
		return "string"
	case TagVector:
		return "vector"
	case TagSymbol:
		return "symbol"
	case TagFunction:
		return "function"
	case tagTailCall:
		return "tail-call"
	}
	return fmt.Sprintf("<tag %d>", uint8(t))
}

// Value is the closed tagged union of all runtime data.
// Atoms live in bits/str, reference variants in ref.
type Value struct {
	tag  Tag
	bits uint64 // Bool, Int, Float (IEEE bits), Symbol id
	str  string
	ref  any // *Pair, *Vector, *Function, *tailCall
}

// Pair is a mutable cons cell. The graph formed by pairs may be cyclic.
type Pair struct {
	Car, Cdr Value
	typeID   int64
	tagged   bool
}

// Vector is a mutable ordered sequence.
type Vector struct {
	Items  []Value
	typeID int64
	tagged bool
}

// Nil is the empty list.
var Nil = Value{}

//
// Constructors
//

func NewBool(b bool) Value {
	if b {
		return Value{tag: TagBool, bits: 1}
	}
	return Value{tag: TagBool}
}

func NewInt(i int64) Value { return Value{tag: TagInt, bits: uint64(i)} }

func NewFloat(f float64) Value { return Value{tag: TagFloat, bits: math.Float64bits(f)} }

func NewString(s string) Value { return Value{tag: TagStr, str: s} }

func NewSymbol(name string) Value { return Intern(name).Value() }

func Cons(car, cdr Value) Value {
	return Value{tag: TagPair, ref: &Pair{Car: car, Cdr: cdr}}
}

// NewTaggedPair builds a pair whose (lyra-type-id) reports typeID.
func NewTaggedPair(car, cdr Value, typeID int64) Value {
	return Value{tag: TagPair, ref: &Pair{Car: car, Cdr: cdr, typeID: typeID, tagged: true}}
}

func NewVector(items []Value) Value {
	return Value{tag: TagVector, ref: &Vector{Items: items}}
}

func NewTaggedVector(items []Value, typeID int64) Value {
	return Value{tag: TagVector, ref: &Vector{Items: items, typeID: typeID, tagged: true}}
}

func NewFunction(f *Function) Value {
	if f == nil {
		return Nil
	}
	return Value{tag: TagFunction, ref: f}
}

// List builds a proper list from its arguments.
func List(items ...Value) Value {
	result := Nil
	for i := len(items) - 1; i >= 0; i-- {
		result = Cons(items[i], result)
	}
	return result
}

//
// Accessors
//

func (v Value) Tag() Tag { return v.tag }

func (v Value) IsNil() bool      { return v.tag == TagNil }
func (v Value) IsPair() bool     { return v.tag == TagPair }
func (v Value) IsInt() bool      { return v.tag == TagInt }
func (v Value) IsFloat() bool    { return v.tag == TagFloat }
func (v Value) IsBool() bool     { return v.tag == TagBool }
func (v Value) IsString() bool   { return v.tag == TagStr }
func (v Value) IsVector() bool   { return v.tag == TagVector }
func (v Value) IsSymbol() bool   { return v.tag == TagSymbol }
func (v Value) IsFunction() bool { return v.tag == TagFunction }
func (v Value) IsNumber() bool   { return v.tag == TagInt || v.tag == TagFloat }

// Truthy reports whether v counts as true in a condition:
// everything except #f and Nil.
func (v Value) Truthy() bool {
	switch v.tag {
	case TagNil:
		return false
	case TagBool:
		return v.bits != 0
	}
	return true
}

func (v Value) Bool() bool {
	v.must(TagBool)
	return v.bits != 0
}

func (v Value) Int() int64 {
	v.must(TagInt)
	return int64(v.bits)
}

func (v Value) Float() float64 {
	v.must(TagFloat)
	return math.Float64frombits(v.bits)
}

// Number returns ints and floats as float64.
func (v Value) Number() float64 {
	if v.tag == TagInt {
		return float64(int64(v.bits))
	}
	return v.Float()
}

func (v Value) Str() string {
	v.must(TagStr)
	return v.str
}

func (v Value) Symbol() Symbol {
	v.must(TagSymbol)
	return Symbol(v.bits)
}

// SymbolEquals reports whether v is the symbol sym.
func (v Value) SymbolEquals(sym Symbol) bool {
	return v.tag == TagSymbol && Symbol(v.bits) == sym
}

func (v Value) Pair() *Pair {
	v.must(TagPair)
	return v.ref.(*Pair)
}

func (v Value) Vector() *Vector {
	v.must(TagVector)
	return v.ref.(*Vector)
}

func (v Value) Function() *Function {
	v.must(TagFunction)
	return v.ref.(*Function)
}

func (v Value) must(tag Tag) {
	if v.tag != tag {
		panic("lyra: expected " + tag.String() + ", got " + v.tag.String())
	}
}

// Car and Cdr of Nil are Nil, like in most Lisps.
func (v Value) Car() Value {
	if v.tag != TagPair {
		return Nil
	}
	return v.ref.(*Pair).Car
}

func (v Value) Cdr() Value {
	if v.tag != TagPair {
		return Nil
	}
	return v.ref.(*Pair).Cdr
}

// Same reports identity: atoms by value, pairs/vectors/functions by reference.
func Same(a, b Value) bool { return a == b }

//
// Type tags
//

// TypeID returns the explicit type tag of a pair or vector if present,
// else the structural default of the variant. Functions have none (Nil).
func TypeID(v Value) Value {
	switch v.tag {
	case TagPair:
		if p := v.ref.(*Pair); p.tagged {
			return NewInt(p.typeID)
		}
	case TagVector:
		if vec := v.ref.(*Vector); vec.tagged {
			return NewInt(vec.typeID)
		}
	case TagFunction:
		return Nil
	}
	return NewInt(int64(v.tag))
}

// SetTypeID overrides the type tag of a pair or vector.
func SetTypeID(v Value, typeID int64) bool {
	switch v.tag {
	case TagPair:
		p := v.ref.(*Pair)
		p.typeID, p.tagged = typeID, true
		return true
	case TagVector:
		vec := v.ref.(*Vector)
		vec.typeID, vec.tagged = typeID, true
		return true
	}
	return false
}

//
// List helpers
//

// Length counts the pairs along the cdr spine of v. A cyclic spine reports
// the number of distinct pairs and proper=false; a dotted tail is not
// counted but keeps proper=true.
func Length(v Value) (n int, proper bool) {
	slow, fast := v, v
	for {
		if !fast.IsPair() {
			break
		}
		fast = fast.ref.(*Pair).Cdr
		if !fast.IsPair() {
			break
		}
		fast = fast.ref.(*Pair).Cdr
		slow = slow.ref.(*Pair).Cdr
		if fast.IsPair() && fast.ref == slow.ref {
			// Floyd: mu steps to the cycle entry, lambda pairs inside it
			mu := 0
			a, b := v, slow
			for a.ref != b.ref {
				a, b = a.ref.(*Pair).Cdr, b.ref.(*Pair).Cdr
				mu++
			}
			lambda := 1
			for c := a.ref.(*Pair).Cdr; c.ref != a.ref; c = c.ref.(*Pair).Cdr {
				lambda++
			}
			return mu + lambda, false
		}
	}
	for c := v; c.IsPair(); c = c.ref.(*Pair).Cdr {
		n++
	}
	return n, true
}

// ToSlice collects the cars of the list spine. Cyclic spines are cut after
// every distinct pair has been visited once.
func ToSlice(v Value) []Value {
	n, _ := Length(v)
	result := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		p := v.ref.(*Pair)
		result = append(result, p.Car)
		v = p.Cdr
	}
	return result
}

// IsProperList reports whether v is a finite Nil-terminated chain of pairs.
func IsProperList(v Value) bool {
	n, ok := Length(v)
	if !ok {
		return false
	}
	for i := 0; i < n; i++ {
		v = v.ref.(*Pair).Cdr
	}
	return v.IsNil()
}
