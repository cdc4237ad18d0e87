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

/*
 Environments
*/

type frameKind uint8

const (
	frameLocal frameKind = iota
	frameDivider
	frameGlobal
)

// Env is one frame of the environment chain. Its bindings are an
// association list ((sym . value) ...), newest first, so a lookup stops at
// the most recent definition. Local frames are never changed once another
// frame is chained onto them; only the global frame grows (define).
type Env struct {
	Vars  Value
	Outer *Env
	kind  frameKind
}

func newGlobalFrame() *Env { return &Env{kind: frameGlobal} }

// newDivider marks the boundary between call-scoped frames and globals.
func newDivider(global *Env) *Env { return &Env{Outer: global, kind: frameDivider} }

// NewFrame chains a local frame holding bindings onto outer.
func NewFrame(outer *Env, bindings Value) *Env {
	return &Env{Vars: bindings, Outer: outer}
}

func (en *Env) IsGlobal() bool  { return en.kind == frameGlobal }
func (en *Env) IsDivider() bool { return en.kind == frameDivider }

// Bindings returns the live association list of this frame.
func (en *Env) Bindings() Value { return en.Vars }

// FindRead returns the binding pair of sym, searching outwards.
func (en *Env) FindRead(sym Symbol) (*Pair, bool) {
	for e := en; e != nil; e = e.Outer {
		if e.kind == frameDivider {
			continue
		}
		for b := e.Vars; b.IsPair(); b = b.ref.(*Pair).Cdr {
			entry := b.ref.(*Pair).Car
			if !entry.IsPair() {
				continue
			}
			if p := entry.ref.(*Pair); p.Car.SymbolEquals(sym) {
				return p, true
			}
		}
	}
	return nil, false
}

func (en *Env) Lookup(sym Symbol) (Value, error) {
	if p, ok := en.FindRead(sym); ok {
		return p.Cdr, nil
	}
	return Nil, Errorf(NameError, "symbol not found: %s", sym)
}

// Global walks out to the global frame.
func (en *Env) Global() *Env {
	e := en
	for e != nil && e.kind != frameGlobal {
		e = e.Outer
	}
	return e
}

// define prepends a binding; earlier bindings of the same name stay in the
// list and are merely shadowed.
func (en *Env) define(sym Symbol, v Value) {
	en.Vars = Cons(Cons(sym.Value(), v), en.Vars)
}

// BindParams pairs formal parameters with actual arguments:
//   - one parameter per argument while more than one parameter is left
//   - the last parameter takes the whole remaining argument list if more
//     than one argument is left, else the single argument itself
//   - parameters without an argument are bound to Nil
//
// A rest parameter (a & b) therefore sees 2 for (f 1 2) and (2 3) for
// (f 1 2 3).
func BindParams(params, args Value) Value {
	var head, tail *Pair
	add := func(sym, v Value) {
		cell := &Pair{Car: Cons(sym, v)}
		if tail == nil {
			head = cell
		} else {
			tail.Cdr = Value{tag: TagPair, ref: cell}
		}
		tail = cell
	}
	for params.IsPair() {
		p := params.ref.(*Pair)
		last := !p.Cdr.IsPair()
		switch {
		case !args.IsPair():
			add(p.Car, Nil)
		case last && args.ref.(*Pair).Cdr.IsPair():
			add(p.Car, args)
			args = Nil
		default:
			a := args.ref.(*Pair)
			add(p.Car, a.Car)
			args = a.Cdr
		}
		params = p.Cdr
	}
	if head == nil {
		return Nil
	}
	return Value{tag: TagPair, ref: head}
}
