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

import "math"
import "hash/fnv"
import "encoding/binary"

// Equal is structural equality. Ints and floats compare by numeric value,
// functions by identity. Cyclic structures are compared coinductively: a
// pair of nodes already under comparison counts as equal.
func Equal(a, b Value) bool {
	return equal(a, b, make(map[[2]any]bool))
}

func equal(a, b Value, seen map[[2]any]bool) bool {
	if a.IsNumber() && b.IsNumber() {
		if a.tag == TagInt && b.tag == TagInt {
			return a.bits == b.bits
		}
		return a.Number() == b.Number()
	}
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case TagNil:
		return true
	case TagBool, TagSymbol:
		return a.bits == b.bits
	case TagStr:
		return a.str == b.str
	case TagFunction:
		return a.ref == b.ref
	case TagVector:
		va, vb := a.ref.(*Vector), b.ref.(*Vector)
		if va == vb {
			return true
		}
		if len(va.Items) != len(vb.Items) {
			return false
		}
		key := [2]any{va, vb}
		if seen[key] {
			return true
		}
		seen[key] = true
		for i := range va.Items {
			if !equal(va.Items[i], vb.Items[i], seen) {
				return false
			}
		}
		return true
	case TagPair:
		for a.IsPair() && b.IsPair() {
			pa, pb := a.ref.(*Pair), b.ref.(*Pair)
			if pa == pb {
				return true
			}
			key := [2]any{pa, pb}
			if seen[key] {
				return true
			}
			seen[key] = true
			if !equal(pa.Car, pb.Car, seen) {
				return false
			}
			a, b = pa.Cdr, pb.Cdr
		}
		return equal(a, b, seen)
	}
	return false
}

// Less orders numbers numerically and strings bytewise. ok is false for
// any other combination.
func Less(a, b Value) (less bool, ok bool) {
	switch {
	case a.tag == TagInt && b.tag == TagInt:
		return int64(a.bits) < int64(b.bits), true
	case a.IsNumber() && b.IsNumber():
		return a.Number() < b.Number(), true
	case a.tag == TagStr && b.tag == TagStr:
		return a.str < b.str, true
	}
	return false, false
}

// Hash is consistent with Equal: equal values hash equally. Only a bounded
// number of nodes is visited, so cyclic structures terminate.
func Hash(v Value) uint64 {
	h := fnv.New64a()
	budget := 256
	hashInto(h, v, &budget)
	return h.Sum64()
}

type hashWriter interface {
	Write([]byte) (int, error)
}

func hashInto(h hashWriter, v Value, budget *int) {
	if *budget <= 0 {
		return
	}
	*budget--
	var buf [9]byte
	if v.tag == TagFloat {
		// integral floats hash like the equal int
		if f := v.Float(); f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			v = NewInt(int64(f))
		}
	}
	buf[0] = byte(v.tag)
	switch v.tag {
	case TagBool, TagInt, TagFloat, TagSymbol:
		binary.LittleEndian.PutUint64(buf[1:], v.bits)
		h.Write(buf[:])
	case TagStr:
		h.Write(buf[:1])
		h.Write([]byte(v.str))
	case TagPair:
		h.Write(buf[:1])
		for c := v; c.IsPair() && *budget > 0; c = c.ref.(*Pair).Cdr {
			hashInto(h, c.ref.(*Pair).Car, budget)
		}
	case TagVector:
		h.Write(buf[:1])
		for _, item := range v.ref.(*Vector).Items {
			hashInto(h, item, budget)
		}
	default:
		h.Write(buf[:1])
	}
}
