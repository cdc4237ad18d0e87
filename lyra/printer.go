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
	"bytes"
	"strconv"
	"strings"
)

var stringEscaper = strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "\n", "\\n")

// String renders v for display: strings are written without quotes.
func String(v Value) string {
	var b bytes.Buffer
	newPrinter(&b, false).print(v)
	return b.String()
}

// Serialize renders v so that Read gives back an equal value for atoms
// and proper lists of atoms.
func Serialize(v Value) string {
	var b bytes.Buffer
	SerializeTo(&b, v)
	return b.String()
}

func SerializeTo(b *bytes.Buffer, v Value) {
	newPrinter(b, true).print(v)
}

func (v Value) String() string { return Serialize(v) }

// printer keeps the pairs and vectors of the current path; meeting one
// again means the structure is cyclic and it is printed as ...
type printer struct {
	b        *bytes.Buffer
	readable bool
	path     map[any]bool
}

func newPrinter(b *bytes.Buffer, readable bool) *printer {
	return &printer{b: b, readable: readable, path: make(map[any]bool)}
}

func (p *printer) print(v Value) {
	switch v.tag {
	case TagNil:
		p.b.WriteString("'()")
	case TagBool:
		if v.bits != 0 {
			p.b.WriteString("#t")
		} else {
			p.b.WriteString("#f")
		}
	case TagInt:
		p.b.WriteString(strconv.FormatInt(int64(v.bits), 10))
	case TagFloat:
		p.b.WriteString(formatFloat(v.Float()))
	case TagStr:
		if p.readable {
			p.b.WriteByte('"')
			p.b.WriteString(stringEscaper.Replace(v.str))
			p.b.WriteByte('"')
		} else {
			p.b.WriteString(v.str)
		}
	case TagSymbol:
		p.b.WriteString(Symbol(v.bits).String())
	case TagFunction:
		p.b.WriteString(v.ref.(*Function).String())
	case TagVector:
		vec := v.ref.(*Vector)
		if p.path[vec] {
			p.b.WriteString("...")
			return
		}
		p.path[vec] = true
		p.b.WriteByte('[')
		for i, item := range vec.Items {
			if i > 0 {
				p.b.WriteByte(' ')
			}
			p.print(item)
		}
		p.b.WriteByte(']')
		delete(p.path, vec)
	case TagPair:
		p.printList(v.ref.(*Pair))
	default:
		p.b.WriteString("<" + v.tag.String() + ">")
	}
}

func (p *printer) printList(cell *Pair) {
	if p.path[cell] {
		p.b.WriteString("...")
		return
	}
	var spine []*Pair
	p.b.WriteByte('(')
	for {
		p.path[cell] = true
		spine = append(spine, cell)
		p.print(cell.Car)
		if !cell.Cdr.IsPair() {
			if !cell.Cdr.IsNil() {
				p.b.WriteString(" . ")
				p.print(cell.Cdr)
			}
			break
		}
		next := cell.Cdr.ref.(*Pair)
		if p.path[next] {
			p.b.WriteString(" . ...")
			break
		}
		p.b.WriteByte(' ')
		cell = next
	}
	p.b.WriteByte(')')
	for _, c := range spine {
		delete(p.path, c)
	}
}

// formatFloat always keeps a decimal point so the reader sees a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}
