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
	"strings"
	"sync"

	"github.com/google/btree"
)

// Symbol is an interned name; two symbols are equal iff their ids are.
type Symbol uint32

// the symbol table is shared by all interpreters; it only ever grows
var symtab struct {
	sync.RWMutex
	ids   map[string]Symbol
	names []string
	index *btree.BTreeG[string] // ordered names for prefix scans
}

func Intern(name string) Symbol {
	symtab.RLock()
	sym, ok := symtab.ids[name]
	symtab.RUnlock()
	if ok {
		return sym
	}
	symtab.Lock()
	defer symtab.Unlock()
	if sym, ok := symtab.ids[name]; ok {
		return sym
	}
	if symtab.ids == nil {
		symtab.ids = make(map[string]Symbol)
		symtab.index = btree.NewG[string](16, func(a, b string) bool { return a < b })
	}
	sym = Symbol(len(symtab.names))
	symtab.names = append(symtab.names, name)
	symtab.ids[name] = sym
	symtab.index.ReplaceOrInsert(name)
	return sym
}

func (s Symbol) String() string {
	symtab.RLock()
	defer symtab.RUnlock()
	if int(s) < len(symtab.names) {
		return symtab.names[s]
	}
	return "<unknown symbol>"
}

func (s Symbol) Value() Value { return Value{tag: TagSymbol, bits: uint64(s)} }

// SymbolsWithPrefix lists all interned names starting with prefix in
// lexical order.
func SymbolsWithPrefix(prefix string) []string {
	symtab.RLock()
	defer symtab.RUnlock()
	var result []string
	if symtab.index == nil {
		return result
	}
	symtab.index.AscendGreaterOrEqual(prefix, func(name string) bool {
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		result = append(result, name)
		return true
	})
	return result
}

// keywords of the special forms and the reader
var (
	symIf      = Intern("if")
	symCond    = Intern("cond")
	symLet     = Intern("let")
	symLetStar = Intern("let*")
	symLambda  = Intern("lambda")
	symDefine  = Intern("define")
	symMacro   = Intern("def-macro")
	symQuote   = Intern("quote")
	symRequote = Intern("requote")
	symRest    = Intern("&")
)
