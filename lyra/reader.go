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
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

type SourceInfo struct {
	source string
	line   int
	col    int
}

func (source_info SourceInfo) String() string {
	return fmt.Sprintf("%s:%d:%d", source_info.source, source_info.line, source_info.col)
}

// one token per match; group 1 is set for strings, group 2 tells whether
// the string was closed
var (
	reWhitespace = regexp.MustCompile(`^[\s,]+`)
	reToken      = regexp.MustCompile(`(?s)^(?:'\(\)|[()']|"((?:\\.|[^\\"])*)("?)|;[^\n]*|[^\s\[\]{}('"` + "`" + `,;)]+)`)
	reInt        = regexp.MustCompile(`^-?(0x[0-9a-fA-F]+|0b[01]+|[0-9]+)$`)
	reFloat      = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
)

var unescaper = strings.NewReplacer("\\\\", "\\", "\\n", "\n", "\\\"", "\"", "\\t", "\t", "\\r", "\r")

type tokenKind uint8

const (
	tokOpen tokenKind = iota
	tokClose
	tokQuote
	tokAtom
)

type token struct {
	kind  tokenKind
	value Value // tokAtom
	pos   int
}

type reader struct {
	source string
	s      string
	tokens []token
	next   int
}

// Read parses all top-level forms of s. source names the input in error
// messages.
func Read(source, s string) ([]Value, error) {
	r := &reader{source: source, s: s}
	if err := r.tokenize(); err != nil {
		return nil, err
	}
	var forms []Value
	for r.next < len(r.tokens) {
		form, err := r.readForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

// ReadOne parses exactly one form.
func ReadOne(source, s string) (Value, error) {
	forms, err := Read(source, s)
	if err != nil {
		return Nil, err
	}
	if len(forms) != 1 {
		return Nil, Errorf(SyntaxError, "%s: expected one form, got %d", source, len(forms))
	}
	return forms[0], nil
}

func (r *reader) position(pos int) SourceInfo {
	line := 1 + strings.Count(r.s[:pos], "\n")
	lineStart := strings.LastIndexByte(r.s[:pos], '\n') + 1
	return SourceInfo{r.source, line, utf8.RuneCountInString(r.s[lineStart:pos]) + 1}
}

func (r *reader) fail(pos int, incomplete bool, format string, args ...any) error {
	return &Error{Kind: SyntaxError, Msg: r.position(pos).String() + ": " + fmt.Sprintf(format, args...), incomplete: incomplete}
}

// Lexical Analysis
func (r *reader) tokenize() error {
	pos := 0
	for pos < len(r.s) {
		if ws := reWhitespace.FindStringIndex(r.s[pos:]); ws != nil {
			pos += ws[1]
			continue
		}
		m := reToken.FindStringSubmatchIndex(r.s[pos:])
		if m == nil || m[1] == 0 {
			ch, _ := utf8.DecodeRuneInString(r.s[pos:])
			return r.fail(pos, false, "unexpected character %q", ch)
		}
		text := r.s[pos : pos+m[1]]
		switch {
		case text == "'()":
			r.tokens = append(r.tokens, token{tokAtom, Nil, pos})
		case text == "(":
			r.tokens = append(r.tokens, token{tokOpen, Nil, pos})
		case text == ")":
			r.tokens = append(r.tokens, token{tokClose, Nil, pos})
		case text == "'":
			r.tokens = append(r.tokens, token{tokQuote, Nil, pos})
		case text[0] == ';':
			// comment
		case text[0] == '"':
			if m[5] == m[4] {
				return r.fail(pos, true, "unterminated string")
			}
			body := text[m[2]:m[3]]
			r.tokens = append(r.tokens, token{tokAtom, NewString(unescaper.Replace(body)), pos})
		default:
			v, err := r.atom(text, pos)
			if err != nil {
				return err
			}
			r.tokens = append(r.tokens, token{tokAtom, v, pos})
		}
		pos += m[1]
	}
	return nil
}

func (r *reader) atom(text string, pos int) (Value, error) {
	switch text {
	case "#t":
		return NewBool(true), nil
	case "#f":
		return NewBool(false), nil
	}
	if reInt.MatchString(text) {
		digits, neg := text, false
		if digits[0] == '-' {
			digits, neg = digits[1:], true
		}
		base := 10
		if strings.HasPrefix(digits, "0x") {
			digits, base = digits[2:], 16
		} else if strings.HasPrefix(digits, "0b") {
			digits, base = digits[2:], 2
		}
		if neg {
			digits = "-" + digits
		}
		i, err := strconv.ParseInt(digits, base, 64)
		if err != nil {
			return Nil, r.fail(pos, false, "integer literal out of range: %s", text)
		}
		return NewInt(i), nil
	}
	if reFloat.MatchString(text) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Nil, r.fail(pos, false, "bad float literal: %s", text)
		}
		return NewFloat(f), nil
	}
	return NewSymbol(text), nil
}

// Syntactic Analysis
func (r *reader) readForm() (Value, error) {
	if r.next >= len(r.tokens) {
		return Nil, r.fail(len(r.s), true, "unexpected end of input")
	}
	t := r.tokens[r.next]
	r.next++
	switch t.kind {
	case tokAtom:
		return t.value, nil
	case tokClose:
		return Nil, r.fail(t.pos, false, "unexpected )")
	case tokQuote:
		if r.next >= len(r.tokens) {
			return Nil, r.fail(t.pos, true, "quote without datum")
		}
		quoted, err := r.readForm()
		if err != nil {
			return Nil, err
		}
		return List(symQuote.Value(), quoted), nil
	}
	// tokOpen
	var items []Value
	for {
		if r.next >= len(r.tokens) {
			return Nil, r.fail(t.pos, true, "expecting matching )")
		}
		if r.tokens[r.next].kind == tokClose {
			r.next++
			return List(items...), nil
		}
		item, err := r.readForm()
		if err != nil {
			return Nil, err
		}
		items = append(items, item)
	}
}
