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

import "io"
import "os"
import "fmt"
import "sync"
import "strings"
import "path/filepath"

type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int // Unbounded for variadic natives
	Params       []DeclarationParameter
	Returns      string // any | string | number | int | bool | func | list | vector | symbol | nil
	Fn           NativeFunc
	Macro        bool // Fn receives the unevaluated operand forms
}

type DeclarationParameter struct {
	Name string
	Type string // any | string | number | int | bool | func | list | vector | symbol | nil
	Desc string
}

// the registry is filled by init functions of the native libraries and
// read when an interpreter installs them or docs are generated
var registry struct {
	sync.RWMutex
	titles       []string
	declarations map[string]*Declaration
}

func DeclareTitle(title string) {
	registry.Lock()
	defer registry.Unlock()
	registry.titles = append(registry.titles, "#"+title)
}

// Declare registers a native for all interpreters. Natives without Fn only
// document a special form.
func Declare(def *Declaration) {
	if def.MaxParameter != Unbounded && def.MaxParameter < def.MinParameter {
		panic("declaration " + def.Name + ": MaxParameter < MinParameter")
	}
	registry.Lock()
	defer registry.Unlock()
	if registry.declarations == nil {
		registry.declarations = make(map[string]*Declaration)
	}
	if _, ok := registry.declarations[def.Name]; !ok {
		registry.titles = append(registry.titles, def.Name)
	}
	registry.declarations[def.Name] = def
}

// LookupDeclaration returns the declaration of a native or special form,
// nil if name is not declared.
func LookupDeclaration(name string) *Declaration {
	registry.RLock()
	defer registry.RUnlock()
	return registry.declarations[name]
}

// DefineNative installs a builtin into the global frame of this
// interpreter only.
func (in *Interpreter) DefineNative(name string, min, max int, fn NativeFunc) *Function {
	f := NewNative(name, min, max, fn)
	in.global.define(Intern(name), NewFunction(f))
	return f
}

// InstallDeclarations binds every declared native in the global frame.
func (in *Interpreter) InstallDeclarations() {
	registry.RLock()
	defer registry.RUnlock()
	for _, t := range registry.titles {
		def, ok := registry.declarations[t]
		if !ok || def.Fn == nil {
			continue
		}
		f := NewNative(def.Name, def.MinParameter, def.MaxParameter, def.Fn)
		f.Macro = def.Macro
		in.global.define(Intern(def.Name), NewFunction(f))
	}
}

func init() {
	DeclareTitle("Special forms")
	Declare(&Declaration{
		"if", "evaluates the predicate, then exactly one of the two branches",
		3, 3,
		[]DeclarationParameter{
			DeclarationParameter{"condition", "any", "anything except #f and '() counts as true"},
			DeclarationParameter{"then", "any", "evaluated if the condition holds"},
			DeclarationParameter{"else", "any", "evaluated otherwise"},
		}, "any", nil, true,
	})
	Declare(&Declaration{
		"cond", "returns the result of the first clause whose predicate holds, '() if none does",
		0, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"clause...", "list", "(predicate result)"},
		}, "any", nil, true,
	})
	Declare(&Declaration{
		"let", "binds all names at once against the outer environment, then evaluates the body",
		1, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"bindings", "list", "list of (name value)"},
			DeclarationParameter{"body...", "any", "forms; the last one is the result"},
		}, "any", nil, true,
	})
	Declare(&Declaration{
		"let*", "like let, but every value sees the bindings before it",
		1, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"bindings", "list", "list of (name value)"},
			DeclarationParameter{"body...", "any", "forms; the last one is the result"},
		}, "any", nil, true,
	})
	Declare(&Declaration{
		"lambda", "creates a closure over the current environment; (a & rest) makes rest take the remaining arguments",
		1, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"params", "list", "parameter symbols"},
			DeclarationParameter{"body...", "any", "forms; the last one is the result"},
		}, "func", nil, true,
	})
	Declare(&Declaration{
		"define", "binds a global: (define name value) or (define (name params...) body...); returns the name",
		2, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"name", "symbol|list", "name or (name params...)"},
			DeclarationParameter{"value...", "any", "value or function body"},
		}, "symbol", nil, true,
	})
	Declare(&Declaration{
		"def-macro", "defines a global macro: (def-macro (name params...) body...); the result of the body is evaluated in place of the call",
		1, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"signature", "list", "(name params...)"},
			DeclarationParameter{"body...", "any", "forms producing the expansion"},
		}, "symbol", nil, true,
	})
	Declare(&Declaration{
		"quote", "returns its operand unevaluated",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"datum", "any", "returned as is"},
		}, "any", nil, true,
	})
	Declare(&Declaration{
		"requote", "evaluates its operand and wraps the result in (quote ...)",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"expr", "any", "evaluated once"},
		}, "list", nil, true,
	})
}

func arityText(def *Declaration) string {
	if def.MaxParameter == Unbounded {
		return fmt.Sprintf("%d or more", def.MinParameter)
	}
	return fmt.Sprintf("%d–%d", def.MinParameter, def.MaxParameter)
}

// Help prints the list of all declarations, or the details of one.
func Help(w io.Writer, name string) error {
	if name == "" {
		registry.RLock()
		defer registry.RUnlock()
		fmt.Fprintln(w, "Available lyra functions:")
		for _, title := range registry.titles {
			if title[0] == '#' {
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, "-- "+title[1:]+" --")
			} else {
				fmt.Fprintln(w, "  "+title+": "+strings.Split(registry.declarations[title].Desc, "\n")[0])
			}
		}
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "get further information by typing (help \"functionname\")")
		return nil
	}
	def := LookupDeclaration(name)
	if def == nil {
		return Errorf(NameError, "no help for %s", name)
	}
	fmt.Fprintln(w, "Help for: "+def.Name)
	fmt.Fprintln(w, "===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, def.Desc)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Allowed nø of parameters:", arityText(def))
	fmt.Fprintln(w, "")
	for _, p := range def.Params {
		fmt.Fprintln(w, " - "+p.Name+" ("+p.Type+"): "+p.Desc)
	}
	fmt.Fprintln(w, "")
	return nil
}

// slugify makes a filesystem-safe, lowercase slug from a chapter title.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "chapter"
	}
	return out
}

// WriteDocumentation generates Markdown docs:
// - index.md with links to chapters
// - one <chapter>.md file per chapter, containing all functions of that chapter
func WriteDocumentation(folder string) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", folder, err)
	}
	registry.RLock()
	defer registry.RUnlock()

	type Chapter struct {
		Title string
		Slug  string
		Fns   []*Declaration
	}

	var chapters []*Chapter
	var current *Chapter
	usedSlugs := map[string]int{}

	uniqSlug := func(s string) string {
		base := slugify(s)
		if usedSlugs[base] == 0 {
			usedSlugs[base] = 1
			return base
		}
		for i := 2; ; i++ {
			candidate := fmt.Sprintf("%s-%d", base, i)
			if usedSlugs[candidate] == 0 {
				usedSlugs[candidate] = 1
				return candidate
			}
		}
	}

	for _, t := range registry.titles {
		if len(t) > 0 && t[0] == '#' {
			title := strings.TrimSpace(t[1:])
			current = &Chapter{Title: title, Slug: uniqSlug(title)}
			chapters = append(chapters, current)
			continue
		}
		def, ok := registry.declarations[t]
		if !ok {
			continue
		}
		if current == nil {
			current = &Chapter{Title: "General", Slug: uniqSlug("General")}
			chapters = append(chapters, current)
		}
		current.Fns = append(current.Fns, def)
	}

	indexPath := filepath.Join(folder, "index.md")
	indexFile, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", indexPath, err)
	}
	defer indexFile.Close()

	fmt.Fprint(indexFile, "# Documentation\n\n")
	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		fmt.Fprintf(indexFile, "- [%s](%s.md)\n", ch.Title, ch.Slug)
	}

	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		fp := filepath.Join(folder, ch.Slug+".md")
		f, err := os.Create(fp)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", fp, err)
		}
		fmt.Fprintf(f, "# %s\n\n", ch.Title)
		for _, def := range ch.Fns {
			fmt.Fprintf(f, "## %s\n\n", def.Name)
			if def.Desc != "" {
				fmt.Fprintf(f, "%s\n\n", def.Desc)
			}
			fmt.Fprintf(f, "**Allowed number of parameters:** %s\n\n", arityText(def))

			fmt.Fprint(f, "### Parameters\n\n")
			if len(def.Params) == 0 {
				fmt.Fprint(f, "_This function has no parameters._\n\n")
			} else {
				for _, p := range def.Params {
					fmt.Fprintf(f, "- **%s** (`%s`): %s\n", p.Name, p.Type, p.Desc)
				}
				fmt.Fprintln(f)
			}
			fmt.Fprintf(f, "### Returns\n\n`%s`\n\n", def.Returns)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", fp, err)
		}
	}
	return nil
}
