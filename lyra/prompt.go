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
	"io"
	"strings"

	"github.com/chzyer/readline"
)

const newprompt = "\033[32m>\033[0m "
const contprompt = "\033[32m.\033[0m "
const resultprompt = "\033[31m=\033[0m "

// symbolCompleter completes the symbol left of the cursor from the
// symbol table.
type symbolCompleter struct{}

func (symbolCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	start := pos
	for start > 0 && !strings.ContainsRune(" \t\n()'\",", line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}
	for _, name := range SymbolsWithPrefix(prefix) {
		newLine = append(newLine, []rune(name[len(prefix):]))
	}
	return newLine, len([]rune(prefix))
}

// Repl reads forms from the terminal and prints their values until EOF.
// Errors are reported and the prompt continues.
func Repl(in *Interpreter) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       ".lyra-history.tmp",
		AutoComplete:      symbolCompleter{},
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return WrapHost(err, "cannot open terminal")
	}
	defer l.Close()
	l.CaptureExitSignal()

	oldline := ""
	for {
		line, err := l.Readline()
		line = oldline + line
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			oldline = ""
			l.SetPrompt(newprompt)
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return WrapHost(err, "reading prompt")
		}
		if strings.TrimSpace(line) == "" {
			oldline = ""
			continue
		}
		if cont := in.replLine(line); cont {
			// keep oldline
			oldline = line + "\n"
			l.SetPrompt(contprompt)
			continue
		}
		oldline = ""
		l.SetPrompt(newprompt)
	}
}

// replLine evaluates one complete input and prints the result. It reports
// true if the input ended inside a form.
func (in *Interpreter) replLine(line string) bool {
	forms, err := Read("user prompt", line)
	if IsIncomplete(err) {
		return true
	}
	if err != nil {
		ReportError(in.Stderr, err)
		return false
	}
	for _, form := range forms {
		result, err := in.Eval(form, in.root)
		if err != nil {
			ReportError(in.Stderr, err)
			return false
		}
		fmt.Fprint(in.Stdout, resultprompt)
		fmt.Fprintln(in.Stdout, Serialize(result))
	}
	return false
}
