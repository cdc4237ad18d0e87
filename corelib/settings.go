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

func settingName(v Value) (string, error) {
	switch {
	case v.IsString():
		return v.Str(), nil
	case v.IsSymbol():
		return v.Symbol().String(), nil
	}
	return "", typeError("settings", 0, "a setting name", v)
}

// ChangeSettings reads and writes the settings of one interpreter:
// no argument lists all, one reads, two write.
func ChangeSettings(in *Interpreter, a ...Value) (Value, error) {
	s := &in.Settings
	if len(a) == 0 {
		return lyra.List(
			lyra.NewString("Trace"), lyra.NewBool(s.Trace),
			lyra.NewString("TracePrint"), lyra.NewBool(s.TracePrint),
			lyra.NewString("TraceDir"), lyra.NewString(s.TraceDir),
			lyra.NewString("MaxDepth"), lyra.NewInt(int64(s.MaxDepth)),
		), nil
	}
	name, err := settingName(a[0])
	if err != nil {
		return lyra.Nil, err
	}
	if len(a) == 1 {
		switch name {
		case "Trace":
			return lyra.NewBool(s.Trace), nil
		case "TracePrint":
			return lyra.NewBool(s.TracePrint), nil
		case "TraceDir":
			return lyra.NewString(s.TraceDir), nil
		case "MaxDepth":
			return lyra.NewInt(int64(s.MaxDepth)), nil
		}
		return lyra.Nil, lyra.Errorf(lyra.NameError, "unknown setting: %s", name)
	}
	switch name {
	case "Trace":
		if err := in.SetTrace(a[1].Truthy()); err != nil {
			return lyra.Nil, err
		}
	case "TracePrint":
		s.TracePrint = a[1].Truthy()
	case "TraceDir":
		s.TraceDir = toString(a[1])
	case "MaxDepth":
		n, err := argInt("settings", a, 1)
		if err != nil {
			return lyra.Nil, err
		}
		if n < 0 {
			return lyra.Nil, lyra.Errorf(lyra.TypeError, "settings: MaxDepth must not be negative")
		}
		s.MaxDepth = int(n)
	default:
		return lyra.Nil, lyra.Errorf(lyra.NameError, "unknown setting: %s", name)
	}
	return lyra.NewBool(true), nil
}

func init() {
	lyra.DeclareTitle("Settings")

	lyra.Declare(&lyra.Declaration{
		Name: "settings", Desc: "reads and writes interpreter settings: Trace, TracePrint, TraceDir and MaxDepth (0 = unlimited)",
		MinParameter: 0, MaxParameter: 2,
		Params: []DeclarationParameter{
			DeclarationParameter{Name: "key", Type: "string", Desc: "setting name; without it all settings are returned as a flat key/value list"},
			DeclarationParameter{Name: "value", Type: "any", Desc: "new value"},
		}, Returns: "any",
		Fn: func(in *Interpreter, en *Env, a []Value) (Value, error) {
			return ChangeSettings(in, a...)
		}, Macro: false,
	})
}
