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

// eval evaluates expr in en. tail is set when expr is the last thing the
// enclosing function body computes; only then may a self call be turned
// into a tail call request.
func (in *Interpreter) eval(expr Value, en *Env, tail bool) (Value, error) {
	switch expr.tag {
	case TagNil:
		return Nil, nil
	case TagSymbol:
		return en.Lookup(Symbol(expr.bits))
	case TagPair:
		// handled below
	default:
		return expr, nil // atoms evaluate to themselves
	}
	p := expr.ref.(*Pair)
	if p.Car.tag == TagSymbol {
		switch Symbol(p.Car.bits) {
		case symIf:
			return in.evalIf(p.Cdr, en, tail)
		case symCond:
			return in.evalCond(p.Cdr, en, tail)
		case symLet:
			return in.evalLet(p.Cdr, en, tail)
		case symLetStar:
			return in.evalLetStar(p.Cdr, en, tail)
		case symLambda:
			ops, err := operands("lambda", p.Cdr)
			if err != nil {
				return Nil, err
			}
			if len(ops) < 1 {
				return Nil, Errorf(SyntaxError, "lambda: missing parameter list")
			}
			f, err := newClosure(ops[0], p.Cdr.Cdr(), en, false)
			if err != nil {
				return Nil, err
			}
			return NewFunction(f), nil
		case symDefine:
			return in.evalDefine(p.Cdr, en, false)
		case symMacro:
			return in.evalDefine(p.Cdr, en, true)
		case symQuote:
			ops, err := operands("quote", p.Cdr)
			if err != nil {
				return Nil, err
			}
			if len(ops) != 1 {
				return Nil, Errorf(SyntaxError, "quote: expected 1 operand, got %d", len(ops))
			}
			return ops[0], nil
		case symRequote:
			ops, err := operands("requote", p.Cdr)
			if err != nil {
				return Nil, err
			}
			if len(ops) != 1 {
				return Nil, Errorf(SyntaxError, "requote: expected 1 operand, got %d", len(ops))
			}
			v, err := in.eval(ops[0], en, false)
			if err != nil {
				return Nil, err
			}
			return List(symQuote.Value(), v), nil
		}
	}
	return in.evalApplication(p, en, tail)
}

// operands returns the operand forms of a special form.
func operands(form string, ops Value) ([]Value, error) {
	if !IsProperList(ops) {
		return nil, Errorf(SyntaxError, "%s: operands must form a proper list", form)
	}
	return ToSlice(ops), nil
}

func (in *Interpreter) evalIf(ops Value, en *Env, tail bool) (Value, error) {
	list, err := operands("if", ops)
	if err != nil {
		return Nil, err
	}
	if len(list) != 3 {
		return Nil, Errorf(SyntaxError, "if: expected 3 operands, got %d", len(list))
	}
	pred, err := in.eval(list[0], en, false)
	if err != nil {
		return Nil, err
	}
	if pred.Truthy() {
		return in.eval(list[1], en, tail)
	}
	return in.eval(list[2], en, tail)
}

func (in *Interpreter) evalCond(ops Value, en *Env, tail bool) (Value, error) {
	clauses, err := operands("cond", ops)
	if err != nil {
		return Nil, err
	}
	for _, clause := range clauses {
		c, err := operands("cond clause", clause)
		if err != nil {
			return Nil, err
		}
		if len(c) != 2 {
			return Nil, Errorf(SyntaxError, "cond: clause must be (predicate result), got %s", Serialize(clause))
		}
		pred, err := in.eval(c[0], en, false)
		if err != nil {
			return Nil, err
		}
		if pred.Truthy() {
			return in.eval(c[1], en, tail)
		}
	}
	return Nil, nil
}

// binding splits a (name value) entry of let/let*.
func binding(form string, b Value) (Symbol, Value, error) {
	entry, err := operands(form, b)
	if err != nil || len(entry) != 2 || !entry[0].IsSymbol() {
		return 0, Nil, Errorf(SyntaxError, "%s: binding must be (name value), got %s", form, Serialize(b))
	}
	return entry[0].Symbol(), entry[1], nil
}

// letForm splits (let bindings body...) into its parts.
func letForm(form string, ops Value) (bindings []Value, body Value, err error) {
	if !ops.IsPair() {
		return nil, Nil, Errorf(SyntaxError, "%s: missing binding list", form)
	}
	if bindings, err = operands(form, ops.Car()); err != nil {
		return nil, Nil, err
	}
	body = ops.Cdr()
	if !IsProperList(body) {
		return nil, Nil, Errorf(SyntaxError, "%s: body must be a proper list", form)
	}
	return bindings, body, nil
}

// let evaluates all values against the outer environment and binds them in
// one frame.
func (in *Interpreter) evalLet(ops Value, en *Env, tail bool) (Value, error) {
	bindings, body, err := letForm("let", ops)
	if err != nil {
		return Nil, err
	}
	vars := Nil
	for _, b := range bindings {
		sym, expr, err := binding("let", b)
		if err != nil {
			return Nil, err
		}
		v, err := in.eval(expr, en, false)
		if err != nil {
			return Nil, err
		}
		vars = Cons(Cons(sym.Value(), v), vars)
	}
	return in.evalBody(body, NewFrame(en, vars), tail)
}

// let* chains one frame per binding so each value sees its predecessors.
func (in *Interpreter) evalLetStar(ops Value, en *Env, tail bool) (Value, error) {
	bindings, body, err := letForm("let*", ops)
	if err != nil {
		return Nil, err
	}
	for _, b := range bindings {
		sym, expr, err := binding("let*", b)
		if err != nil {
			return Nil, err
		}
		v, err := in.eval(expr, en, false)
		if err != nil {
			return Nil, err
		}
		en = NewFrame(en, List(Cons(sym.Value(), v)))
	}
	return in.evalBody(body, en, tail)
}

// evalDefine handles (define name expr), (define (name params...) body...)
// and (def-macro (name params...) body...). The result is the defined name.
func (in *Interpreter) evalDefine(ops Value, en *Env, macro bool) (Value, error) {
	form := "define"
	if macro {
		form = "def-macro"
	}
	if !ops.IsPair() {
		return Nil, Errorf(SyntaxError, "%s: missing name", form)
	}
	target := en.Global()
	if target == nil {
		target = in.global
	}
	head := ops.Car()
	switch {
	case head.IsPair() && head.Car().IsSymbol():
		name := head.Car().Symbol()
		f, err := newClosure(head.Cdr(), ops.Cdr(), en, macro)
		if err != nil {
			return Nil, err
		}
		f.Name = name.String()
		target.define(name, NewFunction(f))
		return head.Car(), nil
	case head.IsSymbol() && !macro:
		list, err := operands(form, ops)
		if err != nil {
			return Nil, err
		}
		if len(list) != 2 {
			return Nil, Errorf(SyntaxError, "define: expected (define name value), got %d operands", len(list))
		}
		v, err := in.eval(list[1], en, false)
		if err != nil {
			return Nil, err
		}
		if v.IsFunction() {
			if f := v.ref.(*Function); !f.IsNative() && f.Name == "lambda" {
				f.Name = head.Symbol().String()
			}
		}
		target.define(head.Symbol(), v)
		return head, nil
	}
	if macro {
		return Nil, Errorf(SyntaxError, "def-macro: expected (def-macro (name params...) body...)")
	}
	return Nil, Errorf(SyntaxError, "define: name must be a symbol, got %s", Serialize(head))
}

// evalBody evaluates forms for effect and returns the value of the last
// one, which inherits tail. An empty body yields Nil.
func (in *Interpreter) evalBody(forms Value, en *Env, tail bool) (Value, error) {
	result := Nil
	for forms.IsPair() {
		p := forms.ref.(*Pair)
		var err error
		if result, err = in.eval(p.Car, en, tail && !p.Cdr.IsPair()); err != nil {
			return Nil, err
		}
		forms = p.Cdr
	}
	return result, nil
}

// evalArgs evaluates the operands of an application left to right.
func (in *Interpreter) evalArgs(ops Value, en *Env) (Value, error) {
	var head, last *Pair
	for ops.IsPair() {
		p := ops.ref.(*Pair)
		v, err := in.eval(p.Car, en, false)
		if err != nil {
			return Nil, err
		}
		cell := &Pair{Car: v}
		if last == nil {
			head = cell
		} else {
			last.Cdr = Value{tag: TagPair, ref: cell}
		}
		last = cell
		ops = p.Cdr
	}
	if !ops.IsNil() {
		return Nil, Errorf(SyntaxError, "improper argument list")
	}
	if head == nil {
		return Nil, nil
	}
	return Value{tag: TagPair, ref: head}, nil
}

func (in *Interpreter) evalApplication(p *Pair, en *Env, tail bool) (Value, error) {
	callee, err := in.eval(p.Car, en, false)
	if err != nil {
		return Nil, err
	}
	if callee.IsPair() {
		// ((make-adder 1) 2) style heads
		if callee, err = in.eval(callee, en, false); err != nil {
			return Nil, err
		}
	}
	if !callee.IsFunction() {
		return Nil, Errorf(TypeError, "not a function: %s", Serialize(p.Car))
	}
	f := callee.ref.(*Function)
	if f.Macro {
		expansion, err := in.invoke(f, p.Cdr, en)
		if err != nil {
			return Nil, err
		}
		return in.eval(expansion, en, tail)
	}
	args, err := in.evalArgs(p.Cdr, en)
	if err != nil {
		return Nil, err
	}
	if tail && !f.IsNative() && in.top() == f {
		return newTailCall(f, args), nil
	}
	return in.invoke(f, args, en)
}
