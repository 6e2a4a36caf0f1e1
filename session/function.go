// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"strings"

	"github.com/Aghajari/MathParser/errtax"
)

// ParamKind distinguishes a numeric parameter (evaluated before the
// call is made) from a special parameter (raw, un-evaluated source
// text — spec.md §3's "parameter-type vector").
type ParamKind int

const (
	Numeric ParamKind = iota
	Special
)

// Arg is one evaluated (or, for Special params, un-evaluated) call
// argument handed to a NativeFunc.
type Arg struct {
	Text  string // trimmed original source text; always populated
	Value float64
	Kind  ParamKind
}

// Evaluator is the callback a NativeFunc uses to evaluate sub-expression
// text against a session — normally the eval package's entry point,
// injected this way to avoid an import cycle between session and eval.
type Evaluator func(sess *Session, source string) (float64, error)

// NativeFunc is a host-implemented built-in. eval is the Evaluator to
// use for any special-parameter text the function needs to evaluate
// itself (typically against a cloned session with an injected bound
// variable — see spec.md §4.5).
type NativeFunc func(sess *Session, eval Evaluator, args []Arg) (float64, error)

// FuncDef is one overload of one function name: either native
// (built-in) or user-defined (spec.md §3's "Function binding").
type FuncDef struct {
	Name   string
	Arity  int // -1 marks a variadic overload
	Params []ParamKind

	Native NativeFunc

	IsUser     bool
	ParamNames []string
	Body       string
}

func (f *FuncDef) paramKind(pos int) ParamKind {
	if pos < len(f.Params) {
		return f.Params[pos]
	}
	if len(f.Params) == 0 {
		return Numeric
	}
	return f.Params[len(f.Params)-1]
}

// ParamKind reports the declared kind of the argument at position pos
// (0-based), repeating the last declared kind for variadic trailing
// positions.
func (f *FuncDef) ParamKind(pos int) ParamKind { return f.paramKind(pos) }

// FunctionRegistry holds every built-in and user-defined function
// overload, keyed case-insensitively by name.
type FunctionRegistry struct {
	overloads map[string][]*FuncDef
	// Fallback resolves names the overload table doesn't contain
	// outright — used for parametric names like log2, radical3, √4
	// (spec.md §3's "Parametric name" function-binding shape).
	Fallback func(name string, arity int) (*FuncDef, bool)
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{overloads: make(map[string][]*FuncDef)}
}

// Register adds one overload. Registering a user-defined function
// under a name that already has user-defined overloads replaces them,
// matching add_variable's "replace any existing binding" rule
// extended to functions; built-in overloads accumulate (multiple
// arities of the same built-in coexist, e.g. gcd/2 and gcd/-1).
func (r *FunctionRegistry) Register(def *FuncDef) {
	key := strings.ToLower(def.Name)
	if def.IsUser {
		kept := r.overloads[key][:0]
		for _, existing := range r.overloads[key] {
			if !existing.IsUser {
				kept = append(kept, existing)
			}
		}
		r.overloads[key] = append(kept, def)
		return
	}
	r.overloads[key] = append(r.overloads[key], def)
}

// Lookup finds the overload of name matching arity, per spec.md §3's
// invariant: exact arity match first, then the variadic overload,
// then the first overload by that name (an arity error).
func (r *FunctionRegistry) Lookup(name string, arity int) (*FuncDef, error) {
	key := strings.ToLower(name)
	overloads := r.overloads[key]
	if len(overloads) == 0 {
		if r.Fallback != nil {
			if def, ok := r.Fallback(name, arity); ok {
				return def, nil
			}
		}
		return nil, errtax.New(errtax.FunctionNotFound, name, 0, name)
	}
	var variadic *FuncDef
	for _, def := range overloads {
		if def.Arity == arity {
			return def, nil
		}
		if def.Arity < 0 {
			variadic = def
		}
	}
	if variadic != nil {
		return variadic, nil
	}
	return nil, errtax.New(errtax.InvalidArguments, name, 0, name, arity)
}

// Exists reports whether any overload (native or fallback-resolvable)
// is registered under name, without committing to an arity. Used by
// the reducer's function-detection step (spec.md §4.2 step 3).
func (r *FunctionRegistry) Exists(name string) bool {
	key := strings.ToLower(name)
	if len(r.overloads[key]) > 0 {
		return true
	}
	if r.Fallback != nil {
		_, ok := r.Fallback(name, 1)
		return ok
	}
	return false
}
