// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package session implements spec.md §3's data model: the Session
// (user variables, user functions, inner constants/temporaries, the
// temp counter, and the rounding policy) plus the ordered
// variable/function lists and clone/reset semantics spec.md §3's
// invariants describe.
//
// This merges what would otherwise be a separate parser-owned variable
// table and an executor-owned context into one owned type: a single
// context the caller owns outright.
package session

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/Aghajari/MathParser/config"
	"github.com/Aghajari/MathParser/errtax"
)

const tempPrefix = "__tmp"

// Session is the mutable evaluation context spec.md §3 describes.
type Session struct {
	Config    *config.Config
	Functions *FunctionRegistry

	userVars  []*Variable
	innerVars []*Variable

	tempCounter int
}

// New creates a fresh session with the constants e, pi, π, Π
// registered as inner variables (spec.md §4.7 step 1) and an empty
// function registry — callers wanting the built-in roster should use
// builtins.NewSession instead.
func New() *Session {
	s := &Session{
		Config:    &config.Config{},
		Functions: NewFunctionRegistry(),
	}
	s.innerVars = []*Variable{
		newLiteral("e", math.E),
		newLiteral("pi", math.Pi),
		newLiteral("π", math.Pi),
		newLiteral("Π", math.Pi),
	}
	return s
}

func canon(name string) string {
	return strings.ToLower(stripSpace(name))
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}

// IsDeclared reports whether name is already a registered user
// variable — used by the normaliser to decide whether a degree/radian
// word suffix would shadow a user name (spec.md §4.1 step 2).
func (s *Session) IsDeclared(name string) bool {
	key := canon(name)
	for _, v := range s.userVars {
		if v.Name == key {
			return true
		}
	}
	return false
}

// LookupVariable resolves name against user variables first, then
// inner variables (spec.md §4.4 step 3's resolution order).
func (s *Session) LookupVariable(name string) (*Variable, bool) {
	key := canon(name)
	for _, v := range s.userVars {
		if v.Name == key {
			return v, true
		}
	}
	for _, v := range s.innerVars {
		if v.Name == key {
			return v, true
		}
	}
	return nil, false
}

// UserVariables returns the user-variable list in declaration order,
// for the resolver in eval.Parse to walk (spec.md §4.7 step 2).
func (s *Session) UserVariables() []*Variable {
	return s.userVars
}

// ResolvedUserVariableNames returns the names of user variables that
// have successfully resolved, for variable-not-found's "did you mean"
// suggestion (spec.md §7 — only resolved names are suggested).
func (s *Session) ResolvedUserVariableNames() []string {
	var names []string
	for _, v := range s.userVars {
		if v.Resolved {
			names = append(names, v.Name)
		}
	}
	return names
}

// AddVariable registers name bound to source (a literal number is
// just source text that happens to parse as a plain float and is
// resolved immediately; anything else is resolved lazily on first use
// per spec.md §4.7). index, if given, controls the variable's
// position in the resolution order; otherwise it is appended.
func (s *Session) AddVariable(name, source string, index ...int) error {
	key := canon(name)
	if strings.HasPrefix(key, tempPrefix) {
		return errtax.New(errtax.InvalidParameter, name, 0, "__tmp-prefixed names are reserved")
	}
	v := newUnresolved(key, strings.TrimSpace(source))
	if f, err := strconv.ParseFloat(strings.TrimSpace(source), 64); err == nil {
		v = newLiteral(key, f)
	}

	pos := len(s.userVars)
	replaced := false
	for i, existing := range s.userVars {
		if existing.Name == key {
			pos = i
			replaced = true
			break
		}
	}
	if replaced {
		s.userVars[pos] = v
		return nil
	}
	if len(index) > 0 && index[0] >= 0 && index[0] < len(s.userVars) {
		pos = index[0]
		s.userVars = append(s.userVars, nil)
		copy(s.userVars[pos+1:], s.userVars[pos:])
		s.userVars[pos] = v
		return nil
	}
	s.userVars = append(s.userVars, v)
	return nil
}

// AddFunction registers a function binding directly (native or
// user-defined).
func (s *Session) AddFunction(def *FuncDef) {
	s.Functions.Register(def)
}

// AddFunctionDecl registers a user-defined function from its parsed
// parts, as produced by AddExpression.
func (s *Session) AddFunctionDecl(name string, params []string, body string) {
	s.Functions.Register(&FuncDef{
		Name:       strings.ToLower(name),
		Arity:      len(params),
		IsUser:     true,
		ParamNames: params,
		Body:       body,
	})
}

// AddFunctions registers every exported method of namespace whose
// signature is `func(float64, ..., float64) float64` as a native
// function named after the method (lowercased), implementing spec.md
// §6's external-surface requirement for host programs to extend the
// function set without touching this package.
func (s *Session) AddFunctions(namespace interface{}) error {
	v := reflect.ValueOf(namespace)
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		mt := m.Func.Type()

		variadic := mt.IsVariadic()
		numIn := mt.NumIn() - 1 // drop the receiver
		if mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Float64 {
			continue
		}
		ok := true
		for j := 1; j < mt.NumIn(); j++ {
			in := mt.In(j)
			if variadic && j == mt.NumIn()-1 {
				in = in.Elem()
			}
			if in.Kind() != reflect.Float64 {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		fn := v.Method(i)
		arity := numIn
		if variadic {
			arity = -1
		}
		s.AddFunction(&FuncDef{
			Name:  strings.ToLower(m.Name),
			Arity: arity,
			Native: func(_ *Session, _ Evaluator, args []Arg) (float64, error) {
				in := make([]reflect.Value, len(args))
				for k, a := range args {
					in[k] = reflect.ValueOf(a.Value)
				}
				out := fn.Call(in)
				return out[0].Float(), nil
			},
		})
	}
	return nil
}

// AddExpression implements spec.md §6's declaration classifier: if the
// left of the top-level `=` contains `(`, it is a function
// declaration (name, comma-separated parameters, body); otherwise it
// is a variable declaration. Returns ok=false (with no error) when
// text has no top-level `=` at all and is therefore not a declaration
// — such text is a query, left for eval.Parse.
func (s *Session) AddExpression(text string) (ok bool, err error) {
	eq := topLevelAssign(text)
	if eq < 0 {
		return false, nil
	}
	left := strings.TrimSpace(text[:eq])
	right := strings.TrimSpace(text[eq+1:])
	if right == "" {
		return false, errtax.New(errtax.ParseFailure, text, eq+1, "missing expression after '='")
	}

	paren := strings.IndexByte(left, '(')
	if paren < 0 {
		return true, s.AddVariable(left, right)
	}

	if !strings.HasSuffix(left, ")") {
		return false, errtax.New(errtax.UnbalancedParens, text, len(text))
	}
	name := strings.TrimSpace(left[:paren])
	if name == "" {
		return false, errtax.New(errtax.ParseFailure, text, paren+1, "missing function name")
	}
	paramList := left[paren+1 : len(left)-1]
	var params []string
	if paramList != "" {
		for _, p := range strings.Split(paramList, ",") {
			params = append(params, canon(p))
		}
	}
	s.AddFunctionDecl(name, params, right)
	return true, nil
}

// topLevelAssign finds the index of an `=` not nested inside
// parentheses and not part of a comparison operator (`==`, `!=`,
// `<=`, `>=`).
func topLevelAssign(text string) int {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '=':
			if depth != 0 {
				continue
			}
			if i > 0 {
				switch text[i-1] {
				case '=', '!', '<', '>':
					continue
				}
			}
			if i+1 < len(text) && text[i+1] == '=' {
				continue
			}
			return i
		}
	}
	return -1
}

// NewTemp allocates a fresh `__tmpN` name and registers it as an
// unresolved inner variable with no source yet; the caller finishes
// binding it via SetTempValue or SetTempSource.
func (s *Session) NewTemp() string {
	s.tempCounter++
	name := fmt.Sprintf("%s%d", tempPrefix, s.tempCounter)
	s.innerVars = append(s.innerVars, &Variable{Name: name})
	return name
}

func (s *Session) tempVar(name string) *Variable {
	for _, v := range s.innerVars {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func (s *Session) SetTempValue(name string, value float64) {
	if v := s.tempVar(name); v != nil {
		v.Resolved = true
		v.Value = value
	}
}

func (s *Session) SetTempSource(name string, source string) {
	if v := s.tempVar(name); v != nil {
		v.Resolved = false
		v.Source = source
	}
}

// ResetTemporaries clears every `__tmp`-prefixed inner variable and
// the temp counter; it runs at the start of every top-level parse
// (spec.md §3: "a temporary's lifetime is exactly one top-level
// parse"), distinct from the caller-invoked Reset below.
func (s *Session) ResetTemporaries() {
	kept := s.innerVars[:0]
	for _, v := range s.innerVars {
		if !strings.HasPrefix(v.Name, tempPrefix) {
			kept = append(kept, v)
		}
	}
	s.innerVars = kept
	s.tempCounter = 0
}

// Reset implements the Session surface's reset(deep): deep=false
// clears inner variables (constants included) and the temp counter;
// deep=true additionally clears user variables and functions
// (spec.md §4.7).
func (s *Session) Reset(deep bool) {
	s.innerVars = nil
	s.tempCounter = 0
	if deep {
		s.userVars = nil
		s.Functions = NewFunctionRegistry()
	}
}

// Clone returns an independent session for the higher-order built-ins
// (spec.md §4.5): the function registry is shared (functions are
// read-only during evaluation), but the variable lists are copied so
// that mutating the clone — in particular injecting a bound variable
// — never leaks back to the original (spec.md §8's clone invariant).
func (s *Session) Clone() *Session {
	c := &Session{
		Config:      s.Config.Clone(),
		Functions:   s.Functions,
		tempCounter: s.tempCounter,
	}
	c.userVars = append([]*Variable(nil), s.userVars...)
	c.innerVars = append([]*Variable(nil), s.innerVars...)
	return c
}

// InjectBoundVariable adds (or replaces) an inner variable with a
// concrete numeric value — used by higher-order built-ins to bind
// their loop/probe variable into a clone (spec.md §4.5).
func (s *Session) InjectBoundVariable(name string, value float64) {
	key := canon(name)
	for i, v := range s.innerVars {
		if v.Name == key {
			// Replace the slot rather than mutating v: a clone shares
			// its *Variable pointers with the session it came from.
			s.innerVars[i] = newLiteral(key, value)
			return
		}
	}
	s.innerVars = append(s.innerVars, newLiteral(key, value))
}
