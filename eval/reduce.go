// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eval implements the reduction pipeline: the
// innermost-parentheses loop, the operator-precedence reducer, and the
// linear left-to-right evaluator, tied together by the free function
// Parse. It is a free function rather than a Session method so that
// session (pure data) never needs to import eval (the reducer) — eval
// passes its own Evaluate to each native function as the
// session.Evaluator callback.
package eval

import (
	"strings"

	"github.com/Aghajari/MathParser/errtax"
	"github.com/Aghajari/MathParser/internal/similarity"
	"github.com/Aghajari/MathParser/lex"
	"github.com/Aghajari/MathParser/normalize"
	"github.com/Aghajari/MathParser/session"
	"github.com/Aghajari/MathParser/value"
)

// Parse resets the temporaries, resolves every unresolved user
// variable in declaration order, then evaluates text and rounds the
// final result per the session's configuration.
func Parse(sess *session.Session, text string) (float64, error) {
	sess.ResetTemporaries()
	if err := resolveUserVariables(sess); err != nil {
		return 0, err
	}
	v, err := evaluate(sess, text)
	if err != nil {
		return 0, err
	}
	return value.Round(v, sess.Config.RoundEnabled(), sess.Config.RoundScale()), nil
}

func resolveUserVariables(sess *session.Session) error {
	for _, v := range sess.UserVariables() {
		if v.Resolved {
			continue
		}
		raw, err := evaluate(sess, v.Source)
		if err != nil {
			return err
		}
		v.Value = value.Round(raw, sess.Config.RoundEnabled(), sess.Config.RoundScale())
		v.Resolved = true
	}
	return nil
}

// evaluate normalises text and hands it to the reducer. This is the
// Evaluator callback higher-order built-ins use, and session.Evaluator
// is satisfied by this function's signature exactly.
func evaluate(sess *session.Session, text string) (float64, error) {
	norm := normalize.Normalize(text, sess.IsDeclared)
	return reduceToValue(sess, norm)
}

// Evaluate is evaluate's exported form, passed to native functions as
// the session.Evaluator they use to re-evaluate special-parameter text
// against a clone with a bound variable injected.
func Evaluate(sess *session.Session, text string) (float64, error) {
	return evaluate(sess, text)
}

func reduceToValue(sess *session.Session, s string) (float64, error) {
	if err := checkBalance(s); err != nil {
		return 0, err
	}
	for {
		if strings.ContainsAny(s, "()") {
			ns, err := reduceInnermost(sess, s)
			if err != nil {
				return 0, err
			}
			s = ns
			continue
		}
		positions := scanOperators(s)
		if len(positions) == 0 {
			return evalLinear(sess, s)
		}
		maxPr := -1
		for _, p := range positions {
			if pr := priorityOf(s[p]); pr > maxPr {
				maxPr = pr
			}
		}
		single := true
		for _, p := range positions {
			if priorityOf(s[p]) != maxPr {
				single = false
				break
			}
		}
		if single {
			return evalLinear(sess, s)
		}
		s = wrapHighestPriority(s, positions, maxPr)
	}
}

func checkBalance(s string) error {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return errtax.New(errtax.UnbalancedParens, s, i+1)
			}
		}
	}
	if depth != 0 {
		return errtax.New(errtax.UnbalancedParens, s, len(s))
	}
	return nil
}

// reduceInnermost reduces the leftmost top-level parenthesised group,
// using balanced matching rather than strict innermost-only matching:
// the span can contain further nested parens, which matters when one
// of its Special (raw-text) argument positions itself contains a call
// — that nested call must stay unreduced text, not be eagerly
// evaluated, since the call may only ever use it conditionally (see
// registerHigherOrder's doc comment, and an `if`-driven recursive gcd,
// which would recurse without termination if its branches were
// reduced eagerly rather than on demand).
func reduceInnermost(sess *session.Session, s string) (string, error) {
	open, close, err := findBalancedParen(s)
	if err != nil {
		return "", err
	}
	inner := s[open+1 : close]

	name, nameStart := detectFuncName(s, open)

	spanStart := open
	isCall := name != "" && sess.Functions.Exists(name)
	var def *session.FuncDef
	var args []string
	if isCall {
		spanStart = nameStart
		args = splitTopLevelCommas(inner)
		def, err = sess.Functions.Lookup(name, len(args))
		if err != nil {
			return "", err
		}
	} else {
		if inner == "" {
			return "", errtax.New(errtax.UnbalancedParens, s, open+1)
		}
		if strings.ContainsRune(inner, ',') && !strings.ContainsAny(inner, "(") {
			return "", errtax.New(errtax.FunctionNotFound, s, open+1, name)
		}
	}

	var v float64
	if isCall {
		v, err = callFunction(sess, def, args)
	} else {
		v, err = reduceToValue(sess, inner)
	}
	if err != nil {
		return "", err
	}

	temp := sess.NewTemp()
	sess.SetTempValue(temp, v)

	spanEnd := close + 1
	var b strings.Builder
	b.WriteString(s[:spanStart])
	if spanStart > 0 && !lex.IsSpecialChar(s[spanStart-1]) {
		b.WriteByte('*')
	}
	b.WriteString(temp)
	if spanEnd < len(s) && !lex.IsSpecialChar(s[spanEnd]) {
		b.WriteByte('*')
	}
	b.WriteString(s[spanEnd:])
	return b.String(), nil
}

// symbolNames are the multi-byte built-in names that cannot be
// identified by the usual ASCII identifier-char backward walk.
var symbolNames = []string{"√", "Σ", "∫"}

// detectFuncName walks backward from a call's open paren to find its
// name: an ASCII identifier run, optionally preceded by exactly one of
// the glued unicode symbol names (so both `Σ(` and `√4(` resolve to
// their whole name, not just the trailing ASCII digits). A leading
// digit run is peeled off as an implicit-multiplication coefficient
// (`2f(x)` is the call `f(x)` with a `2*` coefficient, not a call to
// a function named "2f") and excluded from both the name and the span
// start.
func detectFuncName(s string, open int) (name string, start int) {
	start = open
	for start > 0 && lex.IsIdentChar(s[start-1]) {
		start--
	}
	for _, sym := range symbolNames {
		if start >= len(sym) && s[start-len(sym):start] == sym {
			start -= len(sym)
			break
		}
	}
	digits, _ := peelLeadingDigits(s[start:open])
	start += len(digits)
	return s[start:open], start
}

// findBalancedParen returns the leftmost top-level parenthesised span:
// the first '(' in s and the ')' that balances it, counting nested
// parens in between.
func findBalancedParen(s string) (open, close int, err error) {
	open = strings.IndexByte(s, '(')
	if open < 0 {
		if strings.IndexByte(s, ')') >= 0 {
			return 0, 0, errtax.New(errtax.UnbalancedParens, s, strings.IndexByte(s, ')')+1)
		}
		return 0, 0, errtax.New(errtax.UnbalancedParens, s, len(s))
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return open, i, nil
			}
		}
	}
	return 0, 0, errtax.New(errtax.UnbalancedParens, s, len(s))
}

// splitTopLevelCommas splits inner on commas not nested inside a
// further parenthesised group, so a Special argument that itself
// contains a nested call is captured whole rather than split on its
// inner comma.
func splitTopLevelCommas(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

func callFunction(sess *session.Session, def *session.FuncDef, rawArgs []string) (float64, error) {
	if def.IsUser {
		return callUserFunction(sess, def, rawArgs)
	}
	args := make([]session.Arg, len(rawArgs))
	for i, raw := range rawArgs {
		kind := def.ParamKind(i)
		a := session.Arg{Text: raw, Kind: kind}
		if kind == session.Numeric {
			v, err := reduceToValue(sess, raw)
			if err != nil {
				return 0, err
			}
			a.Value = v
		}
		args[i] = a
	}
	return def.Native(sess, Evaluate, args)
}

// callUserFunction recurses safely by isolating each call's state:
// evaluate every argument against the caller's session, clone, inject
// each as an ordered parameter variable, and evaluate the body in the
// clone — the clone sees its own function via the shared registry, so
// recursive calls terminate on their own argument progression rather
// than on any shared mutable state.
func callUserFunction(sess *session.Session, def *session.FuncDef, rawArgs []string) (float64, error) {
	values := make([]float64, len(rawArgs))
	for i, raw := range rawArgs {
		v, err := reduceToValue(sess, raw)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}
	clone := sess.Clone()
	for i, v := range values {
		if i < len(def.ParamNames) {
			clone.InjectBoundVariable(def.ParamNames[i], v)
		}
	}
	return evaluate(clone, def.Body)
}

func priorityOf(c byte) int {
	switch c {
	case '%':
		return 3
	case '^':
		return 2
	case '*', '/':
		return 1
	case '+', '-':
		return 0
	}
	return -1
}

// scanOperators finds every binary-operator position in s, skipping
// `+`/`-` occurrences that are unary signs (at the start of s, or
// immediately following another operator) so that `2*-3` and `-5` are
// not mistaken for extra operands.
func scanOperators(s string) []int {
	var positions []int
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !lex.IsOperatorChar(c) {
			continue
		}
		if (c == '+' || c == '-') && isUnarySign(s, i) {
			continue
		}
		positions = append(positions, i)
	}
	return positions
}

func isUnarySign(s string, i int) bool {
	if i == 0 {
		return true
	}
	prev := s[i-1]
	return lex.IsOperatorChar(prev) || prev == ','
}

// wrapHighestPriority implements spec.md §4.3 step 2-4: find the
// leftmost operator at maxPr, expand its operands (left back to the
// previous operator, right up to the next one), and wrap the triple in
// parentheses so the next reduceInnermost pass collapses it.
func wrapHighestPriority(s string, positions []int, maxPr int) string {
	idx := 0
	for k, p := range positions {
		if priorityOf(s[p]) == maxPr {
			idx = k
			break
		}
	}
	i := positions[idx]
	lhsStart := 0
	if idx > 0 {
		lhsStart = positions[idx-1] + 1
	}
	rhsEnd := len(s)
	if idx+1 < len(positions) {
		rhsEnd = positions[idx+1]
	}
	return s[:lhsStart] + "(" + s[lhsStart:i] + string(s[i]) + s[i+1:rhsEnd] + ")" + s[rhsEnd:]
}

func suggestVariable(sess *session.Session, name string) *errtax.Error {
	if best, ok := similarity.Suggest(sess.ResolvedUserVariableNames(), name); ok {
		return errtax.NewWithSuggestion(errtax.VariableNotFound, name, 0, best, name)
	}
	return errtax.New(errtax.VariableNotFound, name, 0, name)
}
