// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/Aghajari/MathParser/errtax"
	"github.com/Aghajari/MathParser/lex"
	"github.com/Aghajari/MathParser/session"
)

// evalLinear evaluates a parenthesis-free expression in which every
// remaining operator shares one priority (or there are none at all),
// strictly left to right.
func evalLinear(sess *session.Session, s string) (float64, error) {
	positions := scanOperators(s)
	operands := make([]string, 0, len(positions)+1)
	start := 0
	for _, p := range positions {
		operands = append(operands, s[start:p])
		start = p + 1
	}
	operands = append(operands, s[start:])

	acc, err := evalOperand(sess, operands[0])
	if err != nil {
		return 0, err
	}
	for i, p := range positions {
		v, err := evalOperand(sess, operands[i+1])
		if err != nil {
			return 0, err
		}
		acc = applyOp(s[p], acc, v)
	}
	return acc, nil
}

func applyOp(op byte, a, b float64) float64 {
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		return a / b
	case '%':
		return math.Mod(a, b)
	case '^':
		return math.Pow(a, b)
	}
	return math.NaN()
}

func evalOperand(sess *session.Session, tok string) (float64, error) {
	if tok == "" {
		return 0, errtax.New(errtax.ParseFailure, tok, 0, "missing operand")
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f, nil
	}
	if v, ok := sess.LookupVariable(tok); ok {
		return v.Value, nil
	}
	// A leading unary sign glued to a non-numeric operand (scanOperators
	// left it embedded rather than splitting on it — spec.md §4.4's
	// leftmost-operator scan only ever sees binary operators) is real
	// negation, not part of the identifier text: peel it off and
	// recurse rather than letting identifierValue swallow it.
	if tok[0] == '-' || tok[0] == '+' {
		v, err := evalOperand(sess, tok[1:])
		if err != nil {
			return 0, err
		}
		if tok[0] == '-' {
			return -v, nil
		}
		return v, nil
	}
	return identifierValue(sess, tok)
}

// identifierValue implements implicit-multiplication identifier
// splitting: peel a leading numeric coefficient, then greedily match
// the longest known-variable prefix repeatedly, multiplying each match
// into the coefficient; whatever text never matches a variable at the
// end of the scan is the unresolved identifier.
func identifierValue(sess *session.Session, tok string) (float64, error) {
	digits, rest := peelLeadingDigits(tok)
	k := 1.0
	if digits != "" {
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return 0, errtax.Wrap(err, tok)
		}
		k = f
	}
	if rest == "" {
		if digits == "" {
			return 0, errtax.New(errtax.ParseFailure, tok, 0, "empty operand")
		}
		return k, nil
	}

	remaining := rest
	var unresolved strings.Builder
	for len(remaining) > 0 {
		matchLen := 0
		var matched *session.Variable
		for l := len(remaining); l >= 1; l-- {
			if v, ok := sess.LookupVariable(remaining[:l]); ok {
				matchLen = l
				matched = v
				break
			}
		}
		if matched != nil {
			k *= matched.Value
			remaining = remaining[matchLen:]
			unresolved.Reset()
			continue
		}
		unresolved.WriteByte(remaining[0])
		remaining = remaining[1:]
	}

	if unresolved.Len() > 0 {
		return 0, suggestVariable(sess, unresolved.String())
	}
	return k, nil
}

func peelLeadingDigits(s string) (digits, rest string) {
	i := 0
	seenDot := false
	for i < len(s) {
		c := s[i]
		if lex.IsDigit(c) {
			i++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}
