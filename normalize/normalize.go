// Package normalize implements the source normaliser of spec.md §4.1:
// a sequence of idempotent string rewrites applied before the reducer
// ever sees the expression — whitespace stripped, postfix factorial
// and degree sugar rewritten into function calls, and numeric literals
// (scientific notation, multi-radix integers) folded to plain decimal
// form.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/Aghajari/MathParser/lex"
)

// degreeSuffixes are checked longest-first so "degrees" wins over
// "deg", and "radians" wins over "radian" wins over "rad".
var degreeSuffixes = []struct {
	word      string
	toRadians bool
}{
	{"degrees", true},
	{"deg", true},
	{"radians", false},
	{"radian", false},
	{"rad", false},
}

var sciLiteral = regexp.MustCompile(`\(([0-9]+(?:\.[0-9]+)?[eE][+-]?[0-9]+)\)`)
var radixLiteral = regexp.MustCompile(`\((0[bB][01]+|0[oO][0-7]+|0[xX][0-9a-fA-F]+)\)`)

// Normalize runs one full pass of the normaliser. isDeclared reports
// whether name is already a registered variable, used to suppress the
// degree/radian word-suffix rewrite when it would shadow a user name
// (spec.md §4.1 step 2).
func Normalize(source string, isDeclared func(name string) bool) string {
	s := stripWhitespace(source)
	s = rewriteFactorial(s)
	s = rewriteDegreeWords(s, isDeclared)
	s = rewriteDegreeSymbol(s)
	s = foldScientific(s)
	s = foldRadix(s)
	return s
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// operandStart finds the start of the maximal expression immediately
// to the left of end (spec.md §4.1 step 3): either a balanced
// parenthesised group (including a directly-adjoining function name,
// so `f(x)!` operates on the whole call) or a run of non-special
// characters back to the nearest special character.
func operandStart(s string, end int) int {
	if end == 0 {
		return 0
	}
	if s[end-1] == ')' {
		depth := 0
		i := end - 1
		for i >= 0 {
			switch s[i] {
			case ')':
				depth++
			case '(':
				depth--
			}
			if depth == 0 {
				break
			}
			i--
		}
		if i < 0 {
			i = 0
		}
		for i > 0 && lex.IsIdentChar(s[i-1]) {
			i--
		}
		return i
	}
	i := end - 1
	for i >= 0 && !lex.IsSpecialChar(s[i]) {
		i--
	}
	return i + 1
}

// rewriteFactorial converts every `!` into factorial(<operand>),
// leftmost first, until none remain.
func rewriteFactorial(s string) string {
	for {
		idx := strings.IndexByte(s, '!')
		if idx < 0 {
			return s
		}
		start := operandStart(s, idx)
		operand := s[start:idx]
		s = s[:start] + "factorial(" + operand + ")" + s[idx+1:]
	}
}

// rewriteDegreeWords handles the word suffixes, which only attach to
// a digit run directly to their left (spec.md §4.1 step 2).
func rewriteDegreeWords(s string, isDeclared func(name string) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if !lex.IsDigit(s[i]) {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && (lex.IsDigit(s[j]) || s[j] == '.') {
			j++
		}
		digits := s[i:j]
		rest := strings.ToLower(s[j:])
		matched := false
		for _, suf := range degreeSuffixes {
			if strings.HasPrefix(rest, suf.word) && (isDeclared == nil || !isDeclared(suf.word)) {
				if suf.toRadians {
					b.WriteString("toRadians(")
					b.WriteString(digits)
					b.WriteString(")")
				} else {
					b.WriteString(digits)
				}
				j += len(suf.word)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteString(digits)
		}
		i = j
	}
	return b.String()
}

// rewriteDegreeSymbol handles the `°` character, which — being a
// postfix operator rather than a word — follows the same
// generic-operand-scan algorithm as factorial rewrite.
func rewriteDegreeSymbol(s string) string {
	const deg = "°"
	for {
		idx := strings.Index(s, deg)
		if idx < 0 {
			return s
		}
		start := operandStart(s, idx)
		operand := s[start:idx]
		s = s[:start] + "toRadians(" + operand + ")" + s[idx+len(deg):]
	}
}

func foldScientific(s string) string {
	return sciLiteral.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[1 : len(m)-1]
		f, ok := lex.ParseScientific(inner)
		if !ok {
			return m
		}
		return "(" + strconv.FormatFloat(f, 'g', -1, 64) + ")"
	})
}

func foldRadix(s string) string {
	return radixLiteral.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[1 : len(m)-1]
		f, ok, err := lex.ParseRadixLiteral(inner)
		if err != nil || !ok {
			return m
		}
		return "(" + strconv.FormatFloat(f, 'g', -1, 64) + ")"
	})
}
