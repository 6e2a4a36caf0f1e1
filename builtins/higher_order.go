package builtins

import (
	"math"
	"strings"

	"github.com/Aghajari/MathParser/errtax"
	"github.com/Aghajari/MathParser/lex"
	"github.com/Aghajari/MathParser/quad"
	"github.com/Aghajari/MathParser/session"
)

// registerHigherOrder implements spec.md §4.5. Every one of these
// takes its bound-variable name and its sub-expression(s) as Special
// (raw, un-evaluated) parameters: the name is never an expression at
// all, and the expression can only be evaluated after the variable it
// mentions has been injected into a clone — evaluating it eagerly, the
// way an ordinary Numeric parameter would be, is simply too early. See
// DESIGN.md's eval entry for why this replaces the deferred-expression
// placeholder of spec.md §4.6 with no loss of behaviour.
func registerHigherOrder(s *session.Session) {
	s.AddFunction(&session.FuncDef{
		Name: "sigma", Arity: -1,
		Params: []session.ParamKind{session.Special, session.Special, session.Numeric, session.Numeric, session.Numeric},
		Native: sigmaFn,
	})
	s.AddFunction(&session.FuncDef{Name: "Σ", Arity: -1,
		Params: []session.ParamKind{session.Special, session.Special, session.Numeric, session.Numeric, session.Numeric},
		Native: sigmaFn,
	})

	integralParams := []session.ParamKind{session.Special, session.Special, session.Numeric, session.Numeric, session.Numeric}
	for _, name := range []string{"integral", "intg", "∫"} {
		s.AddFunction(&session.FuncDef{Name: name, Arity: -1, Params: integralParams, Native: integralFn})
	}

	s.AddFunction(&session.FuncDef{
		Name: "derivative", Arity: 3,
		Params: []session.ParamKind{session.Special, session.Special, session.Numeric},
		Native: derivativeFn,
	})

	limitParams := []session.ParamKind{session.Special, session.Special}
	for _, name := range []string{"lim", "limit"} {
		s.AddFunction(&session.FuncDef{Name: name, Arity: 2, Params: limitParams, Native: limitFn})
	}

	s.AddFunction(&session.FuncDef{
		Name: "if", Arity: 3,
		Params: []session.ParamKind{session.Special, session.Special, session.Special},
		Native: ifFn,
	})
}

func validIdent(name string) bool {
	if name == "" || !lex.IsLetter(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !lex.IsIdentChar(name[i]) {
			return false
		}
	}
	return true
}

func sigmaFn(sess *session.Session, ev session.Evaluator, args []session.Arg) (float64, error) {
	varName := strings.TrimSpace(args[0].Text)
	if !validIdent(varName) {
		return 0, errtax.New(errtax.InvalidParameter, varName, 0, "sigma: invalid bound variable name")
	}
	exprText := args[1].Text
	from, to := args[2].Value, args[3].Value
	step := 1.0
	if len(args) >= 5 {
		step = args[4].Value
	}
	if step == 0 {
		return 0, errtax.New(errtax.InvalidParameter, "0", 0, "sigma: step must be nonzero")
	}
	if step < 0 {
		from, to = to, from
		step = -step
	}
	clone := sess.Clone()
	sum := 0.0
	for i := from; i <= to+1e-9; i += step {
		clone.InjectBoundVariable(varName, i)
		v, err := ev(clone, exprText)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func integralFn(sess *session.Session, ev session.Evaluator, args []session.Arg) (float64, error) {
	varName := strings.TrimSpace(args[0].Text)
	if !validIdent(varName) {
		return 0, errtax.New(errtax.InvalidParameter, varName, 0, "integral: invalid bound variable name")
	}
	exprText := args[1].Text
	lower, upper := args[2].Value, args[3].Value
	n := 20
	if len(args) >= 5 {
		n = int(math.Abs(args[4].Value))
		if n == 0 {
			n = 20
		}
	}
	rule := quad.Get(n)

	clone := sess.Clone()
	clone.Config.SetRoundEnabled(false)
	mid := (upper + lower) / 2
	halfWidth := (upper - lower) / 2
	sum := 0.0
	for i, x := range rule.Nodes {
		clone.InjectBoundVariable(varName, mid+halfWidth*x)
		v, err := ev(clone, exprText)
		if err != nil {
			return 0, err
		}
		sum += rule.Weights[i] * v
	}
	return halfWidth * sum, nil
}

func derivativeFn(sess *session.Session, ev session.Evaluator, args []session.Arg) (float64, error) {
	varName := strings.TrimSpace(args[0].Text)
	if !validIdent(varName) {
		return 0, errtax.New(errtax.InvalidParameter, varName, 0, "derivative: invalid bound variable name")
	}
	exprText := args[1].Text
	x := args[2].Value
	const eps = 1e-7

	clone := sess.Clone()
	clone.Config.SetRoundEnabled(false)
	clone.InjectBoundVariable(varName, x+eps)
	fPlus, err := ev(clone, exprText)
	if err != nil {
		return 0, err
	}
	clone.InjectBoundVariable(varName, x-eps)
	fMinus, err := ev(clone, exprText)
	if err != nil {
		return 0, err
	}
	return (fPlus - fMinus) / (2 * eps), nil
}

func limitFn(sess *session.Session, ev session.Evaluator, args []session.Arg) (float64, error) {
	name, targetText, err := splitLimitBinding(args[0].Text)
	if err != nil {
		return 0, err
	}
	exprText := args[1].Text

	var target float64
	switch strings.ToLower(strings.TrimSpace(targetText)) {
	case "inf", "+inf":
		target = math.Inf(1)
	case "-inf":
		target = math.Inf(-1)
	default:
		probe := sess.Clone()
		probe.Config.SetRoundEnabled(false)
		target, err = ev(probe, targetText)
		if err != nil {
			return 0, err
		}
	}

	below, okBelow := probeLimit(sess, ev, name, exprText, target, -1)
	above, okAbove := probeLimit(sess, ev, name, exprText, target, 1)
	if okBelow && okAbove && math.Abs(below-above) < 1e-6 {
		return below, nil
	}
	return math.NaN(), nil
}

func splitLimitBinding(s string) (name, target string, err error) {
	if idx := strings.Index(s, "->"); idx >= 0 {
		return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+2:]), nil
	}
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), nil
	}
	return "", "", errtax.New(errtax.InvalidParameter, s, 0, "limit: expected name->target")
}

// probeLimit implements spec.md §4.5's one-sided probing schedule:
// starting ten units out on the dir side of target, repeatedly close
// the gap by a factor of 10, snapping to target once within 1e-11; a
// ±Inf/NaN sample falls back to the last finite sample seen.
func probeLimit(sess *session.Session, ev session.Evaluator, name, exprText string, target, dir float64) (float64, bool) {
	clone := sess.Clone()
	clone.Config.SetRoundEnabled(false)

	d := target + dir*10
	if math.IsInf(target, 0) {
		d = dir * 1e6
	}
	var last float64
	haveLast := false

	for i := 0; i < 200; i++ {
		clone.InjectBoundVariable(name, d)
		v, err := ev(clone, exprText)
		finite := err == nil && !math.IsInf(v, 0) && !math.IsNaN(v)
		if finite {
			last = v
			haveLast = true
		} else if haveLast {
			return last, true
		}

		if math.IsInf(target, 0) {
			d *= 10
			continue
		}
		if math.Abs(target-d) < 1e-11 {
			clone.InjectBoundVariable(name, target)
			v, err := ev(clone, exprText)
			if err != nil || math.IsNaN(v) {
				return last, haveLast
			}
			return v, true
		}
		d = target - (target-d)/10
	}
	return last, haveLast
}

func ifFn(sess *session.Session, ev session.Evaluator, args []session.Arg) (float64, error) {
	cond := args[0].Text
	op, lhs, rhs, found := findComparisonOp(cond)
	var truth bool
	if !found {
		v, err := ev(sess, cond)
		if err != nil {
			return 0, err
		}
		truth = v != 0
	} else {
		lv, err := ev(sess, lhs)
		if err != nil {
			return 0, err
		}
		rv, err := ev(sess, rhs)
		if err != nil {
			return 0, err
		}
		truth = compare(op, lv, rv)
	}
	if truth {
		return ev(sess, args[1].Text)
	}
	return ev(sess, args[2].Text)
}

var comparisonOps = []string{"!=", "<>", ">=", "<=", "==", "=", ">", "<"}

func findComparisonOp(s string) (op, lhs, rhs string, found bool) {
	bestIdx := -1
	var bestOp string
	for _, o := range comparisonOps {
		idx := strings.Index(s, o)
		if idx >= 0 && (bestIdx < 0 || idx < bestIdx) {
			bestIdx, bestOp = idx, o
		}
	}
	if bestIdx < 0 {
		return "", "", "", false
	}
	return bestOp, s[:bestIdx], s[bestIdx+len(bestOp):], true
}

func compare(op string, a, b float64) bool {
	switch op {
	case "!=", "<>":
		return a != b
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	case "==", "=":
		return a == b
	case ">":
		return a > b
	case "<":
		return a < b
	}
	return false
}
