// Package builtins wires the full function roster spec.md §6
// requires — elementary math, bitwise, statistical, and the
// higher-order built-ins of §4.5 — into a fresh session. It depends on
// session only: the higher-order built-ins re-evaluate their raw-text
// arguments through the session.Evaluator that eval hands to every
// native call.
package builtins

import (
	"math"

	"github.com/Aghajari/MathParser/session"
)

// NewSession returns a session.New() session with the built-in roster
// registered, ready for eval.Parse.
func NewSession() *session.Session {
	s := session.New()
	registerElementary(s)
	registerBitwise(s)
	registerAggregates(s)
	registerHigherOrder(s)
	s.Functions.Fallback = fallbackResolver
	return s
}

func wrapUnary(f func(float64) float64) session.NativeFunc {
	return func(_ *session.Session, _ session.Evaluator, args []session.Arg) (float64, error) {
		return f(args[0].Value), nil
	}
}

func wrapBinary(f func(float64, float64) float64) session.NativeFunc {
	return func(_ *session.Session, _ session.Evaluator, args []session.Arg) (float64, error) {
		return f(args[0].Value, args[1].Value), nil
	}
}

func wrapVariadic(f func([]float64) float64) session.NativeFunc {
	return func(_ *session.Session, _ session.Evaluator, args []session.Arg) (float64, error) {
		vals := make([]float64, len(args))
		for i, a := range args {
			vals[i] = a.Value
		}
		return f(vals), nil
	}
}

func addUnary(s *session.Session, name string, f func(float64) float64) {
	s.AddFunction(&session.FuncDef{Name: name, Arity: 1, Native: wrapUnary(f)})
}

func addBinary(s *session.Session, name string, f func(float64, float64) float64) {
	s.AddFunction(&session.FuncDef{Name: name, Arity: 2, Native: wrapBinary(f)})
}

func addVariadic(s *session.Session, name string, f func([]float64) float64) {
	s.AddFunction(&session.FuncDef{Name: name, Arity: -1, Native: wrapVariadic(f)})
}

func registerElementary(s *session.Session) {
	addUnary(s, "sin", math.Sin)
	addUnary(s, "cos", math.Cos)
	addUnary(s, "tan", math.Tan)
	addUnary(s, "sec", func(x float64) float64 { return 1 / math.Cos(x) })
	addUnary(s, "csc", func(x float64) float64 { return 1 / math.Sin(x) })
	addUnary(s, "cot", func(x float64) float64 { return 1 / math.Tan(x) })

	addUnary(s, "asin", math.Asin)
	addUnary(s, "acos", math.Acos)
	addUnary(s, "atan", math.Atan)
	addUnary(s, "asec", func(x float64) float64 { return math.Acos(1 / x) })
	addUnary(s, "acsc", func(x float64) float64 { return math.Asin(1 / x) })
	addUnary(s, "acot", func(x float64) float64 { return math.Atan(1 / x) })

	addUnary(s, "sinh", math.Sinh)
	addUnary(s, "cosh", math.Cosh)
	addUnary(s, "tanh", math.Tanh)
	addUnary(s, "sech", func(x float64) float64 { return 1 / math.Cosh(x) })
	addUnary(s, "csch", func(x float64) float64 { return 1 / math.Sinh(x) })
	addUnary(s, "coth", func(x float64) float64 { return 1 / math.Tanh(x) })

	addUnary(s, "asinh", math.Asinh)
	addUnary(s, "acosh", math.Acosh)
	addUnary(s, "atanh", math.Atanh)
	addUnary(s, "asech", func(x float64) float64 { return math.Acosh(1 / x) })
	addUnary(s, "acsch", func(x float64) float64 { return math.Asinh(1 / x) })
	addUnary(s, "acoth", func(x float64) float64 { return math.Atanh(1 / x) })

	addUnary(s, "ln", math.Log)
	addUnary(s, "log", math.Log10)
	addUnary(s, "log2", math.Log2)
	addUnary(s, "log10", math.Log10)

	addUnary(s, "toRadians", func(x float64) float64 { return x * math.Pi / 180 })

	addUnary(s, "radical", math.Sqrt)
	addUnary(s, "√", math.Sqrt)
	addUnary(s, "sqrt", math.Sqrt)
	addUnary(s, "cbrt", math.Cbrt)
	addUnary(s, "exp", math.Exp)
	addBinary(s, "pow", math.Pow)
	addUnary(s, "abs", math.Abs)
	addUnary(s, "ceil", math.Ceil)
	addUnary(s, "floor", math.Floor)
	addUnary(s, "round", math.Round)
	addUnary(s, "sign", sign)
	addBinary(s, "mod", math.Mod)
	addUnary(s, "factorial", factorial)
	addBinary(s, "c", binomial)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func factorial(x float64) float64 {
	n := math.Trunc(x)
	if n < 0 {
		return math.NaN()
	}
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
	}
	return result
}

func binomial(n, k float64) float64 {
	nn, kk := math.Trunc(n), math.Trunc(k)
	if kk < 0 || kk > nn {
		return 0
	}
	return factorial(nn) / (factorial(kk) * factorial(nn-kk))
}

func registerAggregates(s *session.Session) {
	addVariadic(s, "max", func(vals []float64) float64 {
		m := vals[0]
		for _, v := range vals[1:] {
			if v > m {
				m = v
			}
		}
		return m
	})
	addVariadic(s, "min", func(vals []float64) float64 {
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m
	})
	addVariadic(s, "sum", func(vals []float64) float64 {
		total := 0.0
		for _, v := range vals {
			total += v
		}
		return total
	})
	avg := func(vals []float64) float64 {
		total := 0.0
		for _, v := range vals {
			total += v
		}
		return total / float64(len(vals))
	}
	addVariadic(s, "avg", avg)
	addVariadic(s, "average", avg)
	addVariadic(s, "gcd", func(vals []float64) float64 {
		g := int64(math.Abs(math.Trunc(vals[0])))
		for _, v := range vals[1:] {
			b := int64(math.Abs(math.Trunc(v)))
			for b != 0 {
				g, b = b, g%b
			}
		}
		return float64(g)
	})
}
