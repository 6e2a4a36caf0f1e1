package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/Aghajari/MathParser/session"
)

// fallbackResolver implements spec.md §3's "Parametric name" function
// shape: log2, log10, radical3, √4 and similar — the integer embedded
// in the name is an implicit second parameter.
func fallbackResolver(name string, arity int) (*session.FuncDef, bool) {
	if arity != 1 {
		return nil, false
	}
	lower := strings.ToLower(name)
	for _, prefix := range []string{"radical", "log", "√"} {
		if !strings.HasPrefix(lower, prefix) || len(lower) == len(prefix) {
			continue
		}
		suffix := lower[len(prefix):]
		n, err := strconv.ParseFloat(suffix, 64)
		if err != nil || n == 0 {
			continue
		}
		if prefix == "log" {
			base := n
			return &session.FuncDef{
				Name: name, Arity: 1,
				Native: wrapUnary(func(x float64) float64 { return math.Log(x) / math.Log(base) }),
			}, true
		}
		return &session.FuncDef{
			Name: name, Arity: 1,
			Native: wrapUnary(nthRoot(n)),
		}, true
	}
	return nil, false
}

func nthRoot(n float64) func(float64) float64 {
	return func(x float64) float64 {
		if x < 0 {
			if math.Mod(n, 2) == 1 && n == math.Trunc(n) {
				return -math.Pow(-x, 1/n)
			}
			return math.NaN()
		}
		return math.Pow(x, 1/n)
	}
}
