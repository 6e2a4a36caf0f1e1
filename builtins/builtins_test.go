package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aghajari/MathParser/builtins"
	"github.com/Aghajari/MathParser/eval"
)

func parse(t *testing.T, expr string) float64 {
	t.Helper()
	v, err := eval.Parse(builtins.NewSession(), expr)
	require.NoError(t, err)
	return v
}

func TestArithmetic(t *testing.T) {
	require.InDelta(t, 4.0, parse(t, "2 + 2"), 1e-9)
	require.InDelta(t, 380.0, parse(t, "5^2 * (2 + 3 * 4) + 5!/4"), 1e-9)
}

func TestUserFunctionAndVariables(t *testing.T) {
	s := builtins.NewSession()
	ok, err := s.AddExpression("f(x,y)=2(x+y)")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.AddExpression("x0=1+2^2")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.AddExpression("y0=2x0")
	require.NoError(t, err)
	require.True(t, ok)

	v, err := eval.Parse(s, "1 + 2f(x0,y0)/3")
	require.NoError(t, err)
	require.InDelta(t, 21.0, v, 1e-6)
}

func TestTrigDegreeSugar(t *testing.T) {
	require.InDelta(t, 0.0, parse(t, "sin(3pi/2) + tan(45°)"), 1e-6)
}

func TestIntegral(t *testing.T) {
	require.InDelta(t, 517.121062, parse(t, "2∫(x,(x^3)/(x+1),5,10)"), 1e-3)
}

func TestDerivative(t *testing.T) {
	require.InDelta(t, 12.0, parse(t, "derivative(x,x^3,2)"), 1e-3)
}

func TestLimit(t *testing.T) {
	require.InDelta(t, 8.0, parse(t, "lim(x->2,x^(x+2))/2"), 1e-3)
}

func TestSigma(t *testing.T) {
	require.InDelta(t, 220.0, parse(t, "Σ(i,2i^2,1,5)"), 1e-9)
}

func TestFactorialAndRadix(t *testing.T) {
	require.InDelta(t, 30.0, parse(t, "5!/4"), 1e-9)
	require.InDelta(t, 24.0, parse(t, "(0b100)!"), 1e-9)
	require.InDelta(t, 8.0, parse(t, "log2((0xFF)+1)"), 1e-9)
	require.InDelta(t, 511.0, parse(t, "(0o777)"), 1e-9)
}

func TestIfBuiltin(t *testing.T) {
	require.InDelta(t, 2.0, parse(t, "2 + if(2^5>=5!,1,0)"), 1e-9)
}

func TestRecursiveUserFunctionAndVariadicGCD(t *testing.T) {
	s := builtins.NewSession()
	ok, err := s.AddExpression("gcd(x,y)=if(y=0,x,gcd(y,x%y))")
	require.NoError(t, err)
	require.True(t, ok)

	v, err := eval.Parse(s, "gcd(8,20)")
	require.NoError(t, err)
	require.InDelta(t, 4.0, v, 1e-9)

	v, err = eval.Parse(s, "gcd(8,20,100,150)")
	require.NoError(t, err)
	require.InDelta(t, 2.0, v, 1e-9)
}

func TestIdentifierSplittingPrefersLongestKnownVariable(t *testing.T) {
	s := builtins.NewSession()
	require.NoError(t, s.AddVariable("xy", "10"))
	v, err := eval.Parse(s, "xy")
	require.NoError(t, err)
	require.InDelta(t, 10.0, v, 1e-9)
}

func TestDivisionByZero(t *testing.T) {
	v := parse(t, "1/0")
	require.True(t, v > 1e300)
	v = parse(t, "0/0")
	require.True(t, v != v) // NaN
}
