package eval_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aghajari/MathParser/builtins"
	"github.com/Aghajari/MathParser/errtax"
	"github.com/Aghajari/MathParser/eval"
)

func TestUnbalancedParensReportsCursor(t *testing.T) {
	s := builtins.NewSession()
	_, err := eval.Parse(s, "2+(3*4")
	require.Error(t, err)
	var perr *errtax.Error
	require.ErrorAs(t, err, &perr)
	require.Positive(t, perr.Cursor)
}

func TestUnbalancedParensUnexpectedClose(t *testing.T) {
	s := builtins.NewSession()
	_, err := eval.Parse(s, "2+3)*4")
	require.Error(t, err)
}

func TestEmptyParensIsAnError(t *testing.T) {
	s := builtins.NewSession()
	_, err := eval.Parse(s, "2+()")
	require.Error(t, err)
}

func TestParenWrappingIsIdempotent(t *testing.T) {
	s1 := builtins.NewSession()
	s2 := builtins.NewSession()
	expr := "2+3*4-5/2"

	v1, err := eval.Parse(s1, expr)
	require.NoError(t, err)
	v2, err := eval.Parse(s2, "("+expr+")")
	require.NoError(t, err)
	require.InDelta(t, v1, v2, 1e-9)
}

func TestUnaryMinusNegatesWholeExpression(t *testing.T) {
	s1 := builtins.NewSession()
	s2 := builtins.NewSession()
	expr := "3+4*2"

	v1, err := eval.Parse(s1, expr)
	require.NoError(t, err)
	v2, err := eval.Parse(s2, "-("+expr+")")
	require.NoError(t, err)
	require.InDelta(t, -v1, v2, 1e-9)
}

func TestUnaryMinusInsideMultiplication(t *testing.T) {
	s := builtins.NewSession()
	v, err := eval.Parse(s, "2*-3")
	require.NoError(t, err)
	require.InDelta(t, -6.0, v, 1e-9)
}

func TestUnaryMinusOnBareIdentifier(t *testing.T) {
	s := builtins.NewSession()
	require.NoError(t, s.AddVariable("x", "5"))

	v, err := eval.Parse(s, "x")
	require.NoError(t, err)
	neg, err := eval.Parse(s, "-x")
	require.NoError(t, err)
	require.InDelta(t, -v, neg, 1e-9)
}

func TestImplicitCoefficientBeforeFunctionCall(t *testing.T) {
	s := builtins.NewSession()
	ok, err := s.AddExpression("f(x)=x+1")
	require.NoError(t, err)
	require.True(t, ok)

	v, err := eval.Parse(s, "2f(3)")
	require.NoError(t, err)
	require.InDelta(t, 8.0, v, 1e-9)
}

func TestDivisionByZeroBoundaries(t *testing.T) {
	s := builtins.NewSession()
	v, err := eval.Parse(s, "1/0")
	require.NoError(t, err)
	require.True(t, math.IsInf(v, 1))

	v, err = eval.Parse(s, "0/0")
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))
}

func TestNestedCallInsideSpecialArgumentStaysUnreducedUntilChosen(t *testing.T) {
	s := builtins.NewSession()
	ok, err := s.AddExpression("gcd(x,y)=if(y=0,x,gcd(y,x%y))")
	require.NoError(t, err)
	require.True(t, ok)

	v, err := eval.Parse(s, "gcd(48,18)")
	require.NoError(t, err)
	require.InDelta(t, 6.0, v, 1e-9)
}

func TestVariableNotFoundSuggestsClosestName(t *testing.T) {
	s := builtins.NewSession()
	require.NoError(t, s.AddVariable("total", "10"))

	_, err := eval.Parse(s, "totl+1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "did you mean")
}

func TestOperatorPrecedenceOverParens(t *testing.T) {
	s := builtins.NewSession()
	v, err := eval.Parse(s, "2+3*4")
	require.NoError(t, err)
	require.InDelta(t, 14.0, v, 1e-9)
}
