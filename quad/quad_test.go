package quad_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aghajari/MathParser/quad"
)

func TestRuleSumsToIntervalWidth(t *testing.T) {
	r := quad.Get(20)
	require.Len(t, r.Nodes, 20)
	var sum float64
	for _, w := range r.Weights {
		sum += w
	}
	require.InDelta(t, 2.0, sum, 1e-9)
}

func TestIntegratesPolynomialExactly(t *testing.T) {
	r := quad.Get(10)
	var sum float64
	for i, x := range r.Nodes {
		sum += r.Weights[i] * (x * x * x)
	}
	require.InDelta(t, 0.0, sum, 1e-9)
}

func TestCached(t *testing.T) {
	a := quad.Get(15)
	b := quad.Get(15)
	require.Same(t, a, b)
}
