package value_test

import (
	"math"
	"testing"

	"github.com/Aghajari/MathParser/value"
)

func TestRound(t *testing.T) {
	cases := []struct {
		v       float64
		enabled bool
		scale   int
		want    float64
	}{
		{1.0000005, true, 6, 1.000001},
		{1.0000004, true, 6, 1.0},
		{-1.0000005, true, 6, -1.000001},
		{math.NaN(), true, 6, math.NaN()},
		{1.23456, false, 2, 1.23456},
	}
	for _, c := range cases {
		got := value.Round(c.v, c.enabled, c.scale)
		if math.IsNaN(c.want) {
			if !math.IsNaN(got) {
				t.Errorf("Round(%v) = %v, want NaN", c.v, got)
			}
			continue
		}
		if got != c.want {
			t.Errorf("Round(%v, %v, %v) = %v, want %v", c.v, c.enabled, c.scale, got, c.want)
		}
	}
}
