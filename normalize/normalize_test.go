package normalize_test

import (
	"testing"

	"github.com/Aghajari/MathParser/normalize"
)

func noneDeclared(string) bool { return false }

func TestWhitespaceStripped(t *testing.T) {
	got := normalize.Normalize(" 2 + 2 ", noneDeclared)
	want := "2+2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFactorialRewrite(t *testing.T) {
	cases := map[string]string{
		"5!":          "factorial(5)",
		"5!/4":        "factorial(5)/4",
		"(2+3)!":      "factorial((2+3))",
		"sqrt(4)!":    "factorial(sqrt(4))",
		"!5":          "factorial()5",
	}
	for in, want := range cases {
		got := normalize.Normalize(in, noneDeclared)
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDegreeWordRewrite(t *testing.T) {
	got := normalize.Normalize("45deg", noneDeclared)
	if got != "toRadians(45)" {
		t.Errorf("got %q", got)
	}
	got = normalize.Normalize("45degrees", noneDeclared)
	if got != "toRadians(45)" {
		t.Errorf("got %q", got)
	}
	got = normalize.Normalize("90radians", noneDeclared)
	if got != "90" {
		t.Errorf("got %q", got)
	}
}

func TestDegreeWordShadowed(t *testing.T) {
	declared := func(name string) bool { return name == "deg" }
	got := normalize.Normalize("45deg", declared)
	if got != "45deg" {
		t.Errorf("got %q, want unshadowed suffix left alone", got)
	}
}

func TestDegreeSymbol(t *testing.T) {
	got := normalize.Normalize("45°", noneDeclared)
	if got != "toRadians(45)" {
		t.Errorf("got %q", got)
	}
}

func TestScientificFold(t *testing.T) {
	got := normalize.Normalize("(1e3)", noneDeclared)
	if got != "(1000)" {
		t.Errorf("got %q", got)
	}
}

func TestRadixFold(t *testing.T) {
	got := normalize.Normalize("(0xFF)", noneDeclared)
	if got != "(255)" {
		t.Errorf("got %q", got)
	}
	got = normalize.Normalize("(0o777)", noneDeclared)
	if got != "(511)" {
		t.Errorf("got %q", got)
	}
	got = normalize.Normalize("(0b100)", noneDeclared)
	if got != "(4)" {
		t.Errorf("got %q", got)
	}
}

func TestIdempotent(t *testing.T) {
	in := "5!/4 + 45deg + (0xFF)"
	once := normalize.Normalize(in, noneDeclared)
	twice := normalize.Normalize(once, noneDeclared)
	if once != twice {
		t.Errorf("not idempotent: %q then %q", once, twice)
	}
}
