package black_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/caplib/black"
)

func TestPriceIntrinsicAtZeroStdDev(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		opt  black.OptionType
		f, k float64
		want float64
	}{
		{"itm call", black.Call, 0.04, 0.025, 0.015},
		{"otm call", black.Call, 0.02, 0.025, 0.0},
		{"itm put", black.Put, 0.02, 0.025, 0.005},
		{"otm put", black.Put, 0.04, 0.025, 0.0},
		{"atm", black.Call, 0.025, 0.025, 0.0},
	}
	for _, tc := range cases {
		got, err := black.Price(tc.opt, tc.f, tc.k, 0)
		if err != nil {
			t.Fatalf("%s: Price error: %v", tc.name, err)
		}
		if math.IsNaN(got) {
			t.Fatalf("%s: got NaN", tc.name)
		}
		if math.Abs(got-tc.want) > 1e-15 {
			t.Fatalf("%s: got %.15f want %.15f", tc.name, got, tc.want)
		}
	}
}

func TestPricePutCallParity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		f, k, stdDev float64
	}{
		{0.04, 0.025, 0.35},
		{0.02, 0.03, 0.12},
		{0.05, 0.05, 0.9},
		{0.015, 0.04, 1.4},
	}
	for _, tc := range cases {
		call, err := black.Price(black.Call, tc.f, tc.k, tc.stdDev)
		if err != nil {
			t.Fatalf("call Price error: %v", err)
		}
		put, err := black.Price(black.Put, tc.f, tc.k, tc.stdDev)
		if err != nil {
			t.Fatalf("put Price error: %v", err)
		}
		parity := call - put
		want := tc.f - tc.k
		if math.Abs(parity-want) > 1e-14 {
			t.Fatalf("parity F=%.3f K=%.3f sd=%.2f: got %.15f want %.15f",
				tc.f, tc.k, tc.stdDev, parity, want)
		}
	}
}

func TestPriceKnownValue(t *testing.T) {
	t.Parallel()

	// ATM lognormal call: F * (2*Phi(sd/2) - 1).
	f, sd := 0.03, 0.5
	got, err := black.Price(black.Call, f, f, sd)
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	want := f * (2*phi(sd/2) - 1)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("atm call: got %.12f want %.12f", got, want)
	}
}

func phi(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func TestPriceRejectsNonPositiveInputs(t *testing.T) {
	t.Parallel()

	var domErr black.NumericDomainError
	if _, err := black.Price(black.Call, -0.01, 0.025, 0.3); !errors.As(err, &domErr) {
		t.Fatalf("expected NumericDomainError for negative forward, got %v", err)
	}
	if _, err := black.Price(black.Put, 0.03, 0, 0.3); !errors.As(err, &domErr) {
		t.Fatalf("expected NumericDomainError for zero strike, got %v", err)
	}
}

func TestVegaPositive(t *testing.T) {
	t.Parallel()

	v, err := black.Vega(0.03, 0.025, 0.4)
	if err != nil {
		t.Fatalf("Vega error: %v", err)
	}
	if v <= 0 {
		t.Fatalf("vega should be positive, got %.12f", v)
	}
}
