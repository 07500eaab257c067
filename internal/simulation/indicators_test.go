package simulation

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateIndicators_CrisisScenario(t *testing.T) {
	delays, err := ClipAndScale([]float64{0, 10, 20, 30}, 2.0)
	if err != nil {
		t.Fatal(err)
	}

	ind, err := CalculateIndicators(delays, 25)
	if err != nil {
		t.Fatal(err)
	}

	if ind.Expected != 30 {
		t.Errorf("Expected = %v, want 30", ind.Expected)
	}
	if ind.Probability != 50 {
		t.Errorf("Probability = %v, want 50", ind.Probability)
	}
	if math.Abs(ind.P95-57) > 1e-9 {
		t.Errorf("P95 = %v, want 57", ind.P95)
	}
	if ind.Worst != 60 {
		t.Errorf("Worst = %v, want 60", ind.Worst)
	}
}

func TestCalculateIndicators_StrictThreshold(t *testing.T) {
	ind, err := CalculateIndicators([]float64{60, 60, 61, 10}, 60)
	if err != nil {
		t.Fatal(err)
	}
	if ind.Probability != 25 {
		t.Errorf("values equal to the threshold must not count: got %v%%", ind.Probability)
	}
}

func TestCalculateIndicators_Empty(t *testing.T) {
	if _, err := CalculateIndicators(nil, 60); !errors.Is(err, ErrData) {
		t.Errorf("expected ErrData, got %v", err)
	}
}

func TestCalculateIndicators_Properties(t *testing.T) {
	e := NewEngine(WithSeed(99))
	for _, threshold := range []float64{-10, 0, 15, 60, 180, 1e9} {
		delays, err := e.Simulate(25, 30, 3000, 1.4)
		if err != nil {
			t.Fatal(err)
		}
		ind, err := CalculateIndicators(delays, threshold)
		if err != nil {
			t.Fatal(err)
		}
		if ind.Probability < 0 || ind.Probability > 100 {
			t.Errorf("threshold %v: probability %v outside [0, 100]", threshold, ind.Probability)
		}
		if ind.Worst < ind.P95 {
			t.Errorf("threshold %v: worst %v < p95 %v", threshold, ind.Worst, ind.P95)
		}
	}
}
