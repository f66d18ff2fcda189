package calc

import (
	"errors"
	"math"
	"testing"
)

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name           string
		orig, upgraded float64
		want           float64
	}{
		{"increase", 100, 150, 0.5},
		{"decrease", 100, 50, -0.5},
		{"same", 123.45, 123.45, 0},
		{"negative same", -7, -7, 0},
		{"double", 2000, 4000, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PercentChange(tc.orig, tc.upgraded)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("PercentChange(%v, %v) = %v, want %v", tc.orig, tc.upgraded, got, tc.want)
			}
		})
	}
}

func TestPercentChange_ZeroBaselinePropagates(t *testing.T) {
	if got := PercentChange(0, 10); !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf, got %v", got)
	}
	if got := PercentChange(0, 0); !math.IsNaN(got) {
		t.Fatalf("expected NaN, got %v", got)
	}
}

func TestCheckedPercentChange(t *testing.T) {
	got, err := CheckedPercentChange(100, 150)
	if err != nil || got != 0.5 {
		t.Fatalf("expected 0.5, got=%v err=%v", got, err)
	}
	if _, err := CheckedPercentChange(0, 150); !errors.Is(err, ErrUndefined) {
		t.Fatalf("expected ErrUndefined, got %v", err)
	}
}

func TestDiv(t *testing.T) {
	got, err := Div(10, 4)
	if err != nil || got != 2.5 {
		t.Fatalf("expected 2.5, got=%v err=%v", got, err)
	}
	if _, err := Div(10, 0); !errors.Is(err, ErrUndefined) {
		t.Fatalf("expected ErrUndefined for zero denominator, got %v", err)
	}
	if _, err := Div(math.Inf(1), 2); !errors.Is(err, ErrUndefined) {
		t.Fatalf("expected ErrUndefined for infinite numerator, got %v", err)
	}
}

func TestBuff(t *testing.T) {
	if got := Buff(0.2); got != 1.2 {
		t.Fatalf("expected 1.2, got %v", got)
	}
}
