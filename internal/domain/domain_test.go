package domain_test

import (
	"testing"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
	"gopkg.in/yaml.v3"
)

func TestConfigUnmarshal_RejectsUnknownKeys(t *testing.T) {
	var cfg domain.Config
	in := "" +
		"characters: [anaxa]\n" +
		"mode: simulation\n" +
		"unknown_key: 123\n"

	if err := yaml.Unmarshal([]byte(in), &cfg); err == nil {
		t.Fatalf("expected error for unsupported config keys")
	}
}

func TestConfigUnmarshal_Defaults(t *testing.T) {
	var cfg domain.Config
	in := "" +
		"characters:\n" +
		"  - anaxa\n" +
		"  - castorice\n" +
		"pulls:\n" +
		"  per_copy: 80\n"

	if err := yaml.Unmarshal([]byte(in), &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Characters) != 2 {
		t.Fatalf("expected 2 characters, got %d", len(cfg.Characters))
	}
	if cfg.Pulls.PerCopy != 80 {
		t.Fatalf("expected per_copy=80, got %v", cfg.Pulls.PerCopy)
	}
	if !cfg.ParallelEnabled() || !cfg.XLSXEnabled() {
		t.Fatalf("expected parallel and xlsx to default to true")
	}
}

func TestParseRung(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Rung
	}{
		{"E0", domain.Rung{}},
		{"e6", domain.Rung{Eidolon: 6}},
		{" E10 ", domain.Rung{Eidolon: 10}},
		{"LC", domain.Rung{LC: true}},
		{"lc", domain.Rung{LC: true}},
	}
	for _, tc := range cases {
		got, err := domain.ParseRung(tc.in)
		if err != nil {
			t.Fatalf("ParseRung(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRung(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "E", "X1", "E-1", "Efoo"} {
		if _, err := domain.ParseRung(bad); err == nil {
			t.Fatalf("ParseRung(%q): expected error", bad)
		}
	}
}

func TestSortRungs_Numeric(t *testing.T) {
	rs := []domain.Rung{{Eidolon: 10}, {LC: true}, {Eidolon: 2}, {Eidolon: 0}}
	domain.SortRungs(rs)
	want := []string{"E0", "E2", "E10", "LC"}
	for i := range want {
		if rs[i].String() != want[i] {
			t.Fatalf("expected[%d]=%q, got %q", i, want[i], rs[i].String())
		}
	}
}

func TestRungFlags(t *testing.T) {
	if f := (domain.Rung{Eidolon: 3}).Flags(); !f.E1 || !f.E2 || !f.E3 || f.E4 || f.LC {
		t.Fatalf("expected E1+E2+E3, got %s", f)
	}
	if f := (domain.Rung{LC: true}).Flags(); f != (domain.Flags{LC: true}) {
		t.Fatalf("expected LC only, got %s", f)
	}
	if f := domain.Cumulative(0); f != (domain.Flags{}) {
		t.Fatalf("expected empty flags, got %s", f)
	}
	if got := domain.Cumulative(6).String(); got != "E1+E2+E3+E4+E5+E6" {
		t.Fatalf("unexpected cumulative flags %q", got)
	}
}

func TestSeriesSet(t *testing.T) {
	var s domain.Series
	s.Set("E0", 100)
	s.Set("E1", 110)
	s.Set("E0", 101)
	if len(s) != 2 {
		t.Fatalf("expected 2 points, got %d", len(s))
	}
	if v, ok := s.Get("E0"); !ok || v != 101 {
		t.Fatalf("expected E0=101, got %v (ok=%v)", v, ok)
	}
	if got := s.Labels(); got[0] != "E0" || got[1] != "E1" {
		t.Fatalf("unexpected order %v", got)
	}
}
