package lp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRepairLines(t *testing.T) {
	testCases := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name: "split constraint is merged",
			lines: []string{
				"c0: 2 w_0 + 3 w_1",
				"  + 4 w_2 <= 1.5",
			},
			want: []string{"c0: 2 w_0 + 3 w_1 + 4 w_2 <= 1.5"},
		},
		{
			name: "merge stops at complete line",
			lines: []string{
				"c0: w_0",
				"  + w_1 = 1",
				"c1: w_2 = 0",
			},
			want: []string{
				"c0: w_0 + w_1 = 1",
				"c1: w_2 = 0",
			},
		},
		{
			name: "merge stops at blank line",
			lines: []string{
				"c0: w_0 + w_1",
				"",
				"bounds",
			},
			want: []string{
				"c0: w_0 + w_1",
				"",
				"bounds",
			},
		},
		{
			name: "commas stripped from merged constraint",
			lines: []string{
				"c0: 2 w_0,",
				"  + 3 w_1, <= 1",
			},
			want: []string{"c0: 2 w_0 + 3 w_1 <= 1"},
		},
		{
			name: "trailing comma stripped from ordinary lines",
			lines: []string{
				"minimize",
				"obj: 2 w_0 + 3 w_1,",
			},
			want: []string{
				"minimize",
				"obj: 2 w_0 + 3 w_1",
			},
		},
		{
			name: "complete single-line constraint untouched",
			lines: []string{"c0: 2 w_0 + 3 w_1 <= 1.5e-3"},
			want:  []string{"c0: 2 w_0 + 3 w_1 <= 1.5e-3"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := RepairLines(tc.lines)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("RepairLines(): mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// A repaired multi-line constraint must parse exactly like the same
// constraint written on one line.
func TestRepair_thenParse(t *testing.T) {
	broken := "subject to\nc0: 2 w[0],\n  + 3 w[1] <= 1\nend\n"
	repaired := Repair(broken)

	prog, diags := Parse(repaired)
	if len(diags) != 0 {
		t.Errorf("Parse() after Repair(): diagnostics %v", diags)
	}
	if n := len(prog.Constraints); n != 1 {
		t.Fatalf("want 1 constraint, got %d", n)
	}
	want := map[string]float64{"w_0": 2, "w_1": 3}
	if diff := cmp.Diff(want, exprMap(prog.Constraints[0].Terms)); diff != "" {
		t.Errorf("terms mismatch (-want +got):\n%s", diff)
	}
}

func TestEndsWithRelation(t *testing.T) {
	testCases := []struct {
		line string
		want bool
	}{
		{"c0: 2 w_0 <= 1", true},
		{"c0: 2 w_0 >= 1.5", true},
		{"c0: w_0 = 0.5", true},
		{"c0: w_0 = 1.5e-3", true},
		{"c0: w_0 = -2", true},
		{"c0: w_0 = .5", true},
		{"c0: 2 w_0 +", false},
		{"c0: 2 w_0", false},
		{"c0: w_0 = 5.", false},
		{"c0: w_0 <= x", false},
		{"minimize", false},
	}
	for _, tc := range testCases {
		if got := endsWithRelation(tc.line); got != tc.want {
			t.Errorf("endsWithRelation(%q): want %v, got %v", tc.line, tc.want, got)
		}
	}
}
