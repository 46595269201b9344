package lp

import "testing"

func TestNormalizeVar(t *testing.T) {
	testCases := []struct {
		name string
		want string
	}{
		{"w[0]", "w_0"},
		{"w[31]", "w_31"},
		{"portfolio_weight[7]", "portfolio_weight_7"},
		{"x[1][2]", "x_1_2"},
		{"w_0", "w_0"},
		{"plain", "plain"},
		{"x[a]", "x[a]"},   // non-integer index is left alone
		{"x[]", "x[]"},     // empty index is left alone
		{"x[-1]", "x[-1]"}, // negative index is left alone
	}

	for _, tc := range testCases {
		if got := NormalizeVar(tc.name); got != tc.want {
			t.Errorf("NormalizeVar(%q): want %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestNormalizeVar_idempotent(t *testing.T) {
	names := []string{"w[0]", "x[1][2]", "w_3", "foo[12]bar[3]", "v[e]"}
	for _, name := range names {
		once := NormalizeVar(name)
		twice := NormalizeVar(once)
		if once != twice {
			t.Errorf("NormalizeVar not idempotent for %q: %q != %q", name, once, twice)
		}
	}
}
