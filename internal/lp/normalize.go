package lp

import "strings"

// NormalizeVar canonicalizes bracket-indexed variable names: every
// occurrence of "[k]" with a non-negative integer k becomes "_k", so
// w[3] turns into w_3 and x[1][2] into x_1_2. Names without a bracketed
// integer index are returned unchanged, which makes the function
// idempotent.
func NormalizeVar(name string) string {
	if !strings.Contains(name, "[") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); {
		if name[i] != '[' {
			b.WriteByte(name[i])
			i++
			continue
		}
		j := i + 1
		for j < len(name) && name[j] >= '0' && name[j] <= '9' {
			j++
		}
		if j > i+1 && j < len(name) && name[j] == ']' {
			b.WriteByte('_')
			b.WriteString(name[i+1 : j])
			i = j + 1
			continue
		}
		// Not a plain integer index, keep the bracket as-is.
		b.WriteByte(name[i])
		i++
	}
	return b.String()
}
