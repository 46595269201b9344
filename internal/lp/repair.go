package lp

import "strings"

// Repair fixes the known defects of the upstream model writer before a
// file is re-parsed: constraints split across several lines are merged
// back onto one line and commas, which the target dialect forbids in
// constraint bodies, are stripped. This pass is purely textual and runs
// before (and independently of) the Parse step; the two make different
// assumptions about how the input is malformed and stay separate.
func Repair(src string) string {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return strings.Join(RepairLines(lines), "\n") + "\n"
}

// RepairLines merges multi-line constraints and strips commas. A line
// starts an incomplete constraint when it contains a colon but does not
// already end in a relational operator followed by a number; subsequent
// lines are folded into it until the constraint is complete or the next
// line looks like a new constraint or section.
func RepairLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if !strings.ContainsRune(line, ':') || endsWithRelation(line) {
			out = append(out, strings.TrimRight(line, ","))
			i++
			continue
		}

		merged := line
		i++
		for i < len(lines) {
			next := strings.TrimSpace(lines[i])
			if next == "" || (strings.ContainsRune(next, ':') &&
				!strings.HasPrefix(next, "+") && !strings.HasPrefix(next, "-")) {
				break
			}
			merged += " " + next
			i++
			if endsWithRelation(merged) {
				break
			}
		}
		out = append(out, strings.ReplaceAll(merged, ",", ""))
	}
	return out
}

// endsWithRelation reports whether the line ends in a relational
// operator followed by a number, i.e. whether it is a complete
// single-line constraint.
func endsWithRelation(line string) bool {
	i := strings.LastIndexByte(line, '=')
	if i < 0 {
		return false
	}
	return isNumberText(strings.TrimSpace(line[i+1:]))
}

// isNumberText reports whether s is exactly an optionally signed
// decimal number with an optional lower-case exponent, the format the
// upstream writer uses for right-hand sides.
func isNumberText(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits, fracDigits := 0, 0
	for i < len(s) && isDigit(s[i]) {
		i++
		intDigits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			fracDigits++
		}
		if fracDigits == 0 {
			return false // numbers must end in a digit, "5." is not one
		}
	}
	if intDigits+fracDigits == 0 {
		return false
	}
	if i < len(s) && s[i] == 'e' {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(s)
}
