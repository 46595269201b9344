package lp

import "strconv"

// term is one "sign magnitude * variable" group extracted from a linear
// expression.
type term struct {
	coeff     float64
	variable  string
	malformed bool // numeric text did not parse, coeff fell back to 1
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' }

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '[' || c == ']'
}

// scanTerms tokenizes a linear expression left to right. Each term is
// an optional sign, an optional magnitude (integer or decimal, with an
// optional e/E exponent), an optional '*', and a variable identifier.
// The exponent is consumed as part of the numeric token, so "1.5e-3 x"
// yields coefficient 0.0015 for x and never a spurious "e" variable.
// Characters that cannot start a term are skipped.
func scanTerms(s string) []term {
	var terms []term
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '+' && c != '-' && !isDigit(c) && !isLetter(c) {
			i++
			continue
		}

		sign := ""
		if c == '+' || c == '-' {
			sign = string(c)
			i++
			i = skipSpaces(s, i)
		}

		num := ""
		if j := scanNumber(s, i); j > i {
			num = s[i:j]
			i = j
			i = skipSpaces(s, i)
			if i < len(s) && s[i] == '*' {
				i++
				i = skipSpaces(s, i)
			}
		}

		start := i
		for i < len(s) && isIdentChar(s[i]) {
			i++
		}
		if start == i || !isLetter(s[start]) {
			// No variable follows this sign/number group: not a term.
			// Scanning resumes where the group ended.
			if sign == "" && num == "" {
				i++
			}
			continue
		}

		t := term{variable: s[start:i]}
		t.coeff, t.malformed = parseCoefficient(sign + num)
		terms = append(terms, t)
	}
	return terms
}

func skipSpaces(s string, i int) int {
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}

// scanNumber returns the end of the numeric token starting at i, or i
// if there is none. Numbers start with a digit, may have a fractional
// part, and may have an exponent. A trailing '.' or a lone 'e' is not
// part of the number: "12ex" scans as number "12" followed by text
// "ex".
func scanNumber(s string, i int) int {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i {
		return i
	}
	if j < len(s) && s[j] == '.' {
		k := j + 1
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j+1 {
			j = k
		}
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		end := k
		for end < len(s) && isDigit(s[end]) {
			end++
		}
		if end > k {
			j = end
		}
	}
	return j
}

// parseCoefficient turns the raw sign+magnitude text of a term into a
// number. An empty string or a bare "+" means 1, a bare "-" means -1,
// and text that fails to parse falls back to 1 (reported as malformed,
// never fatal).
func parseCoefficient(raw string) (float64, bool) {
	switch raw {
	case "", "+":
		return 1.0, false
	case "-":
		return -1.0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1.0, true
	}
	return f, false
}
