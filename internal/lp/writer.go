package lp

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Write serializes the program in the single-line-per-constraint
// dialect: a minimize block, one line per constraint, and an "end"
// trailer. Bounds are never emitted. The output is a fixed point of the
// converter: re-parsing and re-writing it reproduces the same bytes.
func (p *Program) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if p.Objective.Len() > 0 {
		bw.WriteString("minimize\n")
		bw.WriteString("obj: ")
		bw.WriteString(formatTerms(p.Objective))
		bw.WriteString("\n\n")
	}

	if len(p.Constraints) > 0 {
		bw.WriteString("subject to\n")
		for _, c := range p.Constraints {
			bw.WriteString(c.Name)
			bw.WriteString(": ")
			bw.WriteString(formatTerms(c.Terms))
			bw.WriteString(" ")
			bw.WriteString(c.Sense)
			bw.WriteString(" ")
			bw.WriteString(formatFloat(c.RHS))
			bw.WriteString("\n")
		}
		bw.WriteString("\n")
	}

	bw.WriteString("end\n")
	return bw.Flush()
}

func (p *Program) String() string {
	var sb strings.Builder
	p.Write(&sb)
	return sb.String()
}

// formatTerms renders an expression as a signed term list. The first
// term carries no leading sign unless negative; later terms are joined
// with " + " or " - " and use the coefficient's absolute value. Unit
// coefficients print as the bare variable name and zero coefficients
// are omitted entirely.
func formatTerms(e *Expr) string {
	var sb strings.Builder
	first := true
	for _, name := range e.Vars() {
		c := e.Coefficient(name)
		if c == 0 {
			continue
		}
		if first {
			if c < 0 {
				sb.WriteString("-")
			}
			first = false
		} else if c < 0 {
			sb.WriteString(" - ")
		} else {
			sb.WriteString(" + ")
		}
		if mag := formatFloat(abs(c)); mag != "1" {
			sb.WriteString(mag)
			sb.WriteString(" ")
		}
		sb.WriteString(name)
	}
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
