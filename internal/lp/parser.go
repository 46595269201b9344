package lp

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse scans one LP file's text and builds the program it describes.
// Parsing is best effort: recoverable problems (a constraint that
// cannot be parsed, a non-numeric right-hand side, malformed numeric
// text) are reported as diagnostics while the rest of the file is still
// converted. The bounds section is located but deliberately not
// interpreted; its contents never reach the output.
func Parse(src string) (*Program, []Diagnostic) {
	p := NewProgram()
	var diags []Diagnostic

	secs := splitSections(cleanSource(src))

	if secs.hasObjective {
		diags = append(diags, parseObjective(p, secs.objective)...)
	}
	if secs.hasConstraints {
		diags = append(diags, parseConstraints(p, secs.constraints)...)
	}
	return p, diags
}

// parseObjective fills p.Objective from the objective region. Text
// before the first colon is the objective label (usually "obj") and is
// excluded from term extraction so that it never becomes a variable.
// The region is flattened onto one line first so that a sign separated
// from its term by a line break keeps applying to that term.
func parseObjective(p *Program, text string) []Diagnostic {
	if i := strings.IndexByte(text, ':'); i >= 0 {
		text = text[i+1:]
	}
	text = strings.Join(strings.Fields(text), " ")
	return addTerms(p, p.Objective, "", text)
}

// addTerms extracts all terms from expr into e, normalizing variable
// names and registering them in the program's variable set. Duplicate
// mentions of a variable sum into one coefficient.
func addTerms(p *Program, e *Expr, constraint, expr string) []Diagnostic {
	var diags []Diagnostic
	for _, t := range scanTerms(expr) {
		name := NormalizeVar(t.variable)
		e.Add(name, t.coeff)
		p.registerVar(name)
		if t.malformed {
			diags = append(diags, Diagnostic{
				Kind:       DiagBadCoefficient,
				Constraint: constraint,
				Message:    fmt.Sprintf("coefficient of %s fell back to 1", name),
			})
		}
	}
	return diags
}

// parseConstraints splits the constraints region into individual
// constraints and appends the ones that parse to p.Constraints in file
// order. A line starts a new constraint iff it contains a colon and
// does not begin with a continuation sign; every other non-blank line
// extends the current constraint's expression.
func parseConstraints(p *Program, region string) []Diagnostic {
	var diags []Diagnostic

	name := ""
	buffer := ""
	flush := func() {
		if name == "" {
			return
		}
		if buffer == "" {
			diags = append(diags, Diagnostic{
				Kind:       DiagDroppedConstraint,
				Constraint: name,
				Message:    "empty expression",
			})
			return
		}
		c, ds, err := parseConstraint(p, name, buffer)
		diags = append(diags, ds...)
		if err != nil {
			diags = append(diags, Diagnostic{
				Kind:       DiagDroppedConstraint,
				Constraint: name,
				Message:    err.Error(),
			})
			return
		}
		p.Constraints = append(p.Constraints, *c)
	}

	for _, line := range strings.Split(region, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		starts := strings.ContainsRune(line, ':') &&
			!strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "-")
		if !starts {
			buffer += " " + line
			continue
		}
		flush()
		namePart, exprPart, _ := strings.Cut(line, ":")
		name = strings.TrimSpace(namePart)
		buffer = strings.TrimSpace(exprPart)
	}
	flush()

	return diags
}

// senseOrder is the fixed trial order for relational operators. The
// first operator found anywhere in the expression wins, so "<=" is
// always preferred over its "=" suffix. When a line legitimately
// contains more than one operator only the first is honored; this is a
// documented limitation inherited from the upstream writer's dialect.
var senseOrder = []string{SenseLE, SenseGE, SenseEQ}

func parseConstraint(p *Program, name, expr string) (*Constraint, []Diagnostic, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil, fmt.Errorf("empty expression")
	}

	c := &Constraint{
		Name:  name,
		Terms: NewExpr(),
		Sense: SenseEQ,
		RHS:   0.0,
	}

	var diags []Diagnostic
	lhs := expr
	for _, op := range senseOrder {
		i := strings.Index(expr, op)
		if i <= 0 {
			continue
		}
		lhs = strings.TrimSpace(expr[:i])
		rhsText := strings.TrimSpace(expr[i+len(op):])
		c.Sense = op
		rhs, err := strconv.ParseFloat(rhsText, 64)
		if err != nil {
			diags = append(diags, Diagnostic{
				Kind:       DiagBadRHS,
				Constraint: name,
				Message:    fmt.Sprintf("right-hand side %q is not a number, using 0", rhsText),
			})
			rhs = 0.0
		}
		c.RHS = rhs
		break
	}

	diags = append(diags, addTerms(p, c.Terms, name, lhs)...)
	return c, diags, nil
}
