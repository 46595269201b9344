// Package lp reads linear programs written in the CPLEX/Gurobi text
// dialect and re-emits them in the single-line-per-constraint form
// expected by the quantum-optimization readers used in the portfolio
// study. It is a best-effort transform: parsing problems degrade into
// diagnostics rather than failures wherever possible.
package lp

import "fmt"

// Relational senses of a constraint.
const (
	SenseLE = "<="
	SenseGE = ">="
	SenseEQ = "="
)

// Program is the in-memory representation of one LP file. It is built
// once by Parse, written once, and then discarded.
type Program struct {
	// Objective maps variable names to their summed coefficients,
	// keeping first-mention order.
	Objective *Expr

	// Constraints in original file order. Downstream tooling may key
	// off constraint position, so the order must be preserved.
	Constraints []Constraint

	variables map[string]struct{}
}

// Constraint is a single named linear constraint. Sense defaults to "="
// and RHS to 0 when no relational operator is found in the source line.
type Constraint struct {
	Name  string
	Terms *Expr
	Sense string
	RHS   float64
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{
		Objective: NewExpr(),
		variables: map[string]struct{}{},
	}
}

func (p *Program) registerVar(name string) {
	p.variables[name] = struct{}{}
}

// RegisterVariable records a variable in the program's variable set.
// Parse does this automatically; programs assembled by hand (e.g. by a
// problem generator) register their variables through this method to
// keep the set consistent with the terms.
func (p *Program) RegisterVariable(name string) {
	p.registerVar(name)
}

// HasVariable reports whether name was seen in the objective or in any
// constraint.
func (p *Program) HasVariable(name string) bool {
	_, ok := p.variables[name]
	return ok
}

// NumVariables returns the number of distinct variables seen across the
// objective and all constraints.
func (p *Program) NumVariables() int {
	return len(p.variables)
}

// Expr is an ordered linear expression: a variable to coefficient
// mapping that remembers the order in which variables were first
// mentioned. Repeated mentions of a variable sum into one coefficient.
type Expr struct {
	order []string
	coef  map[string]float64
}

func NewExpr() *Expr {
	return &Expr{coef: map[string]float64{}}
}

// Add accumulates c into the coefficient of name.
func (e *Expr) Add(name string, c float64) {
	if _, ok := e.coef[name]; !ok {
		e.order = append(e.order, name)
	}
	e.coef[name] += c
}

// Coefficient returns the coefficient of name, or 0 if name is absent.
func (e *Expr) Coefficient(name string) float64 {
	return e.coef[name]
}

// Vars returns the variable names in first-mention order. The returned
// slice is shared with the expression and must not be modified.
func (e *Expr) Vars() []string {
	return e.order
}

func (e *Expr) Len() int {
	return len(e.order)
}

// Diagnostic kinds reported by Parse.
const (
	// DiagDroppedConstraint marks a constraint that could not be parsed
	// and was left out of the program.
	DiagDroppedConstraint DiagKind = iota

	// DiagBadRHS marks a constraint whose right-hand side did not parse
	// as a number; the constraint is kept with RHS 0.
	DiagBadRHS

	// DiagBadCoefficient marks a term whose numeric text did not parse;
	// the term is kept with coefficient 1.
	DiagBadCoefficient
)

type DiagKind int

func (k DiagKind) String() string {
	switch k {
	case DiagDroppedConstraint:
		return "dropped constraint"
	case DiagBadRHS:
		return "bad right-hand side"
	case DiagBadCoefficient:
		return "bad coefficient"
	default:
		return fmt.Sprintf("DiagKind(%d)", int(k))
	}
}

// Diagnostic describes a recoverable parsing problem. Constraint is
// empty for problems found in the objective section.
type Diagnostic struct {
	Kind       DiagKind
	Constraint string
	Message    string
}

func (d Diagnostic) String() string {
	if d.Constraint == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s %q: %s", d.Kind, d.Constraint, d.Message)
}
