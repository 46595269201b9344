package lp

import "strings"

// sections holds the raw text of the three recognized LP file regions.
// A missing region leaves the corresponding has flag false; callers
// must tolerate absent regions (a file without bounds is common).
type sections struct {
	objective      string
	constraints    string
	bounds         string
	hasObjective   bool
	hasConstraints bool
	hasBounds      bool
}

type sectionKind int

const (
	secNone sectionKind = iota
	secObjective
	secConstraints
	secBounds
	secEnd
)

// Section keywords, longest first so that "minimize" is never matched
// as "min". Keywords are recognized case-insensitively at the start of
// a line, followed by a word boundary.
var sectionKeywords = []struct {
	word string
	kind sectionKind
}{
	{"subject to", secConstraints},
	{"constraints", secConstraints},
	{"minimize", secObjective},
	{"maximize", secObjective},
	{"bounds", secBounds},
	{"s.t.", secConstraints},
	{"min", secObjective},
	{"max", secObjective},
	{"obj", secObjective},
	{"end", secEnd},
}

// cleanSource strips backslash comments and collapses runs of spaces
// and tabs. Line breaks are preserved: the constraint parser and the
// multi-line merge logic are line oriented.
func cleanSource(src string) string {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if j := strings.IndexByte(line, '\\'); j >= 0 {
			line = line[:j]
		}
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

// matchSectionKeyword reports whether the line opens a new section and
// returns the remainder of the line after the keyword. A keyword only
// matches when followed by end of line, a space, or a colon, so
// constraint names like max_dev_3 or endow never switch sections.
func matchSectionKeyword(line string) (sectionKind, string, bool) {
	lower := strings.ToLower(line)
	for _, kw := range sectionKeywords {
		if !strings.HasPrefix(lower, kw.word) {
			continue
		}
		rest := line[len(kw.word):]
		if rest != "" && rest[0] != ' ' && rest[0] != ':' {
			continue
		}
		return kw.kind, rest, true
	}
	return secNone, "", false
}

// splitSections locates the objective, constraints and bounds regions
// of the cleaned source text. The first keyword of each kind wins;
// duplicate or nested section keywords are not supported and yield
// undefined split points.
func splitSections(src string) sections {
	var out sections
	current := secNone

	appendLine := func(kind sectionKind, text string) {
		switch kind {
		case secObjective:
			out.objective = joinRegion(out.objective, text)
			out.hasObjective = true
		case secConstraints:
			out.constraints = joinRegion(out.constraints, text)
			out.hasConstraints = true
		case secBounds:
			out.bounds = joinRegion(out.bounds, text)
			out.hasBounds = true
		}
	}

	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if kind, rest, ok := matchSectionKeyword(line); ok {
			if kind == secEnd {
				break
			}
			current = kind
			appendLine(current, strings.TrimSpace(rest))
			continue
		}
		if current != secNone {
			appendLine(current, line)
		}
	}
	return out
}

func joinRegion(region, line string) string {
	if region == "" {
		return line
	}
	return region + "\n" + line
}
