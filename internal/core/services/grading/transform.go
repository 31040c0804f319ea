package grading

import "strings"

// TransformForCompiler turns author shorthand such as "[2,3,4]" into the
// whitespace separated text a program reads from stdin. Each line is handled
// on its own and line breaks are kept.
func TransformForCompiler(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.ReplaceAll(line, "[", "")
		line = strings.ReplaceAll(line, "]", "")
		line = strings.ReplaceAll(line, ",", " ")
		line = strings.ReplaceAll(line, "#", "")
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

// TransformForDisplay shows each '#' as a quoted space.
func TransformForDisplay(raw string) string {
	return strings.ReplaceAll(raw, "#", `" "`)
}

// NormalizeAndCompare matches outputs ignoring surrounding whitespace and case.
func NormalizeAndCompare(actual, expected string) bool {
	return strings.ToLower(strings.TrimSpace(actual)) == strings.ToLower(strings.TrimSpace(expected))
}
