// Package comment finds the comment that documents a declaration and turns
// it into plain description lines.
package comment

import (
	"regexp"
	"strings"

	"ffigen/frontend"
)

var (
	blockEnd    = regexp.MustCompile(` ?\*+/\s*$`)
	blockStart  = regexp.MustCompile(`^\s*/?\*+<? ?`)
	lineStart   = regexp.MustCompile(`^\s*//[/!]?<? ?`)
	doxygenTags = regexp.MustCompile(`\\(brief|determine) `)
)

// Extract tokenizes r and returns the lines of the comment token nearest to
// its end (or, when backwards is false, nearest to its start) together with
// that token. With no comment in range it returns no lines and a nil token.
func Extract(unit frontend.TranslationUnit, r frontend.Range, backwards bool) ([]string, *frontend.Token) {
	tokens := unit.Tokenize(r)
	for i := range tokens {
		idx := i
		if backwards {
			idx = len(tokens) - 1 - i
		}
		if tokens[idx].Kind != frontend.TokenComment {
			continue
		}
		token := tokens[idx]
		return Lines(token.Spelling), &token
	}
	return []string{}, nil
}

// Lines splits the text of one comment token and strips its decoration.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		line = blockEnd.ReplaceAllString(line, "")
		if lineStart.MatchString(line) {
			line = lineStart.ReplaceAllString(line, "")
		} else {
			line = blockStart.ReplaceAllString(line, "")
		}
		line = doxygenTags.ReplaceAllString(line, "")
		line = strings.ReplaceAll(line, "[", "(")
		line = strings.ReplaceAll(line, "]", ")")
		lines = append(lines, line)
	}
	return lines
}

// Tidy prepares description lines for output: blank lines at either end are
// dropped, tabs become four spaces and the common indentation is removed.
func Tidy(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	out := make([]string, 0, end-start)
	indent := -1
	for _, line := range lines[start:end] {
		line = strings.ReplaceAll(line, "\t", "    ")
		out = append(out, line)
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return out
	}
	for i, line := range out {
		if len(line) >= indent {
			out[i] = line[indent:]
		} else {
			out[i] = ""
		}
	}
	return out
}
