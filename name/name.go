// Package name splits raw C identifiers into word parts and renders them
// back under the casing rules of a binding language.
package name

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/divan/num2words"
)

// Name is an identifier broken into lower-case word parts. Raw keeps the
// spelling found in the header, or is empty for derived names.
type Name struct {
	Parts []string
	Raw   string
}

// Mode selects one rendering rule for Format.
type Mode int

const (
	// Lower lower-cases every part.
	Lower Mode = iota
	// Upper upper-cases every part.
	Upper
	// CamelCase upper-cases the first letter of every part.
	CamelCase
	// InitialLower lower-cases the first letter of the first part.
	InitialLower
	// Underscores joins parts with "_" instead of "".
	Underscores
	// SpellDigits spells a leading number as words instead of prefixing "_".
	SpellDigits
)

// New builds a derived name from already split parts.
func New(parts ...string) Name {
	n := Name{}
	for _, p := range parts {
		if p != "" {
			n.Parts = append(n.Parts, strings.ToLower(p))
		}
	}
	return n
}

// Tokenize strips the first matching prefix from raw and splits the rest on
// underscores and camel-case boundaries.
func Tokenize(raw string, prefixes []string) Name {
	stripped := raw
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(stripped, prefix) {
			stripped = stripped[len(prefix):]
			break
		}
	}

	n := Name{Raw: raw}
	for _, segment := range strings.Split(stripped, "_") {
		for _, word := range splitCamel(segment) {
			if word != "" {
				n.Parts = append(n.Parts, strings.ToLower(word))
			}
		}
	}
	return n
}

// splitCamel cuts before an upper-case letter followed by a lower-case one
// and between a lower-case letter and a following upper-case one.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i := 1; i < len(s); i++ {
		prev, cur := s[i-1], s[i]
		cut := isLower(prev) && isUpper(cur)
		if !cut && isUpper(cur) && i+1 < len(s) && isLower(s[i+1]) {
			cut = true
		}
		if cut {
			words = append(words, s[start:i])
			start = i
		}
	}
	return append(words, s[start:])
}

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// IsEmpty reports whether the name has no parts, which marks an anonymous
// declaration still waiting for a name.
func (n Name) IsEmpty() bool {
	return len(n.Parts) == 0
}

// Concat returns a derived name made of n's parts followed by other's.
func (n Name) Concat(other Name) Name {
	parts := make([]string, 0, len(n.Parts)+len(other.Parts))
	parts = append(parts, n.Parts...)
	parts = append(parts, other.Parts...)
	return Name{Parts: parts}
}

// String returns the raw spelling, or the parts joined by "_" for derived names.
func (n Name) String() string {
	if n.Raw != "" {
		return n.Raw
	}
	return strings.Join(n.Parts, "_")
}

// Format renders the name. It never modifies n. A rendering that starts
// with a digit gets a "_" prefix (or, with SpellDigits, its leading number
// spelled out) and a rendering found in reserved gets a "_" suffix.
func (n Name) Format(reserved []string, modes ...Mode) string {
	has := func(m Mode) bool {
		for _, mode := range modes {
			if mode == m {
				return true
			}
		}
		return false
	}

	parts := make([]string, len(n.Parts))
	copy(parts, n.Parts)
	if has(SpellDigits) {
		parts = spellLeadingNumber(parts)
	}

	if has(Lower) {
		for i := range parts {
			parts[i] = strings.ToLower(parts[i])
		}
	}
	if has(Upper) {
		for i := range parts {
			parts[i] = strings.ToUpper(parts[i])
		}
	}
	if has(CamelCase) {
		for i := range parts {
			parts[i] = capitalize(parts[i])
		}
	}
	if has(InitialLower) && len(parts) > 0 {
		parts[0] = decapitalize(parts[0])
	}

	joiner := ""
	if has(Underscores) {
		joiner = "_"
	}
	str := strings.Join(parts, joiner)

	if str != "" && str[0] >= '0' && str[0] <= '9' {
		str = "_" + str
	}
	for _, word := range reserved {
		if word == str {
			str += "_"
			break
		}
	}
	return str
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func decapitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// spellLeadingNumber replaces a number at the start of the first part with
// its spelled-out words ("2d" becomes "two", "d").
func spellLeadingNumber(parts []string) []string {
	if len(parts) == 0 {
		return parts
	}
	first := parts[0]
	end := 0
	for end < len(first) && first[end] >= '0' && first[end] <= '9' {
		end++
	}
	if end == 0 {
		return parts
	}
	value, err := strconv.Atoi(first[:end])
	if err != nil {
		return parts
	}

	words := strings.FieldsFunc(num2words.Convert(value), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	spelled := make([]string, 0, len(words)+len(parts))
	for _, w := range words {
		spelled = append(spelled, strings.ToLower(w))
	}
	if rest := first[end:]; rest != "" {
		spelled = append(spelled, rest)
	}
	return append(spelled, parts[1:]...)
}
