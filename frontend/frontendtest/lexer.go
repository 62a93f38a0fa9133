package frontendtest

import (
	"strings"

	"ffigen/frontend"
)

var keywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true, "_Bool": true,
}

var punctuators = []string{
	"<<=", ">>=", "...",
	"<<", ">>", "->", "++", "--", "&&", "||", "==", "!=", "<=", ">=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "##",
}

type lexeme struct {
	kind       frontend.TokenKind
	start, end int
}

// lex splits C source into tokens, keeping comments.
func lex(src string) []lexeme {
	var out []lexeme
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\\':
			i++
		case strings.HasPrefix(src[i:], "//"):
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += i
			}
			out = append(out, lexeme{frontend.TokenComment, i, end})
			i = end
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				end = len(src)
			} else {
				end += i + 4
			}
			out = append(out, lexeme{frontend.TokenComment, i, end})
			i = end
		case isIdentStart(c):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			kind := frontend.TokenIdentifier
			if keywords[src[i:j]] {
				kind = frontend.TokenKeyword
			}
			out = append(out, lexeme{kind, i, j})
			i = j
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			j := i + 1
			for j < len(src) {
				d := src[j]
				if isIdentPart(d) || d == '.' {
					j++
					continue
				}
				if (d == '+' || d == '-') && strings.ContainsRune("eEpP", rune(src[j-1])) {
					j++
					continue
				}
				break
			}
			out = append(out, lexeme{frontend.TokenLiteral, i, j})
			i = j
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(src) && src[j] != c {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			if j < len(src) {
				j++
			}
			out = append(out, lexeme{frontend.TokenLiteral, i, j})
			i = j
		default:
			n := 1
			for _, p := range punctuators {
				if strings.HasPrefix(src[i:], p) {
					n = len(p)
					break
				}
			}
			out = append(out, lexeme{frontend.TokenPunctuation, i, i + n})
			i += n
		}
	}
	return out
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
