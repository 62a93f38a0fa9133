package reader

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"strings"

	"ffigen/frontend"
)

// readValue accepts literals and the operators + - << >> ( ) and returns
// the expression joined back together.
func readValue(tokens []frontend.Token) (string, error) {
	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: empty expression", ErrUnsupportedExpression)
	}
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		switch t.Kind {
		case frontend.TokenLiteral:
			parts = append(parts, t.Spelling)
		case frontend.TokenPunctuation:
			switch t.Spelling {
			case "+", "-", "<<", ">>", "(", ")":
				parts = append(parts, t.Spelling)
			default:
				return "", fmt.Errorf("%w: operator %q", ErrUnsupportedExpression, t.Spelling)
			}
		default:
			return "", fmt.Errorf("%w: %s %q", ErrUnsupportedExpression, strings.ToLower(t.Kind.String()), t.Spelling)
		}
	}
	return strings.Join(parts, ""), nil
}

// evaluate runs readValue and evaluates the result as a constant
// expression. C literal suffixes are dropped first.
func evaluate(tokens []frontend.Token) (string, constant.Value, error) {
	expr, err := readValue(tokens)
	if err != nil {
		return "", nil, err
	}

	normalized := make([]string, 0, len(tokens))
	previousString := false
	for _, t := range tokens {
		spelling := t.Spelling
		isString := t.Kind == frontend.TokenLiteral && strings.HasPrefix(spelling, `"`)
		if t.Kind == frontend.TokenLiteral {
			spelling = stripSuffix(spelling)
		}
		// adjacent string literals concatenate
		if isString && previousString {
			normalized = append(normalized, "+")
		}
		normalized = append(normalized, spelling)
		previousString = isString
	}

	tv, err := types.Eval(token.NewFileSet(), nil, token.NoPos, strings.Join(normalized, " "))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedExpression, expr, err)
	}
	if tv.Value == nil {
		return "", nil, fmt.Errorf("%w: %q is not constant", ErrUnsupportedExpression, expr)
	}
	return expr, tv.Value, nil
}

// evaluateInt is evaluate restricted to values that fit an int64.
func evaluateInt(tokens []frontend.Token) (int64, error) {
	expr, v, err := evaluate(tokens)
	if err != nil {
		return 0, err
	}
	v = constant.ToInt(v)
	if v.Kind() != constant.Int {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrUnsupportedExpression, expr)
	}
	n, exact := constant.Int64Val(v)
	if !exact {
		return 0, fmt.Errorf("%w: %q overflows int64", ErrUnsupportedExpression, expr)
	}
	return n, nil
}

func stripSuffix(literal string) string {
	if strings.ContainsAny(literal, `'"`) {
		return literal
	}
	lower := strings.ToLower(literal)
	if !strings.HasPrefix(lower, "0x") && strings.ContainsAny(literal, ".eE") {
		return strings.TrimRight(literal, "fFlL")
	}
	return strings.TrimRight(literal, "uUlL")
}
