package main

import "strings"

type caseStyle int

const (
	styleNone caseStyle = iota
	styleUpper
	stylePascal
	styleCamel
	styleSnake
	styleScreamingSnake
	styleKebab
	styleScreamingKebab
)

func parseCaseStyle(s string) (caseStyle, bool) {
	switch s {
	case "UPPERCASE":
		return styleUpper, true
	case "PascalCase":
		return stylePascal, true
	case "camelCase":
		return styleCamel, true
	case "snake_case":
		return styleSnake, true
	case "SCREAMING_SNAKE_CASE":
		return styleScreamingSnake, true
	case "kebab-case":
		return styleKebab, true
	case "SCREAMING-KEBAB-CASE":
		return styleScreamingKebab, true
	}
	return styleNone, false
}

// apply converts a Go identifier to the style. Words are split on case
// boundaries and underscores, so PubDate becomes pub_date, pubDate,
// PUB-DATE and so on.
func (c caseStyle) apply(ident string) string {
	if c == styleNone {
		return ident
	}
	if c == styleUpper {
		return strings.ToUpper(ident)
	}
	words := splitWords(ident)
	switch c {
	case stylePascal:
		return joinWith(words, "", titleWord)
	case styleCamel:
		out := joinWith(words, "", titleWord)
		return strings.ToLower(out[:1]) + out[1:]
	case styleSnake:
		return joinWith(words, "_", strings.ToLower)
	case styleScreamingSnake:
		return joinWith(words, "_", strings.ToUpper)
	case styleKebab:
		return joinWith(words, "-", strings.ToLower)
	case styleScreamingKebab:
		return joinWith(words, "-", strings.ToUpper)
	}
	return ident
}

func splitWords(ident string) []string {
	var words []string
	start := 0
	for i := 0; i < len(ident); i++ {
		c := ident[i]
		if c == '_' {
			if i > start {
				words = append(words, ident[start:i])
			}
			start = i + 1
			continue
		}
		if i > start && isUpper(c) && !isUpper(ident[i-1]) {
			words = append(words, ident[start:i])
			start = i
		}
	}
	if start < len(ident) {
		words = append(words, ident[start:])
	}
	return words
}

func joinWith(words []string, sep string, f func(string) string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = f(w)
	}
	return strings.Join(out, sep)
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
