package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and strips diacritics, so "Développeur" and
// "developpeur" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// NormalizeQuery folds the input and keeps letters, digits and single spaces.
// Technology names keep their punctuation: a dot inside or leading a word
// ("node.js", ".net") and trailing '+' or '#' ("c++", "c#") survive, while
// sentence punctuation is dropped.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	rs := []rune(Fold(input))

	b := strings.Builder{}
	b.Grow(len(rs))
	lastWasSpace := false
	var prev rune

	for i, r := range rs {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
		case r == '.' && i+1 < len(rs) && isWordRune(rs[i+1]) && (prev == 0 || lastWasSpace || isWordRune(prev)):
		case (r == '+' || r == '#') && (isWordRune(prev) || prev == '+') && !lastWasSpace:
		case unicode.IsSpace(r) || r == '-' || r == '/':
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
			prev = ' '
			continue
		default:
			continue
		}
		b.WriteRune(r)
		lastWasSpace = false
		prev = r
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
