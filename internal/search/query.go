package search

import "strings"

const maxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// ExpandQuery returns the normalized query followed by synonym variants. A
// leading one- or two-word phrase with synonyms is swapped while the rest of
// the query is kept, e.g. "developpeur java casablanca" also yields
// "developer java casablanca".
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)
	tryPrefix := func(phrase string, rest []string) {
		syns := GetSynonyms(phrase)
		if len(syns) == 0 {
			return
		}
		restStr := strings.Join(rest, " ")
		for _, syn := range syns {
			add(strings.TrimSpace(syn + " " + restStr))
		}
	}
	if len(words) >= 2 {
		tryPrefix(words[0], words[1:])
	}
	if len(words) >= 3 {
		tryPrefix(words[0]+" "+words[1], words[2:])
	}

	// compact spellings such as "fullstack" vs "full stack"
	joined := strings.ReplaceAll(normalized, " ", "")
	if joined != normalized {
		for _, syn := range GetSynonyms(joined) {
			add(syn)
		}
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	ctx := QueryContext{Original: input}
	ctx.Normalized = NormalizeQuery(input)
	if ctx.Normalized == "" {
		ctx.Variants = []string{}
		return ctx
	}
	ctx.Variants = ExpandQuery(ctx.Normalized)
	return ctx
}

func FallbackFirstWord(normalized string) string {
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
