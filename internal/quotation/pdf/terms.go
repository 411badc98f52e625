package pdf

import "strings"

// termLine is one bullet of the terms section, split from a source
// line on its first colon.
type termLine struct {
	Key   string
	Value string
}

// parseTerms turns line-oriented "key: value" text into bullet rows.
// Lines with an empty key are dropped; text after the first colon is
// kept verbatim, further colons included.
func parseTerms(terms string) []termLine {
	if strings.TrimSpace(terms) == "" {
		return nil
	}

	var out []termLine
	for _, line := range strings.Split(terms, "\n") {
		key, value, _ := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out = append(out, termLine{Key: key, Value: strings.TrimSpace(value)})
	}
	return out
}
