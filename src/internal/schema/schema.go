package schema

import (
	"sort"
	"strings"

	"bib2apa/src/internal/latex"
)

// Fields maps lowercase BibTeX field names to raw values for a single entry.
type Fields map[string]string

// NewFields copies raw into a Fields value with every key lowercased.
// Keys are applied in sorted order, so when two keys differ only by case the
// one sorting last wins; an all-lowercase key beats any capitalized spelling.
func NewFields(raw map[string]string) Fields {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	f := make(Fields, len(raw))
	for _, k := range keys {
		f[strings.ToLower(k)] = raw[k]
	}
	return f
}

// Get returns the raw value for key, or "" when absent.
func (f Fields) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[strings.ToLower(key)]
}

// Clean returns the unescaped, trimmed value for key.
func (f Fields) Clean(key string) string {
	return strings.TrimSpace(latex.Unescape(f.Get(key)))
}

// Normalized returns a copy with every value unescaped.
func (f Fields) Normalized() Fields {
	out := make(Fields, len(f))
	for k := range f {
		out[k] = f.Clean(k)
	}
	return out
}
