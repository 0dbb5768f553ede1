// Package latex converts the handful of LaTeX accent macros that show up in
// BibTeX field values into Unicode text.
package latex

import (
	"regexp"
	"strings"

	"bib2apa/src/internal/stringsx"
)

// macro is one accent introducer. The pattern captures the accented letter
// as its last byte; letters missing from the table lose the accent.
type macro struct {
	pattern *regexp.Regexp
	table   map[byte]string
}

// Applied in order; each pass sees the output of the previous one.
var macros = []macro{
	{
		// \'x and \'\x
		pattern: regexp.MustCompile(`\\'\\?[A-Za-z]`),
		table: map[byte]string{
			'a': "á", 'e': "é", 'i': "í", 'o': "ó", 'u': "ú",
			'A': "Á", 'E': "É", 'I': "Í", 'O': "Ó", 'U': "Ú",
			'n': "ñ", 'N': "Ñ",
		},
	},
	{
		// grave: the macro is dropped, no accent is applied
		pattern: regexp.MustCompile("\\\\`[A-Za-z]"),
		table:   map[byte]string{},
	},
	{
		pattern: regexp.MustCompile(`\\~[nN]`),
		table:   map[byte]string{'n': "ñ", 'N': "Ñ"},
	},
	{
		pattern: regexp.MustCompile(`\\"[A-Za-z]`),
		table:   map[byte]string{'o': "ö", 'O': "Ö"},
	},
}

var braces = strings.NewReplacer("{", "", "}", "")

// Unescape replaces newlines with spaces, resolves the supported accent
// macros, drops every brace and collapses whitespace. Unrecognised escape
// sequences pass through unchanged.
func Unescape(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\n", " ")
	for _, m := range macros {
		s = m.pattern.ReplaceAllStringFunc(s, m.resolve)
	}
	s = braces.Replace(s)
	return stringsx.CollapseSpace(s)
}

func (m macro) resolve(match string) string {
	c := match[len(match)-1]
	if r, ok := m.table[c]; ok {
		return r
	}
	return string(c)
}
