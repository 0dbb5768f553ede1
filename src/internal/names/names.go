package names

import (
	"regexp"
	"strings"

	"bib2apa/src/internal/latex"
)

// separator splits a BibTeX author list. Only the lowercase word "and"
// separated by whitespace on both sides counts.
var separator = regexp.MustCompile(`\s+and\s+`)

// Initials converts a given name string into spaced initials: "Jane Q" -> "J. Q.".
// The first character of each word is kept as written.
func Initials(given string) string {
	var out []string
	for _, w := range strings.Fields(given) {
		r := []rune(w)
		out = append(out, string(r[0])+".")
	}
	return strings.Join(out, " ")
}

// Split splits a full name into (family, given). It accepts either
// "Family, Given Names" or "Given Names Family"; a single word is a family name.
func Split(name string) (family, given string) {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, ","); i >= 0 {
		return strings.TrimSpace(name[:i]), strings.TrimSpace(name[i+1:])
	}
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[len(parts)-1], strings.Join(parts[:len(parts)-1], " ")
}

// SplitList breaks a raw author field into unescaped, trimmed names, in order.
// Empty segments are kept.
func SplitList(field string) []string {
	if field == "" {
		return nil
	}
	parts := separator.Split(field, -1)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(latex.Unescape(strings.TrimSpace(p)))
	}
	return out
}

// APA renders one name as "Family, I. N." or just "Family".
func APA(name string) string {
	fam, giv := Split(name)
	if gi := Initials(giv); gi != "" {
		return fam + ", " + gi
	}
	return fam
}

// FormatAPA formats a raw BibTeX author field as an APA author list:
// "Smith, J.", "Smith, J., & Doe, J." or "A, B, & C".
func FormatAPA(field string) string {
	list := SplitList(field)
	parts := make([]string, len(list))
	for i, n := range list {
		parts[i] = APA(n)
	}
	return JoinOxfordAmp(parts)
}

// Families returns the family name of every author in a raw author field.
func Families(field string) []string {
	list := SplitList(field)
	out := make([]string, 0, len(list))
	for _, n := range list {
		if fam, _ := Split(n); fam != "" {
			out = append(out, fam)
		}
	}
	return out
}

// JoinOxfordAmp joins names with commas and a final ", & ".
func JoinOxfordAmp(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + ", & " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", & " + parts[len(parts)-1]
	}
}
