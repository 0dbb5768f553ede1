// Package apa assembles APA reference lines and in-text citations from
// BibTeX field mappings.
package apa

import (
	"fmt"
	"io"
	"strings"

	"bib2apa/src/internal/names"
	"bib2apa/src/internal/schema"
	"bib2apa/src/internal/stringsx"
)

// Reference holds the normalized pieces of one citation. Every field is
// already unescaped and trimmed; empty means absent.
type Reference struct {
	Authors  string
	Families []string
	Year     string
	Title    string
	Journal  string
	Volume   string
	Number   string
}

// FromFields normalizes the fields APA needs. Missing fields are empty.
func FromFields(f schema.Fields) Reference {
	return Reference{
		Authors:  names.FormatAPA(f.Get("author")),
		Families: names.Families(f.Get("author")),
		Year:     f.Clean("year"),
		Title:    f.Clean("title"),
		Journal:  f.Clean("journal"),
		Volume:   f.Clean("volume"),
		Number:   f.Clean("number"),
	}
}

// Source renders "Journal, 5(2)", "Journal, 5", "Journal, (2)" or whichever
// subset is present.
func (r Reference) Source() string {
	vol := volIssue(r.Volume, r.Number)
	switch {
	case vol == "":
		return r.Journal
	case r.Journal == "":
		return vol
	}
	return r.Journal + ", " + vol
}

func volIssue(vol, iss string) string {
	switch {
	case vol != "" && iss != "":
		return fmt.Sprintf("%s(%s)", vol, iss)
	case vol != "":
		return vol
	case iss != "":
		return "(" + iss + ")"
	}
	return ""
}

// Citation returns the reference line, e.g.
// "Smith, J., & Doe, J. (2020). A Study. Journal of Things, 5(2)."
// Absent parts are skipped along with their punctuation.
func (r Reference) Citation() string {
	var b strings.Builder
	if r.Authors != "" {
		b.WriteString(r.Authors)
		b.WriteString(" ")
	}
	if r.Year != "" {
		b.WriteString("(")
		b.WriteString(r.Year)
		b.WriteString("). ")
	}
	if r.Title != "" {
		b.WriteString(r.Title)
		b.WriteString(". ")
	}
	if src := r.Source(); src != "" {
		b.WriteString(src)
		b.WriteString(".")
	}
	return stringsx.CollapseSpace(b.String())
}

// InText returns the parenthetical citation: (Smith, 2020),
// (Smith & Doe, 2020) or (Smith et al., 2020).
func (r Reference) InText() string {
	year := r.Year
	if year == "" {
		year = "n.d."
	}
	switch len(r.Families) {
	case 0:
		name := stringsx.FirstNonEmpty(r.Journal, r.Title)
		if name == "" {
			name = "Anon"
		}
		return fmt.Sprintf("(%s, %s)", name, year)
	case 1:
		return fmt.Sprintf("(%s, %s)", r.Families[0], year)
	case 2:
		return fmt.Sprintf("(%s & %s, %s)", r.Families[0], r.Families[1], year)
	}
	return fmt.Sprintf("(%s et al., %s)", r.Families[0], year)
}

// Write prints the reference line for f to w, followed by a newline.
func Write(w io.Writer, f schema.Fields) error {
	_, err := fmt.Fprintln(w, FromFields(f).Citation())
	return err
}
