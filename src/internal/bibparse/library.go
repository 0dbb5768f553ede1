package bibparse

import (
	"fmt"
	"strings"

	"github.com/nickng/bibtex"

	"bib2apa/src/internal/schema"
)

// libraryParser delegates the full BibTeX grammar (string macros,
// concatenation, comments) to github.com/nickng/bibtex.
type libraryParser struct{}

func (libraryParser) Parse(text string) ([]schema.Fields, error) {
	bib, err := bibtex.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	out := make([]schema.Fields, 0, len(bib.Entries))
	for _, e := range bib.Entries {
		if e == nil {
			continue
		}
		f := make(schema.Fields, len(e.Fields))
		for k, v := range e.Fields {
			if v == nil {
				continue
			}
			f[k] = v.String()
		}
		out = append(out, f)
	}
	return out, nil
}

// fallbackParser tries primary and hands the text to secondary when primary
// fails or finds no entries. nickng/bibtex rejects trailing commas, bare
// month names and text outside records, all of which occur in exported .bib
// files.
type fallbackParser struct {
	primary, secondary Parser
}

func (p fallbackParser) Parse(text string) ([]schema.Fields, error) {
	entries, err := parse(p.primary, text)
	if err == nil && len(entries) > 0 {
		return entries, nil
	}
	more, ferr := parse(p.secondary, text)
	if ferr != nil {
		if err != nil {
			return nil, fmt.Errorf("%w (fallback: %v)", err, ferr)
		}
		return nil, ferr
	}
	return more, nil
}
