// Package bibparse turns raw BibTeX text into field mappings. The grammar
// itself is handled by a Parser backend; Extract applies the
// first-entry/lowercase-key rules on top of whichever backend is chosen.
package bibparse

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"bib2apa/src/internal/schema"
)

// Parser turns BibTeX text into one mapping per entry, in input order.
// Values have their outer braces or quotes removed; key case is as written.
type Parser interface {
	Parse(text string) ([]schema.Fields, error)
}

// Backend names accepted by New.
const (
	Library = "bibtex"
	Builtin = "builtin"
	Default = Library
)

// ErrUnknownParser is returned by New for a name that is not registered.
var ErrUnknownParser = errors.New("unknown parser")

var backends = map[string]func() Parser{
	Library: func() Parser { return fallbackParser{primary: libraryParser{}, secondary: builtinParser{}} },
	Builtin: func() Parser { return builtinParser{} },
}

// New returns the backend registered under name; "" selects Default.
func New(name string) (Parser, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Default
	}
	mk, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownParser, name, strings.Join(Names(), ", "))
	}
	return mk(), nil
}

// Names lists the registered backend names in sorted order.
func Names() []string {
	out := make([]string, 0, len(backends))
	for k := range backends {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Extract returns the fields of the first entry in text with lowercased
// keys. A parse failure is reported on diag and yields an empty mapping.
func Extract(p Parser, text string, diag io.Writer) schema.Fields {
	if text == "" {
		return schema.Fields{}
	}
	entries, err := parse(p, text)
	if err != nil {
		if diag != nil {
			_, _ = fmt.Fprintf(diag, "Error parsing BibTeX: %v\n", err)
		}
		return schema.Fields{}
	}
	if len(entries) == 0 {
		return schema.Fields{}
	}
	return schema.NewFields(entries[0])
}

// parse converts a panicking backend into an error.
func parse(p Parser, text string) (entries []schema.Fields, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, fmt.Errorf("parser panic: %v", r)
		}
	}()
	return p.Parse(text)
}
