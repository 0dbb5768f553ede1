package bibparse

import (
	"fmt"
	"strings"

	"bib2apa/src/internal/schema"
)

// builtinParser is a small dependency-free reader for `@type{key, f = v}`
// records. Values may be brace-delimited (nesting allowed), quoted or bare,
// joined with #. Bare names expand @string definitions and the standard
// month macros; unknown names are kept as written. @comment and @preamble
// blocks are skipped.
type builtinParser struct{}

var months = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

func (builtinParser) Parse(text string) ([]schema.Fields, error) {
	sc := &scanner{s: text, macros: make(map[string]string, len(months))}
	for k, v := range months {
		sc.macros[k] = v
	}
	var out []schema.Fields
	for {
		sc.skipSpace()
		if sc.eof() {
			return out, nil
		}
		if sc.peek() != '@' {
			sc.i++
			continue
		}
		sc.i++
		sc.skipSpace()
		typ := strings.ToLower(sc.ident())
		sc.skipSpace()
		if sc.eof() || (sc.peek() != '{' && sc.peek() != '(') {
			return nil, sc.errorf("expected '{' after @%s", typ)
		}
		switch typ {
		case "comment", "preamble":
			if err := sc.skipBlock(); err != nil {
				return nil, err
			}
			continue
		case "string":
			if err := sc.define(); err != nil {
				return nil, err
			}
			continue
		}
		sc.i++
		fields, err := sc.record()
		if err != nil {
			return nil, err
		}
		out = append(out, fields)
	}
}

type scanner struct {
	s      string
	i      int
	macros map[string]string
}

func (sc *scanner) eof() bool  { return sc.i >= len(sc.s) }
func (sc *scanner) peek() byte { return sc.s[sc.i] }

func (sc *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("invalid bib at offset %d: %s", sc.i, fmt.Sprintf(format, args...))
}

// skipSpace skips whitespace and % line comments.
func (sc *scanner) skipSpace() {
	for !sc.eof() {
		switch c := sc.peek(); {
		case c == '%':
			for !sc.eof() && sc.peek() != '\n' {
				sc.i++
			}
		case strings.IndexByte(" \t\r\n", c) >= 0:
			sc.i++
		default:
			return
		}
	}
}

func (sc *scanner) ident() string {
	start := sc.i
	for !sc.eof() {
		c := sc.peek()
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || c == '_' || c == '-' {
			sc.i++
			continue
		}
		break
	}
	return sc.s[start:sc.i]
}

// skipBlock consumes a balanced {...} or (...) block starting at the opener.
func (sc *scanner) skipBlock() error {
	open := sc.peek()
	closer := byte('}')
	if open == '(' {
		closer = ')'
	}
	depth := 0
	for !sc.eof() {
		switch sc.peek() {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				sc.i++
				return nil
			}
		}
		sc.i++
	}
	return sc.errorf("unterminated block")
}

// record reads `key, name = value, ...` up to the closing delimiter.
func (sc *scanner) record() (schema.Fields, error) {
	start := sc.i
	for !sc.eof() && sc.peek() != ',' {
		sc.i++
	}
	if sc.eof() {
		return nil, sc.errorf("missing comma after key %q", strings.TrimSpace(sc.s[start:]))
	}
	sc.i++
	fields := schema.Fields{}
	for {
		sc.skipSpace()
		if sc.eof() {
			return nil, sc.errorf("unexpected EOF in fields")
		}
		if c := sc.peek(); c == '}' || c == ')' {
			sc.i++
			return fields, nil
		}
		name := sc.ident()
		if name == "" {
			return nil, sc.errorf("expected field name")
		}
		sc.skipSpace()
		if sc.eof() || sc.peek() != '=' {
			return nil, sc.errorf("expected '=' after field %s", name)
		}
		sc.i++
		sc.skipSpace()
		val, err := sc.value()
		if err != nil {
			return nil, err
		}
		fields[name] = val
		sc.skipSpace()
		if !sc.eof() && sc.peek() == ',' {
			sc.i++
		}
	}
}

// define reads the body of @string{name = value}, opener included.
func (sc *scanner) define() error {
	closer := byte('}')
	if sc.peek() == '(' {
		closer = ')'
	}
	sc.i++
	sc.skipSpace()
	name := sc.ident()
	sc.skipSpace()
	if name == "" || sc.eof() || sc.peek() != '=' {
		return sc.errorf("expected name = value in @string")
	}
	sc.i++
	val, err := sc.value()
	if err != nil {
		return err
	}
	sc.skipSpace()
	if sc.eof() || sc.peek() != closer {
		return sc.errorf("unterminated @string %s", name)
	}
	sc.i++
	sc.macros[strings.ToLower(name)] = val
	return nil
}

// value reads one or more parts joined by #.
func (sc *scanner) value() (string, error) {
	var b strings.Builder
	for {
		sc.skipSpace()
		if sc.eof() {
			return "", sc.errorf("missing value")
		}
		part, err := sc.part()
		if err != nil {
			return "", err
		}
		b.WriteString(part)
		sc.skipSpace()
		if sc.eof() || sc.peek() != '#' {
			return b.String(), nil
		}
		sc.i++
	}
}

func (sc *scanner) part() (string, error) {
	switch sc.peek() {
	case '{':
		return sc.delimited('{', '}')
	case '"':
		return sc.delimited('"', '"')
	}
	start := sc.i
	for !sc.eof() && strings.IndexByte(",})# \t\r\n", sc.peek()) < 0 {
		sc.i++
	}
	word := sc.s[start:sc.i]
	if v, ok := sc.macros[strings.ToLower(word)]; ok {
		return v, nil
	}
	return word, nil
}

// delimited reads a value between open and closer, honouring nested braces
// and backslash escapes, and returns it without the outer delimiters.
func (sc *scanner) delimited(open, closer byte) (string, error) {
	sc.i++
	start := sc.i
	depth := 0
	for !sc.eof() {
		c := sc.peek()
		switch {
		case c == '\\':
			sc.i += 2
			continue
		case c == closer && depth == 0:
			v := sc.s[start:sc.i]
			sc.i++
			return v, nil
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
		sc.i++
	}
	return "", sc.errorf("unterminated %c value", open)
}
