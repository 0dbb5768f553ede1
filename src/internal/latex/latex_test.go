package latex

import "testing"

func TestUnescape_Acute(t *testing.T) {
	cases := map[string]string{
		`\'a`: "á", `\'e`: "é", `\'i`: "í", `\'o`: "ó", `\'u`: "ú",
		`\'A`: "Á", `\'E`: "É", `\'I`: "Í", `\'O`: "Ó", `\'U`: "Ú",
		`\'n`: "ñ", `\'N`: "Ñ",
		`\'\i`: "í",
		`\'c`:  "c",
		`\'\y`: "y",
	}
	for in, want := range cases {
		if got := Unescape(in); got != want {
			t.Fatalf("Unescape(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestUnescape_OtherMacros(t *testing.T) {
	cases := []struct{ in, want string }{
		{"\\`a", "a"},
		{"\\`E", "E"},
		{`\~n`, "ñ"},
		{`\~N`, "Ñ"},
		{`\~a`, `\~a`},
		{`\"o`, "ö"},
		{`\"O`, "Ö"},
		{`\"u`, "u"},
		{`G\"odel`, "Gödel"},
		{`Mu\~noz`, "Muñoz"},
	}
	for _, c := range cases {
		if got := Unescape(c.in); got != c.want {
			t.Fatalf("Unescape(%q): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestUnescape_BracesAndWhitespace(t *testing.T) {
	in := "  {Garc{\\'i}a}\n  and\t{Smith}  "
	if got := Unescape(in); got != "García and Smith" {
		t.Fatalf("Unescape: got %q", got)
	}
	if got := Unescape(""); got != "" {
		t.Fatalf("Unescape empty: got %q", got)
	}
	if got := Unescape(`\emph{x}`); got != `\emphx` {
		t.Fatalf("unknown macro should pass through: got %q", got)
	}
}

func TestUnescape_Idempotent(t *testing.T) {
	for _, in := range []string{
		`Jos\'e {M}ar\'\ia`,
		"A  {Study}\nof \\\"Ofen",
		"plain text",
	} {
		once := Unescape(in)
		if twice := Unescape(once); twice != once {
			t.Fatalf("Unescape not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
