package citecmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bib2apa/src/internal/apa"
	"bib2apa/src/internal/bibparse"
	"bib2apa/src/internal/config"
	"bib2apa/src/internal/schema"
	"bib2apa/src/internal/stringsx"
)

// stdinIsTerminal reports whether r is an interactive terminal. Readers that
// are not files (pipes set up by tests, buffers) count as piped input.
var stdinIsTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type options struct {
	text   string
	parser string
	inText bool
	fields bool
}

// New returns the root command which prints the APA reference for the first
// BibTeX entry read from --text, a file, or piped stdin.
func New() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "bib2apa [file]",
		Short: "Print an APA reference for a BibTeX entry",
		Long: `bib2apa reads a BibTeX entry and prints it as an APA reference line.

Input is taken from --text, else the file argument, else piped stdin.
Only the first entry is used. Simple LaTeX accents (\'a, \~n, \"o) are
converted to Unicode and braces are dropped.`,
		Example: `  bib2apa refs.bib
  bib2apa -t '@article{k, author = {John Smith}, title = {A Study}, year = {2020}}'
  cat entry.bib | bib2apa --in-text`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "BibTeX entry text (takes priority over file)")
	cmd.Flags().StringVar(&opts.parser, "parser", "", fmt.Sprintf("BibTeX parser backend %v (default %q)", bibparse.Names(), bibparse.Default))
	cmd.Flags().BoolVar(&opts.inText, "in-text", false, "Print the parenthetical in-text citation instead")
	cmd.Flags().BoolVar(&opts.fields, "fields", false, "Print the extracted fields as YAML instead")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using defaults\n", err)
	}
	p, err := bibparse.New(stringsx.FirstNonEmpty(opts.parser, cfg.Parser))
	if err != nil {
		return err
	}
	inText := cfg.InText
	if cmd.Flags().Changed("in-text") {
		inText = opts.inText
	}

	text, ok, err := readInput(cmd, args, opts.text)
	if err != nil {
		return err
	}
	if !ok {
		return cmd.Help()
	}

	fields := bibparse.Extract(p, text, cmd.ErrOrStderr())
	out := cmd.OutOrStdout()
	switch {
	case opts.fields:
		return writeFields(out, fields)
	case inText:
		_, err = fmt.Fprintln(out, apa.FromFields(fields).InText())
		return err
	}
	return apa.Write(out, fields)
}

// readInput resolves the entry text. ok is false when there is nothing to
// read: no --text, no file and stdin is a terminal.
func readInput(cmd *cobra.Command, args []string, text string) (string, bool, error) {
	if text != "" {
		return text, true, nil
	}
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", false, fmt.Errorf("error reading ` %s `: %w", args[0], err)
		}
		return string(b), true, nil
	}
	in := cmd.InOrStdin()
	if stdinIsTerminal(in) {
		return "", false, nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", false, fmt.Errorf("read stdin: %w", err)
	}
	return string(b), true, nil
}

func writeFields(w io.Writer, f schema.Fields) error {
	b, err := yaml.Marshal(map[string]string(f.Normalized()))
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
