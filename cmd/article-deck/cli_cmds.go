package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/asheshgoplani/article-deck/internal/article"
	"github.com/asheshgoplani/article-deck/internal/config"
)

// handleInit writes the example config file.
func handleInit() {
	path, err := config.WriteExample()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Wrote %s\n", path)
}

// handleOptions prints every parameter, or the one named, with its allowed
// values.
func handleOptions(args []string) {
	fs := flag.NewFlagSet("options", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output as JSON")
	fs.Usage = func() {
		fmt.Println("Usage: article-deck options [--json] [parameter]")
		fmt.Println()
		fmt.Println("List the article parameters, their values and the defaults.")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	fields, err := selectFields(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		err = writeOptionsJSON(os.Stdout, fields)
	} else {
		err = writeOptionsTable(os.Stdout, fields)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// selectFields maps parameter names to fields; no names means all of them.
func selectFields(names []string) ([]article.Field, error) {
	if len(names) == 0 {
		return article.Fields, nil
	}
	fields := make([]article.Field, 0, len(names))
	for _, name := range names {
		f, err := article.ParseField(name)
		if err != nil {
			return nil, fmt.Errorf("%w (want one of %s)", err, fieldList())
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func fieldList() string {
	names := make([]string, len(article.Fields))
	for i, f := range article.Fields {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

type optionJSON struct {
	Value     string `json:"value"`
	Label     string `json:"label"`
	ClassName string `json:"class_name"`
	Default   bool   `json:"default,omitempty"`
}

type fieldJSON struct {
	Field   string       `json:"field"`
	Options []optionJSON `json:"options"`
}

func writeOptionsJSON(w io.Writer, fields []article.Field) error {
	out := make([]fieldJSON, 0, len(fields))
	for _, f := range fields {
		def := article.DefaultSettings.Get(f)
		fj := fieldJSON{Field: f.String()}
		for _, opt := range article.Options(f) {
			fj.Options = append(fj.Options, optionJSON{
				Value:     opt.Value,
				Label:     opt.Label,
				ClassName: opt.ClassName,
				Default:   opt.Is(def),
			})
		}
		out = append(out, fj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeOptionsTable prints one row per parameter; the default value is
// marked with an asterisk.
func writeOptionsTable(w io.Writer, fields []article.Field) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tVALUES")
	for _, f := range fields {
		def := article.DefaultSettings.Get(f)
		var values []string
		for _, opt := range article.Options(f) {
			v := opt.Value
			if opt.Is(def) {
				v += "*"
			}
			values = append(values, v)
		}
		fmt.Fprintf(tw, "%s\t%s\n", f, strings.Join(values, ", "))
	}
	return tw.Flush()
}

// handleResolve prints the settings that result from applying
// parameter=value pairs to the defaults.
func handleResolve(args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println("Usage: article-deck resolve [parameter=value ...]")
		fmt.Println()
		fmt.Println("Show the class names and colors the article gets for the given parameters.")
		fmt.Println("Example: article-deck resolve fontSize=38 backgroundColor=dark")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	s, err := resolveSettings(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := writeSettingsTable(os.Stdout, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func resolveSettings(pairs []string) (article.Settings, error) {
	s := article.DefaultSettings
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return s, fmt.Errorf("expected parameter=value, got %q", pair)
		}
		var err error
		if s, err = s.Set(name, value); err != nil {
			return s, err
		}
	}
	return s, s.Valid()
}

func writeSettingsTable(w io.Writer, s article.Settings) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tVALUE\tCLASS\tCOLOR")
	for _, f := range article.Fields {
		opt := s.Get(f)
		hex := article.ColorHex(opt.Value)
		if hex == "" {
			hex = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f, opt.Label, opt.ClassName, hex)
	}
	return tw.Flush()
}
