package article

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed builtin.txt
var builtinText string

// Document is a plain text article: a title followed by paragraphs.
type Document struct {
	Title      string
	Paragraphs []string
}

// Builtin returns the article shown when no file is configured.
func Builtin() Document {
	return Parse(builtinText)
}

// Parse splits text into a document. The first non-empty line is the title;
// paragraphs are separated by blank lines and their inner line breaks are
// joined with spaces.
func Parse(text string) Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var doc Document
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		doc.Paragraphs = append(doc.Paragraphs, strings.Join(current, " "))
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if doc.Title == "" {
			if line != "" {
				doc.Title = line
			}
			continue
		}
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return doc
}

// LoadFile reads and parses an article file.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read article: %w", err)
	}
	doc := Parse(string(data))
	if doc.Title == "" {
		return Document{}, fmt.Errorf("article %s is empty", path)
	}
	return doc, nil
}

// Open loads the article at path, expanding a leading "~". An empty path
// yields the built-in article. When the file cannot be loaded the built-in
// article is returned together with the error.
func Open(path string) (Document, error) {
	if path == "" {
		return Builtin(), nil
	}
	doc, err := LoadFile(ExpandHome(path))
	if err != nil {
		return Builtin(), err
	}
	return doc, nil
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
