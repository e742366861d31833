package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/smartfind/dom"
	"golang.org/x/net/html"
)

// ReadDocuments parses the HTML files at paths. Documents are named after
// their file name.
func ReadDocuments(paths []string) ([]Document, error) {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		doc, err := ReadDocument(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ReadDocument parses the HTML file at path.
func ReadDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return Document{Name: filepath.Base(path), Root: root}, nil
}

// WriteDocuments renders every document into dir, creating it if needed.
// Files are named after the documents.
func WriteDocuments(dir string, docs []Document) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, doc := range docs {
		if doc.Root == nil {
			continue
		}
		path := filepath.Join(dir, doc.Name)
		if err := os.WriteFile(path, []byte(dom.Render(doc.Root)), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
