// Package export writes analysis results as JSON documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/stream"
	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

// Document is the exported form of one analysis. Language is null when the
// stream's language was never resolved.
type Document struct {
	Video               metadata.Video       `json:"video"`
	Language            *string              `json:"language"`
	KnowledgeComponents []taxonomy.Component `json:"knowledgeComponents"`
}

// FromResult builds the document for res.
func FromResult(res stream.Result) Document {
	doc := Document{
		Video:               res.Video,
		KnowledgeComponents: []taxonomy.Component{},
	}
	if res.Resolved {
		tag := res.Language.Tag()
		doc.Language = &tag
	}
	if res.Registry != nil {
		doc.KnowledgeComponents = res.Registry.Components()
	}
	return doc
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// FileName is the file a document is saved under.
func FileName(v metadata.Video) string {
	return metadata.Slug(v.Title) + ".json"
}

// Save writes doc into dir, creating it if needed, and returns the path.
func Save(dir string, doc Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(doc.Video))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, doc); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// Load reads a document written by Save.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
