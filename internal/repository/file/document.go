package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dtroode/socialnet-server/internal/model"
)

var _ model.DocumentBackend = (*Backend)(nil)

// Backend persists the document as one pretty-printed JSON file.
type Backend struct {
	path string
}

func New(path string) *Backend {
	return &Backend{path: path}
}

// Load reads the whole file. A missing file is created with an empty document;
// a present but malformed file yields model.ErrCorruptStore and is left untouched.
func (b *Backend) Load(ctx context.Context) (model.Document, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := model.NewDocument()
		if err := b.Save(ctx, doc); err != nil {
			return model.Document{}, fmt.Errorf("failed to initialize store file: %w", err)
		}
		return doc, nil
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read store file: %w", err)
	}

	var doc model.Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return model.Document{}, fmt.Errorf("%w: %s: %v", model.ErrCorruptStore, b.path, err)
	}
	if dec.More() {
		return model.Document{}, fmt.Errorf("%w: %s: trailing data", model.ErrCorruptStore, b.path)
	}
	doc.Normalize()

	return doc, nil
}

// Save rewrites the whole file through a temp file and an atomic rename.
func (b *Backend) Save(_ context.Context, doc model.Document) error {
	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}

// Path returns the backing file path.
func (b *Backend) Path() string {
	return b.path
}
