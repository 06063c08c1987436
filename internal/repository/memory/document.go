package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dtroode/socialnet-server/internal/model"
)

var _ model.DocumentBackend = (*Backend)(nil)

// Backend keeps the serialized document in process memory.
// Every Load decodes a private copy, so callers never share state.
type Backend struct {
	data []byte
	mu   sync.RWMutex
}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Load(_ context.Context) (model.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		data, err := json.Marshal(model.NewDocument())
		if err != nil {
			return model.Document{}, fmt.Errorf("failed to encode document: %w", err)
		}
		b.data = data
	}

	var doc model.Document
	if err := json.Unmarshal(b.data, &doc); err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", model.ErrCorruptStore, err)
	}
	doc.Normalize()

	return doc, nil
}

func (b *Backend) Save(_ context.Context, doc model.Document) error {
	doc.Normalize()
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	b.mu.Lock()
	b.data = data
	b.mu.Unlock()

	return nil
}

// Close drops the stored document.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = nil
	return nil
}
