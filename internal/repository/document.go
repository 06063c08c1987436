package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtroode/socialnet-server/internal/logger"
	"github.com/dtroode/socialnet-server/internal/model"
)

var _ model.DocumentStore = (*DocumentStore)(nil)

// DocumentStore serializes load-mutate-save units over a DocumentBackend.
// Writers hold the lock for the whole unit so concurrent updates are never lost.
type DocumentStore struct {
	backend model.DocumentBackend
	logger  *logger.Logger
	mu      sync.RWMutex
}

func NewDocumentStore(backend model.DocumentBackend, logger *logger.Logger) *DocumentStore {
	return &DocumentStore{backend: backend, logger: logger}
}

// Init loads the document once, creating it when the backend holds none.
// A corrupt document is reported, never repaired.
func (s *DocumentStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	s.logger.Info("Document store: loaded",
		"users", len(doc.Users),
		"posts", len(doc.Posts))

	return nil
}

// View runs fn against the latest saved document.
func (s *DocumentStore) View(ctx context.Context, fn func(doc model.Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	doc.Normalize()

	return fn(doc)
}

// Update runs fn against a freshly loaded document and saves the result.
// If fn returns an error nothing is saved and the error is returned as is.
func (s *DocumentStore) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	doc.Normalize()

	if err := fn(&doc); err != nil {
		return err
	}

	if err := s.backend.Save(ctx, doc); err != nil {
		s.logger.Error("Document store: failed to save document",
			"error", err.Error())
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}
