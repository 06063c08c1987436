package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dtroode/socialnet-server/internal/model"
)

var _ model.DocumentBackend = (*DocumentRepository)(nil)

const (
	loadDocumentQuery = `SELECT body FROM documents WHERE id = $1`
	initDocumentQuery = `INSERT INTO documents (id, body) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`
	saveDocumentQuery = `INSERT INTO documents (id, body, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`
)

// DocumentRepository keeps the whole document in a single JSONB row.
type DocumentRepository struct {
	db *Connection
	id string
}

func NewDocumentRepository(db *Connection, id string) *DocumentRepository {
	return &DocumentRepository{db: db, id: id}
}

func (r *DocumentRepository) Load(ctx context.Context) (model.Document, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx, loadDocumentQuery, r.id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return r.init(ctx)
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to load document: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return model.Document{}, fmt.Errorf("%w: document %s: %v", model.ErrCorruptStore, r.id, err)
	}
	doc.Normalize()

	return doc, nil
}

func (r *DocumentRepository) Save(ctx context.Context, doc model.Document) error {
	doc.Normalize()
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, saveDocumentQuery, r.id, string(body)); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

func (r *DocumentRepository) init(ctx context.Context) (model.Document, error) {
	doc := model.NewDocument()
	body, err := json.Marshal(doc)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to encode document: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, initDocumentQuery, r.id, string(body)); err != nil {
		return model.Document{}, fmt.Errorf("failed to initialize document: %w", err)
	}

	return doc, nil
}
