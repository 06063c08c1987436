package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dtroode/socialnet-server/internal/model"
)

var _ model.DocumentBackend = (*DocumentObject)(nil)

const contentTypeJSON = "application/json"

// DocumentObject stores the document as one JSON object.
type DocumentObject struct {
	client *Client
	key    string
}

func NewDocumentObject(client *Client, key string) *DocumentObject {
	return &DocumentObject{client: client, key: key}
}

func (d *DocumentObject) Load(ctx context.Context) (model.Document, error) {
	exists, err := d.client.Exists(ctx, d.key)
	if err != nil {
		return model.Document{}, err
	}
	if !exists {
		doc := model.NewDocument()
		if err := d.Save(ctx, doc); err != nil {
			return model.Document{}, err
		}
		return doc, nil
	}

	rc, err := d.client.Download(ctx, d.key)
	if err != nil {
		return model.Document{}, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read object: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, fmt.Errorf("%w: object %s: %v", model.ErrCorruptStore, d.key, err)
	}
	doc.Normalize()

	return doc, nil
}

func (d *DocumentObject) Save(ctx context.Context, doc model.Document) error {
	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	return d.client.Upload(ctx, d.key, bytes.NewReader(data), int64(len(data)), contentTypeJSON)
}
