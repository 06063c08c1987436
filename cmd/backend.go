package main

import (
	"context"
	"fmt"

	"github.com/dtroode/socialnet-server/internal/config"
	"github.com/dtroode/socialnet-server/internal/model"
	"github.com/dtroode/socialnet-server/internal/repository/file"
	"github.com/dtroode/socialnet-server/internal/repository/memory"
	"github.com/dtroode/socialnet-server/internal/repository/postgres"
	storage "github.com/dtroode/socialnet-server/internal/storage/minio"
)

const (
	backendFile     = "file"
	backendMemory   = "memory"
	backendPostgres = "postgres"
	backendMinio    = "minio"
)

// newBackend opens the document backend named by cfg.Store.Backend.
// The returned func releases whatever the backend holds open.
func newBackend(ctx context.Context, cfg *config.Config) (model.DocumentBackend, func(), error) {
	switch cfg.Store.Backend {
	case backendFile:
		return file.New(cfg.Store.FilePath), func() {}, nil

	case backendMemory:
		b := memory.New()
		return b, func() { _ = b.Close() }, nil

	case backendPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewDocumentRepository(db, cfg.Database.DocumentID), func() { _ = db.Close() }, nil

	case backendMinio:
		client, err := storage.NewClient(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, nil, err
		}
		return storage.NewDocumentObject(client, cfg.Storage.ObjectKey), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
