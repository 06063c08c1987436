package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/socialnet-server/internal/model"
)

func newMockRepository(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDocumentRepository(&Connection{DB: db}, "main"), mock
}

func TestDocumentRepository_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("existing document", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		body := `{"users":[{"username":"alice","passwordHash":"h"}],"posts":[{"id":1,"title":"hi","content":"world","author":"alice","likes":2,"comments":null}],"nextPostId":2}`
		mock.ExpectQuery(loadDocumentQuery).
			WithArgs("main").
			WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(body)))

		doc, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, doc.Users, 1)
		assert.Equal(t, "alice", doc.Users[0].Username)
		require.Len(t, doc.Posts, 1)
		assert.Equal(t, 2, doc.Posts[0].Likes)
		assert.NotNil(t, doc.Posts[0].Comments)
		assert.Equal(t, int64(2), doc.NextPostID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing document is initialized", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(loadDocumentQuery).
			WithArgs("main").
			WillReturnRows(sqlmock.NewRows([]string{"body"}))
		mock.ExpectExec(initDocumentQuery).
			WithArgs("main", `{"users":[],"posts":[]}`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		doc, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, doc.Users)
		assert.Empty(t, doc.Posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt document", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(loadDocumentQuery).
			WithArgs("main").
			WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"users":42}`)))

		_, err := repo.Load(ctx)
		require.ErrorIs(t, err, model.ErrCorruptStore)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(loadDocumentQuery).
			WithArgs("main").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Load(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load document")
		assert.NotErrorIs(t, err, model.ErrCorruptStore)
	})
}

func TestDocumentRepository_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		doc := model.NewDocument()
		doc.Users = append(doc.Users, model.User{Username: "alice", PasswordHash: "h"})

		mock.ExpectExec(saveDocumentQuery).
			WithArgs("main", `{"users":[{"username":"alice","passwordHash":"h"}],"posts":[]}`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Save(ctx, doc))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectExec(saveDocumentQuery).
			WithArgs("main", sqlmock.AnyArg()).
			WillReturnError(errors.New("read-only transaction"))

		err := repo.Save(ctx, model.NewDocument())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save document")
	})
}

func TestConnection_NilPool(t *testing.T) {
	c := &Connection{}
	assert.Error(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}
