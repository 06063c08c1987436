package service

import (
	"context"
	"fmt"

	"github.com/dtroode/socialnet-server/internal/apierror"
	"github.com/dtroode/socialnet-server/internal/logger"
	"github.com/dtroode/socialnet-server/internal/model"
)

// Post manages posts, likes and comments.
// Any authenticated user may mutate any post.
type Post struct {
	store  model.DocumentStore
	logger *logger.Logger
}

func NewPost(store model.DocumentStore, logger *logger.Logger) *Post {
	return &Post{store: store, logger: logger}
}

func (p *Post) Create(ctx context.Context, author, title, content string) (model.Post, error) {
	var post model.Post
	err := p.store.Update(ctx, func(doc *model.Document) error {
		post = model.Post{
			ID:       doc.AllocatePostID(),
			Title:    title,
			Content:  content,
			Author:   author,
			Comments: []model.Comment{},
		}
		doc.Posts = append(doc.Posts, post)
		return nil
	})
	if err != nil {
		p.logger.Error("Post service: failed to create post",
			"author", author,
			"error", err.Error())
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	p.logger.Info("Post service: post created",
		"postId", post.ID,
		"author", author)

	return post, nil
}

func (p *Post) List(ctx context.Context) ([]model.Post, error) {
	return p.list(ctx, func(model.Post) bool { return true })
}

func (p *Post) ListByAuthor(ctx context.Context, author string) ([]model.Post, error) {
	return p.list(ctx, func(post model.Post) bool { return post.Author == author })
}

func (p *Post) list(ctx context.Context, keep func(model.Post) bool) ([]model.Post, error) {
	posts := []model.Post{}
	err := p.store.View(ctx, func(doc model.Document) error {
		for _, post := range doc.Posts {
			if keep(post) {
				posts = append(posts, post)
			}
		}
		return nil
	})
	if err != nil {
		p.logger.Error("Post service: failed to list posts",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (p *Post) Remove(ctx context.Context, id int64) error {
	err := p.store.Update(ctx, func(doc *model.Document) error {
		i := doc.FindPost(id)
		if i < 0 {
			return apierror.NewErrPostNotFound(id)
		}
		doc.Posts = append(doc.Posts[:i], doc.Posts[i+1:]...)
		return nil
	})
	if err != nil {
		return p.wrap(err, "failed to remove post", id)
	}

	p.logger.Info("Post service: post removed",
		"postId", id)

	return nil
}

// Like increments the like counter and returns the new value.
func (p *Post) Like(ctx context.Context, id int64) (int, error) {
	var likes int
	err := p.store.Update(ctx, func(doc *model.Document) error {
		i := doc.FindPost(id)
		if i < 0 {
			return apierror.NewErrPostNotFound(id)
		}
		doc.Posts[i].Likes++
		likes = doc.Posts[i].Likes
		return nil
	})
	if err != nil {
		return 0, p.wrap(err, "failed to like post", id)
	}

	p.logger.Debug("Post service: post liked",
		"postId", id,
		"likes", likes)

	return likes, nil
}

// AddComment appends a comment and returns the post's full comment list.
func (p *Post) AddComment(ctx context.Context, id int64, author, comment string) ([]model.Comment, error) {
	var comments []model.Comment
	err := p.store.Update(ctx, func(doc *model.Document) error {
		i := doc.FindPost(id)
		if i < 0 {
			return apierror.NewErrPostNotFound(id)
		}
		doc.Posts[i].Comments = append(doc.Posts[i].Comments, model.Comment{Comment: comment, Author: author})
		comments = doc.Posts[i].Comments
		return nil
	})
	if err != nil {
		return nil, p.wrap(err, "failed to add comment", id)
	}

	p.logger.Debug("Post service: comment added",
		"postId", id,
		"author", author)

	return comments, nil
}

func (p *Post) wrap(err error, msg string, id int64) error {
	if _, ok := apierror.As(err); ok {
		p.logger.Info("Post service: post not found",
			"postId", id)
		return err
	}

	p.logger.Error("Post service: "+msg,
		"postId", id,
		"error", err.Error())
	return fmt.Errorf("%s: %w", msg, err)
}
