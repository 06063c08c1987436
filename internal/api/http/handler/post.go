package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/socialnet-server/internal/apierror"
	"github.com/dtroode/socialnet-server/internal/logger"
	"github.com/dtroode/socialnet-server/internal/model"
)

// PostService defines post, like and comment operations.
type PostService interface {
	Create(ctx context.Context, author, title, content string) (model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	ListByAuthor(ctx context.Context, author string) ([]model.Post, error)
	Remove(ctx context.Context, id int64) error
	Like(ctx context.Context, id int64) (int, error)
	AddComment(ctx context.Context, id int64, author, comment string) ([]model.Comment, error)
}

var errNoUser = errors.New("no authenticated user in context")

type createPostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type postIDRequest struct {
	PostID *int64 `json:"postId"`
}

type addCommentRequest struct {
	PostID  *int64  `json:"postId"`
	Comment *string `json:"comment"`
}

type createPostResponse struct {
	Message string     `json:"message"`
	Post    model.Post `json:"post"`
}

type likePostResponse struct {
	Message string `json:"message"`
	Likes   int    `json:"likes"`
}

type addCommentResponse struct {
	Message  string          `json:"message"`
	Comments []model.Comment `json:"comments"`
}

// Post handles post endpoints.
type Post struct {
	postService    PostService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewPost(postService PostService, contextManager model.ContextManager, logger *logger.Logger) *Post {
	return &Post{
		postService:    postService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Post) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := h.contextManager.GetUsernameFromContext(r.Context())
	if !ok {
		WriteError(w, h.logger, errNoUser)
		return
	}

	var req createPostRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if req.Title == nil || req.Content == nil {
		WriteError(w, h.logger, apierror.NewErrInvalidRequest("Title and content are required"))
		return
	}

	post, err := h.postService.Create(r.Context(), username, *req.Title, *req.Content)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, createPostResponse{
		Message: "Post created successfully",
		Post:    post,
	})
}

func (h *Post) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *Post) UserPosts(w http.ResponseWriter, r *http.Request) {
	username, ok := h.contextManager.GetUsernameFromContext(r.Context())
	if !ok {
		WriteError(w, h.logger, errNoUser)
		return
	}

	posts, err := h.postService.ListByAuthor(r.Context(), username)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *Post) Remove(w http.ResponseWriter, r *http.Request) {
	var req postIDRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if req.PostID == nil {
		WriteError(w, h.logger, apierror.NewErrInvalidRequest("Post ID is required"))
		return
	}

	if err := h.postService.Remove(r.Context(), *req.PostID); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Post removed successfully")
}

func (h *Post) Like(w http.ResponseWriter, r *http.Request) {
	var req postIDRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if req.PostID == nil {
		WriteError(w, h.logger, apierror.NewErrInvalidRequest("Post ID is required"))
		return
	}

	likes, err := h.postService.Like(r.Context(), *req.PostID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, likePostResponse{
		Message: "Post liked successfully",
		Likes:   likes,
	})
}

func (h *Post) AddComment(w http.ResponseWriter, r *http.Request) {
	username, ok := h.contextManager.GetUsernameFromContext(r.Context())
	if !ok {
		WriteError(w, h.logger, errNoUser)
		return
	}

	var req addCommentRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if req.PostID == nil || req.Comment == nil {
		WriteError(w, h.logger, apierror.NewErrInvalidRequest("Post ID and comment are required"))
		return
	}

	comments, err := h.postService.AddComment(r.Context(), *req.PostID, username, *req.Comment)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, addCommentResponse{
		Message:  "Comment added successfully",
		Comments: comments,
	})
}
