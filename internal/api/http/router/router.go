package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/socialnet-server/internal/api/http/handler"
	"github.com/dtroode/socialnet-server/internal/api/http/middleware"
	"github.com/dtroode/socialnet-server/internal/logger"
	"github.com/dtroode/socialnet-server/internal/model"
)

// AuthService is what the router needs from the auth layer: the handler
// operations plus token resolution for the middleware.
type AuthService interface {
	handler.AuthService
	middleware.Authenticator
}

// Router wires HTTP handlers and middleware.
type Router struct {
	authService      AuthService
	postService      handler.PostService
	contextManager   model.ContextManager
	logger           *logger.Logger
	legacyAuthStatus bool
}

func New(
	authService AuthService,
	postService handler.PostService,
	contextManager model.ContextManager,
	logger *logger.Logger,
	legacyAuthStatus bool,
) *Router {
	return &Router{
		authService:      authService,
		postService:      postService,
		contextManager:   contextManager,
		logger:           logger,
		legacyAuthStatus: legacyAuthStatus,
	}
}

// Register builds the handler tree. Every endpoint is POST.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger, r.legacyAuthStatus)

	authHandler := handler.NewAuth(r.authService, r.logger)
	postHandler := handler.NewPost(r.postService, r.contextManager, r.logger)
	socialHandler := handler.NewSocial(r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(logging.Handle)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	mux.Post("/register", authHandler.Register)
	mux.Post("/login", authHandler.Login)
	mux.Post("/posts", postHandler.List)

	mux.Group(func(mux chi.Router) {
		mux.Use(authenticate.Handle)

		mux.Post("/accounts", authHandler.Accounts)

		mux.Post("/createPost", postHandler.Create)
		mux.Post("/userPosts", postHandler.UserPosts)
		mux.Post("/removePost", postHandler.Remove)
		mux.Post("/likePost", postHandler.Like)
		mux.Post("/addComment", postHandler.AddComment)

		mux.Post("/request", socialHandler.Request)
		mux.Post("/pendingRequests", socialHandler.PendingRequests)
		mux.Post("/acceptRequest", socialHandler.AcceptRequest)
		mux.Post("/updatePrivacySettings", socialHandler.UpdatePrivacySettings)
	})

	return mux
}
