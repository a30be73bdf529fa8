package api

import (
	"net/http"
	"time"

	"todo_expert/internal/api/handler"
	"todo_expert/internal/api/middleware"
	"todo_expert/internal/app/audit"
	"todo_expert/internal/platform/logging"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

type Services struct {
	Auth         handler.AuthService
	Users        handler.UserService
	UserAdmin    handler.UserAdminService
	Todos        handler.TodoService
	Comments     handler.CommentService
	CommentAdmin handler.CommentAdminService
}

type RouterConfig struct {
	TokenAuth       *jwtauth.JWTAuth
	Logger          logging.Logger
	AdminPathPrefix string
}

func NewRouter(cfg RouterConfig, svc Services) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Searches "Authorization: Bearer T" and puts the verified token in context.
	r.Use(jwtauth.Verifier(cfg.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/auth", handler.NewAuthHandler(svc.Auth).RegisterRoutes)

	accessLogger := middleware.NewAdminAccessLogger(cfg.Logger, cfg.AdminPathPrefix)
	auditor := audit.NewAuditor(cfg.Logger)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Use(middleware.AdminPathGuard(cfg.AdminPathPrefix))
		authed.Use(accessLogger.Handler)

		authed.Route("/users", handler.NewUserHandler(svc.Users).RegisterRoutes)

		todoHandler := handler.NewTodoHandler(svc.Todos)
		commentHandler := handler.NewCommentHandler(svc.Comments)
		authed.Route("/todos", func(todos chi.Router) {
			todoHandler.RegisterRoutes(todos)
			commentHandler.RegisterRoutes(todos)
		})

		adminHandler := handler.NewAdminHandler(svc.UserAdmin, svc.CommentAdmin, auditor)
		authed.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			adminHandler.RegisterRoutes(admin)
		})
	})

	return r
}
