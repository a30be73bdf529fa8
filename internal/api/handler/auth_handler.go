package handler

import (
	"context"
	"net/http"

	"todo_expert/internal/app/service"
	"todo_expert/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthService interface {
	Signup(ctx context.Context, req service.SignupRequest) (*service.SignupResponse, error)
	Signin(ctx context.Context, req service.SigninRequest) (*service.SigninResponse, error)
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/signin", h.signin)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		common.RespondWithErr(w, err)
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) signin(w http.ResponseWriter, r *http.Request) {
	var req service.SigninRequest
	if err := decodeAndValidate(r, &req); err != nil {
		common.RespondWithErr(w, err)
		return
	}

	resp, err := h.authService.Signin(r.Context(), req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
