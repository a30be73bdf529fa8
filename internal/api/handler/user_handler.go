package handler

import (
	"context"
	"net/http"

	"todo_expert/internal/app/service"
	"todo_expert/internal/common"
	"todo_expert/internal/common/reqctx"

	"github.com/go-chi/chi/v5"
)

type UserService interface {
	GetUser(ctx context.Context, id int64) (*service.UserResponse, error)
	ChangePassword(ctx context.Context, id int64, req service.UserChangePasswordRequest) error
}

type UserHandler struct {
	userService UserService
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{userId}", h.getUser)
	r.Put("/", h.changePassword)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}

	resp, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// changePassword always targets the caller's own account.
func (h *UserHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := reqctx.AuthUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req service.UserChangePasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		common.RespondWithErr(w, err)
		return
	}

	if err := h.userService.ChangePassword(r.Context(), caller.ID, req); err != nil {
		common.RespondWithErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
