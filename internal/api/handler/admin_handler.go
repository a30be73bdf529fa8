package handler

import (
	"context"
	"net/http"

	"todo_expert/internal/app/audit"
	"todo_expert/internal/app/service"
	"todo_expert/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserAdminService interface {
	ChangeUserRole(ctx context.Context, id int64, req service.UserRoleChangeRequest) error
}

type CommentAdminService interface {
	DeleteComment(ctx context.Context, id int64) error
}

// AdminHandler serves the privileged endpoints. Both operations run inside
// the audit wrapper.
type AdminHandler struct {
	users    UserAdminService
	comments CommentAdminService
	auditor  *audit.Auditor
}

func NewAdminHandler(users UserAdminService, comments CommentAdminService, auditor *audit.Auditor) *AdminHandler {
	return &AdminHandler{users: users, comments: comments, auditor: auditor}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Patch("/users/{userId}", h.changeUserRole)
	r.Delete("/comments/{commentId}", h.deleteComment)
}

func (h *AdminHandler) changeUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	var req service.UserRoleChangeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		common.RespondWithErr(w, err)
		return
	}

	err = audit.Do(r.Context(), h.auditor, req, func(ctx context.Context) error {
		return h.users.ChangeUserRole(ctx, id, req)
	})
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "commentId")
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}

	// the only argument is the id, so there is no request body to record
	err = audit.Do(r.Context(), h.auditor, nil, func(ctx context.Context) error {
		return h.comments.DeleteComment(ctx, id)
	})
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
