package handler

import (
	"context"
	"net/http"

	"todo_expert/internal/app/service"
	"todo_expert/internal/common"
	"todo_expert/internal/common/reqctx"
	"todo_expert/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type CommentService interface {
	SaveComment(ctx context.Context, caller model.AuthUser, todoID int64, req service.CommentSaveRequest) (*service.CommentSaveResponse, error)
	GetComments(ctx context.Context, todoID int64) ([]service.CommentResponse, error)
}

type CommentHandler struct {
	commentService CommentService
}

func NewCommentHandler(commentService CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes expects to be mounted under /todos.
func (h *CommentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/{todoId}/comments", h.saveComment)
	r.Get("/{todoId}/comments", h.getComments)
}

func (h *CommentHandler) saveComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := reqctx.AuthUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	todoID, err := pathID(r, "todoId")
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}

	var req service.CommentSaveRequest
	if err := decodeAndValidate(r, &req); err != nil {
		common.RespondWithErr(w, err)
		return
	}

	resp, err := h.commentService.SaveComment(r.Context(), caller, todoID, req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *CommentHandler) getComments(w http.ResponseWriter, r *http.Request) {
	todoID, err := pathID(r, "todoId")
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}

	resp, err := h.commentService.GetComments(r.Context(), todoID)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
