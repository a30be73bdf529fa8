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

const (
	defaultPage = 1
	defaultSize = 10
)

type TodoService interface {
	SaveTodo(ctx context.Context, caller model.AuthUser, req service.TodoSaveRequest) (*service.TodoSaveResponse, error)
	GetTodos(ctx context.Context, page, size int) (common.Page[service.TodoResponse], error)
	GetTodo(ctx context.Context, id int64) (*service.TodoResponse, error)
}

type TodoHandler struct {
	todoService TodoService
}

func NewTodoHandler(todoService TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.saveTodo)
	r.Get("/", h.getTodos)
	r.Get("/{todoId}", h.getTodo)
}

func (h *TodoHandler) saveTodo(w http.ResponseWriter, r *http.Request) {
	caller, ok := reqctx.AuthUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req service.TodoSaveRequest
	if err := decodeAndValidate(r, &req); err != nil {
		common.RespondWithErr(w, err)
		return
	}

	resp, err := h.todoService.SaveTodo(r.Context(), caller, req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *TodoHandler) getTodos(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", defaultPage)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	size, err := queryInt(r, "size", defaultSize)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}

	resp, err := h.todoService.GetTodos(r.Context(), page, size)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *TodoHandler) getTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "todoId")
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}

	resp, err := h.todoService.GetTodo(r.Context(), id)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
