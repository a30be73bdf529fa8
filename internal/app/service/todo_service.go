package service

import (
	"context"
	"fmt"
	"time"

	"todo_expert/internal/common"
	"todo_expert/internal/domain/model"
	"todo_expert/internal/domain/repository"
)

type TodoService struct {
	todoRepo repository.TodoRepository
	weather  WeatherProvider
}

func NewTodoService(todoRepo repository.TodoRepository, weather WeatherProvider) *TodoService {
	return &TodoService{todoRepo: todoRepo, weather: weather}
}

type TodoSaveRequest struct {
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

type TodoSaveResponse struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Contents string       `json:"contents"`
	Weather  string       `json:"weather"`
	User     UserResponse `json:"user"`
}

type TodoResponse struct {
	ID         int64        `json:"id"`
	Title      string       `json:"title"`
	Contents   string       `json:"contents"`
	Weather    string       `json:"weather"`
	User       UserResponse `json:"user"`
	CreatedAt  time.Time    `json:"createdAt"`
	ModifiedAt time.Time    `json:"modifiedAt"`
}

func todoResponseOf(t model.Todo) TodoResponse {
	return TodoResponse{
		ID:         t.ID,
		Title:      t.Title,
		Contents:   t.Contents,
		Weather:    t.Weather,
		User:       userResponseOf(t.User),
		CreatedAt:  t.CreatedAt,
		ModifiedAt: t.ModifiedAt,
	}
}

// SaveTodo stamps the new todo with today's weather. Provider failures are
// returned as is.
func (s *TodoService) SaveTodo(ctx context.Context, caller model.AuthUser, req TodoSaveRequest) (*TodoSaveResponse, error) {
	weather, err := s.weather.TodayWeather(ctx)
	if err != nil {
		return nil, err
	}

	owner := model.UserFromAuthUser(caller)
	saved, err := s.todoRepo.Save(ctx, model.NewTodo(req.Title, req.Contents, weather, owner))
	if err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}

	return &TodoSaveResponse{
		ID:       saved.ID,
		Title:    saved.Title,
		Contents: saved.Contents,
		Weather:  saved.Weather,
		User:     userResponseOf(owner),
	}, nil
}

// GetTodos takes a 1-based page number.
func (s *TodoService) GetTodos(ctx context.Context, page, size int) (common.Page[TodoResponse], error) {
	if page < 1 || size < 1 {
		return common.Page[TodoResponse]{}, common.ValidationError("page and size must be positive")
	}

	todos, err := s.todoRepo.FindAllOrderByModifiedDesc(ctx, common.PageRequest{Page: page - 1, Size: size})
	if err != nil {
		return common.Page[TodoResponse]{}, fmt.Errorf("failed to list todos: %w", err)
	}
	return common.MapPage(todos, todoResponseOf), nil
}

func (s *TodoService) GetTodo(ctx context.Context, id int64) (*TodoResponse, error) {
	found, err := s.todoRepo.FindByIDWithUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	todo, err := found.OrElse(common.NotFoundError("todo not found"))
	if err != nil {
		return nil, err
	}
	resp := todoResponseOf(*todo)
	return &resp, nil
}
