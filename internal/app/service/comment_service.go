package service

import (
	"context"
	"fmt"

	"todo_expert/internal/common"
	"todo_expert/internal/domain/model"
	"todo_expert/internal/domain/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	todoRepo    repository.TodoRepository
}

func NewCommentService(commentRepo repository.CommentRepository, todoRepo repository.TodoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, todoRepo: todoRepo}
}

type CommentSaveRequest struct {
	Contents string `json:"contents" validate:"required"`
}

type CommentSaveResponse struct {
	ID       int64        `json:"id"`
	Contents string       `json:"contents"`
	User     UserResponse `json:"user"`
}

type CommentResponse struct {
	ID       int64        `json:"id"`
	Contents string       `json:"contents"`
	User     UserResponse `json:"user"`
}

func (s *CommentService) SaveComment(ctx context.Context, caller model.AuthUser, todoID int64, req CommentSaveRequest) (*CommentSaveResponse, error) {
	found, err := s.todoRepo.FindByID(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	if !found.IsPresent() {
		return nil, common.NotFoundError("todo not found")
	}

	author := model.UserFromAuthUser(caller)
	saved, err := s.commentRepo.Save(ctx, &model.Comment{Contents: req.Contents, TodoID: todoID, User: author})
	if err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return &CommentSaveResponse{ID: saved.ID, Contents: saved.Contents, User: userResponseOf(author)}, nil
}

func (s *CommentService) GetComments(ctx context.Context, todoID int64) ([]CommentResponse, error) {
	comments, err := s.commentRepo.FindByTodoIDWithUser(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentResponse{ID: c.ID, Contents: c.Contents, User: userResponseOf(c.User)})
	}
	return out, nil
}
