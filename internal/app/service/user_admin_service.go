package service

import (
	"context"
	"fmt"

	"todo_expert/internal/common"
	"todo_expert/internal/domain/model"
	"todo_expert/internal/domain/repository"
)

type UserAdminService struct {
	userRepo repository.UserRepository
}

func NewUserAdminService(userRepo repository.UserRepository) *UserAdminService {
	return &UserAdminService{userRepo: userRepo}
}

type UserRoleChangeRequest struct {
	Role string `json:"role" validate:"required"`
}

func (s *UserAdminService) ChangeUserRole(ctx context.Context, id int64, req UserRoleChangeRequest) error {
	found, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	user, err := found.OrElse(common.NotFoundError("user not found"))
	if err != nil {
		return err
	}

	role, err := model.ParseUserRole(req.Role)
	if err != nil {
		return err
	}

	user.Role = role
	if _, err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
