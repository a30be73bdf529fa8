package service

import (
	"context"
	"fmt"

	"todo_expert/internal/common"
	"todo_expert/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	encoder  PasswordEncoder
}

func NewUserService(userRepo repository.UserRepository, encoder PasswordEncoder) *UserService {
	return &UserService{userRepo: userRepo, encoder: encoder}
}

type UserChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	found, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user, err := found.OrElse(common.NotFoundError("user not found"))
	if err != nil {
		return nil, err
	}
	resp := userResponseOf(user)
	return &resp, nil
}

// ChangePassword requires the current password and rejects reusing it.
func (s *UserService) ChangePassword(ctx context.Context, id int64, req UserChangePasswordRequest) error {
	found, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	user, err := found.OrElse(common.NotFoundError("user not found"))
	if err != nil {
		return err
	}

	if req.NewPassword == req.OldPassword {
		return common.ValidationError("new password must differ from the old password")
	}
	if !s.encoder.Matches(req.OldPassword, user.Password) {
		return common.ValidationError("wrong password")
	}

	encoded, err := s.encoder.Encode(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to encode password: %w", err)
	}
	user.Password = encoded
	if _, err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
