package service

import (
	"context"
	"errors"
	"fmt"

	"todo_expert/internal/common"
	"todo_expert/internal/domain/model"
	"todo_expert/internal/domain/repository"
	"todo_expert/internal/platform/logging"
)

type AuthService struct {
	userRepo repository.UserRepository
	encoder  PasswordEncoder
	tokens   TokenIssuer
	logger   logging.Logger
}

func NewAuthService(userRepo repository.UserRepository, encoder PasswordEncoder, tokens TokenIssuer, logger logging.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, encoder: encoder, tokens: tokens, logger: logger}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserRole string `json:"userRole" validate:"required"`
}

type SignupResponse struct {
	BearerToken string `json:"bearerToken"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SigninResponse struct {
	BearerToken string `json:"bearerToken"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, common.ValidationError("email already exists")
	}

	role, err := model.ParseUserRole(req.UserRole)
	if err != nil {
		return nil, err
	}

	encoded, err := s.encoder.Encode(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to encode password: %w", err)
	}

	saved, err := s.userRepo.Save(ctx, &model.User{Email: req.Email, Password: encoded, Role: role})
	if err != nil {
		// lost the race against a concurrent signup with the same email
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ValidationError("email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.CreateToken(saved.ID, saved.Email, saved.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user signed up", "userId", saved.ID, "userRole", saved.Role)
	return &SignupResponse{BearerToken: token}, nil
}

func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (*SigninResponse, error) {
	found, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user, err := found.OrElse(common.NotFoundError("user not registered"))
	if err != nil {
		return nil, err
	}

	if !s.encoder.Matches(req.Password, user.Password) {
		return nil, common.AuthenticationError("wrong password")
	}

	token, err := s.tokens.CreateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &SigninResponse{BearerToken: token}, nil
}
