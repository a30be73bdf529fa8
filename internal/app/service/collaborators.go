package service

import (
	"context"

	"todo_expert/internal/domain/model"
)

// PasswordEncoder is a one-way credential function.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

type TokenIssuer interface {
	CreateToken(id int64, email string, role model.UserRole) (string, error)
}

type WeatherProvider interface {
	TodayWeather(ctx context.Context) (string, error)
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func userResponseOf(u *model.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{ID: u.ID, Email: u.Email}
}
