package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"todo_expert/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const (
	BearerPrefix = "Bearer "

	ClaimEmail    = "email"
	ClaimUserRole = "userRole"
)

// JWTIssuer signs HS256 tokens carrying the caller's id, email and role.
// The same JWTAuth verifies inbound tokens in the router.
type JWTIssuer struct {
	auth *jwtauth.JWTAuth
	exp  time.Duration
	now  func() time.Time
}

func NewJWTIssuer(secret []byte, exp time.Duration) *JWTIssuer {
	return &JWTIssuer{
		auth: jwtauth.New("HS256", secret, nil),
		exp:  exp,
		now:  time.Now,
	}
}

func (i *JWTIssuer) TokenAuth() *jwtauth.JWTAuth {
	return i.auth
}

// CreateToken returns the signed token with the "Bearer " prefix attached.
func (i *JWTIssuer) CreateToken(id int64, email string, role model.UserRole) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub":         strconv.FormatInt(id, 10),
		ClaimEmail:    email,
		ClaimUserRole: string(role),
		"exp":         now.Add(i.exp).Unix(),
		"iat":         now.Unix(),
	}
	_, tokenString, err := i.auth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return BearerPrefix + tokenString, nil
}

// AuthUserFromClaims rebuilds the caller from verified token claims.
func AuthUserFromClaims(claims map[string]interface{}) (model.AuthUser, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return model.AuthUser{}, errors.New("sub claim is missing or not a string")
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("sub claim is not a user id: %w", err)
	}
	email, ok := claims[ClaimEmail].(string)
	if !ok {
		return model.AuthUser{}, errors.New("email claim is missing or not a string")
	}
	roleStr, ok := claims[ClaimUserRole].(string)
	if !ok {
		return model.AuthUser{}, errors.New("userRole claim is missing or not a string")
	}
	role, err := model.ParseUserRole(roleStr)
	if err != nil {
		return model.AuthUser{}, err
	}
	return model.AuthUser{ID: id, Email: email, Role: role}, nil
}
