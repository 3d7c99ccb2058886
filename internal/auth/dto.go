package auth

import (
	"strings"

	"github.com/aditmayuda/expense-tracker/internal"
)

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (dto *LoginDTO) Validate() error {
	dto.Username = strings.TrimSpace(dto.Username)
	dto.Password = strings.TrimSpace(dto.Password)

	if dto.Username == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeValidationFailed)
	}
	if dto.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto *RefreshTokenDTO) Validate() error {
	if strings.TrimSpace(dto.RefreshToken) == "" {
		return internal.NewValidationError("refresh token is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
