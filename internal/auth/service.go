package auth

import (
	"log/slog"

	"github.com/aditmayuda/expense-tracker/internal"
)

type Service struct {
	authenticator Authenticator
	tokens        TokenGeneratorAPI
	logger        *slog.Logger
}

func NewService(authenticator Authenticator, tokens TokenGeneratorAPI, logger *slog.Logger) *Service {
	return &Service{
		authenticator: authenticator,
		tokens:        tokens,
		logger:        logger,
	}
}

// Login validates credentials against the user service and issues a token
// pair. Credential failures surface as internal.ErrInvalidCredentials only.
func (s *Service) Login(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	u, err := s.authenticator.Authenticate(dto.Username, dto.Password)
	if err != nil {
		return AuthTokens{}, err
	}

	accessToken, err := s.tokens.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		s.logger.Error("login: access token generation failed", "error", err)
		return AuthTokens{}, internal.NewInternalError("failed to issue tokens", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(u.ID, u.Username)
	if err != nil {
		s.logger.Error("login: refresh token generation failed", "error", err)
		return AuthTokens{}, internal.NewInternalError("failed to issue tokens", err)
	}

	s.logger.Info("user logged in", "user_id", u.ID)
	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) Refresh(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	accessToken, err := s.tokens.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		s.logger.Error("refresh: access token generation failed", "error", err)
		return AuthTokens{}, internal.NewInternalError("failed to issue tokens", err)
	}
	newRefreshToken, err := s.tokens.GenerateRefreshToken(claims.UserID, claims.Username)
	if err != nil {
		s.logger.Error("refresh: refresh token generation failed", "error", err)
		return AuthTokens{}, internal.NewInternalError("failed to issue tokens", err)
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}
