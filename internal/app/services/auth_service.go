package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/auth"
)

// AdmissionsUserStore is the slice of the user repository the auth service
// needs. The concrete repository satisfies it; tests use in-memory fakes.
type AdmissionsUserStore interface {
	Create(ctx context.Context, email, passwordHash string, role models.Role) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService handles admissions-portal registration and login.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (int64, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	users      AdmissionsUserStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users AdmissionsUserStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates an applicant account with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (int64, error) {
	if req.Password != req.ConfirmPassword {
		return 0, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Passwords do not match")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return 0, err
	}

	userID, err := s.users.Create(ctx, req.Email, hash, models.RoleApplicant)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return 0, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "An account with this email already exists")
		}
		return 0, err
	}

	s.logger.Info().Int64("userId", userID).Str("email", req.Email).Msg("Applicant registered")
	return userID, nil
}

// Login verifies credentials and issues an admissions-realm token.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, "No account found for this email")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role), "")
	if err != nil {
		s.logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to generate token")
		return nil, err
	}

	return &dto.LoginResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresIn: expiresIn,
		UserID:    user.ID,
		Role:      string(user.Role),
	}, nil
}
