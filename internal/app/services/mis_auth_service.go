package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/auth"
)

// MISUserStore is the slice of the MIS user repository the MIS auth service
// needs.
type MISUserStore interface {
	Create(ctx context.Context, user *models.MISUser) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.MISUser, error)
}

// MISAuthService handles MIS-portal registration and login.
type MISAuthService interface {
	Register(ctx context.Context, req *dto.MISRegisterRequest) (string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.MISLoginResponse, error)
}

type misAuthService struct {
	users      MISUserStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewMISAuthService creates a new MISAuthService
func NewMISAuthService(users MISUserStore, jwtService *auth.JWTService, logger zerolog.Logger) MISAuthService {
	return &misAuthService{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates an MIS account for one of the portal roles. Student
// accounts normally arrive through the migration job; this registration path
// covers staff onboarding.
func (s *misAuthService) Register(ctx context.Context, req *dto.MISRegisterRequest) (string, error) {
	if !models.ValidMISRole(req.Role) {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed, "Role must be admin, teacher or student")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return "", err
	}

	misID := fmt.Sprintf("MIS-%s-%s", strings.ToUpper(string(req.Role)), uuid.NewString()[:8])

	_, err = s.users.Create(ctx, &models.MISUser{
		MISID:        misID,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return "", apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "An account with this email already exists")
		}
		return "", err
	}

	s.logger.Info().Str("misId", misID).Str("role", string(req.Role)).Msg("MIS user registered")
	return misID, nil
}

// Login verifies credentials and issues an MIS-realm token carrying the
// user's role and MIS id.
func (s *misAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.MISLoginResponse, error) {
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

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role), user.MISID)
	if err != nil {
		s.logger.Error().Err(err).Str("misId", user.MISID).Msg("Failed to generate token")
		return nil, err
	}

	return &dto.MISLoginResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresIn: expiresIn,
		Role:      string(user.Role),
		MISID:     user.MISID,
		Email:     user.Email,
	}, nil
}
