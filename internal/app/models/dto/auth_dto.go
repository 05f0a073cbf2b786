package dto

import "github.com/coeptech/unimis/internal/app/models"

// RegisterRequest represents an admissions-portal registration request.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// LoginRequest represents login credentials for either portal.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful admissions login.
type LoginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	UserID    int64  `json:"userId"`
	Role      string `json:"role"`
}

// ProfileResponse echoes the identity decoded from a bearer token.
type ProfileResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	MISID string `json:"mis_id,omitempty"`
}

// MISRegisterRequest represents an MIS-portal registration request.
type MISRegisterRequest struct {
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=8"`
	Role     models.MISRole `json:"role" binding:"required"`
}

// MISLoginResponse represents a successful MIS login.
type MISLoginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	Role      string `json:"role"`
	MISID     string `json:"mis_id"`
	Email     string `json:"email"`
}
