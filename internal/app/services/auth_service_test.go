package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/auth"
)

type fakeAdmissionsUserStore struct {
	byEmail map[string]*models.User
	nextID  int64
}

func (f *fakeAdmissionsUserStore) Create(ctx context.Context, email, passwordHash string, role models.Role) (int64, error) {
	if _, exists := f.byEmail[email]; exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	f.nextID++
	f.byEmail[email] = &models.User{ID: f.nextID, Email: email, PasswordHash: passwordHash, Role: role}
	return f.nextID, nil
}

func (f *fakeAdmissionsUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func newAuthFixture() (AuthService, *fakeAdmissionsUserStore) {
	users := &fakeAdmissionsUserStore{byEmail: map[string]*models.User{}}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "unimis.test",
	})
	return NewAuthService(users, jwtService, zerolog.Nop()), users
}

func TestRegister_CreatesApplicant(t *testing.T) {
	svc, users := newAuthFixture()

	userID, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:           "asha@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)

	user := users.byEmail["asha@example.com"]
	require.NotNil(t, user)
	assert.Equal(t, models.RoleApplicant, user.Role)
	// Stored hash must verify against the plaintext, never equal it
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "s3cret-pass"))
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, users := newAuthFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:           "asha@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "different",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, users.byEmail)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()
	req := &dto.RegisterRequest{
		Email:           "asha@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin_Valid(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:           "asha@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, string(models.RoleApplicant), resp.Role)
	assert.Equal(t, int64(1), resp.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:           "asha@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
