package services

import (
	"context"
	"strings"
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

type fakeMISAccountStore struct {
	byEmail map[string]*models.MISUser
	nextID  int64
}

func (f *fakeMISAccountStore) Create(ctx context.Context, user *models.MISUser) (int64, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	f.nextID++
	user.ID = f.nextID
	f.byEmail[user.Email] = user
	return f.nextID, nil
}

func (f *fakeMISAccountStore) GetByEmail(ctx context.Context, email string) (*models.MISUser, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func newMISAuthFixture() (MISAuthService, *fakeMISAccountStore) {
	users := &fakeMISAccountStore{byEmail: map[string]*models.MISUser{}}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-mis-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "unimis.mis.test",
	})
	return NewMISAuthService(users, jwtService, zerolog.Nop()), users
}

func TestMISRegister_AssignsRolePrefixedID(t *testing.T) {
	svc, users := newMISAuthFixture()

	misID, err := svc.Register(context.Background(), &dto.MISRegisterRequest{
		Email:    "rao@mis.local",
		Password: "s3cret-pass",
		Role:     models.MISRoleTeacher,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(misID, "MIS-TEACHER-"), "got %s", misID)

	user := users.byEmail["rao@mis.local"]
	require.NotNil(t, user)
	assert.Equal(t, misID, user.MISID)
	assert.Equal(t, models.MISRoleTeacher, user.Role)
}

func TestMISRegister_InvalidRole(t *testing.T) {
	svc, users := newMISAuthFixture()

	_, err := svc.Register(context.Background(), &dto.MISRegisterRequest{
		Email:    "rao@mis.local",
		Password: "s3cret-pass",
		Role:     models.MISRole("registrar"),
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, users.byEmail)
}

func TestMISRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newMISAuthFixture()
	ctx := context.Background()
	req := &dto.MISRegisterRequest{Email: "rao@mis.local", Password: "s3cret-pass", Role: models.MISRoleTeacher}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestMISLogin_CarriesRoleAndMISID(t *testing.T) {
	svc, _ := newMISAuthFixture()
	ctx := context.Background()

	misID, err := svc.Register(ctx, &dto.MISRegisterRequest{
		Email:    "rao@mis.local",
		Password: "s3cret-pass",
		Role:     models.MISRoleTeacher,
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "rao@mis.local", Password: "s3cret-pass"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "teacher", resp.Role)
	assert.Equal(t, misID, resp.MISID)
	assert.Equal(t, "rao@mis.local", resp.Email)
}

func TestMISLogin_WrongPassword(t *testing.T) {
	svc, _ := newMISAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.MISRegisterRequest{
		Email:    "rao@mis.local",
		Password: "s3cret-pass",
		Role:     models.MISRoleStudent,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "rao@mis.local", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
