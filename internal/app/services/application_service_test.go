package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
)

type fakeApplicationStore struct {
	byUserID map[int64]*models.Application
	nextID   int64
}

func (f *fakeApplicationStore) Create(ctx context.Context, app *models.Application) (int64, error) {
	if _, exists := f.byUserID[app.UserID]; exists {
		return 0, apperrors.ErrApplicationAlreadySubmitted
	}
	f.nextID++
	app.ID = f.nextID
	f.byUserID[app.UserID] = app
	return f.nextID, nil
}

func (f *fakeApplicationStore) GetByUserID(ctx context.Context, userID int64) (*models.Application, error) {
	app, ok := f.byUserID[userID]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app, nil
}

type fakeDocumentStorage struct {
	saved []string
}

func (f *fakeDocumentStorage) SaveApplicationDocument(fileHeader *multipart.FileHeader, userID int64, field string) (string, error) {
	path := fmt.Sprintf("documents/%d_%s.pdf", userID, field)
	f.saved = append(f.saved, path)
	return path, nil
}

func applyRequest(userID int64, scholarship bool) *dto.ApplyRequest {
	return &dto.ApplyRequest{
		UserID:        userID,
		FirstName:     "Asha",
		LastName:      "Patil",
		DOB:           "2004-06-01",
		Phone:         "9876543210",
		Address:       "Pune",
		Course:        "Computer Engineering",
		IsScholarship: scholarship,
	}
}

func newApplicationFixture() (ApplicationService, *fakeApplicationStore, *fakeDocumentStorage) {
	apps := &fakeApplicationStore{byUserID: map[int64]*models.Application{}}
	storage := &fakeDocumentStorage{}
	return NewApplicationService(apps, storage, zerolog.Nop()), apps, storage
}

func TestApply_RegularApplicationStartsPending(t *testing.T) {
	svc, apps, _ := newApplicationFixture()

	resp, err := svc.Apply(context.Background(), applyRequest(1, false), "asha@example.com", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Application submitted successfully", resp.Message)
	assert.Equal(t, models.FeePending, apps.byUserID[1].FeeStatus)
	assert.Equal(t, "asha@example.com", apps.byUserID[1].Email)
}

func TestApply_ScholarshipSkipsPaymentFlow(t *testing.T) {
	svc, apps, _ := newApplicationFixture()

	_, err := svc.Apply(context.Background(), applyRequest(1, true), "asha@example.com", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.FeeScholarship, apps.byUserID[1].FeeStatus)
}

func TestApply_SecondSubmissionRejected(t *testing.T) {
	svc, _, _ := newApplicationFixture()
	ctx := context.Background()

	_, err := svc.Apply(ctx, applyRequest(1, false), "asha@example.com", nil, nil)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, applyRequest(1, false), "asha@example.com", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrApplicationAlreadySubmitted)
}

func TestApply_StoresUploadedDocuments(t *testing.T) {
	svc, apps, storage := newApplicationFixture()

	receipt := &multipart.FileHeader{Filename: "receipt.pdf"}
	merit := &multipart.FileHeader{Filename: "merit.pdf"}
	resp, err := svc.Apply(context.Background(), applyRequest(1, true), "asha@example.com", receipt, merit)
	require.NoError(t, err)

	assert.Len(t, storage.saved, 2)
	require.NotNil(t, resp.ReceiptPath)
	assert.Equal(t, "documents/1_receipt.pdf", *resp.ReceiptPath)
	require.NotNil(t, apps.byUserID[1].MeritDocument)
	assert.Equal(t, "documents/1_merit_document.pdf", *apps.byUserID[1].MeritDocument)
}

func TestCheck_NotApplied(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	resp, err := svc.Check(context.Background(), 7)
	require.NoError(t, err)

	assert.False(t, resp.HasApplied)
	assert.Nil(t, resp.Application)
}

func TestStatus_ReportsFeeStatus(t *testing.T) {
	svc, _, _ := newApplicationFixture()
	ctx := context.Background()

	_, err := svc.Apply(ctx, applyRequest(1, false), "asha@example.com", nil, nil)
	require.NoError(t, err)

	resp, err := svc.Status(ctx, 1)
	require.NoError(t, err)

	assert.True(t, resp.HasApplied)
	require.NotNil(t, resp.FeeStatus)
	assert.Equal(t, "pending", *resp.FeeStatus)
}

func TestStatus_NotApplied(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	resp, err := svc.Status(context.Background(), 7)
	require.NoError(t, err)

	assert.False(t, resp.HasApplied)
	assert.Nil(t, resp.FeeStatus)
}
