package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
)

// ApplicationStore is the slice of the application repository the
// application service needs.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Application, error)
}

// DocumentStorage stores uploaded application documents and returns the
// persisted relative path.
type DocumentStorage interface {
	SaveApplicationDocument(fileHeader *multipart.FileHeader, userID int64, field string) (string, error)
}

// ApplicationService handles admission application submission and lookups.
type ApplicationService interface {
	Apply(ctx context.Context, req *dto.ApplyRequest, email string, receipt, meritDoc *multipart.FileHeader) (*dto.ApplySubmittedResponse, error)
	Check(ctx context.Context, userID int64) (*dto.ApplicationCheckResponse, error)
	Status(ctx context.Context, userID int64) (*dto.ApplicationStatusResponse, error)
}

type applicationService struct {
	applications ApplicationStore
	storage      DocumentStorage
	logger       zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(applications ApplicationStore, storage DocumentStorage, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		applications: applications,
		storage:      storage,
		logger:       logger,
	}
}

// Apply stores a new application with its uploaded documents. A user may
// hold at most one application; the unique constraint backs the pre-check.
func (s *applicationService) Apply(ctx context.Context, req *dto.ApplyRequest, email string, receipt, meritDoc *multipart.FileHeader) (*dto.ApplySubmittedResponse, error) {
	existing, err := s.applications.GetByUserID(ctx, req.UserID)
	if err != nil && !errors.Is(err, apperrors.ErrApplicationNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrApplicationAlreadySubmitted
	}

	app := &models.Application{
		UserID:        req.UserID,
		Email:         email,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		DOB:           req.DOB,
		Phone:         req.Phone,
		Address:       req.Address,
		Course:        req.Course,
		IsScholarship: req.IsScholarship,
		FeeStatus:     models.FeePending,
	}
	// A scholarship application never enters the payment flow.
	if req.IsScholarship {
		app.FeeStatus = models.FeeScholarship
	}

	if receipt != nil {
		path, err := s.storage.SaveApplicationDocument(receipt, req.UserID, "receipt")
		if err != nil {
			return nil, err
		}
		app.ReceiptPath = &path
	}
	if meritDoc != nil {
		path, err := s.storage.SaveApplicationDocument(meritDoc, req.UserID, "merit_document")
		if err != nil {
			return nil, err
		}
		app.MeritDocument = &path
	}

	id, err := s.applications.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationId", id).Int64("userId", req.UserID).Msg("Application submitted")

	return &dto.ApplySubmittedResponse{
		Message:       "Application submitted successfully",
		ReceiptPath:   app.ReceiptPath,
		MeritDocument: app.MeritDocument,
	}, nil
}

// Check reports whether the user has an application, returning it if so.
func (s *applicationService) Check(ctx context.Context, userID int64) (*dto.ApplicationCheckResponse, error) {
	app, err := s.applications.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrApplicationNotFound) {
			return &dto.ApplicationCheckResponse{HasApplied: false}, nil
		}
		return nil, err
	}

	return &dto.ApplicationCheckResponse{HasApplied: true, Application: app}, nil
}

// Status reports the fee status of the user's application.
func (s *applicationService) Status(ctx context.Context, userID int64) (*dto.ApplicationStatusResponse, error) {
	app, err := s.applications.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrApplicationNotFound) {
			return &dto.ApplicationStatusResponse{HasApplied: false}, nil
		}
		return nil, err
	}

	feeStatus := string(app.FeeStatus)
	return &dto.ApplicationStatusResponse{HasApplied: true, FeeStatus: &feeStatus}, nil
}
