package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
)

// AdminApplicationStore is the slice of the application repository the admin
// review service needs.
type AdminApplicationStore interface {
	GetAll(ctx context.Context) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status models.AdmissionStatus) error
}

// AdminService handles admissions-side review operations.
type AdminService interface {
	ListApplications(ctx context.Context) ([]*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status models.AdmissionStatus) error
}

type adminService struct {
	applications AdminApplicationStore
	logger       zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(applications AdminApplicationStore, logger zerolog.Logger) AdminService {
	return &adminService{
		applications: applications,
		logger:       logger,
	}
}

// ListApplications returns every application, newest first.
func (s *adminService) ListApplications(ctx context.Context) ([]*models.Application, error) {
	return s.applications.GetAll(ctx)
}

// UpdateApplicationStatus moves an application through the admission
// lifecycle. Only the known states are accepted.
func (s *adminService) UpdateApplicationStatus(ctx context.Context, id int64, status models.AdmissionStatus) error {
	if !models.ValidAdmissionStatus(status) {
		return apperrors.ErrInvalidAdmissionStatus
	}

	if err := s.applications.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info().Int64("applicationId", id).Str("status", string(status)).Msg("Application status updated")
	return nil
}
