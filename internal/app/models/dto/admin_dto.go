package dto

import "github.com/coeptech/unimis/internal/app/models"

// UpdateStatusRequest moves an application to a new admission status.
type UpdateStatusRequest struct {
	Status models.AdmissionStatus `json:"status" binding:"required"`
}

// MigrationResponse reports the outcome of one migration run. Migrated
// counts rows actually copied; Skipped counts confirmed rows left behind
// (already migrated, unresolvable course, missing password hash).
type MigrationResponse struct {
	Message  string `json:"message"`
	Migrated int    `json:"migrated"`
	Skipped  int    `json:"skipped"`
}
