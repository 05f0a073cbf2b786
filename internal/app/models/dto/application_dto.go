package dto

import "github.com/coeptech/unimis/internal/app/models"

// ApplyRequest carries the multipart form fields of an application
// submission. The uploaded PDFs ("receipt", "merit_document") are read from
// the multipart form separately.
type ApplyRequest struct {
	UserID        int64  `form:"user_id" binding:"required,min=1"`
	FirstName     string `form:"firstname" binding:"required"`
	MiddleName    string `form:"middlename"`
	LastName      string `form:"lastname" binding:"required"`
	DOB           string `form:"dob" binding:"required"`
	Phone         string `form:"phone" binding:"required"`
	Address       string `form:"address" binding:"required"`
	Course        string `form:"course" binding:"required"`
	IsScholarship bool   `form:"is_scholarship"`
	FeeStatus     string `form:"fee_status"`
}

// ApplicationCheckResponse reports whether a user has applied, with the
// application row when present.
type ApplicationCheckResponse struct {
	HasApplied  bool                `json:"hasApplied"`
	Application *models.Application `json:"application,omitempty"`
}

// ApplicationStatusResponse reports the fee status of a user's application.
type ApplicationStatusResponse struct {
	HasApplied bool    `json:"hasApplied"`
	FeeStatus  *string `json:"fee_status"`
}

// ApplySubmittedResponse confirms a stored application with document paths.
type ApplySubmittedResponse struct {
	Message       string  `json:"message"`
	ReceiptPath   *string `json:"receiptPath,omitempty"`
	MeritDocument *string `json:"meritDocument,omitempty"`
}
