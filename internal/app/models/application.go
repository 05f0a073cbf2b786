package models

import "time"

// Application is a single admission application, one per admissions user.
// Payment fields are filled in by the payment verification step; the
// admission status is moved by the admin review flow.
type Application struct {
	ID            int64           `json:"id" db:"id"`
	UserID        int64           `json:"userId" db:"user_id"`
	Email         string          `json:"email" db:"email"`
	FirstName     string          `json:"firstname" db:"firstname"`
	MiddleName    string          `json:"middlename" db:"middlename"`
	LastName      string          `json:"lastname" db:"lastname"`
	DOB           string          `json:"dob" db:"dob"`
	Phone         string          `json:"phone" db:"phone"`
	Address       string          `json:"address" db:"address"`
	Course        string          `json:"course" db:"course"`
	IsScholarship bool            `json:"isScholarship" db:"is_scholarship"`
	FeeStatus     FeeStatus       `json:"feeStatus" db:"fee_status"`
	ReceiptPath   *string         `json:"receiptPath,omitempty" db:"receipt_path"`
	MeritDocument *string         `json:"meritDocument,omitempty" db:"merit_document"`

	PaymentOrderID   *string    `json:"paymentOrderId,omitempty" db:"payment_order_id"`
	PaymentID        *string    `json:"paymentId,omitempty" db:"payment_id"`
	PaymentSignature *string    `json:"-" db:"payment_signature"`
	PaymentAmount    *int64     `json:"paymentAmount,omitempty" db:"payment_amount"`
	PaymentAt        *time.Time `json:"paymentAt,omitempty" db:"payment_at"`

	AdmissionStatus AdmissionStatus `json:"admissionStatus" db:"admission_status"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}
