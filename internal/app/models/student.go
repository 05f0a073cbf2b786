package models

import "time"

// Student defines an enrolled student row in the MIS database, keyed by the
// human-readable mis_id. Applicant and payment fields are copied verbatim by
// the migration job.
type Student struct {
	ID            int64     `json:"id" db:"id"`
	MISID         string    `json:"misId" db:"mis_id"`
	UserID        int64     `json:"userId" db:"user_id"`
	Email         string    `json:"email" db:"email"`
	FirstName     string    `json:"firstname" db:"firstname"`
	MiddleName    string    `json:"middlename" db:"middlename"`
	LastName      string    `json:"lastname" db:"lastname"`
	DOB           string    `json:"dob" db:"dob"`
	Phone         string    `json:"phone" db:"phone"`
	Address       string    `json:"address" db:"address"`
	IsScholarship bool      `json:"isScholarship" db:"is_scholarship"`
	FeeStatus     FeeStatus `json:"feeStatus" db:"fee_status"`
	ReceiptPath   *string   `json:"receiptPath,omitempty" db:"receipt_path"`
	MeritDocument *string   `json:"meritDocument,omitempty" db:"merit_document"`
	CourseID      int64     `json:"courseId" db:"course_id"`

	PaymentOrderID   *string    `json:"paymentOrderId,omitempty" db:"payment_order_id"`
	PaymentID        *string    `json:"paymentId,omitempty" db:"payment_id"`
	PaymentSignature *string    `json:"-" db:"payment_signature"`
	PaymentAmount    *int64     `json:"paymentAmount,omitempty" db:"payment_amount"`
	PaymentAt        *time.Time `json:"paymentAt,omitempty" db:"payment_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relation, populated on joined reads
	CourseName *string `json:"courseName,omitempty"`
}

// FullName joins the student's name parts, skipping an empty middle name.
func (s *Student) FullName() string {
	if s.MiddleName == "" {
		return s.FirstName + " " + s.LastName
	}
	return s.FirstName + " " + s.MiddleName + " " + s.LastName
}
