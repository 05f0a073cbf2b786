package models

import "time"

// User defines an admissions-portal account based on the 'users' table of
// the applications database.
type User struct {
	ID            int64     `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Role          Role      `json:"role" db:"role"`
	ApplicationID *int64    `json:"applicationId,omitempty" db:"application_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
