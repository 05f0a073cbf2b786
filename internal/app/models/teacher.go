package models

import "time"

// Teacher represents a teaching staff member in the MIS database.
type Teacher struct {
	ID       int64     `json:"id" db:"id"`
	FullName string    `json:"fullName" db:"full_name"`
	Email    string    `json:"email" db:"email"`
	Phone    string    `json:"phone" db:"phone"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}
