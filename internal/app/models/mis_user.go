package models

import "time"

// MISUser defines an MIS-portal account based on the 'users' table of the
// MIS database. Migrated students carry the password hash copied from their
// admissions account, so no new password is needed after migration.
type MISUser struct {
	ID           int64     `json:"id" db:"id"`
	MISID        string    `json:"misId" db:"mis_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         MISRole   `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
