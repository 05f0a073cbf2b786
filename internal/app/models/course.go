package models

// Course represents a programme offered by the institution.
type Course struct {
	ID            int64  `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Code          string `json:"code" db:"code"`
	DurationYears int    `json:"durationYears" db:"duration_years"`
}
