package models

// Role defines an admissions-portal user role.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

// MISRole defines an MIS-portal user role.
type MISRole string

const (
	MISRoleAdmin   MISRole = "admin"
	MISRoleTeacher MISRole = "teacher"
	MISRoleStudent MISRole = "student"
)

// ValidMISRole reports whether the given role is one of the MIS roles.
func ValidMISRole(r MISRole) bool {
	switch r {
	case MISRoleAdmin, MISRoleTeacher, MISRoleStudent:
		return true
	}
	return false
}

// AdmissionStatus is the applicant-level lifecycle state.
type AdmissionStatus string

const (
	AdmissionPending   AdmissionStatus = "pending"
	AdmissionConfirmed AdmissionStatus = "confirmed"
	AdmissionRejected  AdmissionStatus = "rejected"
)

// ValidAdmissionStatus reports whether the status is a known lifecycle state.
func ValidAdmissionStatus(s AdmissionStatus) bool {
	switch s {
	case AdmissionPending, AdmissionConfirmed, AdmissionRejected:
		return true
	}
	return false
}

// FeeStatus is the payment lifecycle state of an application.
type FeeStatus string

const (
	FeePending     FeeStatus = "pending"
	FeePaid        FeeStatus = "paid"
	FeeScholarship FeeStatus = "scholarship"
)

// MarkType identifies one of the three mark fields on an enrollment.
type MarkType string

const (
	MarkMidsem   MarkType = "midsem"
	MarkEndsem   MarkType = "endsem"
	MarkInternal MarkType = "internal"
)

// AttendanceStatus is a single lecture attendance outcome.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)
