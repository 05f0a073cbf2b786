package dto

import "github.com/coeptech/unimis/internal/app/models"

// CreateCourseRequest creates a course in the MIS catalog.
type CreateCourseRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	DurationYears int    `json:"durationYears" binding:"required,min=1,max=6"`
}

// CreateTeacherRequest registers a teaching staff member.
type CreateTeacherRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
}

// CreateSubjectRequest creates a subject within a course.
type CreateSubjectRequest struct {
	Name      string `json:"name" binding:"required"`
	CourseID  int64  `json:"courseId" binding:"required,min=1"`
	TeacherID *int64 `json:"teacherId,omitempty"`
}

// StudentProfileResponse is the student dashboard payload.
type StudentProfileResponse struct {
	Student  *models.Student `json:"student"`
	Subjects []string        `json:"subjects"`
}

// SubjectSelectionRequest carries the subject ids a student picked for the
// semester.
type SubjectSelectionRequest struct {
	SelectedSubjects []int64 `json:"selectedSubjects" binding:"required"`
}

// AvailableSubjectsResponse lists a course's subjects and the ids the
// student is already enrolled in.
type AvailableSubjectsResponse struct {
	Subjects []*models.Subject `json:"subjects"`
	Enrolled []int64           `json:"enrolled"`
}

// EnrollmentsResponse lists the student's current enrollments.
type EnrollmentsResponse struct {
	EnrolledSubjects []*models.Enrollment `json:"enrolledSubjects"`
}

// AttendanceRequest records one lecture outcome for a student in a subject.
type AttendanceRequest struct {
	MISID  string                  `json:"mis_id" binding:"required"`
	Status models.AttendanceStatus `json:"status" binding:"required"`
}

// MarksRequest overwrites one mark field for a student in a subject.
type MarksRequest struct {
	MISID string          `json:"mis_id" binding:"required"`
	Type  models.MarkType `json:"type" binding:"required"`
	Marks int             `json:"marks"`
}

// TeacherProfileResponse is the teacher dashboard payload.
type TeacherProfileResponse struct {
	Teacher  *models.Teacher   `json:"teacher"`
	Subjects []*models.Subject `json:"subjects"`
}

// SubjectStudentsResponse lists the students enrolled in a subject with
// their counters and marks.
type SubjectStudentsResponse struct {
	Students []*models.EnrolledStudent `json:"students"`
}
