package models

// Subject represents a teachable unit within a course, optionally assigned
// to a teacher.
type Subject struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	CourseID int64  `json:"courseId" db:"course_id"`
	TeacherID *int64 `json:"teacherId,omitempty" db:"teacher_id"`

	// Relations, populated on joined reads
	CourseName  *string `json:"courseName,omitempty"`
	TeacherName *string `json:"teacherName,omitempty"`
}
