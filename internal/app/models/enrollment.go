package models

// Enrollment ties a student to a subject for one semester and carries the
// attendance counters and mark fields mutated by teacher actions.
type Enrollment struct {
	MISID            string `json:"misId" db:"mis_id"`
	SubjectID        int64  `json:"subjectId" db:"subject_id"`
	Semester         int    `json:"semester" db:"semester"`
	LecturesAttended int    `json:"lecturesAttended" db:"lectures_attended"`
	TotalLectures    int    `json:"totalLectures" db:"total_lectures"`
	MidsemMarks      int    `json:"midsemMarks" db:"midsem_marks"`
	EndsemMarks      int    `json:"endsemMarks" db:"endsem_marks"`
	InternalMarks    int    `json:"internalMarks" db:"internal_marks"`

	// Relations, populated on joined reads
	SubjectName    *string `json:"subjectName,omitempty"`
	InstructorName *string `json:"instructorName,omitempty"`
}

// EnrolledStudent is the teacher-facing view of an enrollment joined with
// the student row.
type EnrolledStudent struct {
	MISID            string `json:"misId"`
	FirstName        string `json:"firstname"`
	LastName         string `json:"lastname"`
	Email            string `json:"email"`
	LecturesAttended int    `json:"lecturesAttended"`
	TotalLectures    int    `json:"totalLectures"`
	MidsemMarks      int    `json:"midsemMarks"`
	EndsemMarks      int    `json:"endsemMarks"`
	InternalMarks    int    `json:"internalMarks"`
}
