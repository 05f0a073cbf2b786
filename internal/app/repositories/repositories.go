package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdmissionsRepositories holds the data access layer for the applications
// database.
type AdmissionsRepositories struct {
	Users        *UserRepository
	Applications *ApplicationRepository
}

// NewAdmissionsRepositories initializes repositories on the applications pool.
func NewAdmissionsRepositories(db *pgxpool.Pool) *AdmissionsRepositories {
	return &AdmissionsRepositories{
		Users:        NewUserRepository(db),
		Applications: NewApplicationRepository(db),
	}
}

// MISRepositories holds the data access layer for the MIS database.
type MISRepositories struct {
	Users       *MISUserRepository
	Students    *StudentRepository
	Courses     *CourseRepository
	Teachers    *TeacherRepository
	Subjects    *SubjectRepository
	Enrollments *EnrollmentRepository
}

// NewMISRepositories initializes repositories on the MIS pool.
func NewMISRepositories(db *pgxpool.Pool) *MISRepositories {
	return &MISRepositories{
		Users:       NewMISUserRepository(db),
		Students:    NewStudentRepository(db),
		Courses:     NewCourseRepository(db),
		Teachers:    NewTeacherRepository(db),
		Subjects:    NewSubjectRepository(db),
		Enrollments: NewEnrollmentRepository(db),
	}
}
