package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coeptech/unimis/internal/app/controllers"
	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/middleware"
)

// SetupRouter configures all application routes. The admissions portal and
// the MIS portal are gated by separate auth middlewares, one per JWT realm.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	applicationController *controllers.ApplicationController,
	paymentController *controllers.PaymentController,
	adminController *controllers.AdminController,
	misAuthController *controllers.MISAuthController,
	misAdminController *controllers.MISAdminController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	admissionsAuth *middleware.AuthMiddleware,
	misAuth *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Admissions portal ---

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	users := v1.Group("/users")
	users.Use(admissionsAuth.JWTAuth())
	{
		users.GET("/profile", authController.Profile)
	}

	application := v1.Group("/application")
	application.Use(admissionsAuth.JWTAuth())
	{
		application.POST("/apply", applicationController.Apply)
		application.GET("/check/:user_id", applicationController.Check)
		application.GET("/status/:user_id", applicationController.Status)
	}

	payment := v1.Group("/payment")
	payment.Use(admissionsAuth.JWTAuth())
	{
		payment.POST("/create-order", paymentController.CreateOrder)
		payment.POST("/verify", paymentController.Verify)
	}

	admin := v1.Group("/admin")
	admin.Use(admissionsAuth.JWTAuth(), admissionsAuth.RoleRequired(string(models.RoleAdmin)))
	{
		admin.GET("/applications", adminController.ListApplications)
		admin.PUT("/applications/:id", adminController.UpdateApplicationStatus)
		admin.POST("/migrate", adminController.Migrate)
	}

	// --- MIS portal ---

	mis := v1.Group("/mis")

	misAuthGroup := mis.Group("/auth")
	{
		misAuthGroup.POST("/register", misAuthController.Register)
		misAuthGroup.POST("/login", misAuthController.Login)
	}

	misAdmin := mis.Group("/admin")
	misAdmin.Use(misAuth.JWTAuth(), misAuth.RoleRequired(string(models.MISRoleAdmin)))
	{
		misAdmin.GET("/students", misAdminController.ListStudents)
		misAdmin.GET("/teachers", misAdminController.ListTeachers)
		misAdmin.GET("/courses", misAdminController.ListCourses)
		misAdmin.GET("/subjects", misAdminController.ListSubjects)
		misAdmin.POST("/course", misAdminController.CreateCourse)
		misAdmin.POST("/teacher", misAdminController.CreateTeacher)
		misAdmin.POST("/subject", misAdminController.CreateSubject)
		misAdmin.DELETE("/course/:id", misAdminController.DeleteCourse)
		misAdmin.DELETE("/teacher/:id", misAdminController.DeleteTeacher)
		misAdmin.DELETE("/subject/:id", misAdminController.DeleteSubject)
	}

	student := mis.Group("/student")
	student.Use(misAuth.JWTAuth(), misAuth.RoleRequired(string(models.MISRoleStudent)))
	{
		student.GET("/profile", studentController.Profile)
		student.GET("/subjects", studentController.AvailableSubjects)
		student.POST("/subjects", studentController.SelectSubjects)
		student.GET("/enrollments", studentController.Enrollments)
		student.GET("/certificate/:type", studentController.Certificate)
	}

	teacher := mis.Group("/teacher")
	teacher.Use(misAuth.JWTAuth(), misAuth.RoleRequired(string(models.MISRoleTeacher)))
	{
		teacher.GET("/profile", teacherController.Profile)
		teacher.GET("/subjects", teacherController.Subjects)
		teacher.GET("/subject/:id/students", teacherController.SubjectStudents)
		teacher.POST("/subject/:id/attendance", teacherController.RecordAttendance)
		teacher.POST("/subject/:id/marks", teacherController.UpdateMarks)
	}
}
