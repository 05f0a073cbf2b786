package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/coeptech/unimis/internal/app/controllers"
	appMigrations "github.com/coeptech/unimis/internal/app/migrations"
	appRepos "github.com/coeptech/unimis/internal/app/repositories"
	appRoutes "github.com/coeptech/unimis/internal/app/routes"
	appServices "github.com/coeptech/unimis/internal/app/services"
	"github.com/coeptech/unimis/internal/config"
	"github.com/coeptech/unimis/internal/db"
	appMiddleware "github.com/coeptech/unimis/internal/middleware"
	pkgAuth "github.com/coeptech/unimis/internal/pkg/auth"
	"github.com/coeptech/unimis/internal/pkg/certificate"
	"github.com/coeptech/unimis/internal/pkg/filestorage"
	"github.com/coeptech/unimis/internal/pkg/helpers"
	"github.com/coeptech/unimis/internal/pkg/logger"
	"github.com/coeptech/unimis/internal/pkg/payment"
	"github.com/coeptech/unimis/internal/seed"
)

// Pools holds the two database pools the application runs against.
type Pools struct {
	Applications *pgxpool.Pool
	MIS          *pgxpool.Pool
}

// Close closes both pools.
func (p *Pools) Close() {
	if p.Applications != nil {
		p.Applications.Close()
	}
	if p.MIS != nil {
		p.MIS.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService      appServices.AuthService
	ApplicationService appServices.ApplicationService
	PaymentService   appServices.PaymentService
	AdminService     appServices.AdminService
	MigrationService appServices.MigrationService
	MISAuthService   appServices.MISAuthService
	MISAdminService  appServices.MISAdminService
	StudentService   appServices.StudentService
	TeacherService   appServices.TeacherService

	AuthController        *appControllers.AuthController
	ApplicationController *appControllers.ApplicationController
	PaymentController     *appControllers.PaymentController
	AdminController       *appControllers.AdminController
	MISAuthController     *appControllers.MISAuthController
	MISAdminController    *appControllers.MISAdminController
	StudentController     *appControllers.StudentController
	TeacherController     *appControllers.TeacherController

	AdmissionsAuth *appMiddleware.AuthMiddleware
	MISAuth        *appMiddleware.AuthMiddleware

	AdmissionsRepos *appRepos.AdmissionsRepositories
	MISRepos        *appRepos.MISRepositories

	AdmissionsJWT *pkgAuth.JWTService
	MISJWT        *pkgAuth.JWTService

	FileStorage *filestorage.LocalStorage
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabases connects both pools, applies each database's migrations and
// seeds default data.
func SetupDatabases(cfg *config.Config, lgr zerolog.Logger) (*Pools, error) {
	lgr.Info().Msg("Establishing database connections...")

	appsPool, err := db.NewPool(cfg.Databases.Applications)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to applications database: %w", err)
	}

	misPool, err := db.NewPool(cfg.Databases.MIS)
	if err != nil {
		appsPool.Close()
		return nil, fmt.Errorf("failed to connect to MIS database: %w", err)
	}

	pools := &Pools{Applications: appsPool, MIS: misPool}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(appsPool).MigrateFromDirectory(filepath.Join("migrations", "admissions")); err != nil {
		pools.Close()
		return nil, fmt.Errorf("applications database migrations failed: %w", err)
	}
	if err := appMigrations.NewMigrator(misPool).MigrateFromDirectory(filepath.Join("migrations", "mis")); err != nil {
		pools.Close()
		return nil, fmt.Errorf("MIS database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	ctx := context.Background()
	if err := seed.CreateAdmissionsDefaults(ctx, appsPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed admissions defaults, proceeding anyway...")
	}
	if err := seed.CreateMISDefaults(ctx, misPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed MIS defaults, proceeding anyway...")
	}

	return pools, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, pools *Pools, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.AdmissionsRepos = appRepos.NewAdmissionsRepositories(pools.Applications)
	deps.MISRepos = appRepos.NewMISRepositories(pools.MIS)

	var err error
	baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.AdmissionsJWT = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Admissions.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.Admissions.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Admissions.Issuer,
	})
	deps.MISJWT = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.MIS.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.MIS.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.MIS.Issuer,
	})

	gateway := payment.NewRazorpayGateway(cfg.Payment.KeyID, cfg.Payment.KeySecret)
	renderer := certificate.NewRenderer("College of Engineering Pune")

	deps.AuthService = appServices.NewAuthService(deps.AdmissionsRepos.Users, deps.AdmissionsJWT, lgr)
	deps.ApplicationService = appServices.NewApplicationService(deps.AdmissionsRepos.Applications, deps.FileStorage, lgr)
	deps.PaymentService = appServices.NewPaymentService(
		deps.AdmissionsRepos.Applications,
		gateway,
		cfg.Payment.KeyID,
		cfg.Payment.KeySecret,
		cfg.Payment.Currency,
		lgr,
	)
	deps.AdminService = appServices.NewAdminService(deps.AdmissionsRepos.Applications, lgr)
	deps.MigrationService = appServices.NewMigrationService(
		deps.AdmissionsRepos.Applications,
		deps.AdmissionsRepos.Users,
		deps.MISRepos.Courses,
		deps.MISRepos.Users,
		deps.MISRepos.Students,
		cfg.Academics.InstitutionCode,
		lgr,
	)
	deps.MISAuthService = appServices.NewMISAuthService(deps.MISRepos.Users, deps.MISJWT, lgr)
	deps.MISAdminService = appServices.NewMISAdminService(deps.MISRepos, lgr)
	deps.StudentService = appServices.NewStudentService(
		deps.MISRepos.Students,
		deps.MISRepos.Subjects,
		deps.MISRepos.Enrollments,
		renderer,
		cfg.Academics.SubjectsPerSemester,
		lgr,
	)
	deps.TeacherService = appServices.NewTeacherService(
		deps.MISRepos.Teachers,
		deps.MISRepos.Subjects,
		deps.MISRepos.Enrollments,
		lgr,
	)

	deps.AdmissionsAuth = appMiddleware.NewAuthMiddleware(deps.AdmissionsJWT)
	deps.MISAuth = appMiddleware.NewAuthMiddleware(deps.MISJWT)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ApplicationController = appControllers.NewApplicationController(deps.ApplicationService)
	deps.PaymentController = appControllers.NewPaymentController(deps.PaymentService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, deps.MigrationService)
	deps.MISAuthController = appControllers.NewMISAuthController(deps.MISAuthService)
	deps.MISAdminController = appControllers.NewMISAdminController(deps.MISAdminService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ApplicationController,
		deps.PaymentController,
		deps.AdminController,
		deps.MISAuthController,
		deps.MISAdminController,
		deps.StudentController,
		deps.TeacherController,
		deps.AdmissionsAuth,
		deps.MISAuth,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
