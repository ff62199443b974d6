package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/athena/internal/app/controllers"
	appMigrations "github.com/yigit/athena/internal/app/migrations"
	appRepos "github.com/yigit/athena/internal/app/repositories"
	appRoutes "github.com/yigit/athena/internal/app/routes"
	"github.com/yigit/athena/internal/config"
	"github.com/yigit/athena/internal/db"
	appMiddleware "github.com/yigit/athena/internal/middleware"
	"github.com/yigit/athena/internal/pkg/logger"
	"github.com/yigit/athena/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.Logging.Format == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects, applies pending migrations and makes sure an
// administrator exists.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, appMigrations.Schema()).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	err = appRepos.New(dbPool).InTransaction(ctx, func(ctx context.Context, repos *appRepos.Repositories) error {
		_, err := seed.EnsureAdmin(ctx, repos.Users, repos.Students, cfg.Admin, lgr)
		return err
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to ensure an administrator exists")
		dbPool.Close()
		return nil, fmt.Errorf("admin bootstrap failed: %w", err)
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, middleware and controllers.
func BuildDependencies(dbPool *pgxpool.Pool, lgr zerolog.Logger) *Dependencies {
	repos := appRepos.New(dbPool)

	return &Dependencies{
		Repos:          repos,
		AuthMiddleware: appMiddleware.NewAuthMiddleware(repos.Users),
		Controllers: appRoutes.Controllers{
			Health:       appControllers.NewHealthController(dbPool),
			Institutions: appControllers.NewInstitutionController(repos),
			Campuses:     appControllers.NewCampusController(repos),
			Courses:      appControllers.NewCourseController(repos),
			Offerings:    appControllers.NewOfferingController(repos),
			Meetings:     appControllers.NewMeetingController(repos),
			Requirements: appControllers.NewRequirementController(repos),
			Programs:     appControllers.NewProgramController(repos),
			Students:     appControllers.NewStudentController(repos),
		},
		Logger: lgr,
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
