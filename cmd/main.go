package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ltanphat/gradewell/config"
	"github.com/ltanphat/gradewell/database"
	_ "github.com/ltanphat/gradewell/docs" // Swagger docs - auto-generated
	"github.com/ltanphat/gradewell/internal/authz"
	learnerctrl "github.com/ltanphat/gradewell/internal/controller/learner"
	reviewerctrl "github.com/ltanphat/gradewell/internal/controller/reviewer"
	"github.com/ltanphat/gradewell/internal/logger"
	"github.com/ltanphat/gradewell/internal/model"
	"github.com/ltanphat/gradewell/internal/repository"
	"github.com/ltanphat/gradewell/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Gradewell Attempt Engine API
// @version 1.0
// @description Timed-assessment attempt engine: start a time-boxed attempt, submit free-text answers under a deadline, and review-grade them. Identity, rosters and quiz authoring live in neighbouring services.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// External collaborator boundaries
		fx.Provide(
			authz.NewPermitAll,
		),

		// Repositories layer
		fx.Provide(
			repository.NewAssessmentRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		// Services layer
		fx.Provide(
			service.NewAttemptService,
			service.NewGradingService,
			service.NewAttemptQueryService,
		),

		// API controllers layer
		fx.Provide(
			learnerctrl.NewAttemptController,
			reviewerctrl.NewGradingController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Route gin request logging through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	attemptCtrl *learnerctrl.AttemptController,
	gradingCtrl *reviewerctrl.GradingController,
) {
	apiGroup := router.Group("/api/v1")
	{
		// Learner: attempt lifecycle and result view
		apiGroup.POST("/assessments/:assessment_id/attempts", attemptCtrl.StartAttempt)
		apiGroup.POST("/attempts/:attempt_id/submit", attemptCtrl.SubmitAttempt)
		apiGroup.GET("/attempts/:attempt_id/result", attemptCtrl.GetAttemptResult)
		apiGroup.GET("/learners/:learner_id/attempts", attemptCtrl.GetLearnerAttempts)

		// Reviewer: grading and attempt listings
		apiGroup.POST("/attempts/:attempt_id/grade", gradingCtrl.GradeAttempt)
		apiGroup.GET("/assessments/:assessment_id/attempts", gradingCtrl.GetAssessmentAttempts)
		apiGroup.GET("/attempts/pending-review", gradingCtrl.GetPendingReview)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Attempt engine server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// AutoMigrateDB creates the engine's owned tables (attempts, answers) and the
// reference tables the authoring subsystem writes into (assessments,
// questions).
func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Assessment{},
		&model.Question{},
		&model.Attempt{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
