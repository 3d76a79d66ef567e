package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/config"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/database"
	assessmentctrl "github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/controller/assessment"
	authctrl "github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/controller/auth"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/logger"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/repository"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// @title Learning Disability Screening API
// @version 1.0
// @description Backend for LD screening: intake survey, writing and speech capture, emotion tracking, and AI-driven assessment.
// @host localhost:5000
// @BasePath /
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSurveyRepository,
			repository.NewWritingRepository,
			repository.NewAudioRepository,
			repository.NewDiagnosisRepository,
		),

		// Services layer
		fx.Provide(
			func(cfg *config.Config) service.TokenSigner {
				return service.NewJWTSigner(cfg.JWTSecret)
			},
			service.NewAuthService,
			service.NewAssessmentService,
			service.NewAggregatorService,
			service.NewDiagnosisService,
			service.NewGeminiService,
			service.NewEmotionTracker,
		),

		// API controllers layer
		fx.Provide(
			authctrl.NewAuthController,
			assessmentctrl.NewAssessmentController,
		),

		fx.Invoke(database.EnsureIndexes),
		fx.Invoke(RegisterRoutesAndStartServer),
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
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *authctrl.AuthController,
	assessmentCtrl *assessmentctrl.AssessmentController,
) {
	router.POST("/signup", authCtrl.Signup)
	router.POST("/login", authCtrl.Login)

	users := router.Group("/users")
	{
		users.GET("/checkdiagnosed/:user_id", assessmentCtrl.CheckDiagnosed)
		users.GET("/checkassessed/:user_id", assessmentCtrl.CheckAssessed)
		users.POST("/submitassesment", assessmentCtrl.SubmitAssessment)
		users.POST("/dysgraphia_image", assessmentCtrl.DysgraphiaImage)
		users.POST("/dyslexia_audio", assessmentCtrl.DyslexiaAudio)
		users.POST("/facedetection", assessmentCtrl.FaceDetection)
		users.POST("/ld_identification", assessmentCtrl.LDIdentification)
		users.POST("/assessmentresult", assessmentCtrl.AssessmentResult)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("LD screening API server starting on port %s", cfg.Server.Port)
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
