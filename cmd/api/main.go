package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"eventhub/internal/config"
	"eventhub/internal/database"
	"eventhub/internal/middleware"
	"eventhub/internal/modules/auth"
	"eventhub/internal/modules/calendar"
	"eventhub/internal/modules/event"
	"eventhub/internal/pkg/mail"
	"eventhub/internal/pkg/token"
	"eventhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	logger := newLogger(os.Getenv("APP_ENV"))
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = "eventhub.db"
	}
	db, err := database.Connect(dsn)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		logger.Fatal("db migrate failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewRefreshTokenRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	eventRepo := repository.NewEventRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	tokens, err := token.New(token.Config{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	})
	if err != nil {
		logger.Fatal("token service init failed", zap.Error(err))
	}

	mailer := newMailer(cfg)

	authService := auth.NewService(
		userRepo,
		sessionRepo,
		tokens,
		mailer,
		cfg.RefreshTTL,
		cfg.ResetTTL,
		cfg.MaxSessionsPerUser,
		cfg.FrontendBaseURL,
	)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Path:       cfg.CookiePath,
		Domain:     cfg.CookieDomain,
		Secure:     cfg.CookieSecure,
		SameSite:   cfg.CookieSameSite,
		AccessTTL:  tokens.AccessTTL(),
		RefreshTTL: tokens.RefreshTTL(),
	})

	calendarService := calendar.NewService(calendarRepo)
	calendarHandler := calendar.NewHandler(calendarService)

	eventService := event.NewService(eventRepo, subscriptionRepo)
	eventHandler := event.NewHandler(eventService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)
	attachUser := middleware.AttachUser(tokens, userRepo)
	loginLimiter := middleware.RateLimiter(middleware.RateLimiterConfig{RequestsPerMinute: 10, Burst: 10})
	resetLimiter := middleware.RateLimiter(middleware.RateLimiterConfig{RequestsPerMinute: 5, Burst: 5})

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Authorization", "Accept", "Origin", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}))

	api := r.Group("/api")
	{
		authHandler.RegisterRoutes(api, attachUser, loginLimiter, resetLimiter)
		calendarHandler.RegisterPublicRoutes(api)
		eventHandler.RegisterRoutes(api, attachUser, requireAuth)

		protected := api.Group("/")
		protected.Use(requireAuth)
		{
			calendarHandler.RegisterProtectedRoutes(protected)
		}
	}

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(appEnv string) *zap.Logger {
	if appEnv == "prod" || appEnv == "production" || appEnv == "release" {
		logger, _ := zap.NewProduction()
		return logger
	}
	logger, _ := zap.NewDevelopment()
	return logger
}

func newMailer(cfg *config.Config) mail.Mailer {
	smtp := mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
	}
	if cfg.EmailMode == "dev" || !smtp.Complete() {
		return mail.NewDevMailer()
	}
	return mail.NewSMTPMailer(smtp)
}
