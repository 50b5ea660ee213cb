package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "formulator-backend/internal/auth"
	"formulator-backend/internal/llm/gateway"
	"formulator-backend/internal/recommendations"
	sharedauth "formulator-backend/internal/shared/auth"
	"formulator-backend/internal/shared/config"
	"formulator-backend/internal/shared/server"
	"formulator-backend/internal/shared/storage/db"
	"formulator-backend/internal/shared/telemetry"
	"formulator-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config                 config.Config
	Router                 *gin.Engine
	DB                     *sql.DB
	JWTSecret              string
	Gateway                *gateway.Client
	UsersRepo              users.Repo
	UsersService           *users.Service
	UsersHandler           *users.Handler
	RecommendationsService *recommendations.Service
	RecommendationsHandler *recommendations.Handler
	GoogleAuth             *googleauth.GoogleService
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	secret, err := sharedauth.ResolveSecret(cfg.Env, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		JWTSecret: secret,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:     app.Config,
		JWTSecret:  app.JWTSecret,
		Recommend:  app.RecommendationsHandler.Generate,
		Users:      app.UsersHandler,
		GoogleAuth: app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Warn("bootstrap.db.memory", map[string]any{
			"reason": "DATABASE_URL empty",
		})
		return nil, nil
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db.memory", map[string]any{
				"reason": "connect failed",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return sqlDB, nil
}

func buildServices(app *App) {
	var userRepo users.Repo
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
	}
	userSvc := users.NewService(userRepo)

	gw := gateway.NewClient(gateway.Options{
		APIKey:  app.Config.GatewayAPIKey,
		URL:     app.Config.GatewayURL,
		Model:   app.Config.Model,
		Timeout: time.Duration(app.Config.TimeoutSeconds) * time.Second,
	})
	recSvc := recommendations.NewService(gw)

	app.Gateway = gw
	app.UsersRepo = userRepo
	app.UsersService = userSvc
	app.UsersHandler = users.NewHandler(userSvc)
	app.RecommendationsService = recSvc
	app.RecommendationsHandler = recommendations.NewHandler(recSvc)
	app.GoogleAuth = googleauth.NewGoogleService(googleauth.GoogleConfig{
		ClientID:     app.Config.GoogleClientID,
		ClientSecret: app.Config.GoogleClientSecret,
		RedirectURL:  app.Config.GoogleRedirectURL,
		UIRedirect:   app.Config.UIRedirectURL,
		JWTSecret:    app.JWTSecret,
	}, userSvc)

	if app.Config.GatewayAPIKey == "" {
		telemetry.Warn("bootstrap.gateway.unconfigured", map[string]any{
			"detail": "AI_GATEWAY_API_KEY empty; recommendation requests will fail",
		})
	}
}
