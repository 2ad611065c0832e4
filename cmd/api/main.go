package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	dbadapter "todolist/internal/adapter/db"
	httpadapter "todolist/internal/adapter/http"
	"todolist/internal/adapter/http/handlers"
	httpmiddleware "todolist/internal/adapter/http/middleware"
	"todolist/internal/adapter/memory"
	appservice "todolist/internal/app/service"
	"todolist/internal/config"
	"todolist/internal/core/ports"
	"todolist/pkg/authtoken"
	"todolist/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	if err := translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	}); err != nil {
		logger.Warn("error messages will not be translated", zap.Error(err))
	}

	tokens, err := authtoken.NewManager(cfg.JwtSecret, cfg.JwtIssuer)
	if err != nil {
		logger.Fatal("invalid token configuration, set JWT_SECRET", zap.Error(err))
	}

	repository, db, err := openRepository(cfg)
	if err != nil {
		logger.Fatal("failed to open task store", zap.String("driver", cfg.DbDriver), zap.Error(err))
	}

	taskService := appservice.NewTaskService(repository)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}
	healthHandler := handlers.NewHealthHandler(repository, cfg.DbDriver)
	taskHandler := handlers.NewTaskHandler(taskService)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler, tokens)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("driver", cfg.DbDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// The store closes only after in-flight requests have drained.
			"http-server": func(ctx context.Context) error {
				logger.Info("shutting down http server")
				shutdownErr := server.Shutdown(ctx)
				if db != nil {
					if err := db.Close(); err != nil {
						logger.Warn("failed to close database connection", zap.Error(err))
					}
				}
				return shutdownErr
			},
		},
	)

	exitCode := <-wait
	logger.Info("server stopped", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}

// openRepository returns the sql handle too so shutdown can close it; it is
// nil for the memory driver.
func openRepository(cfg *config.Config) (ports.TaskRepository, *sqlx.DB, error) {
	if cfg.DbDriver == config.DriverMemory {
		return memory.NewTaskRepository(), nil, nil
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := dbadapter.Migrate(context.Background(), db, cfg.MigrationsFolder); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return dbadapter.NewTaskRepository(db), db, nil
}
