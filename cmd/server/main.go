package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/teamspace/backend/api/handler"
	"github.com/teamspace/backend/internal/config"
	"github.com/teamspace/backend/internal/middleware"
	"github.com/teamspace/backend/internal/monitor"
	"github.com/teamspace/backend/internal/router"
	"github.com/teamspace/backend/internal/seed"
	"github.com/teamspace/backend/internal/services/lifecycle"
	"github.com/teamspace/backend/pkg/httpcontext"
	"github.com/teamspace/backend/pkg/logger"
	"github.com/teamspace/backend/repository/memory"
	activityUC "github.com/teamspace/backend/usecase/activity"
	authUC "github.com/teamspace/backend/usecase/auth"
	lifecycleUC "github.com/teamspace/backend/usecase/lifecycle"
	messagingUC "github.com/teamspace/backend/usecase/messaging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	projectStore := memory.NewProjectStore()
	userStore := memory.NewUserStore()
	activityStore := memory.NewActivityStore()
	sessionStore := memory.NewSessionStore(cfg.JWT.SessionTTL)

	projectStore.Subscribe(func(projectID string) {
		zapLogger.Debug("project changed", zap.String("project_id", projectID))
	})

	mon := monitor.New(projectStore, userStore, activityStore, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	lifecycleEngine := lifecycleUC.New(projectStore, activityStore, zapLogger)
	messagingEngine := messagingUC.New(projectStore, activityStore, zapLogger)
	activityFeed := activityUC.New(activityStore, zapLogger)
	authUseCase := authUC.New(userStore, sessionStore, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)

	if cfg.Seed.Enabled {
		seeder := seed.New(userStore, projectStore, lifecycleEngine, messagingEngine, zapLogger)
		if err := seeder.Run(appCtx); err != nil {
			zapLogger.Fatal("seeding failed", zap.Error(err))
		}
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.JWT.SessionTTL),
		Project:  apiHandler.NewProjectHandler(projectStore, userStore, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(lifecycleEngine, projectStore, userStore, ctxAdapter, zapLogger),
		Subtask:  apiHandler.NewSubtaskHandler(lifecycleEngine, userStore, ctxAdapter, zapLogger),
		Message:  apiHandler.NewMessageHandler(messagingEngine, projectStore, userStore, ctxAdapter, zapLogger),
		Activity: apiHandler.NewActivityHandler(activityFeed, userStore, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
