package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	gql "github.com/taskboard/backend/api/graphql"
	apiHandler "github.com/taskboard/backend/api/handler"
	"github.com/taskboard/backend/internal/bus"
	"github.com/taskboard/backend/internal/config"
	boltInfra "github.com/taskboard/backend/internal/infrastructure/boltdb"
	"github.com/taskboard/backend/internal/infrastructure/journal"
	"github.com/taskboard/backend/internal/infrastructure/monitor"
	"github.com/taskboard/backend/internal/router"
	"github.com/taskboard/backend/internal/services"
	"github.com/taskboard/backend/internal/services/lifecycle"
	"github.com/taskboard/backend/internal/ws"
	"github.com/taskboard/backend/pkg/httpcontext"
	"github.com/taskboard/backend/pkg/logger"
	boltRepo "github.com/taskboard/backend/repository/boltdb"
	projectUC "github.com/taskboard/backend/usecase/project"
	taskUC "github.com/taskboard/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := boltInfra.Open(cfg.Storage.Path)
	if err != nil {
		zapLogger.Fatal("failed to open entity store", zap.Error(err))
	}
	manager.Register("entity_store", func(ctx context.Context) error {
		return store.Close()
	})

	eventBus := bus.New(zapLogger)

	var journalStore *journal.Store
	if cfg.Journal.Enabled {
		journalStore, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			zapLogger.Fatal("failed to open event journal", zap.Error(err))
		}
		manager.Register("journal", func(ctx context.Context) error {
			return journalStore.Close()
		})

		recorder := services.NewRecorder(eventBus, journalStore, zapLogger, services.RecorderConfig{
			Retention:     cfg.Journal.Retention,
			PruneInterval: cfg.Journal.PruneInterval,
		})
		recorder.Start()
		manager.Register("event_recorder", func(ctx context.Context) error {
			recorder.Stop(ctx)
			return nil
		})
	}

	mon := monitor.New(store, journalStore, eventBus, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	projectRepo := boltRepo.NewProjectRepository(store)
	taskRepo := boltRepo.NewTaskRepository(store)

	projectUseCase := projectUC.New(projectRepo, eventBus, zapLogger)
	taskUseCase := taskUC.New(taskRepo, eventBus, zapLogger)

	schema, err := gql.NewSchema(&gql.Resolvers{
		Projects: projectUseCase,
		Tasks:    taskUseCase,
		Bus:      eventBus,
		Logger:   zapLogger,
	})
	if err != nil {
		zapLogger.Fatal("failed to build schema", zap.Error(err))
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		GraphQL: gql.NewHandler(schema, ctxAdapter, zapLogger),
		Subscriptions: ws.NewHandler(schema, ws.Config{
			KeepAlive:      cfg.WS.KeepAlive,
			WriteTimeout:   cfg.WS.WriteTimeout,
			ReadLimitBytes: cfg.WS.ReadLimitBytes,
		}, zapLogger),
		Upload: apiHandler.NewUploadHandler(cfg.Upload.Dir, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("graphql", "/api"),
			zap.String("subscriptions", "/api/subscriptions"),
		)
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
