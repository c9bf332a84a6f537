package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"usi_bridge/internal/adapters"
	"usi_bridge/internal/bootstrap"
	decodeDelivery "usi_bridge/internal/delivery/decode"
	engineDelivery "usi_bridge/internal/delivery/engine"
	ownMiddleware "usi_bridge/internal/middleware"
	"usi_bridge/internal/repository"
	decodeuc "usi_bridge/internal/usecase/decode"
	engineuc "usi_bridge/internal/usecase/engine"
	transcriptuc "usi_bridge/internal/usecase/transcript"
)

type mainDeliveryHandler struct {
	decode *decodeDelivery.DecodeHandler
	engine *engineDelivery.EngineHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, *cfg)
	defer databaseAdapters.Close(context.Background())

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	server := &http.Server{Addr: cfg.ServerPort, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("server shutdown", "error", err)
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/decode", h.decode.HandleDecode)
	r.Post("/decode/batch", h.decode.HandleDecodeBatch)
	r.Get("/decode/ws", h.decode.HandleDecodeWS)
	r.Get("/transcripts/{engineID}", h.decode.HandleTranscript)
	r.Get("/engine/ws", h.engine.HandleEngineWS)
}

// initDatabaseAdapters connects the stores that are configured. Either one
// may be left out.
func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) *dataBaseAdapters {
	adapterSet := &dataBaseAdapters{}

	if cfg.RedisUrl != "" {
		redisAdapter := adapters.NewAdapterRedis(&cfg, log)
		if err := redisAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		adapterSet.redisAdapter = redisAdapter
	}

	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(&cfg, log)
		if err := mongoAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize mongo", zap.Error(err))
		}
		adapterSet.mongoAdapter = mongoAdapter
	}

	log.Infow("database adapters initialized",
		"redis", adapterSet.redisAdapter != nil,
		"mongo", adapterSet.mongoAdapter != nil)
	return adapterSet
}

func (d *dataBaseAdapters) Close(ctx context.Context) {
	if d.mongoAdapter != nil {
		_ = d.mongoAdapter.Close(ctx)
	}
	if d.redisAdapter != nil {
		_ = d.redisAdapter.Close(ctx)
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	var hot, archive transcriptuc.TranscriptStore
	if databaseAdapters.redisAdapter != nil {
		hot = repository.NewRedisTranscriptStore(databaseAdapters.redisAdapter.GetClient(), cfg.TranscriptLimit, cfg.TranscriptTTL, log)
	}
	if databaseAdapters.mongoAdapter != nil {
		archive = repository.NewMongoTranscriptStore(databaseAdapters.mongoAdapter.Database, log)
	}

	decoder := decodeuc.NewDecodeUseCase(cfg.ParseWorkers)
	transcripts := transcriptuc.NewTranscriptUseCase(decoder, hot, archive, log)

	starter := func(ctx context.Context) (engineuc.EngineConn, error) {
		client, err := repository.StartEngine(ctx, cfg.EnginePath, cfg.EngineArgList(), log)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	return &mainDeliveryHandler{
		decode: decodeDelivery.NewDecodeHandler(log, decoder, transcripts),
		engine: engineDelivery.NewEngineHandler(log, engineuc.NewEngineUseCase(starter, transcripts, log)),
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
