package main

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"usi_bridge/internal/adapters"
	"usi_bridge/internal/bootstrap"
	"usi_bridge/internal/repository"
	decodeuc "usi_bridge/internal/usecase/decode"
	engineuc "usi_bridge/internal/usecase/engine"
	transcriptuc "usi_bridge/internal/usecase/transcript"
)

// Engine host: runs ENGINE_PATH, forwards stdin to it and prints every
// engine line as a decoded JSON record.
func main() {
	envFile := pflag.String("env", ".env", "config file")
	engineID := pflag.String("engine-id", "", "transcript id (random when empty)")
	pflag.Parse()

	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(*envFile)
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}
	if *engineID == "" {
		*engineID = uuid.NewString()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var hot, archive transcriptuc.TranscriptStore
	if cfg.RedisUrl != "" {
		redisAdapter := adapters.NewAdapterRedis(cfg, logger)
		if err := redisAdapter.Init(ctx); err != nil {
			logger.Fatal("Failed to initialize redis", zap.Error(err))
		}
		defer redisAdapter.Close(context.Background())
		hot = repository.NewRedisTranscriptStore(redisAdapter.GetClient(), cfg.TranscriptLimit, cfg.TranscriptTTL, logger)
	}
	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(cfg, logger)
		if err := mongoAdapter.Init(ctx); err != nil {
			logger.Fatal("Failed to initialize mongo", zap.Error(err))
		}
		defer mongoAdapter.Close(context.Background())
		archive = repository.NewMongoTranscriptStore(mongoAdapter.Database, logger)
	}

	transcripts := transcriptuc.NewTranscriptUseCase(decodeuc.NewDecodeUseCase(cfg.ParseWorkers), hot, archive, logger)
	engines := engineuc.NewEngineUseCase(func(ctx context.Context) (engineuc.EngineConn, error) {
		client, err := repository.StartEngine(ctx, cfg.EnginePath, cfg.EngineArgList(), logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}, transcripts, logger)

	eng, err := engines.Open(ctx)
	if err != nil {
		logger.Error("Failed to start engine", zap.Error(err))
		return
	}
	defer eng.Close()

	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if err := eng.Send(sc.Text()); err != nil {
				logger.Warnw("engine send failed", "error", err)
				return
			}
		}
		logger.Infow("stdin closed")
	}()

	out := json.NewEncoder(os.Stdout)
	err = engines.Pump(ctx, *engineID, eng.Lines(), func(rec transcriptuc.Record) error {
		return out.Encode(rec.View())
	})
	if err != nil && ctx.Err() == nil {
		logger.Errorw("engine session failed", "engine_id", *engineID, "error", err)
	}
	logger.Infow("engine session finished", "engine_id", *engineID)
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
