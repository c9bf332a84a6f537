package engine

import (
	"context"

	"go.uber.org/zap"

	"usi_bridge/internal/errors"
	"usi_bridge/internal/usecase/transcript"
)

type EngineConn interface {
	Send(line string) error
	Lines() <-chan string
	Close() error
}

// EngineStarter opens a fresh engine connection bound to ctx.
type EngineStarter func(ctx context.Context) (EngineConn, error)

type Recorder interface {
	Record(ctx context.Context, engineID, line string) (transcript.Record, error)
}

type EngineUseCase struct {
	start    EngineStarter
	recorder Recorder
	log      *zap.SugaredLogger
}

func NewEngineUseCase(start EngineStarter, recorder Recorder, log *zap.SugaredLogger) *EngineUseCase {
	return &EngineUseCase{
		start:    start,
		recorder: recorder,
		log:      log,
	}
}

func (u *EngineUseCase) Open(ctx context.Context) (EngineConn, error) {
	if u.start == nil {
		return nil, errors.ErrEngineNotConfigured
	}
	return u.start(ctx)
}

// Pump records every line read from lines and passes it to emit, in order.
// Lines that fail to decode or to store are passed on as well. Pump returns
// nil once lines is closed, ctx.Err() on cancellation, or the first emit
// error.
func (u *EngineUseCase) Pump(ctx context.Context, engineID string, lines <-chan string, emit func(transcript.Record) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			rec, err := u.recorder.Record(ctx, engineID, line)
			if err != nil {
				u.log.Errorw("failed to store engine line", "engine_id", engineID, "error", err)
			}

			if err := emit(rec); err != nil {
				return err
			}
		}
	}
}
