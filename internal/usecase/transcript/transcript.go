package transcript

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"usi_bridge/internal/domain/transcript"
	"usi_bridge/internal/errors"
	"usi_bridge/internal/usecase/decode"
)

type TranscriptStore interface {
	Append(ctx context.Context, entry transcript.Entry) error
	Recent(ctx context.Context, engineID string, limit int) ([]transcript.Entry, error)
}

// Record pairs a stored entry with its decoded command.
type Record struct {
	Entry  transcript.Entry
	Result decode.Result
}

type RecordView struct {
	ID         string            `json:"id"`
	EngineID   string            `json:"engine_id"`
	ReceivedAt time.Time         `json:"received_at"`
	Result     decode.ResultView `json:"result"`
}

func (r Record) View() RecordView {
	return RecordView{
		ID:         r.Entry.ID,
		EngineID:   r.Entry.EngineID,
		ReceivedAt: r.Entry.ReceivedAt,
		Result:     r.Result.View(),
	}
}

type TranscriptUseCase struct {
	decoder *decode.DecodeUseCase
	hot     TranscriptStore
	archive TranscriptStore
	log     *zap.SugaredLogger
	now     func() time.Time
}

// NewTranscriptUseCase accepts nil for either store.
func NewTranscriptUseCase(decoder *decode.DecodeUseCase, hot, archive TranscriptStore, log *zap.SugaredLogger) *TranscriptUseCase {
	return &TranscriptUseCase{
		decoder: decoder,
		hot:     hot,
		archive: archive,
		log:     log,
		now:     time.Now,
	}
}

func (u *TranscriptUseCase) stores() []TranscriptStore {
	return lo.Filter([]TranscriptStore{u.hot, u.archive}, func(s TranscriptStore, _ int) bool {
		return s != nil
	})
}

// Record decodes line and appends it to every configured store. A line that
// does not decode is still stored; only store failures are returned, and the
// record is returned with them.
func (u *TranscriptUseCase) Record(ctx context.Context, engineID, line string) (Record, error) {
	return u.store(ctx, engineID, u.decoder.Decode(line))
}

// RecordBatch decodes lines concurrently and stores them in input order.
func (u *TranscriptUseCase) RecordBatch(ctx context.Context, engineID string, lines []string) ([]Record, error) {
	results := u.decoder.DecodeBatch(lines)

	records := make([]Record, 0, len(results))
	for _, res := range results {
		rec, err := u.store(ctx, engineID, res)
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (u *TranscriptUseCase) store(ctx context.Context, engineID string, res decode.Result) (Record, error) {
	entry := transcript.Entry{
		ID:         uuid.NewString(),
		EngineID:   engineID,
		Line:       res.Line,
		ReceivedAt: u.now().UTC(),
	}
	if res.Err != nil {
		entry.Error = res.Err.Error()
		u.log.Warnw("undecodable engine line", "engine_id", engineID, "line", res.Line, "error", res.Err)
	} else {
		entry.Kind = res.Command.Keyword()
	}

	rec := Record{Entry: entry, Result: res}
	for _, s := range u.stores() {
		if err := s.Append(ctx, entry); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// Recent reads the newest limit entries of engineID, oldest first, from the
// hot store or the archive, and decodes them again.
func (u *TranscriptUseCase) Recent(ctx context.Context, engineID string, limit int, archive bool) ([]Record, error) {
	store, name := u.hot, "hot"
	if archive {
		store, name = u.archive, "archive"
	}
	if store == nil {
		return nil, fmt.Errorf("%w: no %s store configured", errors.ErrTranscriptNotFound, name)
	}

	entries, err := store.Recent(ctx, engineID, limit)
	if err != nil {
		return nil, err
	}

	results := u.decoder.DecodeBatch(lo.Map(entries, func(e transcript.Entry, _ int) string {
		return e.Line
	}))
	return lo.Map(entries, func(e transcript.Entry, i int) Record {
		return Record{Entry: e, Result: results[i]}
	}), nil
}
