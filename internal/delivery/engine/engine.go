package engine

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"usi_bridge/internal/httpresponse"
	engineuc "usi_bridge/internal/usecase/engine"
	transcriptuc "usi_bridge/internal/usecase/transcript"
)

type EngineHandler struct {
	log     *zap.SugaredLogger
	engines *engineuc.EngineUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewEngineHandler(log *zap.SugaredLogger, engines *engineuc.EngineUseCase) *EngineHandler {
	return &EngineHandler{
		log:     log,
		engines: engines,
	}
}

// HandleEngineWS binds the websocket to a freshly started engine. Text frames
// from the client go to the engine line by line; every engine line is
// recorded and written back as a decoded transcript record.
func (h *EngineHandler) HandleEngineWS(w http.ResponseWriter, r *http.Request) {
	engineID := r.URL.Query().Get("engine_id")
	if engineID == "" {
		engineID = uuid.NewString()
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	eng, err := h.engines.Open(ctx)
	if err != nil {
		h.log.Errorw("failed to start engine", "engine_id", engineID, "error", err)
		httpresponse.WriteError(w, err)
		return
	}
	defer func() {
		if err := eng.Close(); err != nil {
			h.log.Infow("engine exited", "engine_id", engineID, "error", err)
		}
	}()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "engine_id", engineID, "error", err)
		return
	}
	h.log.Infow("engine session opened", "engine_id", engineID)

	var wg conc.WaitGroup
	wg.Go(func() {
		defer cancel()
		h.forward(conn, eng, engineID)
	})

	err = h.engines.Pump(ctx, engineID, eng.Lines(), func(rec transcriptuc.Record) error {
		return conn.WriteJSON(rec.View())
	})
	if err == nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "engine exited"))
	}

	conn.Close()
	wg.Wait()
	h.log.Infow("engine session closed", "engine_id", engineID)
}

// forward sends client frames to the engine until either side goes away.
func (h *EngineHandler) forward(conn *websocket.Conn, eng engineuc.EngineConn, engineID string) {
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		for _, line := range strings.Split(strings.ReplaceAll(string(msg), "\r\n", "\n"), "\n") {
			if line == "" {
				continue
			}
			if err := eng.Send(line); err != nil {
				h.log.Infow("engine send failed", "engine_id", engineID, "error", err)
				return
			}
		}
	}
}
