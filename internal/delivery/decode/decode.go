package decode

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"usi_bridge/internal/httpresponse"
	decodeuc "usi_bridge/internal/usecase/decode"
	transcriptuc "usi_bridge/internal/usecase/transcript"
	"usi_bridge/internal/utils"
)

const defaultTranscriptLimit = 100

type DecodeRequest struct {
	Line string `json:"line"`
}

type DecodeBatchRequest struct {
	EngineID string   `json:"engine_id,omitempty"`
	Lines    []string `json:"lines"`
}

type DecodeHandler struct {
	log         *zap.SugaredLogger
	decoder     *decodeuc.DecodeUseCase
	transcripts *transcriptuc.TranscriptUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewDecodeHandler(log *zap.SugaredLogger, decoder *decodeuc.DecodeUseCase, transcripts *transcriptuc.TranscriptUseCase) *DecodeHandler {
	return &DecodeHandler{
		log:         log,
		decoder:     decoder,
		transcripts: transcripts,
	}
}

func (h *DecodeHandler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		h.log.Warnw("bad decode request", "error", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	res := h.decoder.Decode(req.Line)
	if res.Err != nil {
		httpresponse.WriteError(w, res.Err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, res.View().Command)
}

// HandleDecodeBatch decodes every line of the request. With an engine_id the
// lines are also recorded in that engine's transcript.
func (h *DecodeHandler) HandleDecodeBatch(w http.ResponseWriter, r *http.Request) {
	var req DecodeBatchRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		h.log.Warnw("bad batch request", "error", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	if req.EngineID == "" {
		results := h.decoder.DecodeBatch(req.Lines)
		httpresponse.WriteResponseWithStatus(w, http.StatusOK, lo.Map(results, func(res decodeuc.Result, _ int) decodeuc.ResultView {
			return res.View()
		}))
		return
	}

	records, err := h.transcripts.RecordBatch(r.Context(), req.EngineID, req.Lines)
	if err != nil {
		h.log.Errorw("failed to record batch", "engine_id", req.EngineID, "error", err)
		httpresponse.WriteError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, lo.Map(records, func(rec transcriptuc.Record, _ int) transcriptuc.RecordView {
		return rec.View()
	}))
}

func (h *DecodeHandler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	engineID := chi.URLParam(r, "engineID")

	limit := defaultTranscriptLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	archive := r.URL.Query().Get("source") == "archive"

	records, err := h.transcripts.Recent(r.Context(), engineID, limit, archive)
	if err != nil {
		h.log.Infow("transcript lookup failed", "engine_id", engineID, "archive", archive, "error", err)
		httpresponse.WriteError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, lo.Map(records, func(rec transcriptuc.Record, _ int) transcriptuc.RecordView {
		return rec.View()
	}))
}

// HandleDecodeWS decodes each text frame as one line and answers with its
// result.
func (h *DecodeHandler) HandleDecodeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Infow("decode websocket closed", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		if err = conn.WriteJSON(h.decoder.Decode(string(msg)).View()); err != nil {
			h.log.Infow("decode websocket write failed", "error", err)
			return
		}
	}
}
