package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"usi_bridge/internal/repository"
	"usi_bridge/internal/usecase/decode"
	engineuc "usi_bridge/internal/usecase/engine"
	transcriptuc "usi_bridge/internal/usecase/transcript"
)

// pipeEngine answers the handshake and stops on quit.
func pipeEngine(log *zap.SugaredLogger) engineuc.EngineStarter {
	return func(context.Context) (engineuc.EngineConn, error) {
		stdinR, stdinW := io.Pipe()
		stdoutR, stdoutW := io.Pipe()

		go func() {
			defer stdinR.Close()
			defer stdoutW.Close()

			sc := bufio.NewScanner(stdinR)
			for sc.Scan() {
				switch sc.Text() {
				case "usi":
					fmt.Fprintln(stdoutW, "id name Pipe")
					fmt.Fprintln(stdoutW, "option name USI_Hash type spin default 256 min 1 max 4096")
					fmt.Fprintln(stdoutW, "usiok")
				case "isready":
					fmt.Fprintln(stdoutW, "readyok")
				case "go":
					fmt.Fprintln(stdoutW, "info depth 1 score lowerbound")
					fmt.Fprintln(stdoutW, "bestmove resign")
				case "quit":
					return
				}
			}
		}()

		return repository.NewEngineClient(stdinW, stdoutR, log), nil
	}
}

func newServer(t *testing.T, start engineuc.EngineStarter) *httptest.Server {
	log := zap.NewNop().Sugar()
	transcripts := transcriptuc.NewTranscriptUseCase(decode.NewDecodeUseCase(1), nil, nil, log)
	h := NewEngineHandler(log, engineuc.NewEngineUseCase(start, transcripts, log))

	r := chi.NewRouter()
	r.Get("/engine/ws", h.HandleEngineWS)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/engine/ws?engine_id=pipe"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func readRecord(t *testing.T, conn *websocket.Conn) transcriptuc.RecordView {
	t.Helper()
	var view transcriptuc.RecordView
	require.NoError(t, conn.ReadJSON(&view))
	assert.Equal(t, "pipe", view.EngineID)
	return view
}

func TestEngineSession(t *testing.T) {
	conn := dial(t, newServer(t, pipeEngine(zap.NewNop().Sugar())))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("usi\nisready")))

	kinds := make([]string, 0, 4)
	for n := 0; n < 4; n++ {
		view := readRecord(t, conn)
		require.NotNil(t, view.Result.Command, view.Result.Error)
		kinds = append(kinds, view.Result.Command.Kind)
	}
	assert.Equal(t, []string{"id", "option", "usiok", "readyok"}, kinds)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("go")))

	bad := readRecord(t, conn)
	assert.Nil(t, bad.Result.Command)
	assert.Contains(t, bad.Result.Error, "illegal syntax")

	best := readRecord(t, conn)
	require.NotNil(t, best.Result.Command)
	assert.Equal(t, "bestmove", best.Result.Command.Kind)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("quit")))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestEngineNotConfigured(t *testing.T) {
	server := newServer(t, nil)

	resp, err := http.Get(server.URL + "/engine/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
