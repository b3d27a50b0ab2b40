package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/selfcheck"
	"github.com/mentallify/assistant/internal/symptom"
	httperrors "github.com/mentallify/assistant/pkg/http/errors"
	"github.com/mentallify/assistant/pkg/http/ws"
)

// Deps are the shared collaborators every connection's controller uses.
type Deps struct {
	Questions selfcheck.QuestionSource
	Scorer    selfcheck.RemoteScorer
	Chat      selfcheck.ChatSource
	Builtin   []symptom.Question
	Local     []symptom.Condition
	Keywords  symptom.KeywordSet
	Options   selfcheck.Options
}

// Handler runs one self-check controller per WebSocket connection.
type Handler struct {
	deps     Deps
	hub      *ws.Hub
	upgrader *websocket.Upgrader
	logger   zerolog.Logger
}

func NewHandler(deps Deps, hub *ws.Hub, upgrader *websocket.Upgrader, logger zerolog.Logger) *Handler {
	return &Handler{
		deps:     deps,
		hub:      hub,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "assistant_ws").Logger(),
	}
}

// HandleWebSocket upgrades the request and serves the assistant protocol.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	h.HandleConnection(conn)
}

// HandleConnection serves one upgraded connection until the peer leaves.
func (h *Handler) HandleConnection(conn *websocket.Conn) {
	wsConn := ws.NewConnection(conn, h.logger)
	h.hub.Register(wsConn)
	go wsConn.WritePump()

	view := &socketView{conn: hubRoute{hub: h.hub, id: wsConn.ID}, logger: h.logger}
	bank := selfcheck.NewQuestionBank(h.deps.Questions, h.deps.Builtin, h.logger).WithShuffle()
	scorer := selfcheck.NewScorer(h.deps.Scorer, h.deps.Local, h.logger)
	ctrl := selfcheck.NewController(view, bank, scorer, h.deps.Chat, h.deps.Keywords, h.deps.Options, h.logger)

	ctx, cancel := context.WithCancel(context.Background())
	var inflight sync.WaitGroup
	defer func() {
		cancel()
		inflight.Wait()
		ctrl.Close()
		h.hub.Unregister(wsConn.ID)
	}()

	view.emit(ws.TypeReady, ws.ReadyPayload{ConnectionID: wsConn.ID.String()})

	async := func(fn func(context.Context) error) {
		inflight.Add(1)
		go func() {
			defer inflight.Done()
			if err := fn(ctx); err != nil && !expected(err) {
				h.logger.Warn().Err(err).Msg("self-check operation failed")
			}
		}()
	}

	wsConn.ReadPump(func(msg ws.Message) error {
		switch msg.Type {
		case ws.TypeInput:
			var p ws.InputPayload
			if err := msg.Decode(&p); err != nil {
				return h.sendError(view, httperrors.ErrCodeInvalidPayload, "Invalid input payload")
			}
			if err := ctrl.HandleInput(ctx, p.Text); err != nil && !expected(err) {
				return err
			}
			return nil
		case ws.TypeAnswer:
			var p ws.AnswerPayload
			if err := msg.Decode(&p); err != nil {
				return h.sendError(view, httperrors.ErrCodeInvalidPayload, "Invalid answer payload")
			}
			if err := ctrl.Answer(p.Yes); err != nil && !expected(err) {
				return err
			}
			return nil
		case ws.TypeStart:
			async(ctrl.Start)
		case ws.TypeRestart:
			async(ctrl.Restart)
		case ws.TypeFinish:
			async(ctrl.Finish)
		case ws.TypePing:
			view.emit(ws.TypePong, nil)
		default:
			return h.sendError(view, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
		}
		return nil
	})
}

func (h *Handler) sendError(view *socketView, code, message string) error {
	view.emit(ws.TypeError, ws.ErrorPayload{Code: code, Message: message})
	return errors.New(message)
}

// expected reports errors that the controller already rendered to the user.
func expected(err error) bool {
	return errors.Is(err, selfcheck.ErrInvalidAnswer) ||
		errors.Is(err, selfcheck.ErrNotActive) ||
		errors.Is(err, selfcheck.ErrEmptyQuestionBank) ||
		errors.Is(err, selfcheck.ErrClosed)
}
