package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	httperrors "github.com/mentallify/assistant/pkg/http/errors"
)

// EmptyMessageReply is returned with 400 for a blank message.
const EmptyMessageReply = "Please enter a message."

type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "chat_http").Logger(),
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// HandleChat serves POST /chat. Undecodable bodies count as empty messages.
func (h *HTTPHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}
	var req chatRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	message := strings.TrimSpace(req.Message)
	if message == "" {
		httperrors.RespondJSON(w, http.StatusBadRequest, Reply{Reply: EmptyMessageReply, Probs: []float64{}})
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, h.svc.Reply(r.Context(), message))
}
