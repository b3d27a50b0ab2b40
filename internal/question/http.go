package question

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/symptom"
	httperrors "github.com/mentallify/assistant/pkg/http/errors"
)

// HTTPHandler exposes the question and scoring endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// HandleQuestions serves GET /quiz_questions?n=12.
func (h *HTTPHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil {
		n = symptom.DefaultQuestionCount
	}
	httperrors.RespondJSON(w, http.StatusOK, QuestionsResponse{Questions: h.svc.Questions(r.Context(), n)})
}

// HandleScore serves POST /quiz_result.
func (h *HTTPHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	results := h.svc.Score(r.Context(), req.Symptoms)
	h.logger.Debug().Int("symptoms", len(req.Symptoms)).Int("results", len(results)).Msg("scored symptoms")
	httperrors.RespondJSON(w, http.StatusOK, ScoreResponse{Results: results})
}
