package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	httperrors "github.com/mentallify/assistant/pkg/http/errors"
)

const contactEmailPlaceholder = "{{ site_contact_email }}"

// HTTPHandler serves the contact page and form endpoint.
type HTTPHandler struct {
	svc              *Service
	frontendRoot     string
	siteContactEmail string
	logger           zerolog.Logger
}

func NewHTTPHandler(svc *Service, frontendRoot, siteContactEmail string, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:              svc,
		frontendRoot:     frontendRoot,
		siteContactEmail: siteContactEmail,
		logger:           logger.With().Str("component", "contact_http").Logger(),
	}
}

type submitResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HandleSend serves POST /send_contact.
func (h *HTTPHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}
	var msg Message
	_ = json.NewDecoder(r.Body).Decode(&msg)

	err := h.svc.Submit(r.Context(), msg)
	switch {
	case err == nil:
		httperrors.RespondJSON(w, http.StatusOK, submitResponse{OK: true, Message: "Message sent. We'll get back to you soon."})
	case errors.Is(err, ErrMissingFields):
		httperrors.RespondJSON(w, http.StatusBadRequest, submitResponse{Error: "Please provide name, email and message."})
	default:
		h.logger.Error().Err(err).Msg("contact delivery failed")
		httperrors.RespondJSON(w, http.StatusInternalServerError, submitResponse{Error: "Failed to send email. Check server logs."})
	}
}

// HandlePage serves GET /contact with the site contact address filled in.
func (h *HTTPHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}
	data, err := os.ReadFile(filepath.Join(h.frontendRoot, "contact.html"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read contact.html")
		http.Error(w, "contact.html not found on server", http.StatusInternalServerError)
		return
	}
	html := strings.ReplaceAll(string(data), contactEmailPlaceholder, h.siteContactEmail)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
