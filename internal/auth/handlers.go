package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/auth/jwt"
	httperrors "github.com/mentallify/assistant/pkg/http/errors"
)

// HTTPHandlers serves the Google sign-in popup flow.
type HTTPHandlers struct {
	oauth  *OAuthService
	tokens *jwt.Manager
	logger zerolog.Logger
}

func NewHTTPHandlers(oauth *OAuthService, tokens *jwt.Manager, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		oauth:  oauth,
		tokens: tokens,
		logger: logger.With().Str("component", "auth_http").Logger(),
	}
}

// popupPage posts the session to the opener window and closes itself.
var popupPage = template.Must(template.New("popup").Parse(`<!doctype html>
<html>
  <head><meta charset="utf-8"/></head>
  <body>
    <script>
      try {
        const payload = {{.}};
        if (window.opener && !window.opener.closed) {
          window.opener.postMessage(payload, "*");
        }
      } catch (e) {
        console.error("postMessage failed", e);
      } finally {
        window.close();
      }
    </script>
    <p>Signing you in...</p>
  </body>
</html>
`))

const notConfiguredMessage = "OAuth not configured on server. Check environment variables."

type sessionPayload struct {
	Token   string `json:"token"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// GoogleStart handles GET /auth/google and returns the consent URL.
func (h *HTTPHandlers) GoogleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	authURL, err := h.oauth.AuthURL(newState(), r.URL.Query().Get("redirect_uri"))
	if errors.Is(err, ErrOAuthNotConfigured) {
		httperrors.RespondJSON(w, http.StatusInternalServerError, map[string]string{"error": notConfiguredMessage})
		return
	}
	if err != nil {
		httperrors.RespondInternalError(w, err.Error())
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, map[string]string{"auth_url": authURL})
}

// GoogleCallback handles GET /auth/google/callback. It issues a session
// token and hands it to the opener window.
func (h *HTTPHandlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing code parameter", http.StatusBadRequest)
		return
	}

	info, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error().Err(err).Msg("google callback failed")
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Issue(info.Email, info.Name, info.Picture)
	if err != nil {
		h.logger.Error().Err(err).Msg("issue session token")
		http.Error(w, "Server not configured for sessions", http.StatusInternalServerError)
		return
	}

	h.logger.Info().Str("email", info.Email).Msg("google sign-in")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := popupPage.Execute(w, sessionPayload{Token: token, Name: info.Name, Email: info.Email, Picture: info.Picture}); err != nil {
		h.logger.Error().Err(err).Msg("render popup page")
	}
}

// Me handles GET /auth/me and echoes the caller's session claims.
func (h *HTTPHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthRequired, "Authentication required")
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, map[string]string{
		"email":   claims.Email,
		"name":    claims.Name,
		"picture": claims.Picture,
	})
}

func newState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
