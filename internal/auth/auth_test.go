package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/mentallify/assistant/internal/auth/jwt"
)

func newTestOAuth(t *testing.T) *OAuthService {
	t.Helper()
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			require.NoError(t, r.ParseForm())
			if r.Form.Get("code") != "good" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
		case "/userinfo":
			assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":"42","email":"ada@example.com","name":"Ada \"L\"","picture":"https://img/a.png"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(provider.Close)

	svc := NewOAuthService(OAuthConfig{ClientID: "cid", ClientSecret: "csecret"}, zerolog.Nop())
	svc.config.Endpoint = oauth2.Endpoint{
		AuthURL:   provider.URL + "/auth",
		TokenURL:  provider.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	svc.userInfoURL = provider.URL + "/userinfo"
	return svc
}

func TestAuthURL(t *testing.T) {
	svc := NewOAuthService(OAuthConfig{ClientID: "cid", ClientSecret: "csecret"}, zerolog.Nop())
	raw, err := svc.AuthURL("st", "http://example.com/cb")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "http://example.com/cb", q.Get("redirect_uri"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
}

func TestAuthURLNotConfigured(t *testing.T) {
	svc := NewOAuthService(OAuthConfig{}, zerolog.Nop())
	_, err := svc.AuthURL("st", "")
	assert.ErrorIs(t, err, ErrOAuthNotConfigured)
}

func TestExchange(t *testing.T) {
	svc := newTestOAuth(t)
	info, err := svc.Exchange(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", info.Email)
	assert.Equal(t, "https://img/a.png", info.Picture)

	_, err = svc.Exchange(context.Background(), "bad")
	assert.Error(t, err)
}

func TestGoogleStartHandler(t *testing.T) {
	tokens := jwt.NewManager(jwt.TokenConfig{Secret: []byte("s")})

	h := NewHTTPHandlers(NewOAuthService(OAuthConfig{ClientID: "cid", ClientSecret: "cs"}, zerolog.Nop()), tokens, zerolog.Nop())
	rec := httptest.NewRecorder()
	h.GoogleStart(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"auth_url":"https://accounts.google.com/`)

	h = NewHTTPHandlers(NewOAuthService(OAuthConfig{}, zerolog.Nop()), tokens, zerolog.Nop())
	rec = httptest.NewRecorder()
	h.GoogleStart(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"OAuth not configured on server. Check environment variables."}`, rec.Body.String())
}

func TestGoogleCallbackHandler(t *testing.T) {
	tokens := jwt.NewManager(jwt.TokenConfig{Secret: []byte("s")})
	h := NewHTTPHandlers(newTestOAuth(t), tokens, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.GoogleCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing code parameter")

	rec = httptest.NewRecorder()
	h.GoogleCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=bad", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	h.GoogleCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=good", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "window.opener.postMessage(payload")
	assert.Contains(t, body, `"email":"ada@example.com"`)
	assert.NotContains(t, body, `Ada "L"`)
}

func TestMiddlewareAndMe(t *testing.T) {
	tokens := jwt.NewManager(jwt.TokenConfig{Secret: []byte("s")})
	h := NewHTTPHandlers(NewOAuthService(OAuthConfig{}, zerolog.Nop()), tokens, zerolog.Nop())
	handler := Middleware(tokens, zerolog.Nop())(http.HandlerFunc(h.Me))

	token, err := tokens.Issue("ada@example.com", "Ada", "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"bad token", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
