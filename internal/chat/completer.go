package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// CompleterConfig holds connection details for the chat-completion service.
type CompleterConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Completer asks an external completion service for a reply.
type Completer struct {
	httpClient *http.Client
	config     CompleterConfig
	logger     zerolog.Logger
	url        string
}

func NewCompleter(cfg CompleterConfig, logger zerolog.Logger) *Completer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	return &Completer{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
		logger:     logger.With().Str("component", "chat_completer").Logger(),
		url:        strings.TrimSuffix(cfg.URL, "/"),
	}
}

type completionRequest struct {
	Message string `json:"message"`
}

type completionResponse struct {
	Reply string `json:"reply"`
}

// Complete returns the service reply; an empty reply is an error.
func (c *Completer) Complete(ctx context.Context, message string) (string, error) {
	if c.url == "" {
		return "", fmt.Errorf("completion endpoint not configured")
	}
	body, err := json.Marshal(completionRequest{Message: message})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion returned status %d", resp.StatusCode)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode completion payload: %w", err)
	}
	reply := strings.TrimSpace(out.Reply)
	if reply == "" {
		return "", fmt.Errorf("completion returned empty reply")
	}
	return reply, nil
}
