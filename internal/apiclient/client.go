package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/selfcheck"
	"github.com/mentallify/assistant/internal/symptom"
)

const defaultTimeout = 8 * time.Second

// Config holds connection details for the assistant backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the question, scoring and chat endpoints. Any non-2xx
// status or undecodable body is reported as an error so callers can fall back.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

var (
	_ selfcheck.QuestionSource = (*Client)(nil)
	_ selfcheck.RemoteScorer   = (*Client)(nil)
	_ selfcheck.ChatSource     = (*Client)(nil)
)

func New(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     logger.With().Str("component", "api_client").Logger(),
	}
}

type questionsResponse struct {
	Questions *[]symptom.Question `json:"questions"`
}

type scoreRequest struct {
	Symptoms []string `json:"yes_symptoms"`
}

type scoreResponse struct {
	Results *[]symptom.ScoreResult `json:"results"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// FetchQuestions calls GET /quiz_questions?n=N.
func (c *Client) FetchQuestions(ctx context.Context, n int) ([]symptom.Question, error) {
	values := url.Values{}
	values.Set("n", strconv.Itoa(n))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/quiz_questions?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var payload questionsResponse
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	if payload.Questions == nil {
		return nil, fmt.Errorf("get questions: response has no questions field")
	}
	return *payload.Questions, nil
}

// ScoreRemote calls POST /quiz_result. A response without a
// results field is malformed; an empty results list is not.
func (c *Client) ScoreRemote(ctx context.Context, symptoms []string) ([]symptom.ScoreResult, error) {
	if symptoms == nil {
		symptoms = []string{}
	}
	var payload scoreResponse
	if err := c.postJSON(ctx, "/quiz_result", scoreRequest{Symptoms: symptoms}, &payload); err != nil {
		return nil, fmt.Errorf("quiz result: %w", err)
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("quiz result: response has no results field")
	}
	return *payload.Results, nil
}

// Chat calls POST /chat and returns the reply text.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var payload chatResponse
	if err := c.postJSON(ctx, "/chat", chatRequest{Message: message}, &payload); err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return payload.Reply, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.logger.Debug().Str("url", req.URL.Path).Int("status", resp.StatusCode).Msg("backend rejected request")
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
