package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/prajwalbhunte45/chatbot-project/internal/models"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	maxErrorBodyBytes    = 512
)

// HTTPStatusError captures non-2xx upstream responses.
type HTTPStatusError struct {
	StatusCode int
	Message    string
}

func (e *HTTPStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("openai: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("openai: unexpected status %d: %s", e.StatusCode, e.Message)
}

type responsesRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// responsesPayload is decoded loosely: text-bearing fields stay raw so a
// non-string value is ignored instead of failing the whole decode.
type responsesPayload struct {
	OutputText json.RawMessage `json:"output_text"`
	Text       json.RawMessage `json:"text"`
	Output     []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string          `json:"type"`
			Text json.RawMessage `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

type errorPayload struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIService talks to an OpenAI-compatible Responses endpoint.
type OpenAIService struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type OpenAIOption func(*OpenAIService)

func WithOpenAIHTTPClient(c *http.Client) OpenAIOption {
	return func(s *OpenAIService) {
		s.httpClient = c
	}
}

// NewOpenAIService builds the client. The default HTTP client has no
// timeout; the request context bounds the call.
func NewOpenAIService(baseURL, apiKey, model string, opts ...OpenAIOption) (*OpenAIService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai: API key must not be empty")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("openai: model must not be empty")
	}

	s := &OpenAIService{
		baseURL:    strings.TrimSpace(baseURL),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *OpenAIService) Name() string { return "openai" }

func (s *OpenAIService) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func responsesURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultOpenAIBaseURL
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/responses"
	}
	return base + "/v1/responses"
}

func (s *OpenAIService) Generate(ctx context.Context, prompt string) (models.ProviderResult, error) {
	body, err := json.Marshal(responsesRequest{Model: s.model, Input: prompt})
	if err != nil {
		return models.ProviderResult{}, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, responsesURL(s.baseURL), bytes.NewReader(body))
	if err != nil {
		return models.ProviderResult{}, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return models.ProviderResult{}, err
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return models.ProviderResult{}, fmt.Errorf("openai: read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return models.ProviderResult{}, statusError(res.StatusCode, raw)
	}

	return decodeResponses(raw)
}

func statusError(code int, body []byte) *HTTPStatusError {
	var p errorPayload
	if json.Unmarshal(body, &p) == nil && p.Error.Message != "" {
		return &HTTPStatusError{StatusCode: code, Message: p.Error.Message}
	}
	return &HTTPStatusError{StatusCode: code, Message: truncateUTF8(strings.TrimSpace(string(body)), maxErrorBodyBytes)}
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func decodeResponses(raw []byte) (models.ProviderResult, error) {
	var p responsesPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.ProviderResult{}, fmt.Errorf("openai: decode response: %w", err)
	}

	res := models.ProviderResult{Raw: json.RawMessage(raw)}

	if s, ok := rawString(p.OutputText); ok {
		res.OutputText = &s
	} else if s, ok := joinOutputText(p); ok {
		res.OutputText = &s
	}
	if s, ok := rawString(p.Text); ok {
		res.Text = &s
	}
	return res, nil
}

// joinOutputText concatenates every output_text content item of the
// response's message outputs.
func joinOutputText(p responsesPayload) (string, bool) {
	var (
		b     strings.Builder
		found bool
	)
	for _, item := range p.Output {
		for _, c := range item.Content {
			if c.Type != "output_text" {
				continue
			}
			if s, ok := rawString(c.Text); ok {
				b.WriteString(s)
				found = true
			}
		}
	}
	return b.String(), found
}

func rawString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
