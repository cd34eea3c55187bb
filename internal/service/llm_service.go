package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"problem-solver/internal/config"
)

const inferenceService = "inference"

// ErrLLMDisabled is returned when inference is switched off by configuration
var ErrLLMDisabled = errors.New("llm service disabled")

// LLMService handles interaction with the language model
type LLMService struct {
	provider    string
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	enabled     bool
	client      *http.Client
}

// NewLLMService creates a new LLM service for the configured provider
func NewLLMService(cfg config.LLMConfig) *LLMService {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	model := cfg.Model
	if cfg.Provider == "ollama" {
		if baseURL == "" || strings.Contains(baseURL, "api.openai.com") {
			baseURL = "http://localhost:11434"
		}
		if model == "" || model == "gpt-4" {
			model = "llama3"
		}
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &LLMService{
		provider:    cfg.Provider,
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     timeout,
		enabled:     cfg.Enabled,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	System  string         `json:"system,omitempty"`
	Prompt  string         `json:"prompt"`
	Format  string         `json:"format,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete sends one system instruction and prompt and returns the raw model text.
// Every failure, including the timeout, is an *ExternalServiceError.
func (s *LLMService) Complete(ctx context.Context, system, prompt string) (string, error) {
	if !s.enabled {
		return "", &ExternalServiceError{Service: inferenceService, Err: ErrLLMDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		text string
		err  error
	)
	if s.provider == "ollama" {
		text, err = s.completeOllama(ctx, system, prompt)
	} else {
		text, err = s.completeChat(ctx, system, prompt)
	}
	if err != nil {
		return "", &ExternalServiceError{Service: inferenceService, Err: err}
	}

	return strings.TrimSpace(text), nil
}

func (s *LLMService) completeChat(ctx context.Context, system, prompt string) (string, error) {
	body := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		MaxTokens:      s.maxTokens,
		Temperature:    s.temperature,
	}

	respBody, err := s.post(ctx, s.baseURL+"/chat/completions", body)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices in chat response")
	}

	return resp.Choices[0].Message.Content, nil
}

func (s *LLMService) completeOllama(ctx context.Context, system, prompt string) (string, error) {
	body := ollamaRequest{
		Model:  s.model,
		System: system,
		Prompt: prompt,
		Format: "json",
		Stream: false,
		Options: map[string]any{
			"temperature": s.temperature,
			"num_predict": s.maxTokens,
		},
	}

	respBody, err := s.post(ctx, s.baseURL+"/api/generate", body)
	if err != nil {
		var statusErr *httpStatusError
		// Pull the model in the background so the next attempt can succeed
		if errors.As(err, &statusErr) && statusErr.code == http.StatusNotFound && strings.Contains(statusErr.body, "model") {
			go s.PullModel()
		}
		return "", err
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}

	return resp.Response, nil
}

type httpStatusError struct {
	code int
	body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

func (s *LLMService) post(ctx context.Context, url string, payload any) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm service unreachable: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			slog.Error("Failed to close response body", "error", err)
		}
	}(resp.Body)

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("LLM service returned non-200 status", "status", resp.StatusCode, "body", string(respBody))
		return nil, &httpStatusError{code: resp.StatusCode, body: string(respBody)}
	}

	return respBody, nil
}

// PullModel asks an Ollama server to download the configured model
func (s *LLMService) PullModel() {
	slog.Info("Attempting to pull LLM model", "model", s.model)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := s.post(ctx, s.baseURL+"/api/pull", map[string]any{"name": s.model, "stream": false}); err != nil {
		slog.Error("Failed to pull model", "model", s.model, "error", err)
		return
	}

	slog.Info("LLM model pulled", "model", s.model)
}
