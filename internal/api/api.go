// Package api implements translit.Client over the transliteration service's HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/longkey1/translitc/internal/logger"
	"github.com/longkey1/translitc/internal/translit"
)

const moduleName = "api"

// ErrUnexpectedShape is returned when a transliteration response is not an
// object holding exactly one string field.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// TransliterateRequest is the body of a transliteration call
type TransliterateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"` // "" for auto-detect
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: status %d: %s", e.StatusCode, e.Body)
}

// Config defines the configuration interface for the client
type Config interface {
	GetEndpoint(name string) (string, error)
	GetToken() string
	GetHTTPTimeout() time.Duration
}

// Client implements the translit.Client interface over HTTP
type Client struct {
	config     Config
	httpClient *http.Client
	logger     logger.Logger
}

var _ translit.Client = (*Client)(nil)

// NewClient creates a new service client instance
func NewClient(config Config, log logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.GetHTTPTimeout()},
		logger:     log,
	}
}

// Transliterate sends text to the transliteration endpoint and returns the sole result value
func (c *Client) Transliterate(ctx context.Context, text string, lang translit.Language) (string, error) {
	endpoint, err := c.config.GetEndpoint("transliterate")
	if err != nil {
		return "", err
	}

	body, err := c.postJSON(ctx, endpoint, TransliterateRequest{
		Text:     text,
		Language: string(lang),
	})
	if err != nil {
		return "", err
	}

	result, err := extractSoleResultField(body)
	if err != nil {
		return "", err
	}
	return result, nil
}

// Contribute submits a correction; the response body is ignored
func (c *Client) Contribute(ctx context.Context, correction translit.Correction) error {
	endpoint, err := c.config.GetEndpoint("contribute")
	if err != nil {
		return err
	}

	_, err = c.postJSON(ctx, endpoint, correction)
	return err
}

// Health queries the health endpoint
func (c *Client) Health(ctx context.Context) (*translit.HealthStatus, error) {
	endpoint, err := c.config.GetEndpoint("health")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	// The health endpoint reports failures with a 500 and a status payload.
	var status translit.HealthStatus
	if err := json.Unmarshal(data, &status); err != nil {
		if resp.StatusCode/100 != 2 {
			return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
		}
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return &status, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	c.logger.Debug(moduleName, "request settled", map[string]interface{}{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"elapsed":  time.Since(start).String(),
	})

	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if token := c.config.GetToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// extractSoleResultField unwraps a response of the form {"<any key>": "<result>"}.
// The key name is not part of the contract, so it is never inspected.
func extractSoleResultField(body []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if len(fields) != 1 {
		return "", fmt.Errorf("%w: expected exactly one field, got %d", ErrUnexpectedShape, len(fields))
	}

	for _, raw := range fields {
		var value *string
		if err := json.Unmarshal(raw, &value); err != nil || value == nil {
			return "", fmt.Errorf("%w: result is not a string", ErrUnexpectedShape)
		}
		return *value, nil
	}
	return "", ErrUnexpectedShape
}
