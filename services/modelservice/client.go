package modelservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 10 * time.Second
	// DefaultMaxRetries matches the upstream service guidance: retry twice
	// with exponential backoff before giving up.
	DefaultMaxRetries = 2
	// DefaultInitialBackoff is the first retry delay
	DefaultInitialBackoff = 500 * time.Millisecond
)

// Client calls the external statistical model that estimates admission
// probability for a cutoff rank. It satisfies predictor.ProbabilityModel.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// Config holds configuration for the model service client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// NewClient creates a new model service client
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = DefaultMaxRetries
	}

	return &Client{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
		maxRetries: config.MaxRetries,
	}
}

type probabilityRequest struct {
	CutoffRank int `json:"cutoff_rank"`
}

type probabilityResponse struct {
	Probability float64 `json:"probability"`
}

// Probability asks the model for the admission chance, in [0,100], for the
// given historical cutoff rank.
func (c *Client) Probability(ctx context.Context, cutoffRank int) (float64, error) {
	payload, err := json.Marshal(probabilityRequest{CutoffRank: cutoffRank})
	if err != nil {
		return 0, err
	}

	var lastErr error
	backoff := DefaultInitialBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		prob, err := c.doProbabilityRequest(ctx, payload)
		if err == nil {
			return prob, nil
		}
		lastErr = err
	}

	return 0, fmt.Errorf("model service unavailable after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) doProbabilityRequest(ctx context.Context, payload []byte) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/probability", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed probabilityResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("failed to decode model response: %w", err)
	}

	if parsed.Probability < 0 || parsed.Probability > 100 {
		return 0, fmt.Errorf("model returned probability %v outside [0,100]", parsed.Probability)
	}

	return parsed.Probability, nil
}
