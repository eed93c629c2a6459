package chessvision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// DefaultBaseURL is the public prediction endpoint.
const DefaultBaseURL = "https://app.chessvision.ai/predict"

// Config holds the client's network parameters.
type Config struct {
	// BaseURL is the prediction endpoint.
	BaseURL string

	// Timeout bounds one prediction call. A call that exceeds it yields
	// an empty result, not an error.
	Timeout time.Duration

	// MinDelay and MaxDelay bound the randomized pause before each call.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultConfig returns the stock network parameters.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  10 * time.Second,
		MinDelay: 1 * time.Second,
		MaxDelay: 5 * time.Second,
	}
}

// Client calls the prediction service. It is safe for concurrent use;
// calls are serialized internally.
type Client struct {
	config Config
	http   *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a client with the stock parameters.
func New() *Client {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a client with the given parameters.
func NewWithConfig(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.MaxDelay < config.MinDelay {
		config.MaxDelay = config.MinDelay
	}
	return &Client{
		config: config,
		http:   &http.Client{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// request is the service's prediction request shape.
type request struct {
	BoardOrientation string `json:"board_orientation"`
	Cropped          bool   `json:"cropped"`
	CurrentPlayer    string `json:"current_player"`
	Image            string `json:"image"`
	PredictTurn      bool   `json:"predict_turn"`
}

// response is the service's prediction response shape.
type response struct {
	Result string `json:"result"`
	Turn   string `json:"turn"`
}

// Lookup predicts the position on a PNG board image. A timed-out call
// returns empty strings with a nil error; the caller's record simply
// goes without a position. Context cancellation is returned as an
// error.
func (c *Client) Lookup(ctx context.Context, image []byte) (fen, turn string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.pause(ctx); err != nil {
		return "", "", err
	}

	body, err := json.Marshal(request{
		BoardOrientation: "predict",
		Cropped:          true,
		CurrentPlayer:    "white",
		Image:            "data:image/png;base64," + base64.StdEncoding.EncodeToString(image),
		PredictTurn:      true,
	})
	if err != nil {
		return "", "", fmt.Errorf("chessvision: encode request: %w", err)
	}

	callCtx := ctx
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("chessvision: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The caller giving up is an error; the service being slow is
		// just a missing prediction.
		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", "", nil
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", "", nil
		}
		return "", "", fmt.Errorf("chessvision: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("chessvision: unexpected status %s", resp.Status)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", fmt.Errorf("chessvision: decode response: %w", err)
	}
	return parsed.Result, parsed.Turn, nil
}

// pause sleeps for a randomized interval between MinDelay and MaxDelay.
func (c *Client) pause(ctx context.Context) error {
	delay := c.config.MinDelay
	if span := c.config.MaxDelay - c.config.MinDelay; span > 0 {
		delay += time.Duration(c.rng.Int63n(int64(span)))
	}
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
