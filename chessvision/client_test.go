package chessvision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(url string, timeout time.Duration) *Client {
	return NewWithConfig(Config{
		BaseURL:  url,
		Timeout:  timeout,
		MinDelay: 0,
		MaxDelay: 0,
	})
}

func TestLookup(t *testing.T) {
	var got request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Decode request: %v", err)
		}
		json.NewEncoder(w).Encode(response{
			Result: "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R",
			Turn:   "black",
		})
	}))
	defer server.Close()

	c := testClient(server.URL, 5*time.Second)
	fen, turn, err := c.Lookup(context.Background(), []byte("png-data"))
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if fen == "" || turn != "black" {
		t.Errorf("Unexpected result: fen %q turn %q", fen, turn)
	}

	if got.BoardOrientation != "predict" || !got.Cropped || !got.PredictTurn {
		t.Errorf("Unexpected request fields: %+v", got)
	}
	if !strings.HasPrefix(got.Image, "data:image/png;base64,") {
		t.Errorf("Expected a data URL, got %q", got.Image)
	}
}

func TestLookupTimeoutIsNotAnError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	c := testClient(server.URL, 50*time.Millisecond)
	fen, turn, err := c.Lookup(context.Background(), []byte("png-data"))
	if err != nil {
		t.Fatalf("Expected a silent empty result on timeout, got %v", err)
	}
	if fen != "" || turn != "" {
		t.Errorf("Expected empty result, got fen %q turn %q", fen, turn)
	}
}

func TestLookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := testClient(server.URL, 5*time.Second)
	if _, _, err := c.Lookup(context.Background(), []byte("png-data")); err == nil {
		t.Error("Expected an error for a 500 response")
	}
}

func TestLookupCancelDuringPause(t *testing.T) {
	c := NewWithConfig(Config{
		BaseURL:  "http://unreachable.invalid",
		MinDelay: time.Hour,
		MaxDelay: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	if _, _, err := c.Lookup(ctx, []byte("png-data")); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
