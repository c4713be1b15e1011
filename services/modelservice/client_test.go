package modelservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/probability" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		var req probabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.CutoffRank != 25000 {
			t.Errorf("expected cutoff_rank 25000, got %d", req.CutoffRank)
		}

		json.NewEncoder(w).Encode(probabilityResponse{Probability: 72.5})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	prob, err := client.Probability(context.Background(), 25000)
	if err != nil {
		t.Fatalf("Probability returned error: %v", err)
	}
	if prob != 72.5 {
		t.Errorf("expected probability 72.5, got %v", prob)
	}
}

func TestProbabilityRetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			http.Error(w, "try again", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(probabilityResponse{Probability: 40})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, MaxRetries: 2})

	prob, err := client.Probability(context.Background(), 9000)
	if err != nil {
		t.Fatalf("Probability returned error: %v", err)
	}
	if prob != 40 {
		t.Errorf("expected probability 40, got %v", prob)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestProbabilityExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, MaxRetries: 1})

	if _, err := client.Probability(context.Background(), 9000); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}

func TestProbabilityRejectsOutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(probabilityResponse{Probability: 140})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, MaxRetries: 1})

	if _, err := client.Probability(context.Background(), 9000); err == nil {
		t.Fatal("expected error for probability outside [0,100]")
	}
}

func TestProbabilityHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, MaxRetries: 5})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Probability(ctx, 9000); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
