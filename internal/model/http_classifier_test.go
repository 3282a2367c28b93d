package model

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"credit-risk/internal/config"
)

func TestHTTPClassifierPredict(t *testing.T) {
	var got invocationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/invocations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"predictions":[1]}`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL+"/", time.Second, zap.NewNop())
	out, err := c.Predict(context.Background(), [][]float64{{30, 0, 1, 0, 0, 0, 5000, 12, 0}})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(out) != 1 || out[0] != 1 {
		t.Fatalf("unexpected output %v", out)
	}
	if len(got.Instances) != 1 || len(got.Instances[0]) != 9 || got.Instances[0][6] != 5000 {
		t.Fatalf("unexpected instances sent %v", got.Instances)
	}
}

func TestHTTPClassifierPredictErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status 500": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"bad json": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		},
		"error payload": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error":"shape mismatch"}`))
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			c := NewHTTPClassifier(srv.URL, time.Second, nil)
			if _, err := c.Predict(context.Background(), [][]float64{{1}}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestHTTPClassifierPing(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()

	if err := NewHTTPClassifier(ok.URL, time.Second, nil).Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	err := NewHTTPClassifier(down.URL, time.Second, nil).Ping(context.Background())
	if !errors.Is(err, ErrModelLoad) {
		t.Fatalf("expected ErrModelLoad, got %v", err)
	}
}

func TestOpenHTTPSourceFailsFast(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	cfg := &config.Config{ModelSource: config.ModelSourceHTTP, ModelServerURL: down.URL, ModelServerTimeout: 1}
	if _, err := Open(context.Background(), cfg, zap.NewNop()); !errors.Is(err, ErrModelLoad) {
		t.Fatalf("expected ErrModelLoad, got %v", err)
	}
}
