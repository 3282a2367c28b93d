package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPClassifier implementa Classifier contra un servidor de modelos externo
// que expone /invocations y /ping.
type HTTPClassifier struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClassifier construye el cliente; timeout <= 0 usa 10s.
func NewHTTPClassifier(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClassifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClassifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Ping verifica que el servidor de modelos responda. Se usa al arrancar para
// que un modelo inaccesible sea un error fatal y no un fallo en la primera
// solicitud.
func (c *HTTPClassifier) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return fmt.Errorf("%w: create ping request: %v", ErrModelLoad, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ping model server: %v", ErrModelLoad, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: model server ping status=%d", ErrModelLoad, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClassifier) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	bodyBytes, err := json.Marshal(invocationRequest{Instances: rows})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invocations", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("model server error", zap.Int("status", resp.StatusCode), zap.ByteString("body", respBody))
		return nil, fmt.Errorf("model server http error: status=%d", resp.StatusCode)
	}

	var ir invocationResponse
	if err := json.Unmarshal(respBody, &ir); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if ir.Error != "" {
		return nil, fmt.Errorf("model server error: %s", ir.Error)
	}
	return ir.Predictions, nil
}

type invocationRequest struct {
	Instances [][]float64 `json:"instances"`
}

type invocationResponse struct {
	Predictions []float64 `json:"predictions"`
	Error       string    `json:"error,omitempty"`
}
