package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"credit-risk/internal/domain"
	"credit-risk/internal/metrics"
	"credit-risk/internal/model"
)

var (
	ErrUnexpectedModelOutput = errors.New("unexpected model output")
	ErrInferenceFailed       = errors.New("inference failed")
)

// InferenceService arma el vector de una RiskQuery, invoca al clasificador
// una sola vez y traduce la salida a un Verdict. No guarda estado por
// solicitud; el clasificador inyectado se trata como solo lectura.
type InferenceService struct {
	classifier model.Classifier
	encoder    *Encoder
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewInferenceService(classifier model.Classifier, encoder *Encoder, logger *zap.Logger, m *metrics.Metrics) *InferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InferenceService{
		classifier: classifier,
		encoder:    encoder,
		logger:     logger,
		metrics:    m,
	}
}

// BuildFeatureVector expone el vector que se enviaria al modelo.
func (s *InferenceService) BuildFeatureVector(q domain.RiskQuery) (domain.FeatureVector, error) {
	return s.encoder.BuildFeatureVector(q)
}

// Predict clasifica q. Los errores no se reintentan: ErrInvalidCategory,
// ErrUnexpectedModelOutput y ErrInferenceFailed indican un defecto, no una
// condicion transitoria.
func (s *InferenceService) Predict(ctx context.Context, q domain.RiskQuery) (domain.Verdict, error) {
	if s.classifier == nil || s.encoder == nil {
		return domain.VerdictLowRisk, errors.New("inference service not configured")
	}

	vector, err := s.encoder.BuildFeatureVector(q)
	if err != nil {
		s.metrics.ObserveFailure(metrics.FailureInvalidCategory)
		return domain.VerdictLowRisk, err
	}

	start := time.Now()
	out, err := s.classifier.Predict(ctx, vector.Matrix())
	s.metrics.ObserveInference(time.Since(start))
	if err != nil {
		s.metrics.ObserveFailure(metrics.FailureInference)
		s.logger.Error("classifier predict failed", zap.Error(err), zap.Float64s("features", vector[:]))
		return domain.VerdictLowRisk, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}

	verdict, err := verdictFromOutput(out)
	if err != nil {
		s.metrics.ObserveFailure(metrics.FailureUnexpectedOutput)
		s.logger.Error("classifier returned unexpected output", zap.Float64s("output", out), zap.Float64s("features", vector[:]))
		return domain.VerdictLowRisk, err
	}

	s.metrics.ObserveVerdict(verdict)
	return verdict, nil
}

func verdictFromOutput(out []float64) (domain.Verdict, error) {
	if len(out) != 1 {
		return domain.VerdictLowRisk, fmt.Errorf("%w: expected 1 value, got %d", ErrUnexpectedModelOutput, len(out))
	}
	switch out[0] {
	case 1:
		return domain.VerdictHighRisk, nil
	case 0:
		return domain.VerdictLowRisk, nil
	default:
		return domain.VerdictLowRisk, fmt.Errorf("%w: %v", ErrUnexpectedModelOutput, out[0])
	}
}
