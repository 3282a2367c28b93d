package model

import "context"

// StubClassifier permite tests sin un artefacto real. Registra cada llamada.
type StubClassifier struct {
	Output []float64
	Err    error

	Calls    int
	LastRows [][]float64
}

func (s *StubClassifier) Predict(_ context.Context, rows [][]float64) ([]float64, error) {
	s.Calls++
	s.LastRows = rows
	return s.Output, s.Err
}
