package model

import (
	"context"
	"errors"
)

// Classifier es el limite con el artefacto entrenado: recibe una matriz
// (una fila por muestra) y devuelve una prediccion por fila.
type Classifier interface {
	Predict(ctx context.Context, rows [][]float64) ([]float64, error)
}

var (
	// ErrModelLoad indica que el artefacto no pudo cargarse; es fatal al arrancar.
	ErrModelLoad     = errors.New("model load failed")
	ErrShapeMismatch = errors.New("input shape mismatch")
)

// Info describe el artefacto cargado para health checks y logs.
type Info struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Checksum string `json:"checksum,omitempty"`
	Source   string `json:"source"`
}
