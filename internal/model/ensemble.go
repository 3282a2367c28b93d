package model

import (
	"context"
	"fmt"
)

const (
	estimatorTree     = "tree"
	estimatorLogistic = "logistic"
)

// artifact es el formato JSON del modelo exportado tras el entrenamiento.
type artifact struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	NFeatures    int             `json:"n_features"`
	FeatureNames []string        `json:"feature_names,omitempty"`
	Classes      []int           `json:"classes"`
	Estimators   []estimatorSpec `json:"estimators"`
}

type estimatorSpec struct {
	Type      string     `json:"type"`
	Nodes     []treeNode `json:"nodes,omitempty"`
	Coef      []float64  `json:"coef,omitempty"`
	Intercept float64    `json:"intercept,omitempty"`
}

// treeNode: si x[Feature] <= Threshold se sigue Left, si no Right.
type treeNode struct {
	Leaf      bool    `json:"leaf,omitempty"`
	Class     int     `json:"class,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
}

type estimator interface {
	vote(row []float64) int
}

type decisionTree struct {
	nodes []treeNode
}

func (t decisionTree) vote(row []float64) int {
	i := 0
	for {
		n := t.nodes[i]
		if n.Leaf {
			return n.Class
		}
		if row[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type logistic struct {
	coef      []float64
	intercept float64
}

func (l logistic) vote(row []float64) int {
	z := l.intercept
	for i, c := range l.coef {
		z += c * row[i]
	}
	if z >= 0 {
		return 1
	}
	return 0
}

// Ensemble es un clasificador en proceso con votacion mayoritaria. Tras la
// carga es inmutable, por lo que Predict es seguro para uso concurrente.
type Ensemble struct {
	info       Info
	nFeatures  int
	estimators []estimator
}

func (e *Ensemble) Info() Info {
	return e.info
}

// Predict devuelve la clase votada (0 o 1) por fila. Un empate resuelve a 0.
func (e *Ensemble) Predict(_ context.Context, rows [][]float64) ([]float64, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrShapeMismatch)
	}
	out := make([]float64, len(rows))
	for r, row := range rows {
		if len(row) != e.nFeatures {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShapeMismatch, r, len(row), e.nFeatures)
		}
		ones := 0
		for _, est := range e.estimators {
			ones += est.vote(row)
		}
		if ones*2 > len(e.estimators) {
			out[r] = 1
		}
	}
	return out, nil
}
