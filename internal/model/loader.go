package model

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"

	"credit-risk/internal/domain"
)

// Checksum devuelve el digest BLAKE2b-256 en hex del artefacto.
func Checksum(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// LoadEnsembleFile lee y valida un artefacto desde disco.
func LoadEnsembleFile(path, expectedChecksum string) (*Ensemble, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrModelLoad, path, err)
	}
	e, err := LoadEnsemble(raw, expectedChecksum)
	if err != nil {
		return nil, err
	}
	e.info.Source = "file:" + path
	return e, nil
}

// LoadEnsemble decodifica y valida el artefacto. Si expectedChecksum no es
// vacio debe coincidir con el digest del contenido. Todo error envuelve
// ErrModelLoad.
func LoadEnsemble(raw []byte, expectedChecksum string) (*Ensemble, error) {
	checksum := Checksum(raw)
	expected := strings.ToLower(strings.TrimSpace(expectedChecksum))
	if expected != "" && expected != checksum {
		return nil, fmt.Errorf("%w: checksum mismatch: expected %s, got %s", ErrModelLoad, expected, checksum)
	}

	var a artifact
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode artifact: %v", ErrModelLoad, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after artifact", ErrModelLoad)
	}

	if err := validateArtifact(a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	estimators := make([]estimator, 0, len(a.Estimators))
	for _, est := range a.Estimators {
		switch est.Type {
		case estimatorTree:
			estimators = append(estimators, decisionTree{nodes: est.Nodes})
		case estimatorLogistic:
			estimators = append(estimators, logistic{coef: est.Coef, intercept: est.Intercept})
		}
	}

	return &Ensemble{
		info: Info{
			Name:     a.Name,
			Version:  a.Version,
			Checksum: checksum,
		},
		nFeatures:  a.NFeatures,
		estimators: estimators,
	}, nil
}

func validateArtifact(a artifact) error {
	if a.NFeatures != domain.FeatureCount {
		return fmt.Errorf("artifact expects %d features, service produces %d", a.NFeatures, domain.FeatureCount)
	}
	if len(a.FeatureNames) > 0 {
		if len(a.FeatureNames) != domain.FeatureCount {
			return fmt.Errorf("artifact lists %d feature names", len(a.FeatureNames))
		}
		for i, name := range a.FeatureNames {
			if name != domain.FeatureOrder[i] {
				return fmt.Errorf("feature %d is %q, expected %q", i, name, domain.FeatureOrder[i])
			}
		}
	}
	if len(a.Classes) != 2 || a.Classes[0] != 0 || a.Classes[1] != 1 {
		return fmt.Errorf("artifact classes must be [0 1], got %v", a.Classes)
	}
	if len(a.Estimators) == 0 {
		return fmt.Errorf("artifact has no estimators")
	}
	for i, est := range a.Estimators {
		var err error
		switch est.Type {
		case estimatorTree:
			err = validateTree(est.Nodes, a.NFeatures)
		case estimatorLogistic:
			if len(est.Coef) != a.NFeatures {
				err = fmt.Errorf("logistic has %d coefficients", len(est.Coef))
			}
		default:
			err = fmt.Errorf("unknown estimator type %q", est.Type)
		}
		if err != nil {
			return fmt.Errorf("estimator %d: %w", i, err)
		}
	}
	return nil
}

// validateTree exige hijos con indice mayor al padre, lo que garantiza que
// el recorrido termina.
func validateTree(nodes []treeNode, nFeatures int) error {
	if len(nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range nodes {
		if n.Leaf {
			if n.Class != 0 && n.Class != 1 {
				return fmt.Errorf("node %d: leaf class %d", i, n.Class)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return fmt.Errorf("node %d: feature index %d", i, n.Feature)
		}
		if n.Left <= i || n.Left >= len(nodes) || n.Right <= i || n.Right >= len(nodes) {
			return fmt.Errorf("node %d: invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}
