package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"credit-risk/internal/config"
	"credit-risk/internal/db"
	"credit-risk/internal/repository"
)

// Loaded es el handle inmutable que se inyecta en el pipeline de inferencia.
type Loaded struct {
	Classifier Classifier
	Info       Info
}

// LoadFromRepository lee la version mas reciente de name. Si expectedChecksum
// esta vacio se usa el checksum guardado junto al artefacto.
func LoadFromRepository(ctx context.Context, repo repository.ModelRepository, name, expectedChecksum string) (*Ensemble, error) {
	a, err := repo.GetLatest(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no artifact named %q", ErrModelLoad, name)
		}
		return nil, fmt.Errorf("%w: fetch artifact %q: %v", ErrModelLoad, name, err)
	}
	if expectedChecksum == "" {
		expectedChecksum = a.Checksum
	}
	e, err := LoadEnsemble(a.Payload, expectedChecksum)
	if err != nil {
		return nil, err
	}
	if e.info.Name == "" {
		e.info.Name = a.Name
	}
	if e.info.Version == "" {
		e.info.Version = a.Version
	}
	e.info.Source = "postgres:" + a.Name + "@" + a.Version
	return e, nil
}

// Open carga el clasificador segun cfg.ModelSource. Cualquier error envuelve
// ErrModelLoad y el llamador debe abortar el arranque.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Loaded, error) {
	switch cfg.ModelSource {
	case config.ModelSourceFile:
		e, err := LoadEnsembleFile(cfg.ModelPath, cfg.ModelChecksum)
		if err != nil {
			return Loaded{}, err
		}
		return Loaded{Classifier: e, Info: e.Info()}, nil

	case config.ModelSourcePostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return Loaded{}, fmt.Errorf("%w: db connect: %v", ErrModelLoad, err)
		}
		// El artefacto se lee una sola vez; no hace falta mantener el pool.
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			return Loaded{}, fmt.Errorf("%w: db ping: %v", ErrModelLoad, err)
		}
		e, err := LoadFromRepository(ctx, repository.NewPgModelRepository(pool), cfg.ModelName, cfg.ModelChecksum)
		if err != nil {
			return Loaded{}, err
		}
		return Loaded{Classifier: e, Info: e.Info()}, nil

	case config.ModelSourceHTTP:
		c := NewHTTPClassifier(cfg.ModelServerURL, time.Duration(cfg.ModelServerTimeout)*time.Second, logger)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := c.Ping(pingCtx); err != nil {
			return Loaded{}, err
		}
		return Loaded{
			Classifier: c,
			Info:       Info{Name: cfg.ModelName, Source: "http:" + cfg.ModelServerURL},
		}, nil

	default:
		return Loaded{}, fmt.Errorf("%w: unknown model source %q", ErrModelLoad, cfg.ModelSource)
	}
}
