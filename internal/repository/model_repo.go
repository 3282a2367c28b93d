package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"credit-risk/internal/domain"
)

// ModelRepository define el contrato de lectura de artefactos del modelo.
//
// Esquema esperado:
//
//	CREATE TABLE model_artifacts (
//	    name       TEXT        NOT NULL,
//	    version    TEXT        NOT NULL,
//	    payload    BYTEA       NOT NULL,
//	    checksum   TEXT,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (name, version)
//	);
type ModelRepository interface {
	GetLatest(ctx context.Context, name string) (domain.ModelArtifact, error)
}

// PgModelRepository implementa ModelRepository usando pgxpool.
type PgModelRepository struct {
	pool *pgxpool.Pool
}

func NewPgModelRepository(pool *pgxpool.Pool) *PgModelRepository {
	return &PgModelRepository{pool: pool}
}

func (r *PgModelRepository) GetLatest(ctx context.Context, name string) (domain.ModelArtifact, error) {
	const query = `
		SELECT name, version, payload, COALESCE(checksum, ''), created_at
		FROM model_artifacts
		WHERE name = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var a domain.ModelArtifact
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&a.Name,
		&a.Version,
		&a.Payload,
		&a.Checksum,
		&a.CreatedAt,
	)
	return a, err
}
