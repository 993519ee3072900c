package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"carboquiz/internal/domain"
)

// CatalogID is the row holding the live question catalog.
const CatalogID = "default"

// CatalogLoader loads the question catalog JSONB from Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM catalog WHERE id=$1`, CatalogID).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrCatalogNotFound
	}
	return questions, nil
}
