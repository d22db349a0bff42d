package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"manuaisprj/internal/model"
)

// PoolRepository is the pgxpool flavour of TrimRepository for postgres.
type PoolRepository struct {
	DB *pgxpool.Pool
}

func (r *PoolRepository) Count(ctx context.Context, brand, modelName, name string) (int, error) {
	var n int
	if err := r.DB.QueryRow(ctx, countQuery, brand, modelName, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("erro ao contar versões: %w", err)
	}
	return n, nil
}

func (r *PoolRepository) Save(ctx context.Context, rec model.TrimRecord) (string, error) {
	args, err := insertArgs(rec)
	if err != nil {
		return "", err
	}
	if _, err := r.DB.Exec(ctx, insertQuery, args...); err != nil {
		return "", fmt.Errorf("erro ao salvar %s: %w", rec.Name, err)
	}
	return args[0].(string), nil
}

func (r *PoolRepository) CreateSchema(ctx context.Context) error {
	if _, err := r.DB.Exec(ctx, schema); err != nil {
		return fmt.Errorf("erro ao criar tabela veiculos: %w", err)
	}
	return nil
}
