package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"manuaisprj/internal/config"
	"manuaisprj/internal/model"
	"manuaisprj/internal/output"
)

const schema = `
CREATE TABLE IF NOT EXISTS veiculos (
	id TEXT PRIMARY KEY,
	marca TEXT NOT NULL,
	modelo TEXT NOT NULL,
	versao TEXT NOT NULL,
	ano INTEGER,
	preco TEXT,
	imagem_url TEXT,
	manual_url TEXT,
	dados TEXT NOT NULL,
	criado_data TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_veiculos_versao ON veiculos(marca, modelo, versao);
`

const (
	countQuery  = `SELECT COUNT(*) FROM veiculos WHERE marca = $1 AND modelo = $2 AND versao = $3`
	insertQuery = `
		INSERT INTO veiculos
		(id, marca, modelo, versao, preco, imagem_url, manual_url, dados)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
)

var placeholder = regexp.MustCompile(`\$\d+`)

// TrimRepository stores trims through database/sql (lib/pq or sqlite).
type TrimRepository struct {
	DB     *sql.DB
	Driver string
}

func (r *TrimRepository) CreateSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("erro ao criar tabela veiculos: %w", err)
	}
	return nil
}

func (r *TrimRepository) Count(ctx context.Context, brand, modelName, name string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, r.rebind(countQuery), brand, modelName, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar versões: %w", err)
	}
	return n, nil
}

func (r *TrimRepository) Save(ctx context.Context, rec model.TrimRecord) (string, error) {
	args, err := insertArgs(rec)
	if err != nil {
		return "", err
	}
	if _, err := r.DB.ExecContext(ctx, r.rebind(insertQuery), args...); err != nil {
		return "", fmt.Errorf("erro ao salvar %s: %w", rec.Name, err)
	}
	return args[0].(string), nil
}

// rebind turns $n placeholders into ? for sqlite.
func (r *TrimRepository) rebind(q string) string {
	if r.Driver != config.DriverSQLite {
		return q
	}
	return placeholder.ReplaceAllString(q, "?")
}

func insertArgs(rec model.TrimRecord) ([]any, error) {
	dados, err := json.Marshal(output.Format(rec))
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar %s: %w", rec.Name, err)
	}
	return []any{
		uuid.New().String(),
		rec.Brand,
		rec.Model,
		rec.Name,
		nullString(rec.Price),
		nullString(rec.ImageURL),
		nullString(rec.ManualURL),
		string(dados),
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
