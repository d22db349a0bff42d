package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manuaisprj/internal/config"
	"manuaisprj/internal/db"
	"manuaisprj/internal/model"
)

func newSQLite(t *testing.T) *TrimRepository {
	t.Helper()
	conn, err := db.New(config.DriverSQLite, filepath.Join(t.TempDir(), "dados.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repo := &TrimRepository{DB: conn, Driver: config.DriverSQLite}
	require.NoError(t, repo.CreateSchema(context.Background()))
	return repo
}

func TestTrimRepository_SaveAndCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newSQLite(t)

	n, err := repo.Count(ctx, "citroen", "C3", "C3 Feel")
	require.NoError(t, err)
	assert.Zero(t, n)

	rec := model.TrimRecord{
		Brand:     "citroen",
		Model:     "C3",
		Name:      "C3 Feel",
		ManualURL: "https://x/feel.pdf",
		Extra:     []model.Field{{Key: model.KeyPayload, Value: "400 kg"}},
	}
	id, err := repo.Save(ctx, rec)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	n, err = repo.Count(ctx, "citroen", "C3", "C3 Feel")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.Count(ctx, "citroen", "C3", "C3 Shine")
	require.NoError(t, err)
	assert.Zero(t, n)

	var dados string
	var preco *string
	row := repo.DB.QueryRowContext(ctx, "SELECT dados, preco FROM veiculos WHERE id = ?", id)
	require.NoError(t, row.Scan(&dados, &preco))
	assert.Nil(t, preco)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(dados), &doc))
	assert.Equal(t, "400 kg", doc[model.KeyPayload])
	assert.Equal(t, "TEXT", doc[model.KeyVehicleType])
}

func TestTrimRepository_CreateSchemaTwice(t *testing.T) {
	t.Parallel()

	repo := newSQLite(t)
	assert.NoError(t, repo.CreateSchema(context.Background()))
}

func TestRebind(t *testing.T) {
	t.Parallel()

	sqlite := &TrimRepository{Driver: config.DriverSQLite}
	pg := &TrimRepository{Driver: config.DriverPostgres}

	assert.Equal(t, "a = ? AND b = ?", sqlite.rebind("a = $1 AND b = $2"))
	assert.Equal(t, "a = $1", pg.rebind("a = $1"))
}

func TestNew_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := db.New("mysql", "x")
	assert.ErrorIs(t, err, config.ErrUnknownDriver)
}
