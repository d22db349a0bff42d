// Package dedup drops trims that the persisted store already holds.
package dedup

import (
	"context"

	"github.com/rs/zerolog"

	"manuaisprj/internal/model"
)

// Store counts persisted trims by identity.
type Store interface {
	Count(ctx context.Context, brand, model, name string) (int, error)
}

type Gate struct {
	store Store
	log   zerolog.Logger
}

// NewGate returns a gate over store. A nil store disables the gate and every
// candidate passes.
func NewGate(store Store, log zerolog.Logger) *Gate {
	if store == nil {
		log.Warn().Msg("sem conexão com o banco. Verificação de duplicatas desativada")
	}
	return &Gate{store: store, log: log}
}

func (g *Gate) Enabled() bool {
	return g != nil && g.store != nil
}

// Filter keeps the candidates the store does not know yet. A failed lookup
// keeps the candidate.
func (g *Gate) Filter(ctx context.Context, brand, modelName string, recs []model.TrimRecord) []model.TrimRecord {
	if !g.Enabled() {
		return recs
	}
	out := make([]model.TrimRecord, 0, len(recs))
	for _, rec := range recs {
		n, err := g.store.Count(ctx, brand, modelName, rec.Name)
		if err != nil {
			g.log.Warn().Err(err).Str("modelo", modelName).Str("versao", rec.Name).Msg("erro ao verificar duplicata. Prosseguindo com a coleta")
			out = append(out, rec)
			continue
		}
		if n > 0 {
			g.log.Info().Str("modelo", modelName).Str("versao", rec.Name).Msg("versão já existe no banco. Pulando")
			continue
		}
		out = append(out, rec)
	}
	return out
}
