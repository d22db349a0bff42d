// Package pipeline runs the extraction of every model of a catalog: render,
// layout extraction, duplicate gate, comparison, reconciliation and output
// formatting. Models are processed one at a time and a failing model never
// stops the pass.
package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"

	"manuaisprj/internal/comparison"
	"manuaisprj/internal/dedup"
	"manuaisprj/internal/layout"
	"manuaisprj/internal/model"
	"manuaisprj/internal/observability"
	"manuaisprj/internal/output"
	"manuaisprj/internal/reconcile"
	"manuaisprj/internal/render"
)

type Pipeline struct {
	Brand       string
	Renderer    render.Renderer
	Layouts     *layout.Dispatcher
	Comparisons *comparison.Dispatcher
	Gate        *dedup.Gate
	Reconciler  *reconcile.Reconciler
	Metrics     *observability.Metrics
	Log         zerolog.Logger
}

// ModelResult is the outcome of one model.
type ModelResult struct {
	Model     model.Model
	Layout    string
	Records   []model.TrimRecord
	Unmatched []model.ComparisonRecord
	Err       error
}

// Run processes models in order and returns the formatted records of all of
// them together with the per-model results.
func (p *Pipeline) Run(ctx context.Context, models []model.Model) ([]output.Record, []ModelResult) {
	var records []model.TrimRecord
	results := make([]ModelResult, 0, len(models))

	for _, m := range models {
		if err := ctx.Err(); err != nil {
			p.Log.Warn().Err(err).Msg("execução cancelada")
			break
		}
		res := p.RunModel(ctx, m)
		if res.Err != nil {
			p.Metrics.ModelFailed()
			p.Log.Error().Err(res.Err).Str("modelo", m.Name).Str("url", m.CatalogURL).Msg("erro geral ao processar o modelo")
		}
		records = append(records, res.Records...)
		results = append(results, res)
	}

	out := output.FormatAll(records)
	p.Log.Info().Int("versoes", len(out)).Int("modelos", len(models)).Msg("formatação concluída")
	return out, results
}

// RunModel processes one model. Errors and panics are returned in the result,
// which then has no records.
func (p *Pipeline) RunModel(ctx context.Context, m model.Model) (res ModelResult) {
	res.Model = m
	defer func() {
		if r := recover(); r != nil {
			res.Records = nil
			res.Unmatched = nil
			res.Err = fmt.Errorf("panic: %v", r)
			p.Log.Debug().Str("stack", string(debug.Stack())).Msg("panic ao processar modelo")
		}
	}()

	log := p.Log.With().Str("modelo", m.Name).Logger()
	log.Info().Str("url", m.CatalogURL).Msg("processando modelo")

	doc, err := p.Renderer.ModelPage(ctx, m)
	if err != nil {
		res.Err = fmt.Errorf("erro ao renderizar %s: %w", m.Name, err)
		return res
	}

	trims, layoutName := p.Layouts.Extract(ctx, doc, m)
	res.Layout = layoutName
	p.Metrics.Extracted(layoutName, len(trims))

	kept := p.Gate.Filter(ctx, p.Brand, m.Name, trims)
	p.Metrics.Duplicates(len(trims) - len(kept))

	var comps []model.ComparisonRecord
	if len(kept) > 0 {
		comps = p.Comparisons.Extract(comparison.Locate(doc), m.Name)
	}

	rec := p.Reconciler.Reconcile(kept, comps)
	p.Metrics.Unmatched(len(rec.Unmatched))
	p.Metrics.Fallbacks(rec.Fallbacks)

	res.Records = rec.Records
	res.Unmatched = rec.Unmatched
	log.Info().Str("layout", layoutName).Int("versoes", len(res.Records)).Msg("modelo concluído")
	return res
}
