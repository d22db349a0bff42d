// Package reconcile merges comparison records into the primary trim records of
// a model and fills missing datasheet links from the fallback table.
package reconcile

import (
	"strings"

	"github.com/rs/zerolog"

	"manuaisprj/internal/model"
)

// Resolver looks up a known datasheet URL for a trim.
type Resolver interface {
	Resolve(model, name string) (string, bool)
}

var nameReplacer = strings.NewReplacer(
	"Ë", "E",
	"-", "",
	".", "",
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
)

// NormalizeName is the identity used to pair trims across sources.
func NormalizeName(name string) string {
	return strings.TrimSpace(nameReplacer.Replace(strings.ToUpper(name)))
}

// Merge returns trim with the fields of cmp applied over it. Comparison values
// overwrite primary ones; the comparison link wins over the card link when
// both exist. Neither argument is modified.
func Merge(trim model.TrimRecord, cmp model.ComparisonRecord) model.TrimRecord {
	out := trim.Clone()
	for _, f := range cmp.Fields {
		out.Set(f.Key, f.Value)
	}
	if cmp.ManualURL != "" {
		out.ManualURL = cmp.ManualURL
	}
	return out
}

type Result struct {
	Records   []model.TrimRecord
	Unmatched []model.ComparisonRecord
	// Fallbacks is the number of records whose link came from the fallback table.
	Fallbacks int
}

type Reconciler struct {
	fallback Resolver
	log      zerolog.Logger
}

// New returns a Reconciler. A nil fallback disables the fallback step.
func New(fallback Resolver, log zerolog.Logger) *Reconciler {
	return &Reconciler{fallback: fallback, log: log}
}

// Reconcile pairs every comparison record with the first trim of the same
// normalized name. Comparison records without a pair are reported in
// Result.Unmatched and contribute nothing. comps may be nil when the page has
// no comparison component.
func (r *Reconciler) Reconcile(trims []model.TrimRecord, comps []model.ComparisonRecord) Result {
	out := make([]model.TrimRecord, len(trims))
	copy(out, trims)

	var unmatched []model.ComparisonRecord
	for _, cmp := range comps {
		if cmp.Name == "" {
			continue
		}
		i := indexOf(out, cmp.Name)
		if i < 0 {
			r.log.Warn().Str("versao", cmp.Name).Msg("versão do comparativo não encontrou par na lista de versões")
			unmatched = append(unmatched, cmp)
			continue
		}
		if cmp.ManualURL != "" && out[i].ManualURL != "" && out[i].ManualURL != cmp.ManualURL {
			r.log.Debug().Str("versao", out[i].Name).Msg("PDF do comparativo sobrescreve PDF do card")
		}
		out[i] = Merge(out[i], cmp)
		r.log.Debug().Str("versao", out[i].Name).Msg("dados do comparativo juntados")
	}

	res := Result{Records: out, Unmatched: unmatched}
	res.Fallbacks = r.applyFallback(res.Records)
	return res
}

// ApplyFallback fills the link of every record that has none and whose
// (model, name) the fallback table knows. It returns the filled copies and
// how many were filled.
func (r *Reconciler) ApplyFallback(recs []model.TrimRecord) ([]model.TrimRecord, int) {
	out := make([]model.TrimRecord, len(recs))
	copy(out, recs)
	return out, r.applyFallback(out)
}

func (r *Reconciler) applyFallback(recs []model.TrimRecord) int {
	if r.fallback == nil {
		return 0
	}
	n := 0
	for i := range recs {
		if recs[i].ManualURL != "" || recs[i].Name == "" {
			continue
		}
		if u, ok := r.fallback.Resolve(recs[i].Model, recs[i].Name); ok {
			recs[i].ManualURL = u
			n++
			r.log.Info().Str("modelo", recs[i].Model).Str("versao", recs[i].Name).Msg("manual não encontrado no site. Usando URL de fallback")
		}
	}
	return n
}

func indexOf(recs []model.TrimRecord, name string) int {
	want := NormalizeName(name)
	for i := range recs {
		if recs[i].Name != "" && NormalizeName(recs[i].Name) == want {
			return i
		}
	}
	return -1
}
