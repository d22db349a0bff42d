// Package layout extracts candidate trim records from a model page. Each known
// page layout is an Extractor; the Dispatcher uses the first one that detects
// its structure.
package layout

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"manuaisprj/internal/model"
)

type Extractor interface {
	Name() string
	Detect(doc *goquery.Document) bool
	// Extract returns one candidate per slide or card. Brand and Model are
	// filled by the Dispatcher; records may still lack a name.
	Extract(ctx context.Context, doc *goquery.Document) []model.TrimRecord
}

// Dispatcher tries extractors in priority order.
type Dispatcher struct {
	brand      string
	extractors []Extractor
	log        zerolog.Logger
}

func NewDispatcher(brand string, log zerolog.Logger, extractors ...Extractor) *Dispatcher {
	return &Dispatcher{brand: brand, extractors: extractors, log: log}
}

// Extract returns the named, page-unique records of m and the layout used.
// A page no extractor recognizes yields no records and an empty layout name.
func (d *Dispatcher) Extract(ctx context.Context, doc *goquery.Document, m model.Model) ([]model.TrimRecord, string) {
	for _, ex := range d.extractors {
		if !ex.Detect(doc) {
			continue
		}
		d.log.Info().Str("modelo", m.Name).Str("layout", ex.Name()).Msg("layout de versões encontrado")

		seen := make(map[string]bool)
		var out []model.TrimRecord
		for _, rec := range ex.Extract(ctx, doc) {
			if rec.Name == "" {
				d.log.Warn().Str("modelo", m.Name).Msg("slide encontrado, mas sem nome. Pulando")
				continue
			}
			if seen[rec.Name] {
				d.log.Warn().Str("modelo", m.Name).Str("versao", rec.Name).Msg("versão duplicada na página. Pulando")
				continue
			}
			seen[rec.Name] = true
			rec.Brand = d.brand
			rec.Model = m.Name
			out = append(out, rec)
		}
		return out, ex.Name()
	}

	d.log.Warn().Str("modelo", m.Name).Msg("nenhum layout de versões conhecido na página")
	return nil, ""
}

func textOf(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// firstText is querySelector semantics: the first match in document order.
func firstText(s *goquery.Selection, selector string) string {
	return textOf(s.Find(selector).First())
}

func firstAttr(s *goquery.Selection, selector, attr string) string {
	v, _ := s.Find(selector).First().Attr(attr)
	return strings.TrimSpace(v)
}

func hasFicha(s *goquery.Selection) bool {
	return strings.Contains(strings.ToLower(s.Text()), "ficha")
}

// absURL resolves href against the page URL when the document has one.
func absURL(doc *goquery.Document, href string) string {
	if doc == nil || doc.Url == nil {
		return href
	}
	u, err := doc.Url.Parse(href)
	if err != nil {
		return href
	}
	return u.String()
}

func usableHref(href string) bool {
	return href != "" && href != "#"
}
