// Package comparison extracts per-trim records from the optional "compare
// the versions" component of a model page.
package comparison

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"manuaisprj/internal/classifier"
	"manuaisprj/internal/model"
)

var buttonTexts = []string{"COMPARATIVO ENTRE AS VERSÕES", "Clique e compare as versões"}

// Section is the expanded content of the comparison component. The zero
// value is an absent component.
type Section struct {
	content *goquery.Selection
	base    *url.URL
}

// Present reports whether the page has a comparison component.
func (s Section) Present() bool {
	return s.content != nil && s.content.Length() > 0
}

// NewSection wraps an already located component.
func NewSection(content *goquery.Selection, base *url.URL) Section {
	return Section{content: content, base: base}
}

// Locate finds the collapsible content that follows a comparison button.
func Locate(doc *goquery.Document) Section {
	var found *goquery.Selection
	doc.Find("button").EachWithBreak(func(_ int, b *goquery.Selection) bool {
		text := b.Text()
		for _, want := range buttonTexts {
			if strings.Contains(text, want) {
				content := b.NextAllFiltered(`div[class*="collapse-content"]`).First()
				if content.Length() > 0 {
					found = content
					return false
				}
			}
		}
		return true
	})
	if found == nil {
		return Section{}
	}
	return Section{content: found, base: doc.Url}
}

func (s Section) abs(href string) string {
	if s.base == nil {
		return href
	}
	u, err := s.base.Parse(href)
	if err != nil {
		return href
	}
	return u.String()
}

// fichaLinks returns the usable datasheet hrefs under sel in document order.
func (s Section) fichaLinks(sel *goquery.Selection) []string {
	var out []string
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		if !strings.Contains(strings.ToLower(a.Text()), "ficha") {
			return
		}
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" {
			return
		}
		out = append(out, s.abs(href))
	})
	return out
}

type Extractor interface {
	Name() string
	Detect(sec Section) bool
	Extract(sec Section) []model.ComparisonRecord
}

type Dispatcher struct {
	extractors []Extractor
	log        zerolog.Logger
}

func NewDispatcher(log zerolog.Logger, extractors ...Extractor) *Dispatcher {
	return &Dispatcher{extractors: extractors, log: log}
}

// Default returns the table, single-grid and multi-grid layouts in that order.
func Default(c *classifier.Classifier, log zerolog.Logger) []Extractor {
	m := NewMapper(c)
	return []Extractor{
		&Table{mapper: m, log: log},
		&SingleGrid{mapper: m, log: log},
		&MultiGrid{mapper: m, log: log},
	}
}

// Extract returns the comparison records of sec, or nil when the component is
// absent or its layout is unknown.
func (d *Dispatcher) Extract(sec Section, modelName string) []model.ComparisonRecord {
	if !sec.Present() {
		d.log.Info().Str("modelo", modelName).Msg("nenhum componente de comparativo encontrado")
		return nil
	}
	for _, ex := range d.extractors {
		if !ex.Detect(sec) {
			continue
		}
		recs := ex.Extract(sec)
		d.log.Info().Str("modelo", modelName).Str("layout", ex.Name()).Int("versoes", len(recs)).Msg("comparativo extraído")
		return recs
	}
	d.log.Warn().Str("modelo", modelName).Msg("layout de comparativo desconhecido")
	return nil
}

func newRecords(names []string) []model.ComparisonRecord {
	recs := make([]model.ComparisonRecord, len(names))
	for i, n := range names {
		recs[i] = model.ComparisonRecord{Name: n}
	}
	return recs
}

// attachLinks sets one link per record, only when the counts agree.
func attachLinks(recs []model.ComparisonRecord, links []string, layout string, log zerolog.Logger) {
	if len(links) != len(recs) {
		log.Warn().Str("layout", layout).Int("links", len(links)).Int("versoes", len(recs)).Msg("links PDF não batem com versões")
		return
	}
	for i := range recs {
		recs[i].ManualURL = links[i]
	}
}
