package comparison

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"manuaisprj/internal/model"
)

const (
	gridSelector     = "div.next-gen-grid-container-vue"
	gridNameSelector = "h2.font-h2"
	gridCellSelector = `div[class*="next-gen-container-vue"]`
)

func grids(sec Section) *goquery.Selection {
	return sec.content.Find(gridSelector)
}

func texts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, collapse(s.Text()))
	})
	return out
}

// SingleGrid reads one grid holding N name headings and N column blocks of
// label/value pairs.
type SingleGrid struct {
	mapper *Mapper
	log    zerolog.Logger
}

func (*SingleGrid) Name() string { return "grid único" }

func (*SingleGrid) Detect(sec Section) bool {
	return grids(sec).Length() == 1
}

func (g *SingleGrid) Extract(sec Section) []model.ComparisonRecord {
	grid := grids(sec).First()
	names := texts(grid.Find(gridNameSelector))
	columns := grid.ChildrenFiltered("div").FilterFunction(func(_ int, col *goquery.Selection) bool {
		found := false
		col.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
			t := span.Text()
			found = strings.Contains(t, "Carga útil") || strings.Contains(t, "Motor")
			return !found
		})
		return found
	})

	if len(names) == 0 || len(names) != columns.Length() {
		g.log.Warn().Int("nomes", len(names)).Int("colunas", columns.Length()).Msg("nomes e colunas do grid único não batem")
		return nil
	}

	recs := newRecords(names)
	columns.Each(func(i int, col *goquery.Selection) {
		labels := col.Find("span.font-body-sm")
		values := col.Find("p.font-body")
		n := labels.Length()
		if values.Length() < n {
			n = values.Length()
		}
		for k := 0; k < n; k++ {
			g.mapper.Apply(&recs[i], labels.Eq(k).Text(), values.Eq(k).Text())
		}
	})

	attachLinks(recs, sec.fichaLinks(grid), g.Name(), g.log)
	return recs
}

// MultiGrid reads a header grid of N names, data grids of repeating groups of
// N cells and a final grid of datasheet links. The first cell of a group holds
// the label in a <strong> and the value of the first trim.
type MultiGrid struct {
	mapper *Mapper
	log    zerolog.Logger
}

func (*MultiGrid) Name() string { return "múltiplos grids" }

func (*MultiGrid) Detect(sec Section) bool {
	return grids(sec).Length() > 1
}

func (g *MultiGrid) Extract(sec Section) []model.ComparisonRecord {
	all := grids(sec)
	names := texts(all.First().Find(gridNameSelector))
	n := len(names)
	if n == 0 {
		g.log.Warn().Msg("nenhuma versão no cabeçalho (múltiplos grids)")
		return nil
	}
	data := all.Slice(1, all.Length()-1)
	if data.Length() == 0 {
		g.log.Warn().Msg("nenhum grid de dados após o cabeçalho")
		return nil
	}

	recs := newRecords(names)
	data.Each(func(_ int, grid *goquery.Selection) {
		cells := grid.ChildrenFiltered(gridCellSelector)
		for i := 0; i+n <= cells.Length(); i += n {
			group := cells.Slice(i, i+n)
			strong := group.First().Find("p > strong").First()
			if strong.Length() == 0 {
				continue
			}
			label := strong.Text()
			group.Each(func(k int, cell *goquery.Selection) {
				g.mapper.Apply(&recs[k], label, cellValue(cell, k == 0))
			})
		}
	})

	attachLinks(recs, sec.fichaLinks(all.Last()), g.Name(), g.log)
	return recs
}

// cellValue joins the paragraphs of a cell, leaving out the label paragraph
// of the first cell.
func cellValue(cell *goquery.Selection, labelCell bool) string {
	var parts []string
	cell.Find("p").Each(func(_ int, p *goquery.Selection) {
		if labelCell && p.Find("strong").Length() > 0 {
			return
		}
		if t := collapse(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}
