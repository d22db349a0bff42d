package comparison

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"manuaisprj/internal/model"
)

// Table reads a <table> whose header row names the trims and whose other rows
// start with a label followed by one value per trim.
type Table struct {
	mapper *Mapper
	log    zerolog.Logger
}

func (*Table) Name() string { return "tabela" }

func (*Table) Detect(sec Section) bool {
	return sec.content.Find("table").Length() > 0
}

func (t *Table) Extract(sec Section) []model.ComparisonRecord {
	rows := sec.content.Find("table").First().Find("tr")
	if rows.Length() == 0 {
		t.log.Warn().Msg("tabela do comparativo vazia")
		return nil
	}

	var names []string
	rows.First().ChildrenFiltered("td, th").Each(func(i int, cell *goquery.Selection) {
		if i > 0 {
			names = append(names, collapse(cell.Text()))
		}
	})
	if len(names) == 0 {
		t.log.Warn().Msg("nenhuma versão no cabeçalho da tabela")
		return nil
	}
	recs := newRecords(names)

	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < len(names)+1 {
			return
		}
		label := cells.First().Text()
		for i := range names {
			t.mapper.Apply(&recs[i], label, cells.Eq(i+1).Text())
		}
	})

	last := rows.Last().Find("td")
	if last.Length() != len(names)+1 {
		t.log.Warn().Int("celulas", last.Length()).Int("esperado", len(names)+1).Msg("última linha da tabela não bate com versões")
		return recs
	}
	// one cell per trim, in header order
	last.Slice(1, last.Length()).Each(func(i int, cell *goquery.Selection) {
		if l := sec.fichaLinks(cell); len(l) > 0 {
			recs[i].ManualURL = l[0]
		} else {
			t.log.Debug().Str("versao", recs[i].Name).Msg("PDF (tabela) não encontrado")
		}
	})
	return recs
}
