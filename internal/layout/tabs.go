package layout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"manuaisprj/internal/model"
	"manuaisprj/internal/render"
)

const (
	swiperSelector  = "div.hub-tabs-swiper"
	tabSelector     = "a.hub-button--tab-swiper"
	cardSelector    = "div.hub-card-component"
	cardTitleSel    = "h2.hub-card-title"
	cardImageSel    = "div.hub-card-media img"
	tabContentClass = "div.tab-content-%d"
)

// Tabs reads the "hub-tabs-swiper" layout: a row of tabs, each showing one
// card. Cards carry no spec lines; their datasheet link may open a new tab
// instead of pointing at the PDF.
type Tabs struct {
	browser    render.Browser
	auxTimeout time.Duration
	log        zerolog.Logger
}

func NewTabs(b render.Browser, auxTimeout time.Duration, log zerolog.Logger) *Tabs {
	return &Tabs{browser: b, auxTimeout: auxTimeout, log: log}
}

func (*Tabs) Name() string { return "tabs" }

func (*Tabs) Detect(doc *goquery.Document) bool {
	return doc.Find(swiperSelector).Length() > 0
}

func (t *Tabs) Extract(ctx context.Context, doc *goquery.Document) []model.TrimRecord {
	tabs := doc.Find(swiperSelector).First().Find(tabSelector)
	var out []model.TrimRecord
	for i := 0; i < tabs.Length(); i++ {
		tabName := textOf(tabs.Eq(i))
		card := doc.Find(fmt.Sprintf(tabContentClass, i)).First().Find(cardSelector).First()
		if card.Length() == 0 {
			t.log.Warn().Str("aba", tabName).Int("indice", i).Msg("conteúdo da aba sem card. Pulando")
			continue
		}

		rec := model.TrimRecord{
			Name:     firstText(card, cardTitleSel),
			ImageURL: firstAttr(card, cardImageSel, "src"),
		}
		rec.ManualURL = t.manualURL(ctx, doc, card, rec.Name)
		out = append(out, rec)
	}
	return out
}

func (t *Tabs) manualURL(ctx context.Context, doc *goquery.Document, card *goquery.Selection, name string) string {
	link := card.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return hasFicha(a)
	}).First()
	if link.Length() == 0 {
		t.log.Warn().Str("versao", name).Msg("link 'Ficha técnica' não encontrado no card")
		return ""
	}

	href, _ := link.Attr("href")
	href = strings.TrimSpace(href)
	if usableHref(href) && strings.HasSuffix(strings.ToLower(href), ".pdf") {
		return absURL(doc, href)
	}
	if !usableHref(href) {
		t.log.Warn().Str("versao", name).Msg("link 'Ficha técnica' sem destino")
		return ""
	}

	u, err := render.ResolveDocument(ctx, t.browser, absURL(doc, href), t.auxTimeout)
	if errors.Is(err, render.ErrTabClose) && u != "" {
		t.log.Warn().Err(err).Str("versao", name).Msg("aba auxiliar não fechou, mantendo o PDF capturado")
		err = nil
	}
	if err != nil {
		t.log.Warn().Err(err).Str("versao", name).Msg("não foi possível capturar o PDF em nova aba")
		return ""
	}
	t.log.Info().Str("versao", name).Str("url", u).Msg("PDF (nova aba) capturado")
	return u
}
