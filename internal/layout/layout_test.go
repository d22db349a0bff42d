package layout

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manuaisprj/internal/classifier"
	"manuaisprj/internal/model"
	"manuaisprj/internal/render"
)

const carouselPage = `<html><body>
<h2>Versões</h2>
<div class="next-gen-carousel">
  <div data-testid="slide">
    <h2 class="font-h2">C3 Feel</h2>
    <span class="font-h3">R$ 79.990</span>
    <img class="next-gen-media" src="/img/feel.png">
    <div class="image-wrapper"></div>
    <div class="next-gen-text">
      <span class="font-body-sm" data-testid="next-gen-text-id">Motor 1.0 Firefly Flex</span>
      <span class="font-body-sm" data-testid="next-gen-text-id">Rodas de liga leve 15”</span>
      <span class="font-body-sm" data-testid="next-gen-text-id">Ar-condicionado digital</span>
      <span class="font-body-sm" data-testid="next-gen-text-id">Central multimídia 10"</span>
      <span class="font-body-sm" data-testid="next-gen-text-id">  </span>
      <span class="font-body-sm" data-testid="next-gen-text-id">Câmera de ré</span>
    </div>
    <a href="/docs/ficha-feel.pdf">Baixar Ficha técnica</a>
  </div>
  <div data-testid="slide">
    <h2 class="font-h2">C3 Feel</h2>
  </div>
  <div data-testid="slide">
    <p>sem título</p>
  </div>
  <div data-testid="next-gen-container-component" help-text="versão">
    <h3>C3 Shine</h3>
    <div class="chameleon-image"><img src="/img/shine.png"></div>
    <a href="/docs/catalogo.pdf">Catálogo</a>
    <div class="image-wrapper"></div>
    <div class="next-gen-text">
      <span class="font-body-sm" data-testid="next-gen-text-id">Motor 1.0 Turbo 200 Flex Câmbio automático</span>
      <span class="font-body-sm" data-testid="next-gen-text-id">Pneus 205/60 R16</span>
      <span class="font-body-sm" data-testid="next-gen-text-id">Ar-condicionado</span>
    </div>
  </div>
</div>
</body></html>`

const tabsPage = `<html><body>
<div class="hub-tabs-swiper">
  <a class="hub-button--tab-swiper">Cargo</a>
  <a class="hub-button--tab-swiper">Vitré</a>
  <a class="hub-button--tab-swiper">Minibus</a>
</div>
<div class="tab-content-0 active">
  <div class="hub-card-component">
    <h2 class="hub-card-title">Jumpy Cargo</h2>
    <div class="hub-card-media"><img src="/img/cargo.png"></div>
    <a href="/docs/cargo.PDF"><span>Ficha Técnica</span></a>
  </div>
</div>
<div class="tab-content-1">
  <div class="hub-card-component">
    <h2 class="hub-card-title">Jumpy Vitré</h2>
    <a href="/ficha/vitre" target="_blank"><span>FICHA TÉCNICA</span></a>
  </div>
</div>
<div class="tab-content-2"></div>
</body></html>`

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	doc.Url, err = url.Parse("https://www.citroen.com.br/veiculos-passeio/c3.html")
	require.NoError(t, err)
	return doc
}

type tab struct {
	url    string
	closed bool
	err    error
}

func (t *tab) URL() string  { return t.url }
func (t *tab) Close() error { t.closed = true; return t.err }

type browser struct {
	targets  map[string]string
	opened   []*tab
	err      error
	closeErr error
}

func (b *browser) Open(_ context.Context, href string) (render.Tab, error) {
	if b.err != nil {
		return nil, b.err
	}
	tb := &tab{url: b.targets[href], err: b.closeErr}
	b.opened = append(b.opened, tb)
	return tb, nil
}

func TestDispatcher_Carousel(t *testing.T) {
	t.Parallel()

	c := classifier.New(nil)
	d := NewDispatcher("citroen", zerolog.Nop(), Default(c, nil, time.Second, zerolog.Nop())...)

	recs, layout := d.Extract(context.Background(), parse(t, carouselPage), model.Model{Name: "C3"})

	assert.Equal(t, "carousel", layout)
	require.Len(t, recs, 2)

	feel := recs[0]
	assert.Equal(t, "citroen", feel.Brand)
	assert.Equal(t, "C3", feel.Model)
	assert.Equal(t, "C3 Feel", feel.Name)
	assert.Equal(t, "R$ 79.990", feel.Price)
	assert.Equal(t, "/img/feel.png", feel.ImageURL)
	assert.Equal(t, "https://www.citroen.com.br/docs/ficha-feel.pdf", feel.ManualURL)
	assert.Equal(t, "Motor 1.0 Firefly Flex", feel.EngineText)
	assert.Equal(t, "1.0", feel.Engine)
	assert.Equal(t, model.TurboUnknown, feel.Turbo)
	assert.Equal(t, model.FuelFlex, feel.Fuel)
	assert.Equal(t, "Rodas de liga leve 15”", feel.TireText)
	assert.Equal(t, "15", feel.TireDiameter)
	assert.Equal(t, "Digital", feel.AirConditioning)
	assert.Equal(t, []string{`Central multimídia 10"`, "Câmera de ré"}, feel.OtherFeatures)

	shine := recs[1]
	assert.Equal(t, "C3 Shine", shine.Name)
	assert.Equal(t, "/img/shine.png", shine.ImageURL)
	assert.Empty(t, shine.ManualURL, "pdf without 'ficha' text is not a datasheet")
	assert.Equal(t, model.TurboYes, shine.Turbo)
	assert.Equal(t, "Pneus 205/60 R16", shine.TireText)
	assert.Empty(t, shine.TireDiameter)
	assert.Equal(t, "Sim", shine.AirConditioning)
	assert.Empty(t, shine.OtherFeatures)
}

func TestDispatcher_Tabs(t *testing.T) {
	t.Parallel()

	b := &browser{targets: map[string]string{
		"https://www.citroen.com.br/ficha/vitre": "https://cdn.citroen.com.br/ficha/Jumpy-Vitre.pdf",
	}}
	d := NewDispatcher("citroen", zerolog.Nop(), Default(classifier.New(nil), b, time.Second, zerolog.Nop())...)

	recs, layout := d.Extract(context.Background(), parse(t, tabsPage), model.Model{Name: "Jumpy"})

	assert.Equal(t, "tabs", layout)
	require.Len(t, recs, 2)
	assert.Equal(t, "Jumpy Cargo", recs[0].Name)
	assert.Equal(t, "/img/cargo.png", recs[0].ImageURL)
	assert.Equal(t, "https://www.citroen.com.br/docs/cargo.PDF", recs[0].ManualURL)
	assert.Empty(t, recs[0].Price)
	assert.Empty(t, recs[0].OtherFeatures)

	assert.Equal(t, "Jumpy Vitré", recs[1].Name)
	assert.Equal(t, "https://cdn.citroen.com.br/ficha/Jumpy-Vitre.pdf", recs[1].ManualURL)

	require.Len(t, b.opened, 1)
	assert.True(t, b.opened[0].closed)
}

func TestDispatcher_TabsExcursionFailure(t *testing.T) {
	t.Parallel()

	t.Run("browser error", func(t *testing.T) {
		t.Parallel()
		b := &browser{err: errors.New("nova aba não abriu a tempo")}
		d := NewDispatcher("citroen", zerolog.Nop(), NewTabs(b, time.Second, zerolog.Nop()))

		recs, _ := d.Extract(context.Background(), parse(t, tabsPage), model.Model{Name: "Jumpy"})

		require.Len(t, recs, 2)
		assert.Empty(t, recs[1].ManualURL)
	})

	t.Run("landing page is not a document", func(t *testing.T) {
		t.Parallel()
		b := &browser{targets: map[string]string{}}
		d := NewDispatcher("citroen", zerolog.Nop(), NewTabs(b, time.Second, zerolog.Nop()))

		recs, _ := d.Extract(context.Background(), parse(t, tabsPage), model.Model{Name: "Jumpy"})

		require.Len(t, recs, 2)
		assert.Empty(t, recs[1].ManualURL)
		require.Len(t, b.opened, 1)
		assert.True(t, b.opened[0].closed)
	})
}

func TestDispatcher_TabsCloseFailureKeepsLink(t *testing.T) {
	t.Parallel()

	b := &browser{
		targets:  map[string]string{"https://www.citroen.com.br/ficha/vitre": "https://cdn.citroen.com.br/ficha/Jumpy-Vitre.pdf"},
		closeErr: errors.New("aba travada"),
	}
	d := NewDispatcher("citroen", zerolog.Nop(), NewTabs(b, time.Second, zerolog.Nop()))

	recs, _ := d.Extract(context.Background(), parse(t, tabsPage), model.Model{Name: "Jumpy"})

	require.Len(t, recs, 2)
	assert.Equal(t, "https://cdn.citroen.com.br/ficha/Jumpy-Vitre.pdf", recs[1].ManualURL)
	require.Len(t, b.opened, 1)
	assert.True(t, b.opened[0].closed)
}

func TestDispatcher_Priority(t *testing.T) {
	t.Parallel()

	both := strings.Replace(carouselPage, "</body>", `<div class="hub-tabs-swiper"></div></body>`, 1)
	d := NewDispatcher("citroen", zerolog.Nop(), Default(classifier.New(nil), nil, time.Second, zerolog.Nop())...)

	_, layout := d.Extract(context.Background(), parse(t, both), model.Model{Name: "C3"})
	assert.Equal(t, "carousel", layout)
}

func TestDispatcher_UnknownLayout(t *testing.T) {
	t.Parallel()

	d := NewDispatcher("citroen", zerolog.Nop(), Default(classifier.New(nil), nil, time.Second, zerolog.Nop())...)

	recs, layout := d.Extract(context.Background(), parse(t, `<html><body><p>Em breve</p></body></html>`), model.Model{Name: "ë-C3"})
	assert.Empty(t, recs)
	assert.Empty(t, layout)
}

func TestTireDiameter(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Rodas de liga leve 16”":     "16",
		`Rodas 17" diamantadas`:      "17",
		"Rodas 15 de aço":            "15",
		"Rodas de liga leve 16 em":   "16",
		"Pneus 205/60 R16":           "",
		"Rodas de liga leve aro 15”": "15",
	}
	for in, want := range tests {
		assert.Equal(t, want, TireDiameter(in), in)
	}
}

func TestAirConditioningVariant(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Digital", AirConditioningVariant("Ar-condicionado digital automático"))
	assert.Equal(t, "Manual", AirConditioningVariant("Ar-condicionado MANUAL"))
	assert.Equal(t, "Sim", AirConditioningVariant("Ar-condicionado"))
}
