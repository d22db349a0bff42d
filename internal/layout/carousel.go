package layout

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"manuaisprj/internal/classifier"
	"manuaisprj/internal/model"
)

const (
	carouselSelector = "div.next-gen-carousel"
	slideSelector    = `div[data-testid="slide"], div[data-testid="next-gen-container-component"][help-text="versão"]`
	slideNameSel     = "h1.font-h1, h1, h2.font-h2, h2, h3.font-h3, h3, span.font-h1, span.font-h2, span.font-h3"
	slidePriceSel    = "span.font-h2, p.font-h2, div.font-h2, span.font-h3, p.font-h3, div.font-h3, h1 b"
	slideImageSel    = "img.next-gen-media, div.chameleon-image img"
	slideSpecSel     = `div[class*="image-wrapper"] ~ div[class*="next-gen-text"] > span[class*="font-body-sm"][data-testid="next-gen-text-id"]`
	slidePDFSel      = `a[href*=".pdf"]`
)

// Carousel reads the "next-gen-carousel" layout: one slide per trim with
// name, price, image, spec lines and sometimes a datasheet link.
type Carousel struct {
	classifier *classifier.Classifier
}

func NewCarousel(c *classifier.Classifier) *Carousel {
	return &Carousel{classifier: c}
}

func (*Carousel) Name() string { return "carousel" }

func (*Carousel) Detect(doc *goquery.Document) bool {
	return doc.Find(carouselSelector).Length() > 0
}

func (c *Carousel) Extract(_ context.Context, doc *goquery.Document) []model.TrimRecord {
	var out []model.TrimRecord
	doc.Find(carouselSelector).First().Find(slideSelector).Each(func(_ int, slide *goquery.Selection) {
		rec := model.TrimRecord{
			Name:     firstText(slide, slideNameSel),
			Price:    firstText(slide, slidePriceSel),
			ImageURL: firstAttr(slide, slideImageSel, "src"),
		}

		slide.Find(slidePDFSel).EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if !hasFicha(a) {
				return true
			}
			if href, _ := a.Attr("href"); usableHref(href) {
				rec.ManualURL = absURL(doc, href)
			}
			return false
		})

		var lines []string
		slide.Find(slideSpecSel).Each(func(_ int, span *goquery.Selection) {
			lines = append(lines, textOf(span))
		})
		ApplySpecLines(&rec, lines, c.classifier)

		out = append(out, rec)
	})
	return out
}
