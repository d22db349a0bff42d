package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"manuaisprj/internal/model"
)

// NewDocument parses html and records baseURL as the document URL so relative
// links can be resolved.
func NewDocument(html, baseURL string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("URL base inválida %q: %w", baseURL, err)
		}
		doc.Url = u
	}
	return doc, nil
}

var vehiclePaths = []string{"veiculos-passeio", "veiculos-utilitarios"}

// DiscoverModels reads the vehicle models out of the hamburger menu. Links
// outside the vehicle sections, and links without name or URL, are skipped.
func DiscoverModels(doc *goquery.Document, log zerolog.Logger) []model.Model {
	var out []model.Model
	seen := make(map[string]bool)

	doc.Find("li.menu-hamburger__options__category").Each(func(_ int, cat *goquery.Selection) {
		category := strings.Trim(strings.TrimSpace(cat.Find("span").First().Text()), ": ")

		cat.Find("li.menu-hamburger__options__sub-item a").Each(func(_ int, a *goquery.Selection) {
			name := strings.TrimSpace(a.Text())
			href, _ := a.Attr("href")
			href = strings.TrimSpace(href)

			if href == "" {
				log.Warn().Str("modelo", name).Msg("link do menu com URL vazia. Pulando")
				return
			}
			if !isVehicle(href) {
				log.Debug().Str("modelo", name).Str("url", href).Msg("ignorando link não-veículo")
				return
			}
			if name == "" {
				log.Warn().Str("url", href).Msg("modelo com nome vazio ignorado")
				return
			}
			if seen[name] {
				return
			}
			seen[name] = true
			out = append(out, model.Model{Name: name, Category: category, CatalogURL: resolve(doc, href)})
			log.Info().Str("modelo", name).Str("categoria", category).Msg("modelo encontrado")
		})
	})
	return out
}

func isVehicle(href string) bool {
	for _, p := range vehiclePaths {
		if strings.Contains(href, p) {
			return true
		}
	}
	return false
}

func resolve(doc *goquery.Document, href string) string {
	if doc.Url == nil {
		return href
	}
	u, err := doc.Url.Parse(href)
	if err != nil {
		return href
	}
	return u.String()
}
