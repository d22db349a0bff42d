package crawler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"

	"manuaisprj/internal/model"
	"manuaisprj/internal/render"
)

// Manifest lists saved pages for an offline pass.
//
//	catalog: home.html
//	models:
//	  - name: C3
//	    category: Carros
//	    url: https://www.citroen.com.br/veiculos-passeio/c3.html
//	    file: c3.html
//	pages:
//	  https://www.citroen.com.br/veiculos-passeio/basalt.html: basalt.html
//	documents:
//	  https://www.citroen.com.br/ficha-c3: https://www.citroen.com.br/ficha-c3.pdf
//
// Without models the catalog menu is read and each discovered model is
// served from pages, keyed by its URL.
type Manifest struct {
	BaseURL string          `yaml:"base_url"`
	Catalog string          `yaml:"catalog"`
	Entries []ManifestModel `yaml:"models"`

	// Pages maps a model page URL to its saved file.
	Pages map[string]string `yaml:"pages"`

	// Documents maps a link to the URL an auxiliary context lands on.
	Documents map[string]string `yaml:"documents"`

	dir string
}

type ManifestModel struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	URL      string `yaml:"url"`
	File     string `yaml:"file"`
}

// LoadManifest reads a manifest; file paths are relative to its directory.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler manifesto %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("manifesto inválido %s: %w", path, err)
	}
	for i, mm := range m.Entries {
		if mm.Name == "" || mm.File == "" {
			return nil, fmt.Errorf("manifesto %s: modelo %d sem name ou file", path, i)
		}
	}
	m.dir = filepath.Dir(path)
	return &m, nil
}

// ModelList returns the models listed in the manifest.
func (m *Manifest) ModelList() []model.Model {
	out := make([]model.Model, 0, len(m.Entries))
	for _, mm := range m.Entries {
		out = append(out, model.Model{Name: mm.Name, Category: mm.Category, CatalogURL: mm.URL})
	}
	return out
}

// CatalogDocument parses the saved catalog page, if any.
func (m *Manifest) CatalogDocument() (*goquery.Document, error) {
	if m.Catalog == "" {
		return nil, nil
	}
	return m.document(m.Catalog, m.BaseURL)
}

func (m *Manifest) document(file, baseURL string) (*goquery.Document, error) {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.dir, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler página %s: %w", path, err)
	}
	return NewDocument(string(b), baseURL)
}

// SnapshotRenderer serves model pages from the files of a manifest.
type SnapshotRenderer struct {
	Manifest *Manifest
}

func (r *SnapshotRenderer) ModelPage(_ context.Context, m model.Model) (*goquery.Document, error) {
	for _, mm := range r.Manifest.Entries {
		if mm.Name == m.Name {
			return r.Manifest.document(mm.File, mm.URL)
		}
	}
	if file, ok := r.Manifest.Pages[m.CatalogURL]; ok && m.CatalogURL != "" {
		return r.Manifest.document(file, m.CatalogURL)
	}
	return nil, fmt.Errorf("modelo %s não está no manifesto", m.Name)
}

// SnapshotBrowser resolves auxiliary contexts from the manifest documents
// map. Unknown links land on themselves.
type SnapshotBrowser struct {
	Manifest *Manifest
}

func (b *SnapshotBrowser) Open(ctx context.Context, href string) (render.Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if u, ok := b.Manifest.Documents[href]; ok {
		return snapshotTab(u), nil
	}
	return snapshotTab(href), nil
}

type snapshotTab string

func (t snapshotTab) URL() string { return string(t) }
func (snapshotTab) Close() error  { return nil }
