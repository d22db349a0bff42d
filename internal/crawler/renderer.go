package crawler

import (
	"context"
	"io"
	"mime"

	"github.com/PuerkitoBio/goquery"

	"manuaisprj/internal/model"
	"manuaisprj/internal/render"
)

// HTTPRenderer renders a model page by fetching its static HTML.
type HTTPRenderer struct {
	Client *Client
}

func (r *HTTPRenderer) client() *Client {
	if r.Client == nil {
		return defaultClient
	}
	return r.Client
}

func (r *HTTPRenderer) ModelPage(ctx context.Context, m model.Model) (*goquery.Document, error) {
	html, err := r.client().Fetch(ctx, m.CatalogURL)
	if err != nil {
		return nil, err
	}
	return NewDocument(html, m.CatalogURL)
}

// HTTPBrowser opens auxiliary contexts as HTTP requests. Redirects are
// followed; the tab URL is the final one.
type HTTPBrowser struct {
	Client *Client
}

func (b *HTTPBrowser) Open(ctx context.Context, href string) (render.Tab, error) {
	c := b.Client
	if c == nil {
		c = defaultClient
	}
	resp, err := c.get(ctx, href)
	if err != nil {
		return nil, err
	}
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return &httpTab{
		url:  resp.Request.URL.String(),
		pdf:  mediaType == "application/pdf",
		body: resp.Body,
	}, nil
}

type httpTab struct {
	url  string
	pdf  bool
	body io.ReadCloser
}

func (t *httpTab) URL() string      { return t.url }
func (t *httpTab) IsDocument() bool { return t.pdf }
func (t *httpTab) Close() error     { return t.body.Close() }
