// Package render declares what the extraction core needs from the page
// rendering layer: a document tree per model page and an auxiliary browsing
// context for following document links.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"manuaisprj/internal/model"
)

// ErrNotDocument is returned when an excursion ends on something that is not a document.
var ErrNotDocument = errors.New("URL não parece um documento")

// ErrTabClose is returned when only closing the auxiliary context failed.
// The resolved URL is still returned with it.
var ErrTabClose = errors.New("falha ao fechar aba")

// Renderer produces the rendered page of a model.
type Renderer interface {
	ModelPage(ctx context.Context, m model.Model) (*goquery.Document, error)
}

// Browser opens auxiliary contexts. The caller must Close every Tab it gets.
type Browser interface {
	Open(ctx context.Context, href string) (Tab, error)
}

// Tab is an auxiliary context. URL is where it ended up after loading.
type Tab interface {
	URL() string
	Close() error
}

// DocumentTab is implemented by tabs that know what they loaded, whatever
// the URL looks like.
type DocumentTab interface {
	Tab
	IsDocument() bool
}

// ResolveDocument follows href in a new context and returns the URL it lands
// on when that URL is a document. The tab is always closed, also on timeout;
// a failed close is reported as ErrTabClose next to the URL.
func ResolveDocument(ctx context.Context, b Browser, href string, timeout time.Duration) (docURL string, err error) {
	if b == nil {
		return "", errors.New("nenhum navegador auxiliar disponível")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tab, err := b.Open(ctx, href)
	if err != nil {
		return "", fmt.Errorf("falha ao abrir %s: %w", href, err)
	}
	defer func() {
		if cerr := tab.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w de %s: %w", ErrTabClose, href, cerr)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	u := tab.URL()
	if d, ok := tab.(DocumentTab); ok && d.IsDocument() {
		return u, nil
	}
	if !LooksLikeDocument(u) {
		return "", fmt.Errorf("%w: %s", ErrNotDocument, u)
	}
	return u, nil
}

// LooksLikeDocument accepts .pdf URLs, blob URLs and anything mentioning pdf.
func LooksLikeDocument(u string) bool {
	l := strings.ToLower(u)
	return strings.HasSuffix(l, ".pdf") || strings.Contains(l, "blob:") || strings.Contains(l, "pdf")
}
