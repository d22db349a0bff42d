// Package fallback supplies datasheet links for known trims whose page does
// not expose one.
package fallback

import "strings"

type key struct {
	model string
	name  string
}

// Entry is one compiled-in datasheet link.
type Entry struct {
	Model string
	Name  string
	URL   string
}

var citroenEntries = []Entry{
	{"C3", "c3 you! t200", "https://www.citroen.com.br/content/dam/citroen/products/ficha-t%C3%A9cnica/Ficha-T%C3%A9cnica-C3-You-CY25-PL8.pdf"},
	{"C3", "c3 feel", "https://www.citroen.com.br/content/dam/citroen/products/ficha-t%C3%A9cnica/Ficha-T%C3%A9cnica-C3-Feel-CY25-PL8.pdf"},
	{"C3", "c3 live pack", "https://www.citroen.com.br/content/dam/citroen/products/ficha-t%C3%A9cnica/Ficha-T%C3%A9cnica-C3-Live-Pack-CY25-PL8.pdf"},
	{"C3", "c3 live", "https://www.citroen.com.br/content/dam/citroen/products/ficha-t%C3%A9cnica/Ficha-T%C3%A9cnica-C3-Live-CY25-PL8.pdf"},

	{"Aircross", "shine", "https://www.citroen.com.br/content/dam/citroen/products/ficha-t%C3%A9cnica/Ficha-Tecnica-Aircross-Shine-CY25-PL8.pdf"},
	{"Aircross", "feel pack", "https://www.citroen.com.br/content/dam/citroen/products/ficha-t%C3%A9cnica/Ficha-Tecnica-Aircross-Feel-Pack-CY25-PL8.pdf"}, // "Feel 7"
	{"Aircross", "feel", "https://www.citroen.com.br/content/dam/citroen/products/ficha-t%C3%A9cnica/Ficha-Tecnica-Aircross-Feel-CY25-PL8.pdf"},           // "Feel 5"

	{"Basalt", "shine turbo", "https://www.citroen.com.br/content/dam/citroen/paginas/showrooms/basalt/ficha-tecnica/Ficha-T%C3%A9cnica-Basalt-Shine-Turbo-AT-CY25.pdf"},
	{"Basalt", "feel turbo", "https://www.citroen.com.br/content/dam/citroen/paginas/showrooms/basalt/ficha-tecnica/Ficha-T%C3%A9cnica-Basalt-Feel-Turbo-AT-CY25.pdf"},
	{"Basalt", "feel", "https://www.citroen.com.br/content/dam/citroen/products/ficha-t%C3%A9cnica/Ficha-T%C3%A9cnica-Basalt-Feel-MT-CY25-1.pdf"},
}

// Table is an immutable (model, trim name) to URL map.
type Table struct {
	urls map[key]string
}

// NewTable builds a table from entries. Entry names go through Normalize,
// so "C3 YOU! T200" and "c3 you t200" are the same key.
func NewTable(entries []Entry) *Table {
	t := &Table{urls: make(map[key]string, len(entries))}
	for _, e := range entries {
		t.urls[key{model: e.Model, name: Normalize(e.Name)}] = e.URL
	}
	return t
}

// Citroen returns the table of known Citroën datasheets.
func Citroen() *Table {
	return NewTable(citroenEntries)
}

// Resolve returns the datasheet URL of a trim, if the table knows it.
// A nil table knows nothing.
func (t *Table) Resolve(model, name string) (string, bool) {
	if t == nil {
		return "", false
	}
	u, ok := t.urls[key{model: model, name: Normalize(name)}]
	return u, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.urls)
}

// Normalize lowercases, trims and removes exclamation marks.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "!", "")
}
