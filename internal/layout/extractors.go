package layout

import (
	"time"

	"github.com/rs/zerolog"

	"manuaisprj/internal/classifier"
	"manuaisprj/internal/render"
)

// Default returns the known layouts in priority order: carousel, then tabs.
func Default(c *classifier.Classifier, b render.Browser, auxTimeout time.Duration, log zerolog.Logger) []Extractor {
	return []Extractor{
		NewCarousel(c),
		NewTabs(b, auxTimeout, log),
	}
}
