package comparison

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"manuaisprj/internal/classifier"
	"manuaisprj/internal/model"
)

// Mapper turns a label/value pair of any comparison layout into record fields.
type Mapper struct {
	classifier *classifier.Classifier
}

func NewMapper(c *classifier.Classifier) *Mapper {
	return &Mapper{classifier: c}
}

// Apply stores value under the field that label maps to. Empty values are
// ignored. An engine label also sets the classified engine fields.
func (m *Mapper) Apply(rec *model.ComparisonRecord, label, value string) {
	label = strings.ToLower(collapse(label))
	value = collapse(value)
	if label == "" || value == "" {
		return
	}

	switch {
	case strings.Contains(label, "carga útil") || strings.Contains(label, "capacidade/carga"):
		rec.Set(model.KeyPayload, value)
	case label == "motor" || strings.Contains(label, "motorização e câmbio"):
		attrs := m.classifier.Classify(value)
		rec.Set(model.KeyEngineText, value)
		rec.Set(model.KeyEngine, attrs.Engine)
		rec.Set(model.KeyTurbo, string(attrs.Turbo))
		rec.Set(model.KeyFuel, string(attrs.Fuel))
	default:
		rec.Set(freeFormKey(NormalizeLabel(label)), value)
	}
}

// freeFormKey keeps a free-form label off the fields only the engine label
// and the datasheet link may fill.
func freeFormKey(key string) string {
	switch key {
	case model.KeyEngineText, model.KeyEngine, model.KeyTurbo, model.KeyFuel, model.KeyManualURL:
		return model.ComparisonKeyPrefix + key
	}
	return key
}

// NormalizeLabel makes a field key of a label: lowercase, no diacritics,
// spaces and slashes replaced by underscores.
func NormalizeLabel(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(label)))
	if err != nil {
		s = strings.ToLower(strings.TrimSpace(label))
	}
	return strings.NewReplacer(" ", "_", "/", "_").Replace(s)
}

// collapse trims and folds runs of whitespace, newlines included, to one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
