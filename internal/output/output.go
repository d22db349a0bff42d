// Package output turns trim records into the flat, ordered JSON documents the
// schema migration step consumes.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"manuaisprj/internal/model"
)

// Placeholder values of the fields filled downstream by the schema migration.
const (
	VehicleTypePlaceholder = "TEXT"
	YearPlaceholder        = "INTEGER"
)

// KeyOrder is the order of the fixed keys at the start of every record.
var KeyOrder = []string{
	model.KeyBrand, model.KeyModel, model.KeyVehicleType, model.KeyYear, model.KeyName,
	model.KeyPrice, model.KeyImageURL, model.KeyManualURL, model.KeyEngineText,
	model.KeyEngine, model.KeyTurbo, model.KeyFuel, model.KeyTires, model.KeyTireDiameter,
	model.KeyAirCond, model.KeyOtherFeatures,
}

type Field struct {
	Key   string
	Value any
}

// Record is a JSON object that keeps its key order.
type Record []Field

func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(f.Key); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := enc.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("campo %s: %w", f.Key, err)
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Format places the fixed keys first, then every extra field of rec in its
// order. Empty values become null; nothing is dropped.
func Format(rec model.TrimRecord) Record {
	features := rec.OtherFeatures
	if features == nil {
		features = []string{}
	}
	out := Record{
		{model.KeyBrand, rec.Brand},
		{model.KeyModel, rec.Model},
		{model.KeyVehicleType, VehicleTypePlaceholder},
		{model.KeyYear, YearPlaceholder},
		{model.KeyName, rec.Name},
		{model.KeyPrice, nullable(rec.Price)},
		{model.KeyImageURL, nullable(rec.ImageURL)},
		{model.KeyManualURL, nullable(rec.ManualURL)},
		{model.KeyEngineText, nullable(rec.EngineText)},
		{model.KeyEngine, nullable(rec.Engine)},
		{model.KeyTurbo, nullable(string(rec.Turbo))},
		{model.KeyFuel, nullable(string(rec.Fuel))},
		{model.KeyTires, nullable(rec.TireText)},
		{model.KeyTireDiameter, nullable(rec.TireDiameter)},
		{model.KeyAirCond, nullable(rec.AirConditioning)},
		{model.KeyOtherFeatures, features},
	}
	for _, f := range rec.Extra {
		out = append(out, Field{f.Key, nullable(f.Value)})
	}
	return out
}

func FormatAll(recs []model.TrimRecord) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, Format(r))
	}
	return out
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// WriteJSON writes records as an indented UTF-8 JSON array. Non-ASCII and
// HTML characters are written literally.
func WriteJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("erro ao criar %s: %w", path, err)
	}
	if err := WriteJSON(f, records); err != nil {
		_ = f.Close()
		return fmt.Errorf("erro ao salvar %s: %w", path, err)
	}
	return f.Close()
}
