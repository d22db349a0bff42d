package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manuaisprj/internal/model"
)

func sample() model.TrimRecord {
	return model.TrimRecord{
		Brand:         "citroen",
		Model:         "C3",
		Name:          "C3 Feel",
		Price:         "R$ 89.990",
		EngineText:    "Motor 1.0 Firefly Flex",
		Engine:        "1.0",
		Fuel:          model.FuelFlex,
		OtherFeatures: []string{"Direção elétrica", "Multimídia <10\">"},
		Extra: []model.Field{
			{Key: model.KeyPayload, Value: "400 kg"},
			{Key: "comparativo_versao", Value: "C3 FEEL"},
			{Key: "tracao", Value: ""},
		},
	}
}

func TestFormat_KeyOrder(t *testing.T) {
	t.Parallel()

	rec := Format(sample())

	want := append(append([]string(nil), KeyOrder...), model.KeyPayload, "comparativo_versao", "tracao")
	assert.Equal(t, want, rec.Keys())

	v, _ := rec.Get(model.KeyVehicleType)
	assert.Equal(t, "TEXT", v)
	v, _ = rec.Get(model.KeyYear)
	assert.Equal(t, "INTEGER", v)
	v, _ = rec.Get(model.KeyTurbo)
	assert.Nil(t, v)
	v, _ = rec.Get("tracao")
	assert.Nil(t, v)
}

func TestFormat_EmptyFeaturesIsList(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Format(model.TrimRecord{Name: "Feel"}))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"outras_caracteristicas":[]`)
	assert.Contains(t, string(b), `"manual_url":null`)
}

func TestRecord_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Record{{"b", "Elétrico"}, {"a", 1}, {"c", nil}})
	require.NoError(t, err)
	assert.Equal(t, `{"b":"Elétrico","a":1,"c":null}`, string(b))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, FormatAll([]model.TrimRecord{sample()})))

	out := buf.String()
	assert.Contains(t, out, "\n  {\n    \"marca\": \"citroen\",\n    \"modelo\": \"C3\",")
	assert.Contains(t, out, `"Direção elétrica"`)
	assert.Contains(t, out, `"Multimídia <10\">"`)
	assert.NotContains(t, out, `\u00e7`)
	assert.NotContains(t, out, `\u003c`)

	var back []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back, 1)
	assert.Equal(t, "400 kg", back[0][model.KeyPayload])
}

func TestWriteJSON_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "citroen_data.json")
	require.NoError(t, WriteFile(path, FormatAll([]model.TrimRecord{sample()})))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"versao": "C3 Feel"`)

	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "x.json"), nil))
}
