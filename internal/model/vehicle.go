package model

// Model is a vehicle line listed in the catalog menu.
type Model struct {
	Name       string
	Category   string
	CatalogURL string
}

// Turbo is "Sim" when a turbo keyword was found and unknown otherwise.
// There is no "no" value: a missing keyword proves nothing.
type Turbo string

const (
	TurboUnknown Turbo = ""
	TurboYes     Turbo = "Sim"
)

type FuelType string

const (
	FuelUnknown  FuelType = ""
	FuelHybrid   FuelType = "Híbrido"
	FuelElectric FuelType = "Elétrico"
	FuelFlex     FuelType = "Flex"
	FuelDiesel   FuelType = "Diesel"
	FuelCNG      FuelType = "GNV"
	FuelGasoline FuelType = "Gasolina"
	FuelEthanol  FuelType = "Etanol/Álcool"
	FuelHydrogen FuelType = "Hidrogênio"
)

// Output keys of a trim record.
const (
	KeyBrand         = "marca"
	KeyModel         = "modelo"
	KeyVehicleType   = "tipo_veiculo"
	KeyYear          = "ano"
	KeyName          = "versao"
	KeyPrice         = "preco"
	KeyImageURL      = "imagem_url"
	KeyManualURL     = "manual_url"
	KeyEngineText    = "motorizacao"
	KeyEngine        = "motor"
	KeyTurbo         = "turbo"
	KeyFuel          = "combustivel"
	KeyTires         = "pneus"
	KeyTireDiameter  = "pneus_diametro"
	KeyAirCond       = "ar_condicionado"
	KeyOtherFeatures = "outras_caracteristicas"
	KeyPayload       = "carga_util"
)

// ComparisonKeyPrefix marks comparison values kept apart from the record
// columns they would otherwise overwrite.
const ComparisonKeyPrefix = "comparativo_"

// Field is a key/value pair whose order is kept in records and output.
// An empty Value is a present field without a value.
type Field struct {
	Key   string
	Value string
}

// TrimRecord is one sellable configuration ("versão") of a model.
type TrimRecord struct {
	Brand           string
	Model           string
	Name            string
	Price           string
	ImageURL        string
	ManualURL       string
	EngineText      string
	Engine          string
	Turbo           Turbo
	Fuel            FuelType
	TireText        string
	TireDiameter    string
	AirConditioning string
	OtherFeatures   []string
	Extra           []Field
}

// ComparisonRecord is the view of one trim taken from a comparison matrix.
type ComparisonRecord struct {
	Name      string
	Fields    []Field
	ManualURL string
}

// Get returns the value of field key, if the record has one.
func (c ComparisonRecord) Get(key string) (string, bool) {
	for _, f := range c.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set stores value under key, replacing an earlier value of the same key
// while keeping the position where the key first appeared.
func (c *ComparisonRecord) Set(key, value string) {
	c.Fields = setField(c.Fields, key, value)
}

// Clone returns a copy that shares no slices with r.
func (r TrimRecord) Clone() TrimRecord {
	out := r
	if r.OtherFeatures != nil {
		out.OtherFeatures = append([]string(nil), r.OtherFeatures...)
	}
	if r.Extra != nil {
		out.Extra = append([]Field(nil), r.Extra...)
	}
	return out
}

// Set assigns value to the column named by output key. Identity keys are never
// overwritten; such values are kept under a "comparativo_" key instead.
// Unknown keys go to Extra.
func (r *TrimRecord) Set(key, value string) {
	switch key {
	case KeyBrand, KeyModel, KeyName, KeyVehicleType, KeyYear:
		r.Extra = setField(r.Extra, ComparisonKeyPrefix+key, value)
	case KeyPrice:
		r.Price = value
	case KeyImageURL:
		r.ImageURL = value
	case KeyManualURL:
		r.ManualURL = value
	case KeyEngineText:
		r.EngineText = value
	case KeyEngine:
		r.Engine = value
	case KeyTurbo:
		r.Turbo = Turbo(value)
	case KeyFuel:
		r.Fuel = FuelType(value)
	case KeyTires:
		r.TireText = value
	case KeyTireDiameter:
		r.TireDiameter = value
	case KeyAirCond:
		r.AirConditioning = value
	case KeyOtherFeatures:
		if value != "" && !contains(r.OtherFeatures, value) {
			r.OtherFeatures = append(r.OtherFeatures, value)
		}
	default:
		r.Extra = setField(r.Extra, key, value)
	}
}

// Lookup returns an Extra field by key.
func (r TrimRecord) Lookup(key string) (string, bool) {
	for _, f := range r.Extra {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func setField(fields []Field, key, value string) []Field {
	for i := range fields {
		if fields[i].Key == key {
			fields[i].Value = value
			return fields
		}
	}
	return append(fields, Field{Key: key, Value: value})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
