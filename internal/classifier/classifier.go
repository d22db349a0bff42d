package classifier

import (
	"strings"

	"manuaisprj/internal/model"
)

// ElectricClass is returned as displacement for electric motors described
// without a power rating.
const ElectricClass = "Elétrico"

// Attributes are the values derived from one engine description.
// Empty fields mean "unknown".
type Attributes struct {
	Engine string
	Turbo  model.Turbo
	Fuel   model.FuelType
}

type Classifier struct {
	rules *Rules
}

// New returns a classifier over rules. A nil rules builds the default tables.
func New(rules *Rules) *Classifier {
	if rules == nil {
		rules = NewRules()
	}
	return &Classifier{rules: rules}
}

func (c *Classifier) Classify(text string) Attributes {
	return Attributes{
		Engine: c.Displacement(text),
		Turbo:  c.Turbo(text),
		Fuel:   c.Fuel(text),
	}
}

// Displacement returns the first "<d>.<dd>" value, else an electric power
// rating such as "90 kW~122 cv", else "Elétrico" when the text mentions it.
func (c *Classifier) Displacement(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if m := c.rules.displacement.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := c.rules.electricPower.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if strings.Contains(strings.ToLower(text), "elétrico") {
		return ElectricClass
	}
	return ""
}

func (c *Classifier) Turbo(text string) model.Turbo {
	t, _ := c.TurboMatch(text)
	return t
}

// TurboMatch reports the turbo flag and the keyword that produced it.
// Only the part before the first transmission word is searched.
func (c *Classifier) TurboMatch(text string) (model.Turbo, string) {
	if strings.TrimSpace(text) == "" {
		return model.TurboUnknown, ""
	}
	motor := engineOnly(strings.ToUpper(text))
	for _, rule := range c.rules.turbo {
		if rule.re.MatchString(motor) {
			return model.TurboYes, rule.keyword
		}
	}
	return model.TurboUnknown, ""
}

func (c *Classifier) Fuel(text string) model.FuelType {
	if strings.TrimSpace(text) == "" {
		return model.FuelUnknown
	}
	for _, rule := range c.rules.fuel {
		if rule.re.MatchString(text) {
			return rule.fuel
		}
	}
	return model.FuelUnknown
}

func engineOnly(upper string) string {
	cut := len(upper)
	for _, marker := range transmissionMarkers {
		if i := strings.Index(upper, marker); i >= 0 && i < cut {
			cut = i
		}
	}
	return upper[:cut]
}
