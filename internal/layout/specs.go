package layout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"manuaisprj/internal/classifier"
	"manuaisprj/internal/model"
)

var (
	reInches    = regexp.MustCompile(`(\d+)[”"]`)
	reRimPhrase = regexp.MustCompile(`(\d+)\s*(em|de)`)
)

// ApplySpecLines classifies the spec lines of one slide into rec. Engine,
// tire and air-conditioning lines fill their fields; every other non-empty
// line goes to OtherFeatures in order.
func ApplySpecLines(rec *model.TrimRecord, lines []string, c *classifier.Classifier) {
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "motor"):
			attrs := c.Classify(line)
			rec.EngineText = line
			rec.Engine = attrs.Engine
			rec.Turbo = attrs.Turbo
			rec.Fuel = attrs.Fuel
		case strings.Contains(lower, "rodas") || strings.Contains(lower, "pneu"):
			rec.TireText = line
			if d := TireDiameter(line); d != "" {
				rec.TireDiameter = d
			}
		case strings.HasPrefix(lower, "ar-condicionado"):
			rec.AirConditioning = AirConditioningVariant(lower)
		default:
			rec.OtherFeatures = append(rec.OtherFeatures, line)
		}
	}
}

// TireDiameter reads the rim size from "Rodas de liga leve 16”" or
// "Rodas 15 de aço".
func TireDiameter(line string) string {
	if m := reInches.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := reRimPhrase.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// AirConditioningVariant turns an "ar-condicionado ..." line into the variant:
// "Digital", the capitalized remainder, or "Sim" when nothing follows.
func AirConditioningVariant(line string) string {
	rest := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(line), "ar-condicionado", ""))
	switch {
	case strings.Contains(rest, "digital"):
		return "Digital"
	case rest != "":
		return capitalize(rest)
	default:
		return "Sim"
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
