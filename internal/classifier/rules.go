// Package classifier maps free-text engine descriptions to displacement,
// turbo and fuel values using ordered rule tables.
package classifier

import (
	"regexp"
	"sort"
	"strings"

	"manuaisprj/internal/model"
)

// Aliases listed as "A / B" count as separate keywords.
var turboKeywordSource = []string{
	"T", "TC", "TCI", "TFSI", "TSI", "TGI", "TGDI", "GDI-T", "T-GDI", "GTDi", "EcoBoost",
	"TwinPower Turbo", "TurboJet / MultiAir Turbo", "THP", "HDi", "BlueHDi", "CDTi", "dCi",
	"TDCi", "CDI", "d-4D", "DTI", "SDI", "SDTI", "IDTEC", "CRDi", "TD4", "Di-D",
	"Boosterjet / Booster Hybrid", "TURBOJET", "TURBODIESEL", "TDI", "TD", "TURBOMAX",
	"TURBO",
}

// Order matters: hybrid, electric and flex come before the plain fuels.
var fuelRuleSource = []struct {
	fuel    model.FuelType
	pattern string
}{
	{model.FuelHybrid, `h[ií]brido|hybrid|phev|hev|mhev|plug[-\s]?in|48v`},
	{model.FuelElectric, `el[eé]trico|eléctrico|ev|bev|motor\s*el[eé]trico|bateria`},
	{model.FuelFlex, `flex|bi[-\s]?fuel|flex[-\s]?fuel|gasolina/[aá]lcool|etanol/gasolina`},
	{model.FuelDiesel, `diesel|dsl|gas[oó]leo|tdi|hdi|cdti|tdci|bluehdi|dci|crdi|ddi|di-d`},
	{model.FuelCNG, `gnv|cng|ngv|g[aá]s\s*natural|g[aá]s\s*veicular`},
	{model.FuelGasoline, `gasolina|petrol|gasoline|nafta`},
	{model.FuelEthanol, `et[aá]nol|[aá]lcool|ethanol`},
	{model.FuelHydrogen, `hidrog[eê]nio|hydrogen|fuel\s*cell|fcev`},
}

// Transmission words end the engine part of a description; codes after them
// ("MANUAL T6") are not engine codes.
var transmissionMarkers = []string{"CÂMBIO", "AUTOMÁTICO", "MANUAL"}

// Word boundaries are Unicode aware so that accented letters count as letters.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:[^\p{L}\p{N}_]|$)`
)

type turboRule struct {
	keyword string
	re      *regexp.Regexp
}

type fuelRule struct {
	fuel model.FuelType
	re   *regexp.Regexp
}

// Rules holds the compiled rule tables. It is built once by NewRules and
// never modified, so one value can be shared by every classifier.
type Rules struct {
	turbo         []turboRule
	fuel          []fuelRule
	displacement  *regexp.Regexp
	electricPower *regexp.Regexp
}

func NewRules() *Rules {
	r := &Rules{
		displacement:  regexp.MustCompile(wordStart + `(\d\.\d+)` + wordEnd),
		electricPower: regexp.MustCompile(`(?i)(\d+\s*kW~\d+\s*cv)`),
	}
	for _, kw := range sortedTurboKeywords() {
		r.turbo = append(r.turbo, turboRule{
			keyword: kw,
			re:      regexp.MustCompile(wordStart + regexp.QuoteMeta(kw) + wordEnd),
		})
	}
	for _, f := range fuelRuleSource {
		r.fuel = append(r.fuel, fuelRule{
			fuel: f.fuel,
			re:   regexp.MustCompile(`(?i)` + wordStart + `(?:` + f.pattern + `)` + wordEnd),
		})
	}
	return r
}

// TurboKeywords returns the keywords in the order they are tried.
func (r *Rules) TurboKeywords() []string {
	out := make([]string, len(r.turbo))
	for i, t := range r.turbo {
		out[i] = t.keyword
	}
	return out
}

// sortedTurboKeywords uppercases, splits aliases, removes duplicates and sorts
// longest first. Ties are broken alphabetically.
func sortedTurboKeywords() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range turboKeywordSource {
		for _, part := range strings.Split(item, " / ") {
			kw := strings.ToUpper(strings.TrimSpace(part))
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			out = append(out, kw)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
