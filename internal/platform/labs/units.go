package labs

import (
	"fmt"
	"strings"
)

// CanonicalUnit pairs a comparison key with the display label shown on
// charts. Two raw unit strings belong to the same unit when their keys match.
type CanonicalUnit struct {
	Key   string `json:"chave"`
	Label string `json:"rotulo"`
}

var unitSynonyms = map[string]CanonicalUnit{
	"mg/dl":  {Key: "mg/dL", Label: "mg/dL"},
	"mg%":    {Key: "mg/dL", Label: "mg/dL"},
	"mmol/l": {Key: "mmol/L", Label: "mmol/L"},
	"%":      {Key: "%", Label: "%"},
	"g/dl":   {Key: "g/dL", Label: "g/dL"},
}

// conversions maps "{fromKey}->{toKey}" to a conversion function. The glucose
// mmol/L to mg/dL factor of 18 is an approximation (exact is 18.016).
var conversions = map[string]func(float64) float64{
	"mmol/L->mg/dL": func(v float64) float64 { return v * 18 },
}

// NormalizeUnit canonicalizes a raw unit string. Known synonyms collapse to
// one key/label pair; unknown units pass through unchanged as both key and
// label. Returns nil for an empty unit.
func NormalizeUnit(unit string) *CanonicalUnit {
	trimmed := strings.TrimSpace(unit)
	if trimmed == "" {
		return nil
	}
	if cu, ok := unitSynonyms[strings.ToLower(trimmed)]; ok {
		return &cu
	}
	return &CanonicalUnit{Key: trimmed, Label: trimmed}
}

// ConvertToBase converts value from one unit to a series' base unit. When the
// units already match the value is returned untouched with no advisory. When a
// registered conversion exists it is applied and the advisory notes the
// approximation. When no conversion is known the value is returned unchanged
// together with an advisory naming both units: partial or approximate display
// is more useful to a clinician than hiding the series.
func ConvertToBase(value float64, fromUnit, toUnit string) (float64, string) {
	from := NormalizeUnit(fromUnit)
	to := NormalizeUnit(toUnit)
	if from == nil || to == nil || from.Key == to.Key {
		return value, ""
	}
	if convert, ok := conversions[from.Key+"->"+to.Key]; ok {
		return convert(value), fmt.Sprintf("Conversão aproximada de %s para %s aplicada", from.Label, to.Label)
	}
	return value, fmt.Sprintf("Unidades divergentes sem conversão conhecida: %s e %s; valores exibidos sem conversão", from.Label, to.Label)
}
