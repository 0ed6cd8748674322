// Package overview serves the cross-aggregate derived reads: metabolic
// dashboard, score context and catalog, consolidated timeline, paginated
// report and dual-audience plans. Everything here is recomputed per request
// from the persisted aggregates; nothing is stored.
package overview

import (
	"sort"
	"strings"
	"time"

	"github.com/endocrino/emr/internal/domain/bioimpedance"
	"github.com/endocrino/emr/internal/domain/exam"
	"github.com/endocrino/emr/internal/platform/labs"
)

// Gauge is one dashboard dial: a current value and its risk band.
type Gauge struct {
	Name  string  `json:"nome"`
	Value float64 `json:"valor"`
	Band  string  `json:"faixa"`
}

// Dashboard aggregates the patient's metabolic state: gauges, active alert
// conditions and first-vs-last trend directions. Trend keys are absent, not
// empty, when fewer than two readings exist.
type Dashboard struct {
	Gauges []Gauge           `json:"velocimetros"`
	Alerts []string          `json:"alertas"`
	Trends map[string]string `json:"tendencias"`
}

type reading struct {
	date  time.Time
	value float64
	unit  string
}

// mmolEquivalent normalizes a glucose reading for threshold comparison.
// Readings already in mmol/L pass through; everything else is treated as
// mg/dL and divided by 18.
func mmolEquivalent(r reading) float64 {
	if cu := labs.NormalizeUnit(r.unit); cu != nil && cu.Key == "mmol/L" {
		return r.value
	}
	return r.value / 18
}

// BuildDashboard computes the metabolic dashboard from the patient's exam
// and bioimpedance history. Input order does not matter; readings are sorted
// by date internally.
func BuildDashboard(exams []*exam.Record, bios []*bioimpedance.Assessment) Dashboard {
	var glucose, hba1c []reading
	for _, rec := range exams {
		for _, res := range rec.Results {
			v := labs.ParseNumericValue(res.Value)
			if v == nil {
				continue
			}
			r := reading{date: rec.ExamDate, value: *v}
			if res.Unit != nil {
				r.unit = *res.Unit
			}
			name := strings.ToLower(res.Parameter)
			switch {
			case strings.Contains(name, "glicemia"):
				glucose = append(glucose, r)
			case labs.Slug(res.Parameter) == "hba1c":
				hba1c = append(hba1c, r)
			}
		}
	}
	byDate := func(rs []reading) func(i, j int) bool {
		return func(i, j int) bool { return rs[i].date.Before(rs[j].date) }
	}
	sort.SliceStable(glucose, byDate(glucose))
	sort.SliceStable(hba1c, byDate(hba1c))

	sorted := append([]*bioimpedance.Assessment(nil), bios...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AssessmentDate.Before(sorted[j].AssessmentDate)
	})
	var weights, bodyFat []reading
	for _, b := range sorted {
		if b.Weight != nil {
			weights = append(weights, reading{date: b.AssessmentDate, value: *b.Weight})
		}
		if b.BodyFatPercent != nil {
			bodyFat = append(bodyFat, reading{date: b.AssessmentDate, value: *b.BodyFatPercent})
		}
	}

	d := Dashboard{Alerts: []string{}, Trends: map[string]string{}}

	if len(glucose) > 0 {
		latest := glucose[len(glucose)-1]
		elevated := mmolEquivalent(latest) >= 7
		for _, r := range glucose {
			if cu := labs.NormalizeUnit(r.unit); cu != nil && cu.Key == "mg/dL" && r.value >= 126 {
				elevated = true
			}
		}
		if elevated {
			d.Alerts = append(d.Alerts, "Glicemia em jejum elevada")
		}
	}
	if len(hba1c) > 0 && hba1c[len(hba1c)-1].value >= 7 {
		d.Alerts = append(d.Alerts, "HbA1c acima da meta")
	}
	if len(bodyFat) > 0 && bodyFat[len(bodyFat)-1].value >= 35 {
		d.Alerts = append(d.Alerts, "Composição corporal desfavorável")
	}

	// Glycemic control gauge prefers HbA1c over raw glucose.
	switch {
	case len(hba1c) > 0:
		latest := hba1c[len(hba1c)-1].value
		band := "moderado"
		if latest >= 7 {
			band = "alto"
		}
		d.Gauges = append(d.Gauges, Gauge{Name: "Controle glicêmico", Value: latest, Band: band})
	case len(glucose) > 0:
		d.Gauges = append(d.Gauges, Gauge{
			Name:  "Controle glicêmico",
			Value: glucose[len(glucose)-1].value,
			Band:  "moderado",
		})
	}
	if len(bodyFat) > 0 {
		latest := bodyFat[len(bodyFat)-1].value
		band := "moderado"
		if latest > 30 {
			band = "alto"
		}
		d.Gauges = append(d.Gauges, Gauge{Name: "Risco metabólico", Value: latest, Band: band})
	}

	if trend, ok := trendDirection(weights); ok {
		d.Trends["peso"] = trend
	}
	if trend, ok := trendDirection(hba1c); ok {
		d.Trends["hba1c"] = trend
	}
	return d
}

// trendDirection compares the first and last reading. Decreasing values mean
// improvement for both tracked metrics (weight and HbA1c).
func trendDirection(rs []reading) (string, bool) {
	if len(rs) < 2 {
		return "", false
	}
	first, last := rs[0].value, rs[len(rs)-1].value
	switch {
	case last < first:
		return "melhora", true
	case last > first:
		return "piora", true
	default:
		return "estavel", true
	}
}
