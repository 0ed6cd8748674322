package exam

import (
	"sort"
	"time"

	"github.com/endocrino/emr/internal/platform/labs"
)

// Point is one charted observation within a series.
type Point struct {
	Date       time.Time `json:"data"`
	Value      float64   `json:"valor"`
	ExamID     int64     `json:"exameId"`
	Type       *string   `json:"tipo,omitempty"`
	Laboratory *string   `json:"laboratorio,omitempty"`
}

// Series is the charted evolution of one lab parameter across exams.
// Derived on every request, never persisted.
type Series struct {
	ID           int     `json:"id"`
	Parameter    string  `json:"parametro"`
	Unit         *string `json:"unidade,omitempty"`
	BaseUnit     *string `json:"unidadeBase,omitempty"`
	UnitAdvisory *string `json:"avisoUnidade,omitempty"`
	Points       []Point `json:"pontos"`
}

// positionalFallbackOffset shifts the hash band for results that carry no
// explicit ID, so two unnamed results at different positions in the same
// exam cannot collapse into one series.
const positionalFallbackOffset = 2000

// BuildEvolutionSeries folds exam records into per-parameter time series.
// Unparseable values are skipped. The base unit of a series is fixed by the
// first result observed for that parameter; later points are converted to
// it when a conversion is known, and each conversion advisory overwrites
// the series advisory. Points are sorted ascending by date, series with
// fewer than two points are dropped entirely, and the output preserves
// first-seen parameter order.
func BuildEvolutionSeries(exams []*Record) []Series {
	byID := make(map[int]*Series)
	var order []int

	for _, ex := range exams {
		for idx, res := range ex.Results {
			value := labs.ParseNumericValue(res.Value)
			if value == nil {
				continue
			}

			var id int
			if res.ID != nil {
				id = int(*res.ID)
			} else {
				id = labs.ResolveParameterID(res.Parameter, positionalFallbackOffset+idx)
			}

			s, ok := byID[id]
			if !ok {
				s = &Series{
					ID:        id,
					Parameter: res.Parameter,
					Points:    []Point{},
				}
				if res.Unit != nil {
					unit := *res.Unit
					s.Unit = &unit
					if canonical := labs.NormalizeUnit(unit); canonical != nil {
						base := canonical.Label
						s.BaseUnit = &base
					}
				}
				byID[id] = s
				order = append(order, id)
			}

			v := *value
			if res.Unit != nil && s.Unit != nil {
				converted, advisory := labs.ConvertToBase(v, *res.Unit, *s.Unit)
				v = converted
				if advisory != "" {
					a := advisory
					s.UnitAdvisory = &a
				}
			}

			s.Points = append(s.Points, Point{
				Date:       ex.ExamDate,
				Value:      v,
				ExamID:     ex.ID,
				Type:       ex.Type,
				Laboratory: ex.Laboratory,
			})
		}
	}

	out := []Series{}
	for _, id := range order {
		s := byID[id]
		if len(s.Points) < 2 {
			continue
		}
		sort.SliceStable(s.Points, func(i, j int) bool {
			return s.Points[i].Date.Before(s.Points[j].Date)
		})
		out = append(out, *s)
	}
	return out
}
