package overview

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/endocrino/emr/internal/domain/bioimpedance"
	"github.com/endocrino/emr/internal/domain/consultation"
	"github.com/endocrino/emr/internal/domain/exam"
)

// Event is one entry of the consolidated patient feed.
type Event struct {
	Date        time.Time `json:"data"`
	Type        string    `json:"tipo"`
	Title       string    `json:"titulo"`
	Description string    `json:"descricao,omitempty"`
	Badge       string    `json:"badge,omitempty"`
}

// TimelineFilter restricts the feed to a set of event types and/or a recency
// window in days.
type TimelineFilter struct {
	Types      []string `json:"tipos,omitempty"`
	PeriodDays *int     `json:"periodoDias,omitempty"`
}

var (
	adverseConduct = regexp.MustCompile(`(?i)efeito colateral|evento adverso`)
	adjustConduct  = regexp.MustCompile(`(?i)ajuste`)
)

// ConsolidateTimeline merges consultations, exams and bioimpedance
// assessments into one feed sorted descending by date.
func ConsolidateTimeline(cons []*consultation.Consultation, exams []*exam.Record, bios []*bioimpedance.Assessment, filter *TimelineFilter) []Event {
	return consolidateTimelineAt(time.Now(), cons, exams, bios, filter)
}

func consolidateTimelineAt(now time.Time, cons []*consultation.Consultation, exams []*exam.Record, bios []*bioimpedance.Assessment, filter *TimelineFilter) []Event {
	events := make([]Event, 0, len(cons)+len(exams)+len(bios))

	for _, con := range cons {
		ev := Event{
			Date:        con.Date,
			Type:        "consulta",
			Title:       "Consulta",
			Description: soapDescription(con),
		}
		if con.Conduct != nil {
			switch {
			case adverseConduct.MatchString(*con.Conduct):
				ev.Badge = "Alerta"
			case adjustConduct.MatchString(*con.Conduct):
				ev.Badge = "Ajuste"
			}
		}
		events = append(events, ev)
	}

	for _, rec := range exams {
		title := "Exame"
		if rec.Type != nil && *rec.Type != "" {
			title = "Exame " + *rec.Type
		}
		events = append(events, Event{
			Date:        rec.ExamDate,
			Type:        "exame",
			Title:       title,
			Description: fmt.Sprintf("%d parâmetro(s) avaliado(s)", len(rec.Results)),
			Badge:       "Exame",
		})
	}

	for _, b := range bios {
		events = append(events, Event{
			Date:        b.AssessmentDate,
			Type:        "bioimpedancia",
			Title:       "Bioimpedância",
			Description: bioDescription(b),
			Badge:       "BIA",
		})
	}

	events = applyFilter(now, events, filter)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.After(events[j].Date) })
	return events
}

// soapDescription concatenates the present SOAP fields as "S: | O: | A: | P:".
func soapDescription(con *consultation.Consultation) string {
	var parts []string
	for _, f := range []struct {
		prefix string
		value  *string
	}{
		{"S", con.Subjective},
		{"O", con.Objective},
		{"A", con.Assessment},
		{"P", con.Plan},
	} {
		if f.value != nil && *f.value != "" {
			parts = append(parts, f.prefix+": "+*f.value)
		}
	}
	return strings.Join(parts, " | ")
}

func bioDescription(b *bioimpedance.Assessment) string {
	var parts []string
	if b.Weight != nil {
		parts = append(parts, fmt.Sprintf("Peso: %.1f kg", *b.Weight))
	}
	if b.BodyFatPercent != nil {
		parts = append(parts, fmt.Sprintf("Gordura: %.1f%%", *b.BodyFatPercent))
	}
	return strings.Join(parts, " | ")
}

func applyFilter(now time.Time, events []Event, filter *TimelineFilter) []Event {
	if filter == nil {
		return events
	}
	var allowed map[string]bool
	if len(filter.Types) > 0 {
		allowed = make(map[string]bool, len(filter.Types))
		for _, t := range filter.Types {
			allowed[t] = true
		}
	}
	var cutoff time.Time
	if filter.PeriodDays != nil {
		cutoff = now.Add(-time.Duration(*filter.PeriodDays) * 24 * time.Hour)
	}

	out := events[:0]
	for _, ev := range events {
		if allowed != nil && !allowed[ev.Type] {
			continue
		}
		if filter.PeriodDays != nil && ev.Date.Before(cutoff) {
			continue
		}
		out = append(out, ev)
	}
	return out
}
