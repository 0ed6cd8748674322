package overview

import (
	"testing"

	"github.com/endocrino/emr/internal/domain/bioimpedance"
	"github.com/endocrino/emr/internal/domain/consultation"
	"github.com/endocrino/emr/internal/domain/exam"
)

func consultaAt(date string, conduct *string) *consultation.Consultation {
	return &consultation.Consultation{
		Date:       day(date),
		Subjective: strPtr("Refere cansaço"),
		Assessment: strPtr("DM2 em acompanhamento"),
		Conduct:    conduct,
	}
}

func TestConsolidateTimeline_TypeFilter(t *testing.T) {
	cons := []*consultation.Consultation{consultaAt("2024-01-10", nil)}
	exams := []*exam.Record{{
		ExamDate: day("2024-02-10"),
		Type:     strPtr("sangue"),
		Results:  []exam.Result{{Parameter: "Glicemia", Value: "95"}},
	}}
	bios := []*bioimpedance.Assessment{bioAt("2024-03-10", floatPtr(82.5), floatPtr(31.2))}

	events := ConsolidateTimeline(cons, exams, bios, &TimelineFilter{
		Types: []string{"consulta", "bioimpedancia"},
	})

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != "bioimpedancia" || events[1].Type != "consulta" {
		t.Errorf("expected [bioimpedancia consulta] descending, got [%s %s]",
			events[0].Type, events[1].Type)
	}
}

func TestConsolidateTimeline_DescendingOrder(t *testing.T) {
	cons := []*consultation.Consultation{
		consultaAt("2024-01-10", nil),
		consultaAt("2024-03-10", nil),
		consultaAt("2024-02-10", nil),
	}

	events := ConsolidateTimeline(cons, nil, nil, nil)
	for i := 0; i < len(events)-1; i++ {
		if events[i].Date.Before(events[i+1].Date) {
			t.Fatalf("events not sorted descending at index %d", i)
		}
	}
}

func TestConsolidateTimeline_SOAPDescription(t *testing.T) {
	con := &consultation.Consultation{
		Date:       day("2024-01-10"),
		Subjective: strPtr("Poliúria"),
		Plan:       strPtr("Ajustar metformina"),
	}

	events := ConsolidateTimeline([]*consultation.Consultation{con}, nil, nil, nil)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	want := "S: Poliúria | P: Ajustar metformina"
	if events[0].Description != want {
		t.Errorf("expected %q, got %q", want, events[0].Description)
	}
}

func TestConsolidateTimeline_ConductBadges(t *testing.T) {
	cases := []struct {
		conduct string
		badge   string
	}{
		{"Paciente relatou efeito colateral da metformina", "Alerta"},
		{"Evento adverso leve observado", "Alerta"},
		{"Ajuste de dose da levotiroxina", "Ajuste"},
		{"Manter conduta atual", ""},
	}
	for _, tc := range cases {
		events := ConsolidateTimeline(
			[]*consultation.Consultation{consultaAt("2024-01-10", strPtr(tc.conduct))},
			nil, nil, nil)
		if events[0].Badge != tc.badge {
			t.Errorf("conduct %q: expected badge %q, got %q", tc.conduct, tc.badge, events[0].Badge)
		}
	}
}

func TestConsolidateTimeline_ExamAndBioEvents(t *testing.T) {
	exams := []*exam.Record{{
		ExamDate: day("2024-02-10"),
		Type:     strPtr("sangue"),
		Results: []exam.Result{
			{Parameter: "Glicemia", Value: "95"},
			{Parameter: "HbA1c", Value: "6.2"},
		},
	}}
	bios := []*bioimpedance.Assessment{bioAt("2024-03-10", floatPtr(82.5), floatPtr(31.2))}

	events := ConsolidateTimeline(nil, exams, bios, nil)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	bio, ex := events[0], events[1]
	if bio.Title != "Bioimpedância" || bio.Badge != "BIA" {
		t.Errorf("unexpected bio event: %+v", bio)
	}
	if bio.Description != "Peso: 82.5 kg | Gordura: 31.2%" {
		t.Errorf("unexpected bio description: %q", bio.Description)
	}
	if ex.Title != "Exame sangue" || ex.Badge != "Exame" {
		t.Errorf("unexpected exam event: %+v", ex)
	}
	if ex.Description != "2 parâmetro(s) avaliado(s)" {
		t.Errorf("unexpected exam description: %q", ex.Description)
	}
}

func TestConsolidateTimeline_PeriodFilter(t *testing.T) {
	now := day("2024-06-15")
	cons := []*consultation.Consultation{
		consultaAt("2024-06-10", nil),
		consultaAt("2024-01-10", nil),
	}
	days := 30

	events := consolidateTimelineAt(now, cons, nil, nil, &TimelineFilter{PeriodDays: &days})
	if len(events) != 1 {
		t.Fatalf("expected 1 recent event, got %d", len(events))
	}
	if !events[0].Date.Equal(day("2024-06-10")) {
		t.Errorf("unexpected event kept: %+v", events[0])
	}
}

func TestConsolidateTimeline_PeriodBoundaryInclusive(t *testing.T) {
	now := day("2024-06-15")
	days := 5
	cons := []*consultation.Consultation{consultaAt("2024-06-10", nil)}

	events := consolidateTimelineAt(now, cons, nil, nil, &TimelineFilter{PeriodDays: &days})
	if len(events) != 1 {
		t.Fatalf("expected event exactly on the cutoff to be kept, got %d", len(events))
	}
}

func TestConsolidateTimeline_Empty(t *testing.T) {
	events := ConsolidateTimeline(nil, nil, nil, nil)
	if events == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(events) != 0 {
		t.Errorf("expected 0 events, got %d", len(events))
	}
}
