package overview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/endocrino/emr/internal/domain/bioimpedance"
	"github.com/endocrino/emr/internal/domain/consultation"
	"github.com/endocrino/emr/internal/domain/exam"
	"github.com/endocrino/emr/internal/domain/patient"
	"github.com/endocrino/emr/internal/platform/ai"
	"github.com/endocrino/emr/internal/platform/labs"
	"github.com/endocrino/emr/internal/platform/planner"
	"github.com/endocrino/emr/internal/platform/reportgen"
	"github.com/endocrino/emr/internal/platform/scores"
)

type Service struct {
	patients      *patient.Service
	exams         *exam.Service
	bios          *bioimpedance.Service
	consultations *consultation.Service

	maxCharsPerPage int
	pdf             reportgen.PDFConverter
	summarizer      ai.Summarizer

	scoresComputed   *prometheus.CounterVec
	reportsGenerated prometheus.Counter
}

// WithMetrics sets the per-type counter for computed scores and the
// counter for generated reports.
func (s *Service) WithMetrics(scoresComputed *prometheus.CounterVec, reportsGenerated prometheus.Counter) *Service {
	s.scoresComputed = scoresComputed
	s.reportsGenerated = reportsGenerated
	return s
}

// NewService wires the cross-aggregate reads over the four aggregate
// services. pdf may be nil when no converter service is configured.
func NewService(patients *patient.Service, exams *exam.Service, bios *bioimpedance.Service, consultations *consultation.Service, maxCharsPerPage int, pdf reportgen.PDFConverter) *Service {
	if maxCharsPerPage <= 0 {
		maxCharsPerPage = reportgen.DefaultMaxCharsPerPage
	}
	return &Service{
		patients:        patients,
		exams:           exams,
		bios:            bios,
		consultations:   consultations,
		maxCharsPerPage: maxCharsPerPage,
		pdf:             pdf,
		summarizer:      ai.NewExtractive(),
	}
}

// labContextFields maps parameter slugs to score context assignment. Later
// exams overwrite earlier ones, so each field ends up holding the most
// recent reading.
var labContextFields = map[string]func(*scores.Context, float64){
	"glicemia":        func(c *scores.Context, v float64) { c.Glucose = &v },
	"hba1c":           func(c *scores.Context, v float64) { c.HbA1c = &v },
	"colesteroltotal": func(c *scores.Context, v float64) { c.TotalCholesterol = &v },
	"ldl":             func(c *scores.Context, v float64) { c.LDL = &v },
	"hdl":             func(c *scores.Context, v float64) { c.HDL = &v },
	"triglicerideos":  func(c *scores.Context, v float64) { c.Triglycerides = &v },
	"triglicerides":   func(c *scores.Context, v float64) { c.Triglycerides = &v },
	"insulina":        func(c *scores.Context, v float64) { c.Insulin = &v },
	"creatinina":      func(c *scores.Context, v float64) { c.Creatinine = &v },
}

// ScoreContext assembles the flat calculator input from the patient row, the
// latest lab readings, the latest bioimpedance weight and the latest recorded
// systolic pressure. Absent data stays nil; the calculators decide what they
// can compute.
func (s *Service) ScoreContext(ctx context.Context, patientID uuid.UUID) (scores.Context, error) {
	p, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return scores.Context{}, fmt.Errorf("patient not found: %w", err)
	}

	sc := scores.Context{
		Age:                p.AgeAt(time.Now()),
		Sex:                p.Sex,
		Weight:             p.Weight,
		Height:             p.Height,
		WaistCircumference: p.WaistCircumference,
		Smoker:             p.Smoker,
		Diabetes:           p.Diabetes,
	}

	exams, err := s.exams.History(ctx, patientID)
	if err != nil {
		return scores.Context{}, err
	}
	for _, rec := range exams {
		for _, res := range rec.Results {
			assign, ok := labContextFields[labs.Slug(res.Parameter)]
			if !ok {
				continue
			}
			if v := labs.ParseNumericValue(res.Value); v != nil {
				assign(&sc, *v)
			}
		}
	}

	bios, err := s.bios.History(ctx, patientID)
	if err != nil {
		return scores.Context{}, err
	}
	for _, b := range bios {
		if b.Weight != nil {
			sc.Weight = b.Weight
		}
	}

	cons, err := s.consultations.History(ctx, patientID)
	if err != nil {
		return scores.Context{}, err
	}
	for _, con := range cons {
		if con.SystolicBP != nil {
			sc.SystolicBP = con.SystolicBP
		}
	}
	return sc, nil
}

// Scores runs the standard score catalog over the assembled context.
func (s *Service) Scores(ctx context.Context, patientID uuid.UUID) ([]scores.Result, error) {
	sc, err := s.ScoreContext(ctx, patientID)
	if err != nil {
		return nil, err
	}
	results := scores.Standard(sc)
	if s.scoresComputed != nil {
		for _, r := range results {
			s.scoresComputed.WithLabelValues(r.Type).Inc()
		}
	}
	return results, nil
}

// Dashboard recomputes the metabolic dashboard from the patient's history.
func (s *Service) Dashboard(ctx context.Context, patientID uuid.UUID) (Dashboard, error) {
	exams, err := s.exams.History(ctx, patientID)
	if err != nil {
		return Dashboard{}, err
	}
	bios, err := s.bios.History(ctx, patientID)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(exams, bios), nil
}

// Timeline consolidates the patient's feed, optionally filtered.
func (s *Service) Timeline(ctx context.Context, patientID uuid.UUID, filter *TimelineFilter) ([]Event, error) {
	cons, err := s.consultations.History(ctx, patientID)
	if err != nil {
		return nil, err
	}
	exams, err := s.exams.History(ctx, patientID)
	if err != nil {
		return nil, err
	}
	bios, err := s.bios.History(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return ConsolidateTimeline(cons, exams, bios, filter), nil
}

var defaultSMARTGoals = []string{
	"Reduzir a HbA1c em 0,5 ponto percentual até a próxima reavaliação trimestral",
	"Realizar 150 minutos de atividade física por semana nas próximas 12 semanas",
	"Registrar o peso semanalmente e revisar a curva a cada consulta",
}

// Plan renders the dual-audience plan for a built-in condition template.
func (s *Service) Plan(ctx context.Context, patientID uuid.UUID, condition string) (planner.DualPlan, error) {
	p, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return planner.DualPlan{}, fmt.Errorf("patient not found: %w", err)
	}
	tpl, ok := planner.TemplateFor(condition)
	if !ok {
		return planner.DualPlan{}, fmt.Errorf("unknown condition: %s", condition)
	}
	return planner.GenerateDualPlan(tpl, p.Name, defaultSMARTGoals), nil
}

// Report is the paginated clinical report: a summary page followed by the
// content pages, plus the rendered HTML.
type Report struct {
	Title   string           `json:"titulo"`
	Summary reportgen.Page   `json:"sumario"`
	Pages   []reportgen.Page `json:"paginas"`
	HTML    string           `json:"html"`
}

// BuildReport assembles the patient's sections, paginates them and renders
// the HTML.
func (s *Service) BuildReport(ctx context.Context, patientID uuid.UUID) (*Report, error) {
	p, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("patient not found: %w", err)
	}
	sections, err := s.reportSections(ctx, p)
	if err != nil {
		return nil, err
	}

	pages := reportgen.Paginate(sections, s.maxCharsPerPage, 2)
	summary := reportgen.SummaryPage(pages)
	title := "Relatório clínico — " + p.Name
	if s.reportsGenerated != nil {
		s.reportsGenerated.Inc()
	}
	return &Report{
		Title:   title,
		Summary: summary,
		Pages:   pages,
		HTML:    reportgen.RenderHTML(title, summary, pages),
	}, nil
}

// ReportPDF converts the rendered report through the injected converter.
func (s *Service) ReportPDF(ctx context.Context, patientID uuid.UUID) ([]byte, error) {
	if s.pdf == nil {
		return nil, fmt.Errorf("pdf converter not configured")
	}
	rep, err := s.BuildReport(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.pdf(ctx, rep.HTML)
}

func (s *Service) reportSections(ctx context.Context, p *patient.Patient) ([]reportgen.Section, error) {
	var sections []reportgen.Section

	ident := "Paciente: " + p.Name
	if age := p.AgeAt(time.Now()); age != nil {
		ident += fmt.Sprintf(". Idade: %.0f anos", *age)
	}
	if p.Sex != nil {
		ident += ". Sexo: " + *p.Sex
	}
	sections = append(sections, reportgen.Section{Title: "Identificação", Content: ident + "."})

	sc, err := s.ScoreContext(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	var scoreText string
	for _, r := range scores.Standard(sc) {
		scoreText += fmt.Sprintf("%s: %s ", r.Name, r.Interpretation)
	}
	if scoreText == "" {
		scoreText = "Sem escores calculáveis com os dados disponíveis."
	}
	sections = append(sections, reportgen.Section{Title: "Escores clínicos", Content: scoreText})

	cons, err := s.consultations.History(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if summary := s.summarizeConsultations(ctx, cons); summary != "" {
		sections = append(sections, reportgen.Section{Title: "Resumo clínico", Content: summary})
	}

	series, err := s.exams.EvolutionSeries(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	var evoText string
	for _, sr := range series {
		last := sr.Points[len(sr.Points)-1]
		evoText += fmt.Sprintf("%s: %d medições, última %.2f em %s. ",
			sr.Parameter, len(sr.Points), last.Value, last.Date.Format("02/01/2006"))
	}
	if evoText == "" {
		evoText = "Sem séries laboratoriais com duas ou mais medições."
	}
	sections = append(sections, reportgen.Section{Title: "Evolução laboratorial", Content: evoText})

	events, err := s.Timeline(ctx, p.ID, nil)
	if err != nil {
		return nil, err
	}
	var feedText string
	for _, ev := range events {
		feedText += fmt.Sprintf("%s %s", ev.Date.Format("02/01/2006"), ev.Title)
		if ev.Description != "" {
			feedText += " (" + ev.Description + ")"
		}
		feedText += ". "
	}
	if feedText == "" {
		feedText = "Sem eventos registrados."
	}
	sections = append(sections, reportgen.Section{Title: "Linha do tempo", Content: feedText})

	return sections, nil
}

// summarizeConsultations condenses the narrative of the most recent
// consultations into a few sentences. Newest notes come first so the
// extractive summarizer keeps the current clinical picture.
func (s *Service) summarizeConsultations(ctx context.Context, cons []*consultation.Consultation) string {
	var parts []string
	for i := len(cons) - 1; i >= 0; i-- {
		for _, field := range []*string{cons[i].Assessment, cons[i].Plan, cons[i].Conduct} {
			if field != nil && *field != "" {
				parts = append(parts, *field)
			}
		}
	}
	if len(parts) == 0 {
		return ""
	}
	summary, err := s.summarizer.Summarize(ctx, strings.Join(parts, " "), 4)
	if err != nil {
		return ""
	}
	return summary
}
