package overview

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/endocrino/emr/internal/domain/bioimpedance"
	"github.com/endocrino/emr/internal/domain/consultation"
	"github.com/endocrino/emr/internal/domain/exam"
	"github.com/endocrino/emr/internal/domain/patient"
)

// In-memory fakes for the four aggregate repositories. Only the methods the
// cross-aggregate reads touch carry real behavior.

type fakePatientRepo struct {
	patients map[uuid.UUID]*patient.Patient
}

func (f *fakePatientRepo) Create(_ context.Context, p *patient.Patient) error {
	p.ID = uuid.New()
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient %s not found", id)
	}
	return p, nil
}

func (f *fakePatientRepo) Update(_ context.Context, p *patient.Patient) error {
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.patients, id)
	return nil
}

func (f *fakePatientRepo) List(_ context.Context, _, _ int) ([]*patient.Patient, int, error) {
	return nil, 0, nil
}

func (f *fakePatientRepo) SearchByName(_ context.Context, _ string, _, _ int) ([]*patient.Patient, int, error) {
	return nil, 0, nil
}

type fakeExamRepo struct {
	exams  map[int64]*exam.Record
	nextID int64
}

func (f *fakeExamRepo) Create(_ context.Context, rec *exam.Record) error {
	f.nextID++
	rec.ID = f.nextID
	f.exams[rec.ID] = rec
	return nil
}

func (f *fakeExamRepo) GetByID(_ context.Context, id int64) (*exam.Record, error) {
	rec, ok := f.exams[id]
	if !ok {
		return nil, fmt.Errorf("exam %d not found", id)
	}
	return rec, nil
}

func (f *fakeExamRepo) Update(_ context.Context, rec *exam.Record) error {
	f.exams[rec.ID] = rec
	return nil
}

func (f *fakeExamRepo) Delete(_ context.Context, id int64) error {
	delete(f.exams, id)
	return nil
}

func (f *fakeExamRepo) ListByPatient(_ context.Context, patientID uuid.UUID, _, _ int) ([]*exam.Record, int, error) {
	all, _ := f.AllByPatient(context.Background(), patientID)
	return all, len(all), nil
}

func (f *fakeExamRepo) AllByPatient(_ context.Context, patientID uuid.UUID) ([]*exam.Record, error) {
	var out []*exam.Record
	for _, rec := range f.exams {
		if rec.PatientID == patientID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExamDate.Before(out[j].ExamDate) })
	return out, nil
}

type fakeBioRepo struct {
	items  map[int64]*bioimpedance.Assessment
	nextID int64
}

func (f *fakeBioRepo) Create(_ context.Context, a *bioimpedance.Assessment) error {
	f.nextID++
	a.ID = f.nextID
	f.items[a.ID] = a
	return nil
}

func (f *fakeBioRepo) GetByID(_ context.Context, id int64) (*bioimpedance.Assessment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("assessment %d not found", id)
	}
	return a, nil
}

func (f *fakeBioRepo) Update(_ context.Context, a *bioimpedance.Assessment) error {
	f.items[a.ID] = a
	return nil
}

func (f *fakeBioRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

func (f *fakeBioRepo) ListByPatient(_ context.Context, patientID uuid.UUID, _, _ int) ([]*bioimpedance.Assessment, int, error) {
	all, _ := f.AllByPatient(context.Background(), patientID)
	return all, len(all), nil
}

func (f *fakeBioRepo) AllByPatient(_ context.Context, patientID uuid.UUID) ([]*bioimpedance.Assessment, error) {
	var out []*bioimpedance.Assessment
	for _, a := range f.items {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssessmentDate.Before(out[j].AssessmentDate)
	})
	return out, nil
}

type fakeConsultationRepo struct {
	items  map[int64]*consultation.Consultation
	nextID int64
}

func (f *fakeConsultationRepo) Create(_ context.Context, con *consultation.Consultation) error {
	f.nextID++
	con.ID = f.nextID
	f.items[con.ID] = con
	return nil
}

func (f *fakeConsultationRepo) GetByID(_ context.Context, id int64) (*consultation.Consultation, error) {
	con, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("consultation %d not found", id)
	}
	return con, nil
}

func (f *fakeConsultationRepo) Update(_ context.Context, con *consultation.Consultation) error {
	f.items[con.ID] = con
	return nil
}

func (f *fakeConsultationRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

func (f *fakeConsultationRepo) ListByPatient(_ context.Context, patientID uuid.UUID, _, _ int) ([]*consultation.Consultation, int, error) {
	all, _ := f.AllByPatient(context.Background(), patientID)
	return all, len(all), nil
}

func (f *fakeConsultationRepo) AllByPatient(_ context.Context, patientID uuid.UUID) ([]*consultation.Consultation, error) {
	var out []*consultation.Consultation
	for _, con := range f.items {
		if con.PatientID == patientID {
			out = append(out, con)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fixture struct {
	svc       *Service
	patientID uuid.UUID
	exams     *fakeExamRepo
	bios      *fakeBioRepo
	cons      *fakeConsultationRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	patients := &fakePatientRepo{patients: map[uuid.UUID]*patient.Patient{}}
	exams := &fakeExamRepo{exams: map[int64]*exam.Record{}}
	bios := &fakeBioRepo{items: map[int64]*bioimpedance.Assessment{}}
	cons := &fakeConsultationRepo{items: map[int64]*consultation.Consultation{}}

	birth := time.Date(1970, 5, 20, 0, 0, 0, 0, time.UTC)
	sex := "feminino"
	p := &patient.Patient{
		Name:      "Maria das Dores",
		Sex:       &sex,
		BirthDate: &birth,
		Weight:    floatPtr(78),
		Height:    floatPtr(1.62),
	}
	if err := patients.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := NewService(
		patient.NewService(patients),
		exam.NewService(exams),
		bioimpedance.NewService(bios),
		consultation.NewService(cons),
		0, nil,
	)
	return &fixture{svc: svc, patientID: p.ID, exams: exams, bios: bios, cons: cons}
}

func (fx *fixture) addExam(t *testing.T, date string, results ...exam.Result) {
	t.Helper()
	rec := &exam.Record{PatientID: fx.patientID, ExamDate: day(date), Results: results}
	if err := fx.exams.Create(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func labResult(param, value, unit string) exam.Result {
	res := exam.Result{Parameter: param, Value: value}
	if unit != "" {
		res.Unit = &unit
	}
	return res
}

func TestScoreContext_AssemblesLatestReadings(t *testing.T) {
	fx := newFixture(t)

	fx.addExam(t, "2024-01-01",
		labResult("Glicemia", "110", "mg/dL"),
		labResult("Creatinina", "0.9", "mg/dL"),
	)
	fx.addExam(t, "2024-03-01", labResult("Glicemia", "98", "mg/dL"))

	bio := &bioimpedance.Assessment{
		PatientID:      fx.patientID,
		AssessmentDate: day("2024-02-15"),
		Weight:         floatPtr(76.4),
	}
	if err := fx.bios.Create(context.Background(), bio); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bp := 132.0
	con := &consultation.Consultation{
		PatientID:  fx.patientID,
		Date:       day("2024-02-20"),
		SystolicBP: &bp,
	}
	if err := fx.cons.Create(context.Background(), con); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sc, err := fx.svc.ScoreContext(context.Background(), fx.patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Glucose == nil || *sc.Glucose != 98 {
		t.Errorf("expected latest glicemia 98, got %v", sc.Glucose)
	}
	if sc.Creatinine == nil || *sc.Creatinine != 0.9 {
		t.Errorf("expected creatinina 0.9, got %v", sc.Creatinine)
	}
	if sc.Weight == nil || *sc.Weight != 76.4 {
		t.Errorf("expected bioimpedance weight 76.4 to win, got %v", sc.Weight)
	}
	if sc.SystolicBP == nil || *sc.SystolicBP != 132 {
		t.Errorf("expected systolic 132, got %v", sc.SystolicBP)
	}
	if sc.Age == nil || *sc.Age < 50 {
		t.Errorf("expected computed age, got %v", sc.Age)
	}
	if sc.Insulin != nil {
		t.Error("expected insulina to stay unknown")
	}
}

func TestScores_RunsCatalogOverContext(t *testing.T) {
	fx := newFixture(t)
	fx.addExam(t, "2024-01-01",
		labResult("Glicemia", "90", "mg/dL"),
		labResult("Insulina", "18,225", "uUI/mL"),
	)

	results, err := fx.svc.Scores(context.Background(), fx.patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var homa bool
	for _, r := range results {
		if r.Type == "homa-ir" {
			homa = true
			if r.Value["valor"] != 4.05 {
				t.Errorf("expected HOMA-IR 4.05, got %v", r.Value["valor"])
			}
		}
	}
	if !homa {
		t.Error("expected HOMA-IR result in catalog output")
	}
}

func TestScoresAndReport_CountActivity(t *testing.T) {
	fx := newFixture(t)
	fx.addExam(t, "2024-01-01",
		labResult("Glicemia", "90", "mg/dL"),
		labResult("Insulina", "18,225", "uUI/mL"),
	)

	computed := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "scores_computed_total"}, []string{"tipo"})
	reports := prometheus.NewCounter(prometheus.CounterOpts{Name: "reports_generated_total"})
	fx.svc.WithMetrics(computed, reports)

	if _, err := fx.svc.Scores(context.Background(), fx.patientID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(computed.WithLabelValues("homa-ir")); got != 1 {
		t.Errorf("expected homa-ir computed once, got %v", got)
	}

	if _, err := fx.svc.BuildReport(context.Background(), fx.patientID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(reports); got != 1 {
		t.Errorf("expected one generated report, got %v", got)
	}
}

func TestDashboard_FromHistory(t *testing.T) {
	fx := newFixture(t)
	fx.addExam(t, "2024-01-01", labResult("Glicemia", "140", "mg/dL"))

	d, err := fx.svc.Dashboard(context.Background(), fx.patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasAlert(d, "Glicemia em jejum elevada") {
		t.Error("expected glucose alert")
	}
}

func TestPlan_RendersForPatient(t *testing.T) {
	fx := newFixture(t)

	plan, err := fx.svc.Plan(context.Background(), fx.patientID, "dm2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Clinician.Blocks) == 0 {
		t.Fatal("expected clinician blocks")
	}
	if !strings.Contains(plan.Clinician.Blocks[0].Content, "Maria das Dores") {
		t.Errorf("expected patient name substituted, got %q", plan.Clinician.Blocks[0].Content)
	}
	if strings.Contains(plan.Patient.Blocks[0].Content, "diabetes mellitus tipo 2") {
		t.Error("expected bolded span removed from patient rendering")
	}
}

func TestPlan_UnknownCondition(t *testing.T) {
	fx := newFixture(t)

	if _, err := fx.svc.Plan(context.Background(), fx.patientID, "asma"); err == nil {
		t.Fatal("expected error for unknown condition")
	}
}

func TestBuildReport_PaginatesSections(t *testing.T) {
	fx := newFixture(t)
	fx.addExam(t, "2024-01-01", labResult("Glicemia", "95", "mg/dL"))
	fx.addExam(t, "2024-03-01", labResult("Glicemia", "101", "mg/dL"))

	rep, err := fx.svc.BuildReport(context.Background(), fx.patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Summary.Number != 1 {
		t.Errorf("expected summary page 1, got %d", rep.Summary.Number)
	}
	if len(rep.Pages) < 4 {
		t.Fatalf("expected at least 4 content pages, got %d", len(rep.Pages))
	}
	if rep.Pages[0].Number != 2 {
		t.Errorf("expected first content page 2, got %d", rep.Pages[0].Number)
	}
	if !strings.Contains(rep.HTML, "Maria das Dores") {
		t.Error("expected patient name in rendered HTML")
	}
}

func TestBuildReport_SummarizesConsultationNotes(t *testing.T) {
	fx := newFixture(t)

	con := &consultation.Consultation{
		PatientID:  fx.patientID,
		Date:       day("2024-02-20"),
		Assessment: strPtr("DM2 compensado. IMC em queda."),
		Plan:       strPtr("Manter metformina 850mg. Retorno em 90 dias."),
	}
	if err := fx.cons.Create(context.Background(), con); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rep, err := fx.svc.BuildReport(context.Background(), fx.patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rep.HTML, "Resumo clínico") {
		t.Error("expected a clinical summary section")
	}
	if !strings.Contains(rep.HTML, "DM2 compensado.") {
		t.Error("expected summary to keep the assessment text")
	}
}

func TestReportPDF_RequiresConverter(t *testing.T) {
	fx := newFixture(t)

	if _, err := fx.svc.ReportPDF(context.Background(), fx.patientID); err == nil {
		t.Fatal("expected error when no converter is configured")
	}
}

func TestReportPDF_UsesInjectedConverter(t *testing.T) {
	fx := newFixture(t)
	fx.svc.pdf = func(_ context.Context, html string) ([]byte, error) {
		if !strings.Contains(html, "Relatório clínico") {
			t.Errorf("converter received unexpected html")
		}
		return []byte("%PDF-1.4"), nil
	}

	pdf, err := fx.svc.ReportPDF(context.Background(), fx.patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(pdf) != "%PDF-1.4" {
		t.Errorf("unexpected pdf bytes: %q", pdf)
	}
}
