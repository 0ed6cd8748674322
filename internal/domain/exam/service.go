package exam

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/endocrino/emr/internal/platform/labs"
)

type Service struct {
	repo     Repository
	recorded prometheus.Counter
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithMetrics sets the counter incremented for every exam recorded.
func (s *Service) WithMetrics(recorded prometheus.Counter) *Service {
	s.recorded = recorded
	return s
}

var validStatuses = map[string]bool{
	"normal":   true,
	"alterado": true,
	"critico":  true,
}

func (s *Service) validate(rec *Record) error {
	if rec.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if rec.ExamDate.IsZero() {
		rec.ExamDate = time.Now().UTC()
	}
	for i := range rec.Results {
		res := &rec.Results[i]
		if res.Parameter == "" {
			return fmt.Errorf("resultado sem parametro")
		}
		if res.Status != nil && !validStatuses[*res.Status] {
			return fmt.Errorf("invalid status: %s", *res.Status)
		}
		// Supplied IDs are preserved; absent ones are regenerated from the
		// parameter identity so the same parameter lines up across exams.
		if res.ID == nil {
			id := int64(labs.ResolveParameterID(res.Parameter, labs.DefaultFallbackOffset))
			res.ID = &id
		}
	}
	return nil
}

func (s *Service) CreateExam(ctx context.Context, rec *Record) error {
	if err := s.validate(rec); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return err
	}
	if s.recorded != nil {
		s.recorded.Inc()
	}
	return nil
}

func (s *Service) GetExam(ctx context.Context, id int64) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateExam(ctx context.Context, rec *Record) error {
	existing, err := s.repo.GetByID(ctx, rec.ID)
	if err != nil {
		return fmt.Errorf("exam not found: %w", err)
	}
	rec.PatientID = existing.PatientID
	if err := s.validate(rec); err != nil {
		return err
	}
	return s.repo.Update(ctx, rec)
}

func (s *Service) DeleteExam(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListExamsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// History returns the patient's full exam history ascending by date. The
// cross-aggregate reads (dashboard, score context, timeline) consume it.
func (s *Service) History(ctx context.Context, patientID uuid.UUID) ([]*Record, error) {
	return s.repo.AllByPatient(ctx, patientID)
}

// EvolutionSeries recomputes the per-parameter time series from every exam
// the patient has. Nothing is persisted.
func (s *Service) EvolutionSeries(ctx context.Context, patientID uuid.UUID) ([]Series, error) {
	exams, err := s.repo.AllByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return BuildEvolutionSeries(exams), nil
}
