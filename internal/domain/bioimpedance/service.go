package bioimpedance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) validate(a *Assessment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if a.AssessmentDate.IsZero() {
		a.AssessmentDate = time.Now().UTC()
	}
	if a.Weight != nil && *a.Weight <= 0 {
		return fmt.Errorf("peso must be positive")
	}
	if a.BodyFatPercent != nil && (*a.BodyFatPercent < 0 || *a.BodyFatPercent > 100) {
		return fmt.Errorf("gorduraPercentual must be between 0 and 100")
	}
	if a.TotalBodyWaterPct != nil && (*a.TotalBodyWaterPct < 0 || *a.TotalBodyWaterPct > 100) {
		return fmt.Errorf("aguaCorporalPct must be between 0 and 100")
	}
	return nil
}

func (s *Service) CreateAssessment(ctx context.Context, a *Assessment) error {
	if err := s.validate(a); err != nil {
		return err
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) GetAssessment(ctx context.Context, id int64) (*Assessment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateAssessment(ctx context.Context, a *Assessment) error {
	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("assessment not found: %w", err)
	}
	a.PatientID = existing.PatientID
	if err := s.validate(a); err != nil {
		return err
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) DeleteAssessment(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// History returns the patient's full assessment history ascending by date.
func (s *Service) History(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error) {
	return s.repo.AllByPatient(ctx, patientID)
}
