package consultation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

type Service struct {
	repo     Repository
	recorded prometheus.Counter
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithMetrics sets the counter incremented for every consultation
// recorded.
func (s *Service) WithMetrics(recorded prometheus.Counter) *Service {
	s.recorded = recorded
	return s
}

func (s *Service) validate(con *Consultation) error {
	if con.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if con.Date.IsZero() {
		con.Date = time.Now().UTC()
	}
	if con.SystolicBP != nil && *con.SystolicBP <= 0 {
		return fmt.Errorf("pressaoSistolica must be positive")
	}
	if con.DiastolicBP != nil && *con.DiastolicBP <= 0 {
		return fmt.Errorf("pressaoDiastolica must be positive")
	}
	return nil
}

func (s *Service) CreateConsultation(ctx context.Context, con *Consultation) error {
	if err := s.validate(con); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, con); err != nil {
		return err
	}
	if s.recorded != nil {
		s.recorded.Inc()
	}
	return nil
}

func (s *Service) GetConsultation(ctx context.Context, id int64) (*Consultation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateConsultation(ctx context.Context, con *Consultation) error {
	existing, err := s.repo.GetByID(ctx, con.ID)
	if err != nil {
		return fmt.Errorf("consultation not found: %w", err)
	}
	con.PatientID = existing.PatientID
	if err := s.validate(con); err != nil {
		return err
	}
	return s.repo.Update(ctx, con)
}

func (s *Service) DeleteConsultation(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// History returns the patient's full consultation history ascending by date.
func (s *Service) History(ctx context.Context, patientID uuid.UUID) ([]*Consultation, error) {
	return s.repo.AllByPatient(ctx, patientID)
}
