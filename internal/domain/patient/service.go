package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

type Service struct {
	repo    Repository
	created prometheus.Counter
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithMetrics sets the counter incremented for every patient record
// created.
func (s *Service) WithMetrics(created prometheus.Counter) *Service {
	s.created = created
	return s
}

var validSexes = map[string]bool{
	"feminino":  true,
	"masculino": true,
	"outro":     true,
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("nome is required")
	}
	if p.Sex != nil && !validSexes[*p.Sex] {
		return fmt.Errorf("invalid sexo: %s", *p.Sex)
	}
	if p.Height != nil && *p.Height <= 0 {
		return fmt.Errorf("altura must be positive")
	}
	if p.Weight != nil && *p.Weight <= 0 {
		return fmt.Errorf("peso must be positive")
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	if s.created != nil {
		s.created.Inc()
	}
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("nome is required")
	}
	if p.Sex != nil && !validSexes[*p.Sex] {
		return fmt.Errorf("invalid sexo: %s", *p.Sex)
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) SearchPatients(ctx context.Context, name string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.SearchByName(ctx, name, limit, offset)
}
