package exam

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id int64) (*Record, error)
	// Update replaces the exam metadata and its result list wholesale.
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id int64) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Record, int, error)
	// AllByPatient returns every exam for a patient ordered by exam date
	// ascending, results included. Used by the derived computations.
	AllByPatient(ctx context.Context, patientID uuid.UUID) ([]*Record, error)
}
