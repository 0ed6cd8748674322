package consultation

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, con *Consultation) error
	GetByID(ctx context.Context, id int64) (*Consultation, error)
	Update(ctx context.Context, con *Consultation) error
	Delete(ctx context.Context, id int64) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error)
	// AllByPatient returns every consultation ordered by date ascending.
	// Used by the derived computations.
	AllByPatient(ctx context.Context, patientID uuid.UUID) ([]*Consultation, error)
}
