package bioimpedance

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	GetByID(ctx context.Context, id int64) (*Assessment, error)
	Update(ctx context.Context, a *Assessment) error
	Delete(ctx context.Context, id int64) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error)
	// AllByPatient returns every assessment ordered by assessment date
	// ascending. Used by the derived computations.
	AllByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error)
}
