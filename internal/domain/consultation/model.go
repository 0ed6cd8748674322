// Package consultation stores clinical encounters in SOAP form (subjetivo,
// objetivo, avaliação, plano) plus a free-text conduct line. The timeline
// and score context read the patient's consultation history.
package consultation

import (
	"time"

	"github.com/google/uuid"
)

type Consultation struct {
	ID         int64     `json:"id"`
	PatientID  uuid.UUID `json:"patientId"`
	Date       time.Time `json:"data"`
	Subjective *string   `json:"subjetivo,omitempty"`
	Objective  *string   `json:"objetivo,omitempty"`
	Assessment *string   `json:"avaliacao,omitempty"`
	Plan       *string   `json:"plano,omitempty"`
	Conduct    *string   `json:"conduta,omitempty"`
	// Vitals captured during the encounter; systolic feeds the
	// cardiovascular scores.
	SystolicBP  *float64  `json:"pressaoSistolica,omitempty"`
	DiastolicBP *float64  `json:"pressaoDiastolica,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
