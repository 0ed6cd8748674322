// Package bioimpedance stores body-composition assessments. Each assessment
// snapshots weight and compartment measurements taken on a BIA device; the
// dashboard and timeline read them alongside lab exams.
package bioimpedance

import (
	"time"

	"github.com/google/uuid"
)

type Assessment struct {
	ID             int64     `json:"id"`
	PatientID      uuid.UUID `json:"patientId"`
	AssessmentDate time.Time `json:"dataAvaliacao"`
	Weight         *float64  `json:"peso,omitempty"`
	BodyFatPercent *float64  `json:"gorduraPercentual,omitempty"`
	LeanMassKg     *float64  `json:"massaMagraKg,omitempty"`
	// Optional compartment detail, present only when the device reports it.
	SkeletalMuscleKg   *float64  `json:"musculoEsqueleticoKg,omitempty"`
	VisceralFatLevel   *float64  `json:"gorduraVisceral,omitempty"`
	TotalBodyWaterPct  *float64  `json:"aguaCorporalPct,omitempty"`
	BasalMetabolicKcal *float64  `json:"taxaMetabolicaBasal,omitempty"`
	Notes              *string   `json:"observacoes,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
