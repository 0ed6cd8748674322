package exam

import (
	"time"

	"github.com/google/uuid"
)

// Result is a single named result inside an exam. Valor is stored as free
// text: labs report locale decimal commas and inline units, so parsing is
// deferred to the consumers that need a number.
type Result struct {
	ID        *int64  `db:"id" json:"id,omitempty"`
	ExamID    int64   `db:"exam_id" json:"-"`
	Parameter string  `db:"parameter" json:"parametro"`
	Value     string  `db:"value" json:"valor"`
	Unit      *string `db:"unit" json:"unidade,omitempty"`
	Reference *string `db:"reference" json:"referencia,omitempty"`
	Status    *string `db:"status" json:"status,omitempty"`
}

// Record maps to the exam table plus its exam_result rows.
type Record struct {
	ID         int64     `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patientId"`
	ExamDate   time.Time `db:"exam_date" json:"dataExame"`
	Type       *string   `db:"type" json:"tipo,omitempty"`
	Laboratory *string   `db:"laboratory" json:"laboratorio,omitempty"`
	Results    []Result  `json:"resultados"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
