package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Anthropometrics and clinical flags are
// optional; absence means "not recorded", never zero.
type Patient struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	Name               string     `db:"name" json:"nome"`
	Sex                *string    `db:"sex" json:"sexo,omitempty"`
	BirthDate          *time.Time `db:"birth_date" json:"dataNascimento,omitempty"`
	Email              *string    `db:"email" json:"email,omitempty"`
	Phone              *string    `db:"phone" json:"telefone,omitempty"`
	Weight             *float64   `db:"weight" json:"peso,omitempty"`
	Height             *float64   `db:"height" json:"altura,omitempty"`
	WaistCircumference *float64   `db:"waist_circumference" json:"circunferencia,omitempty"`
	Smoker             *bool      `db:"smoker" json:"tabagismo,omitempty"`
	Diabetes           *bool      `db:"diabetes" json:"diabetes,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// AgeAt returns the patient's age in whole years at the reference time, or
// nil when the birth date is unknown.
func (p *Patient) AgeAt(ref time.Time) *float64 {
	if p.BirthDate == nil {
		return nil
	}
	years := ref.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(ref) {
		years--
	}
	if years < 0 {
		years = 0
	}
	age := float64(years)
	return &age
}
