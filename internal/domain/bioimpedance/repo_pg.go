package bioimpedance

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const assessmentCols = `id, patient_id, assessment_date, weight, body_fat_percent,
	lean_mass_kg, skeletal_muscle_kg, visceral_fat_level, total_body_water_pct,
	basal_metabolic_kcal, notes, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, a *Assessment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO bioimpedance (
			patient_id, assessment_date, weight, body_fat_percent,
			lean_mass_kg, skeletal_muscle_kg, visceral_fat_level,
			total_body_water_pct, basal_metabolic_kcal, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`,
		a.PatientID, a.AssessmentDate, a.Weight, a.BodyFatPercent,
		a.LeanMassKg, a.SkeletalMuscleKg, a.VisceralFatLevel,
		a.TotalBodyWaterPct, a.BasalMetabolicKcal, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Assessment, error) {
	return scanAssessment(r.pool.QueryRow(ctx,
		`SELECT `+assessmentCols+` FROM bioimpedance WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Assessment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE bioimpedance SET
			assessment_date=$2, weight=$3, body_fat_percent=$4, lean_mass_kg=$5,
			skeletal_muscle_kg=$6, visceral_fat_level=$7, total_body_water_pct=$8,
			basal_metabolic_kcal=$9, notes=$10, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.AssessmentDate, a.Weight, a.BodyFatPercent, a.LeanMassKg,
		a.SkeletalMuscleKg, a.VisceralFatLevel, a.TotalBodyWaterPct,
		a.BasalMetabolicKcal, a.Notes,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM bioimpedance WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM bioimpedance WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+assessmentCols+` FROM bioimpedance
		 WHERE patient_id = $1 ORDER BY assessment_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repoPG) AllByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+assessmentCols+` FROM bioimpedance
		 WHERE patient_id = $1 ORDER BY assessment_date ASC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAssessment(row pgx.Row) (*Assessment, error) {
	var a Assessment
	err := row.Scan(
		&a.ID, &a.PatientID, &a.AssessmentDate, &a.Weight, &a.BodyFatPercent,
		&a.LeanMassKg, &a.SkeletalMuscleKg, &a.VisceralFatLevel,
		&a.TotalBodyWaterPct, &a.BasalMetabolicKcal, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
