package consultation

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

const consultationCols = `id, patient_id, date, subjective, objective, assessment,
	plan, conduct, systolic_bp, diastolic_bp, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, con *Consultation) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO consultation (
			patient_id, date, subjective, objective, assessment,
			plan, conduct, systolic_bp, diastolic_bp
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at`,
		con.PatientID, con.Date, con.Subjective, con.Objective, con.Assessment,
		con.Plan, con.Conduct, con.SystolicBP, con.DiastolicBP,
	).Scan(&con.ID, &con.CreatedAt, &con.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Consultation, error) {
	return scanConsultation(r.pool.QueryRow(ctx,
		`SELECT `+consultationCols+` FROM consultation WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, con *Consultation) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE consultation SET
			date=$2, subjective=$3, objective=$4, assessment=$5,
			plan=$6, conduct=$7, systolic_bp=$8, diastolic_bp=$9,
			updated_at=NOW()
		WHERE id = $1`,
		con.ID, con.Date, con.Subjective, con.Objective, con.Assessment,
		con.Plan, con.Conduct, con.SystolicBP, con.DiastolicBP,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM consultation WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM consultation WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+consultationCols+` FROM consultation
		 WHERE patient_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Consultation
	for rows.Next() {
		con, err := scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, con)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repoPG) AllByPatient(ctx context.Context, patientID uuid.UUID) ([]*Consultation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+consultationCols+` FROM consultation
		 WHERE patient_id = $1 ORDER BY date ASC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Consultation
	for rows.Next() {
		con, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, con)
	}
	return out, rows.Err()
}

func scanConsultation(row pgx.Row) (*Consultation, error) {
	var con Consultation
	err := row.Scan(
		&con.ID, &con.PatientID, &con.Date, &con.Subjective, &con.Objective,
		&con.Assessment, &con.Plan, &con.Conduct, &con.SystolicBP,
		&con.DiastolicBP, &con.CreatedAt, &con.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &con, nil
}
