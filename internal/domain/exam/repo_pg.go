package exam

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

const examCols = `id, patient_id, exam_date, type, laboratory, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO exam (patient_id, exam_date, type, laboratory)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at`,
		rec.PatientID, rec.ExamDate, rec.Type, rec.Laboratory,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertResults(ctx, tx, rec); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Record, error) {
	rec, err := scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examCols+` FROM exam WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadResults(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repoPG) Update(ctx context.Context, rec *Record) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE exam SET exam_date=$2, type=$3, laboratory=$4, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.ExamDate, rec.Type, rec.Laboratory,
	)
	if err != nil {
		return err
	}

	// Results are replaced wholesale, never merged.
	if _, err := tx.Exec(ctx, `DELETE FROM exam_result WHERE exam_id = $1`, rec.ID); err != nil {
		return err
	}
	if err := insertResults(ctx, tx, rec); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exam WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exam WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+examCols+` FROM exam WHERE patient_id = $1 ORDER BY exam_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	recs, err := collectExams(rows)
	if err != nil {
		return nil, 0, err
	}
	for _, rec := range recs {
		if err := r.loadResults(ctx, rec); err != nil {
			return nil, 0, err
		}
	}
	return recs, total, nil
}

func (r *repoPG) AllByPatient(ctx context.Context, patientID uuid.UUID) ([]*Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examCols+` FROM exam WHERE patient_id = $1 ORDER BY exam_date ASC`, patientID)
	if err != nil {
		return nil, err
	}
	recs, err := collectExams(rows)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if err := r.loadResults(ctx, rec); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// insertResults writes rec.Results for rec.ID. The service has already
// assigned parameter-identity IDs, so every result carries one; the table
// is keyed (exam_id, id).
func insertResults(ctx context.Context, tx pgx.Tx, rec *Record) error {
	for i := range rec.Results {
		res := &rec.Results[i]
		res.ExamID = rec.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO exam_result (id, exam_id, parameter, value, unit, reference, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			res.ID, rec.ID, res.Parameter, res.Value, res.Unit, res.Reference, res.Status,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) loadResults(ctx context.Context, rec *Record) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, exam_id, parameter, value, unit, reference, status
		FROM exam_result WHERE exam_id = $1 ORDER BY id`, rec.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	rec.Results = []Result{}
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.ID, &res.ExamID, &res.Parameter, &res.Value, &res.Unit, &res.Reference, &res.Status); err != nil {
			return err
		}
		rec.Results = append(rec.Results, res)
	}
	return rows.Err()
}

func scanExam(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.ExamDate, &rec.Type, &rec.Laboratory, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func collectExams(rows pgx.Rows) ([]*Record, error) {
	defer rows.Close()
	var out []*Record
	for rows.Next() {
		rec, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
