package repository

import (
	"context"
	"database/sql"

	"github.com/ateliermartel/garage-api/internal/model"
)

type OpeningHourRepo struct{ DB *sql.DB }

func NewOpeningHourRepo(db *sql.DB) *OpeningHourRepo { return &OpeningHourRepo{DB: db} }

// List returns all periods ordered by day then start time.  HHMM strings
// sort lexicographically in chronological order.
func (r *OpeningHourRepo) List(ctx context.Context) ([]model.OpeningHour, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,day,`start`,`end` FROM opening_hours ORDER BY day, `start`")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.OpeningHour{}
	for rows.Next() {
		var p model.OpeningHour
		if err := rows.Scan(&p.ID, &p.Day, &p.Start, &p.End); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// overlaps reports whether either bound of the candidate period falls
// inside an already registered period on the same day.  excludeID skips the
// row being updated.
func (r *OpeningHourRepo) overlaps(ctx context.Context, p *model.OpeningHour, excludeID uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM opening_hours WHERE day = ? AND id <> ?"+
			" AND ((? BETWEEN `start` AND `end`) OR (? BETWEEN `start` AND `end`))",
		p.Day, excludeID, p.Start, p.End).Scan(&n)
	return n > 0, err
}

// Create inserts a period after the overlap check.
func (r *OpeningHourRepo) Create(ctx context.Context, p *model.OpeningHour) (uint64, error) {
	if over, err := r.overlaps(ctx, p, 0); err != nil {
		return 0, err
	} else if over {
		return 0, ErrPeriodOverlap
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO opening_hours (day, `start`, `end`) VALUES (?,?,?)",
		p.Day, p.Start, p.End)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites a period after the overlap check (ignoring itself).
func (r *OpeningHourRepo) Update(ctx context.Context, p *model.OpeningHour) error {
	if over, err := r.overlaps(ctx, p, p.ID); err != nil {
		return err
	} else if over {
		return ErrPeriodOverlap
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE opening_hours SET day=?, `start`=?, `end`=? WHERE id=?",
		p.Day, p.Start, p.End, p.ID)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// Delete removes a period.
func (r *OpeningHourRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM opening_hours WHERE id=?", id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
