package repository

import (
	"context"
	"database/sql"

	"github.com/ateliermartel/garage-api/internal/model"
)

type ServiceRepo struct{ DB *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{DB: db} }

// List returns all services ordered by name.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,amount,description,COALESCE(image,'') FROM services ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Service{}
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Amount, &s.Description, &s.Image); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts a service and returns its ID.
func (r *ServiceRepo) Create(ctx context.Context, s *model.Service) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO services (name, amount, description, image) VALUES (?,?,?,?)",
		s.Name, s.Amount, s.Description, s.Image)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites a service.  An empty image keeps the stored one.
func (r *ServiceRepo) Update(ctx context.Context, s *model.Service) error {
	var (
		res sql.Result
		err error
	)
	if s.Image == "" {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE services SET name=?, amount=?, description=? WHERE id=?",
			s.Name, s.Amount, s.Description, s.ID)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE services SET name=?, amount=?, description=?, image=? WHERE id=?",
			s.Name, s.Amount, s.Description, s.Image, s.ID)
	}
	if err != nil {
		return err
	}
	return oneRow(res)
}

// Delete removes a service.
func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM services WHERE id=?", id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
