package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ateliermartel/garage-api/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,email,password,name,role,active,COALESCE(token,''),created_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Role, &u.Active, &u.Token, &u.CreatedAt)
	return u, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

// GetBySession resolves the (id, opaque token) pair embedded in a bearer
// token.  A rotated or cleared token no longer matches and the caller
// proceeds as anonymous; that is the whole revocation mechanism.
func (r *UserRepo) GetBySession(ctx context.Context, id uint64, token string) (model.User, error) {
	if token == "" {
		return model.User{}, sql.ErrNoRows
	}
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? AND token=? LIMIT 1", id, token))
}

// List returns all users ordered by name.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userCols+" FROM users ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Create inserts a user with an already-hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, hash, name, role string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password, name, role, active, token) VALUES (?,?,?,?,1,'')",
		email, hash, name, role)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update changes the mutable profile fields of a user.
func (r *UserRepo) Update(ctx context.Context, id uint64, email, name, role string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=?, name=?, role=? WHERE id=?", email, name, role, id)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrEmailExists
		}
		return err
	}
	return oneRow(res)
}

// SetActive flips the active flag.
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET active=? WHERE id=?", active, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// SetToken stores a fresh opaque session token, replacing any prior value.
// Storing the empty string logs the user out everywhere.  No affected-row
// check here: the driver counts changed rows, and a second logout changes
// nothing yet must still succeed.
func (r *UserRepo) SetToken(ctx context.Context, id uint64, token string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET token=? WHERE id=?", token, id)
	return err
}

// SetPassword stores a new password hash.
func (r *UserRepo) SetPassword(ctx context.Context, id uint64, hash string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET password=? WHERE id=?", hash, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// Delete removes a user.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// oneRow converts an exec result into the "exactly one row affected"
// success signal used across the repositories.
func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrNotFound
	}
	return nil
}
