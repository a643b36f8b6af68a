package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ateliermartel/garage-api/internal/model"
)

// CommentCooldown is the minimum delay between two submissions from the
// same IP address.
const CommentCooldown = 30 * time.Minute

// CooldownActive reports whether a new submission at now is still inside
// the cooldown window opened by the previous submission.
func CooldownActive(last, now time.Time) bool {
	return now.Sub(last) < CommentCooldown
}

type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

const commentCols = "id,name,comment,rating,ip,approved,dt"

func (r *CommentRepo) list(ctx context.Context, where string, args ...any) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+commentCols+" FROM comments WHERE "+where+" ORDER BY dt DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Name, &c.Comment, &c.Rating, &c.IP, &c.Approved, &c.Dt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListAll returns every comment, newest first (moderation view).
func (r *CommentRepo) ListAll(ctx context.Context) ([]model.Comment, error) {
	return r.list(ctx, "1=1")
}

// ListApproved returns only approved comments (public view).
func (r *CommentRepo) ListApproved(ctx context.Context) ([]model.Comment, error) {
	return r.list(ctx, "approved = 1")
}

// Create inserts a visitor comment after the per-IP cooldown check.  The
// check and the insert are not one atomic statement; a race between two
// requests from the same IP is acceptable for a review form.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) (uint64, error) {
	var last time.Time
	err := r.DB.QueryRowContext(ctx,
		"SELECT dt FROM comments WHERE ip=? ORDER BY dt DESC LIMIT 1", c.IP).Scan(&last)
	switch {
	case err == sql.ErrNoRows:
		// first comment from this IP
	case err != nil:
		return 0, err
	case CooldownActive(last, time.Now().UTC()):
		return 0, ErrCommentCooldown
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (name, comment, rating, ip, approved, dt) VALUES (?,?,?,?,0,?)",
		c.Name, c.Comment, c.Rating, c.IP, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// SetApproved moderates a comment.
func (r *CommentRepo) SetApproved(ctx context.Context, id uint64, approved bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE comments SET approved=? WHERE id=?", approved, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// Delete removes a comment.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
