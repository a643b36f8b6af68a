package model

import "time"

// Role names stored in users.role.  Anonymous visitors carry no role at all;
// handlers treat a missing identity as the implicit guest.
const (
    RoleAdmin  = "admin"
    RoleWorker = "worker"
)

// User represents an application user record as stored in the `users`
// table.  Password holds an encoded Argon2id string.  Token is the
// opaque per-session secret: it is rotated on every login/refresh and
// blanked on logout, which is what invalidates previously issued bearer
// tokens (single active session per user).
type User struct {
    ID        uint64    `json:"id"`         // users.id
    Email     string    `json:"email"`      // users.email (unique)
    Password  string    `json:"-"`          // users.password (Argon2id encoded, never serialized)
    Name      string    `json:"name"`       // users.name (display name)
    Role      string    `json:"role"`       // users.role (admin | worker)
    Active    bool      `json:"active"`     // users.active
    Token     string    `json:"-"`          // users.token (opaque session token, blank when logged out)
    CreatedAt time.Time `json:"created_at"` // users.created_at
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// IsStaff reports whether the user may manage content (admin or worker).
func (u *User) IsStaff() bool {
    return u != nil && (u.Role == RoleAdmin || u.Role == RoleWorker)
}
