package model

import "time"

// Comment represents a visitor review as stored in the `comments` table.
// Comment text may be empty, in which case the entry is a rating-only
// review.  IP records the submitter's address and backs the thirty minute
// per-IP cooldown.  Approved gates public visibility; moderation is done by
// staff.
type Comment struct {
    ID       uint64    `json:"id"`      // comments.id
    Name     string    `json:"name"`    // comments.name
    Comment  string    `json:"comment"` // comments.comment (may be empty)
    Rating   float64   `json:"rating"`  // comments.rating (0.0 .. 5.0, half steps)
    IP       string    `json:"-"`       // comments.ip (never serialized)
    Approved bool      `json:"approved"` // comments.approved
    Dt       time.Time `json:"dt"`      // comments.dt (submission timestamp)
}
