// Package repository implements the persistence layer over MySQL.  This
// file defines sentinel errors shared across repositories so handlers can
// map failure scenarios to HTTP codes without string matching.
package repository

import "errors"

// ErrNotFound is returned when an operation expected to affect exactly one
// row affected none.  Handlers translate it into a 400 "could not be
// saved/deleted" business error (or 404 on lookups).
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a user insert or update violates the
// unique email constraint.
var ErrEmailExists = errors.New("email already exists")

// ErrPeriodOverlap is returned when an opening-hours bound falls inside an
// already registered period on the same day.
var ErrPeriodOverlap = errors.New("period overlaps an existing one")

// ErrCommentCooldown is returned when an IP submits a second comment within
// the cooldown window.
var ErrCommentCooldown = errors.New("comment cooldown active")
