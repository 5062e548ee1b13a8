package repository

import "errors"

// ErrNotFound is returned when a requested record is not found in the
// repository. This abstracts away the underlying storage implementation
// from the service layer.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint (duplicate participant name in a game, duplicate vote for a
// voter+round). The constraint in the database is the source of truth;
// callers may pre-check for a friendlier error but must handle this.
var ErrDuplicate = errors.New("duplicate record")

// ErrStaleRound is returned when an answer write is pinned to a round
// the participant is no longer assigned to.
var ErrStaleRound = errors.New("round has moved on")
