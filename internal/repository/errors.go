// Package repository holds the in-memory stores for seats,
// reservations, sessions and holders, together with the sentinel
// errors shared by all of them.  The stores are deliberately not
// safe for concurrent use: the service layer serialises every
// mutation behind a single mutex, so the whole system moves along
// one logical timeline.
package repository

import "errors"

// ErrSeatNotFound is returned when a seat ID does not exist in the
// registry.
var ErrSeatNotFound = errors.New("seat not found")

// ErrSessionNotFound is returned when a session ID is unknown.
var ErrSessionNotFound = errors.New("session not found")

// ErrReservationNotFound is returned when a reservation lookup by
// ID fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrHolderNotFound is returned when a holder ID is unknown.
var ErrHolderNotFound = errors.New("holder not found")

// ErrSeatUnavailable is returned when placing a hold on a seat that
// is not in the available status, including seats that already
// carry a reservation.
var ErrSeatUnavailable = errors.New("seat unavailable")

// ErrNoReservation is returned when a check-in is attempted for a
// seat without a prior hold.
var ErrNoReservation = errors.New("no reservation for seat")

// ErrDuplicateActiveSession is returned when a holder who already
// has an active session tries to place a hold or check in.
var ErrDuplicateActiveSession = errors.New("holder already has an active session")

// ErrAlreadyCompleted is returned when a checkout or extension is
// attempted on a session that has already ended.
var ErrAlreadyCompleted = errors.New("session already completed")

// ErrInvalidTransition is returned when a seat status change would
// break the status/reference invariant, e.g. marking a seat
// occupied without an occupant and session.
var ErrInvalidTransition = errors.New("invalid seat transition")

// ErrInvalidDuration is returned when a requested session length is
// outside the allowed 1–6 hour range.
var ErrInvalidDuration = errors.New("invalid session duration")
