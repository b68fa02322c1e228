package model

import "time"

// ReservationID uniquely identifies a reservation.  Values carry a
// "RES-" prefix followed by a random UUID.
type ReservationID string

// Reservation is a temporary hold on a seat placed before physical
// check-in.  While a reservation exists its seat must be in the
// reserved status, and a seat carries at most one reservation at a
// time.  Reservations are removed when they convert into a session
// at check-in or when they are released.
//
// Fields:
//  ID            – unique reservation identifier.
//  SeatID        – seat being held.
//  HolderID      – student or staff member holding the seat.
//  DurationHours – requested session length, 1 to 6 hours.
//  StartTime     – intended start of the session.
//  CreatedAt     – when the hold was placed.
type Reservation struct {
	ID            ReservationID `json:"id"`
	SeatID        SeatID        `json:"seat_id"`
	HolderID      HolderID      `json:"holder_id"`
	DurationHours int           `json:"duration_hours"`
	StartTime     time.Time     `json:"start_time"`
	CreatedAt     time.Time     `json:"created_at"`
}
