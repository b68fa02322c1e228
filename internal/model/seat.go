package model

// SeatID uniquely identifies a seat.  IDs follow the floor-plan
// numbering scheme, e.g. QS001 for the first Quiet Study seat or
// SR32 for seat 2 of Study Room 3.
type SeatID string

// AreaID identifies a study area within the library, e.g.
// "quietStudy" or "computerLab".
type AreaID string

// SeatStatus enumerates the availability states of a seat.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available" // free for reservation or walk-in
	SeatOccupied  SeatStatus = "occupied"  // in use, normally with an active session
	SeatReserved  SeatStatus = "reserved"  // held by a reservation awaiting check-in
)

// Valid reports whether s is one of the known seat statuses.
func (s SeatStatus) Valid() bool {
	switch s {
	case SeatAvailable, SeatOccupied, SeatReserved:
		return true
	}
	return false
}

// Seat describes a single unit of library capacity: a desk, a
// computer or a study-room place.  Seats are created once when the
// registry is initialised and are never destroyed.
//
// Invariant: Status == SeatOccupied implies both HolderID and
// SessionID are set, and Status in {available, reserved} implies
// both are empty.  The single exception is an untracked walk-in
// (WalkIn == true), where the seat is occupied with no holder and
// no session; the simulation driver is the only producer of this
// sub-state.
//
// Fields:
//  ID        – unique seat identifier.
//  Area      – study area the seat belongs to.
//  Room      – room number for study-room seats (0 elsewhere).
//  Status    – current availability status.
//  HolderID  – occupant when occupied through a session.
//  SessionID – active session when occupied through a session.
//  WalkIn    – occupied by an untracked walk-in, no session record.
type Seat struct {
	ID        SeatID     `json:"id"`
	Area      AreaID     `json:"area"`
	Room      int        `json:"room,omitempty"`
	Status    SeatStatus `json:"status"`
	HolderID  HolderID   `json:"holder_id,omitempty"`
	SessionID SessionID  `json:"session_id,omitempty"`
	WalkIn    bool       `json:"walk_in,omitempty"`
}
