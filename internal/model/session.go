package model

import "time"

// SessionID uniquely identifies a usage session.  Values carry a
// "SES-" prefix followed by a random UUID.
type SessionID string

// SessionStatus enumerates the lifecycle states of a session.  The
// state machine is active → completed; completed is terminal.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// Session is a time-bounded occupancy record created at check-in.
// Sessions are never destroyed; completed sessions remain in the
// store as history.  At most one active session may reference a
// given seat, and a holder has at most one active session at a
// time.
//
// Fields:
//  ID            – unique session identifier.
//  SeatID        – seat occupied by this session.
//  HolderID      – student or staff member using the seat.
//  StartTime     – when the session began (check-in time).
//  EndTime       – scheduled end; moved forward by extensions.
//  DurationHours – scheduled length in hours, including extensions.
//  Status        – active or completed.
//  ActualEnd     – real end time, set at checkout (nil while active).
type Session struct {
	ID            SessionID     `json:"id"`
	SeatID        SeatID        `json:"seat_id"`
	HolderID      HolderID      `json:"holder_id"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	DurationHours int           `json:"duration_hours"`
	Status        SessionStatus `json:"status"`
	ActualEnd     *time.Time    `json:"actual_end,omitempty"`
}

// Active reports whether the session is still running.
func (s *Session) Active() bool { return s.Status == SessionActive }
