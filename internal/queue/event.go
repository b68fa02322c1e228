// Package queue defines the session event payload exchanged over
// the message broker, plus the publisher and the background
// consumer that turns events into the notification log.
package queue

// Event types carried in SessionEvent.Type.
const (
	EventCheckedIn  = "checked_in"
	EventCheckedOut = "checked_out"
	EventStaffEnded = "staff_ended"
	EventExtended   = "extended"
)

// SessionEvent is published whenever a session changes state.  It
// carries enough for downstream consumers to notify or log without
// querying the engine.
type SessionEvent struct {
	Type       string `json:"type"`
	SessionID  string `json:"session_id"`
	SeatID     string `json:"seat_id"`
	Area       string `json:"area"`
	HolderID   string `json:"holder_id"`
	HolderName string `json:"holder_name"`
	At         string `json:"at"` // RFC3339
}
