package model

// HolderID identifies a student or staff member, e.g. STU001 or
// STAFF002.
type HolderID string

// Holder roles as stored in the JWT "role" claim.
const (
	RoleStudent = "STUDENT"
	RoleStaff   = "STAFF"
)

// Holder is a student or staff identity that can hold reservations
// and sessions.  The CurrentSessionID field is a back-reference
// into the session store and is informational only: the session
// store owns the record, the holder merely points at it while it is
// active.
//
// Fields:
//  ID               – unique holder identifier.
//  Name             – display name.
//  Email            – university email address.
//  PasswordHash     – bcrypt hash of the login password.
//  Role             – STUDENT or STAFF.
//  Title            – staff job title (empty for students).
//  CurrentSessionID – active session, empty when none.
type Holder struct {
	ID               HolderID  `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	Title            string    `json:"title,omitempty"`
	CurrentSessionID SessionID `json:"current_session_id,omitempty"`
}
