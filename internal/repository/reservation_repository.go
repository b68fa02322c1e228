package repository

import (
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/library-study-space/internal/model"
)

// ReservationRepo is the ledger of pending seat holds.  It keys
// reservations by seat, which makes the one-hold-per-seat invariant
// structural: a second Place on the same seat cannot slip in.
//
// The ledger only manages its own records.  Seat status changes and
// the duplicate-active-session rule are the engine's business; the
// engine performs them with the ledger under one lock so place and
// convert behave atomically.
type ReservationRepo struct {
	bySeat map[model.SeatID]*model.Reservation
	min    int // allowed duration range in hours
	max    int
}

// NewReservationRepo returns an empty ledger accepting durations in
// [min, max] hours.
func NewReservationRepo(min, max int) *ReservationRepo {
	return &ReservationRepo{
		bySeat: make(map[model.SeatID]*model.Reservation),
		min:    min,
		max:    max,
	}
}

// Place records a hold for the holder on the given seat.  The seat
// must currently be available and carry no other hold; the
// requested duration must fall inside the allowed range.  The
// returned reservation has a fresh RES- identifier.
func (r *ReservationRepo) Place(seat *model.Seat, holder model.HolderID, durationHours int, start, now time.Time) (*model.Reservation, error) {
	if durationHours < r.min || durationHours > r.max {
		return nil, ErrInvalidDuration
	}
	if seat.Status != model.SeatAvailable {
		return nil, ErrSeatUnavailable
	}
	if _, exists := r.bySeat[seat.ID]; exists {
		return nil, ErrSeatUnavailable
	}
	res := &model.Reservation{
		ID:            model.ReservationID("RES-" + uuid.NewString()),
		SeatID:        seat.ID,
		HolderID:      holder,
		DurationHours: durationHours,
		StartTime:     start,
		CreatedAt:     now,
	}
	r.bySeat[seat.ID] = res
	return res, nil
}

// Release removes the hold on a seat, if any, and returns it.  The
// seat's next status is the caller's decision.  Releasing a seat
// without a hold is a no-op returning nil.
func (r *ReservationRepo) Release(seatID model.SeatID) *model.Reservation {
	res, ok := r.bySeat[seatID]
	if !ok {
		return nil
	}
	delete(r.bySeat, seatID)
	return res
}

// ConvertToSession atomically removes the hold on a seat and
// returns it so the caller can create the session.  Returns
// ErrNoReservation when the seat carries no hold.
func (r *ReservationRepo) ConvertToSession(seatID model.SeatID) (*model.Reservation, error) {
	res, ok := r.bySeat[seatID]
	if !ok {
		return nil, ErrNoReservation
	}
	delete(r.bySeat, seatID)
	return res, nil
}

// BySeat returns the hold on a seat or ErrNoReservation.
func (r *ReservationRepo) BySeat(seatID model.SeatID) (*model.Reservation, error) {
	res, ok := r.bySeat[seatID]
	if !ok {
		return nil, ErrNoReservation
	}
	return res, nil
}

// Len returns the number of outstanding holds.
func (r *ReservationRepo) Len() int { return len(r.bySeat) }

// All yields every outstanding hold.  Map order is unspecified;
// callers needing stable output should sort.
func (r *ReservationRepo) All() iter.Seq[*model.Reservation] {
	return func(yield func(*model.Reservation) bool) {
		for _, res := range r.bySeat {
			if !yield(res) {
				return
			}
		}
	}
}
