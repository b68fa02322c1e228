package repository

import (
	"fmt"
	"iter"
	"math/rand"

	"github.com/iliyamo/library-study-space/internal/config"
	"github.com/iliyamo/library-study-space/internal/model"
)

// SeatRepo owns the fixed seat inventory.  Seats are created once
// from the area specs and never destroyed; all later mutation goes
// through SetStatus or MarkWalkIn so the status/reference invariant
// is enforced in a single place.
//
// SeatRepo is not safe for concurrent use; callers serialise access.
type SeatRepo struct {
	seats map[model.SeatID]*model.Seat
	order []model.SeatID // insertion order, stable for rendering
}

// NewSeatRepo builds the inventory described by the area specs.
// Flat areas number their seats <prefix>001..<prefix>NNN; room
// based areas use <prefix><room><seat>.  Each seat's initial status
// is drawn from the area's availability probability using rng, so a
// fixed seed yields a reproducible floor plan.  Seats that seed as
// occupied have no session behind them and are marked as walk-ins.
func NewSeatRepo(areas []config.AreaSpec, rng *rand.Rand) *SeatRepo {
	r := &SeatRepo{seats: make(map[model.SeatID]*model.Seat)}
	for _, area := range areas {
		if area.Rooms > 0 {
			for room := 1; room <= area.Rooms; room++ {
				for n := 1; n <= area.SeatsPerRoom; n++ {
					id := model.SeatID(fmt.Sprintf("%s%d%d", area.Prefix, room, n))
					r.add(id, area, room, rng)
				}
			}
			continue
		}
		for n := 1; n <= area.Seats; n++ {
			id := model.SeatID(fmt.Sprintf("%s%03d", area.Prefix, n))
			r.add(id, area, 0, rng)
		}
	}
	return r
}

func (r *SeatRepo) add(id model.SeatID, area config.AreaSpec, room int, rng *rand.Rand) {
	seat := &model.Seat{
		ID:     id,
		Area:   area.ID,
		Room:   room,
		Status: model.SeatAvailable,
	}
	if rng.Float64() >= area.AvailableProb {
		seat.Status = model.SeatOccupied
		seat.WalkIn = true // seeded occupancy has no session record
	}
	r.seats[id] = seat
	r.order = append(r.order, id)
}

// Get returns the seat with the given ID or ErrSeatNotFound.
func (r *SeatRepo) Get(id model.SeatID) (*model.Seat, error) {
	seat, ok := r.seats[id]
	if !ok {
		return nil, ErrSeatNotFound
	}
	return seat, nil
}

// Len returns the total number of seats in the inventory.
func (r *SeatRepo) Len() int { return len(r.order) }

// SetStatus transitions a seat, enforcing the status/reference
// invariant: occupied requires both holder and session references,
// available and reserved require neither.  Any walk-in marking is
// cleared; use MarkWalkIn for untracked occupancy.
func (r *SeatRepo) SetStatus(id model.SeatID, status model.SeatStatus, holder model.HolderID, session model.SessionID) (*model.Seat, error) {
	seat, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidTransition
	}
	switch status {
	case model.SeatOccupied:
		if holder == "" || session == "" {
			return nil, ErrInvalidTransition
		}
	default:
		if holder != "" || session != "" {
			return nil, ErrInvalidTransition
		}
	}
	seat.Status = status
	seat.HolderID = holder
	seat.SessionID = session
	seat.WalkIn = false
	return seat, nil
}

// MarkWalkIn flips an available seat to untracked occupancy: seat
// occupied, no holder, no session.  Only the simulation driver
// produces this sub-state.
func (r *SeatRepo) MarkWalkIn(id model.SeatID) (*model.Seat, error) {
	seat, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if seat.Status != model.SeatAvailable {
		return nil, ErrInvalidTransition
	}
	seat.Status = model.SeatOccupied
	seat.WalkIn = true
	return seat, nil
}

// All yields every seat in insertion order.  The sequence is finite
// and restartable; ranging it twice replays the same order.
func (r *SeatRepo) All() iter.Seq[*model.Seat] {
	return func(yield func(*model.Seat) bool) {
		for _, id := range r.order {
			if !yield(r.seats[id]) {
				return
			}
		}
	}
}

// ListByArea yields the seats of one area in insertion order.
func (r *SeatRepo) ListByArea(area model.AreaID) iter.Seq[*model.Seat] {
	return func(yield func(*model.Seat) bool) {
		for _, id := range r.order {
			if seat := r.seats[id]; seat.Area == area {
				if !yield(seat) {
					return
				}
			}
		}
	}
}

// ListByStatus yields the seats currently in the given status, in
// insertion order.
func (r *SeatRepo) ListByStatus(status model.SeatStatus) iter.Seq[*model.Seat] {
	return func(yield func(*model.Seat) bool) {
		for _, id := range r.order {
			if seat := r.seats[id]; seat.Status == status {
				if !yield(seat) {
					return
				}
			}
		}
	}
}
