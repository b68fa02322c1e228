package service

import (
	"log"
	"math/rand"
	"time"

	"github.com/iliyamo/library-study-space/internal/model"
)

// Simulator perturbs the seat registry on each tick to emulate
// organic occupancy changes: people walking away without checking
// out and walk-ins never routed through the reservation system.  It
// mutates seats only; reservations and sessions are never touched,
// which means a simulated departure can orphan an active session,
// just as untracked traffic does to a real reservation system.
type Simulator struct {
	lib      *Library
	walkAway float64 // per-seat chance an occupied seat empties
	walkIn   float64 // per-seat chance an available seat fills
	rng      *rand.Rand
}

// NewSimulator builds a driver over the library with the given
// perturbation probabilities.  Pass a fixed-seed rng for
// deterministic behaviour in tests.
func NewSimulator(lib *Library, walkAway, walkIn float64, rng *rand.Rand) *Simulator {
	return &Simulator{lib: lib, walkAway: walkAway, walkIn: walkIn, rng: rng}
}

// Tick applies one round of perturbation.  It satisfies TickFunc so
// the scheduler can drive it.
func (s *Simulator) Tick(now time.Time) {
	freed, walkIns := s.lib.PerturbSeats(s.walkAway, s.walkIn, s.rng)
	if len(freed) > 0 || len(walkIns) > 0 {
		log.Printf("simulation: %d seat(s) emptied, %d walk-in(s)", len(freed), len(walkIns))
	}
}

// PerturbSeats applies the simulation policy under the engine lock.
// Occupied seats empty with probability walkAway (references
// cleared, any session left behind stays active); available seats
// fill with probability walkIn as untracked walk-ins.  Reserved
// seats are never perturbed.  The occupied and available sets are
// snapshotted first so a seat freed this tick cannot immediately
// refill.
func (l *Library) PerturbSeats(walkAway, walkIn float64, rng *rand.Rand) (freed, walkIns []model.SeatID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var occupied, available []model.SeatID
	for seat := range l.seats.All() {
		switch seat.Status {
		case model.SeatOccupied:
			occupied = append(occupied, seat.ID)
		case model.SeatAvailable:
			available = append(available, seat.ID)
		}
	}

	for _, id := range occupied {
		if rng.Float64() >= walkAway {
			continue
		}
		if _, err := l.seats.SetStatus(id, model.SeatAvailable, "", ""); err == nil {
			freed = append(freed, id)
		}
	}
	for _, id := range available {
		if rng.Float64() >= walkIn {
			continue
		}
		if _, err := l.seats.MarkWalkIn(id); err == nil {
			walkIns = append(walkIns, id)
		}
	}
	return freed, walkIns
}
