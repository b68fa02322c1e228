// Package service contains the engine coordinating the in-memory
// stores, the tick scheduler and the occupancy simulation.  The
// Library type is the boundary the HTTP layer talks to: every
// command and query goes through it, and it serialises all access
// behind a single mutex so user actions and simulation ticks
// interleave one at a time.
package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/iliyamo/library-study-space/internal/config"
	"github.com/iliyamo/library-study-space/internal/model"
	"github.com/iliyamo/library-study-space/internal/repository"
	"github.com/iliyamo/library-study-space/internal/utils"
)

// Library owns the seat registry, reservation ledger, session store
// and holder roster.  It is constructed once at startup and torn
// down with the process; there is no ambient package state.
type Library struct {
	mu sync.Mutex

	cfg          config.Config
	seats        *repository.SeatRepo
	reservations *repository.ReservationRepo
	sessions     *repository.SessionRepo
	holders      *repository.HolderRepo
}

// New builds the library state: the seat inventory from the
// configured areas, the fixed holder roster, and a handful of
// sample reservations for the first render.  The rng drives
// the cosmetic status seeding; pass a fixed-seed rand for a
// reproducible floor plan.
func New(cfg config.Config, rng *rand.Rand) (*Library, error) {
	holders, err := repository.NewHolderRepo(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	l := &Library{
		cfg:          cfg,
		seats:        repository.NewSeatRepo(cfg.Areas, rng),
		reservations: repository.NewReservationRepo(cfg.MinDurationHours, cfg.MaxDurationHours),
		sessions:     repository.NewSessionRepo(),
		holders:      holders,
	}
	l.seedReservations(rng)
	return l, nil
}

// seedReservations places up to cfg.SeedReservations sample holds
// on available seats, round-robining the student roster, so the
// floor plan shows reserved seats from the first render.
func (l *Library) seedReservations(rng *rand.Rand) {
	var students []*model.Holder
	for h := range l.holders.Students() {
		students = append(students, h)
	}
	if len(students) == 0 || l.cfg.SeedReservations <= 0 {
		return
	}
	now := time.Now().UTC()
	placed := 0
	for seat := range l.seats.ListByStatus(model.SeatAvailable) {
		if placed >= l.cfg.SeedReservations {
			break
		}
		holder := students[placed%len(students)]
		start := now.Add(time.Duration(rng.Int63n(int64(time.Hour)))) // sometime within the next hour
		if _, err := l.reservations.Place(seat, holder.ID, l.cfg.DefaultSessionHours, start, now); err != nil {
			continue
		}
		if _, err := l.seats.SetStatus(seat.ID, model.SeatReserved, "", ""); err != nil {
			l.reservations.Release(seat.ID)
			continue
		}
		placed++
	}
}

// Config returns the configuration the library was built with.
func (l *Library) Config() config.Config { return l.cfg }

// --- holder operations ---

// Authenticate checks a holder's credentials and returns the holder
// on success.  Unknown IDs and wrong passwords both come back as
// ErrHolderNotFound so the login handler cannot leak which part was
// wrong.
func (l *Library) Authenticate(id model.HolderID, password string) (model.Holder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, err := l.holders.Get(id)
	if err != nil {
		return model.Holder{}, err
	}
	if !utils.VerifyPassword(h.PasswordHash, password) {
		return model.Holder{}, repository.ErrHolderNotFound
	}
	return *h, nil
}

// Holder returns a copy of the holder record.
func (l *Library) Holder(id model.HolderID) (model.Holder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, err := l.holders.Get(id)
	if err != nil {
		return model.Holder{}, err
	}
	return *h, nil
}

// --- seat queries ---

// Seat returns a copy of one seat.
func (l *Library) Seat(id model.SeatID) (model.Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	seat, err := l.seats.Get(id)
	if err != nil {
		return model.Seat{}, err
	}
	return *seat, nil
}

// SeatsByArea returns the seats of an area in stable insertion
// order.  The slice is a snapshot; callers re-query after commands
// and ticks.
func (l *Library) SeatsByArea(area model.AreaID) []model.Seat {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Seat
	for seat := range l.seats.ListByArea(area) {
		out = append(out, *seat)
	}
	return out
}

// SeatsByStatus returns all seats currently in the given status.
func (l *Library) SeatsByStatus(status model.SeatStatus) []model.Seat {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Seat
	for seat := range l.seats.ListByStatus(status) {
		out = append(out, *seat)
	}
	return out
}

// AvailableSeatsInArea returns the available seats of one area, the
// query behind the "find seats" form.
func (l *Library) AvailableSeatsInArea(area model.AreaID) []model.Seat {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Seat
	for seat := range l.seats.ListByArea(area) {
		if seat.Status == model.SeatAvailable {
			out = append(out, *seat)
		}
	}
	return out
}

// --- reservation commands ---

// PlaceReservation holds a seat for a holder.  The seat must be
// available and the holder must not already be in an active
// session.  On success the seat moves to reserved and both the
// reservation and the updated seat are returned for re-rendering.
func (l *Library) PlaceReservation(seatID model.SeatID, holderID model.HolderID, durationHours int) (model.Reservation, model.Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	holder, err := l.holders.Get(holderID)
	if err != nil {
		return model.Reservation{}, model.Seat{}, err
	}
	if holder.CurrentSessionID != "" {
		return model.Reservation{}, model.Seat{}, repository.ErrDuplicateActiveSession
	}
	seat, err := l.seats.Get(seatID)
	if err != nil {
		return model.Reservation{}, model.Seat{}, err
	}
	now := time.Now().UTC()
	res, err := l.reservations.Place(seat, holderID, durationHours, now, now)
	if err != nil {
		return model.Reservation{}, model.Seat{}, err
	}
	updated, err := l.seats.SetStatus(seatID, model.SeatReserved, "", "")
	if err != nil {
		// roll the ledger entry back; the seat was not transitioned
		l.reservations.Release(seatID)
		return model.Reservation{}, model.Seat{}, err
	}
	return *res, *updated, nil
}

// ReleaseReservation drops the hold on a seat and frees it.  A seat
// without a hold is left untouched; release is a no-op then.
func (l *Library) ReleaseReservation(seatID model.SeatID) (model.Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	seat, err := l.seats.Get(seatID)
	if err != nil {
		return model.Seat{}, err
	}
	if l.reservations.Release(seatID) != nil && seat.Status == model.SeatReserved {
		if _, err := l.seats.SetStatus(seatID, model.SeatAvailable, "", ""); err != nil {
			return model.Seat{}, err
		}
	}
	return *seat, nil
}

// Reservation returns the hold on a seat, if any.
func (l *Library) Reservation(seatID model.SeatID) (model.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, err := l.reservations.BySeat(seatID)
	if err != nil {
		return model.Reservation{}, err
	}
	return *res, nil
}

// --- session commands ---

// CheckIn converts the holder's reservation on a seat into an
// active session.  The reservation must exist and belong to the
// holder, and the holder must not already have an active session.
// The new session runs for the duration requested at placement.
func (l *Library) CheckIn(seatID model.SeatID, holderID model.HolderID) (model.Session, model.Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, err := l.reservations.BySeat(seatID)
	if err != nil {
		return model.Session{}, model.Seat{}, err
	}
	if res.HolderID != holderID {
		return model.Session{}, model.Seat{}, repository.ErrNoReservation
	}
	holder, err := l.holders.Get(holderID)
	if err != nil {
		return model.Session{}, model.Seat{}, err
	}
	if holder.CurrentSessionID != "" {
		return model.Session{}, model.Seat{}, repository.ErrDuplicateActiveSession
	}
	if _, err := l.reservations.ConvertToSession(seatID); err != nil {
		return model.Session{}, model.Seat{}, err
	}
	ses := l.sessions.Create(seatID, holderID, res.DurationHours, time.Now().UTC())
	seat, err := l.seats.SetStatus(seatID, model.SeatOccupied, holderID, ses.ID)
	if err != nil {
		return model.Session{}, model.Seat{}, err
	}
	holder.CurrentSessionID = ses.ID
	return *ses, *seat, nil
}

// CheckOut completes an active session, frees its seat and clears
// the holder's back-reference.  Completed is terminal: checking out
// twice returns ErrAlreadyCompleted with no state change.
func (l *Library) CheckOut(sessionID model.SessionID) (model.Session, model.Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.completeSession(sessionID)
}

// StaffEndSession ends any holder's active session.  The semantics
// are identical to CheckOut; who may call it is the HTTP layer's
// concern, not the engine's.
func (l *Library) StaffEndSession(sessionID model.SessionID) (model.Session, model.Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.completeSession(sessionID)
}

// completeSession carries the active → completed transition.  The
// caller holds the lock.
func (l *Library) completeSession(sessionID model.SessionID) (model.Session, model.Seat, error) {
	ses, err := l.sessions.Get(sessionID)
	if err != nil {
		return model.Session{}, model.Seat{}, err
	}
	if !ses.Active() {
		return model.Session{}, model.Seat{}, repository.ErrAlreadyCompleted
	}
	now := time.Now().UTC()
	ses.Status = model.SessionCompleted
	ses.ActualEnd = &now

	// The simulation may have already emptied or refilled the seat;
	// only free it while it still belongs to this session.
	var seatCopy model.Seat
	if seat, err := l.seats.Get(ses.SeatID); err == nil {
		if seat.SessionID == ses.ID {
			if _, err := l.seats.SetStatus(seat.ID, model.SeatAvailable, "", ""); err != nil {
				return model.Session{}, model.Seat{}, err
			}
		}
		seatCopy = *seat
	}
	if holder, err := l.holders.Get(ses.HolderID); err == nil && holder.CurrentSessionID == ses.ID {
		holder.CurrentSessionID = ""
	}
	return *ses, seatCopy, nil
}

// Extend pushes an active session's scheduled end time out by the
// given number of hours (the configured increment when hours <= 0).
// Seat state is untouched.
func (l *Library) Extend(sessionID model.SessionID, hours int) (model.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ses, err := l.sessions.Get(sessionID)
	if err != nil {
		return model.Session{}, err
	}
	if !ses.Active() {
		return model.Session{}, repository.ErrAlreadyCompleted
	}
	if hours <= 0 {
		hours = l.cfg.ExtensionHours
	}
	ses.EndTime = ses.EndTime.Add(time.Duration(hours) * time.Hour)
	ses.DurationHours += hours
	return *ses, nil
}

// TimeRemaining reports how long a session has left at the given
// instant.  Zero means expired (or completed).  It never mutates.
func (l *Library) TimeRemaining(sessionID model.SessionID, now time.Time) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ses, err := l.sessions.Get(sessionID)
	if err != nil {
		return 0, err
	}
	if !ses.Active() {
		return 0, nil
	}
	remaining := ses.EndTime.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Session returns a copy of one session record.
func (l *Library) Session(sessionID model.SessionID) (model.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ses, err := l.sessions.Get(sessionID)
	if err != nil {
		return model.Session{}, err
	}
	return *ses, nil
}

// HistoryFor returns a holder's sessions most recent first.
func (l *Library) HistoryFor(holderID model.HolderID) []model.Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Session
	for ses := range l.sessions.HistoryFor(holderID) {
		out = append(out, *ses)
	}
	return out
}

// ActiveSessions returns all running sessions in creation order.
func (l *Library) ActiveSessions() []model.Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Session
	for ses := range l.sessions.Active() {
		out = append(out, *ses)
	}
	return out
}

// ExpiredSessions returns the active sessions whose scheduled end
// has passed at the given instant.  The timer refresh tick logs
// these; the records stay active until someone checks them out.
func (l *Library) ExpiredSessions(now time.Time) []model.Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Session
	for ses := range l.sessions.Active() {
		if !ses.EndTime.After(now) {
			out = append(out, *ses)
		}
	}
	return out
}
