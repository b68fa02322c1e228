package repository

import (
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/library-study-space/internal/model"
)

// SessionRepo stores every session ever created.  Completed
// sessions are retained as history; nothing is ever deleted.
type SessionRepo struct {
	sessions map[model.SessionID]*model.Session
	order    []model.SessionID // creation order
}

// NewSessionRepo returns an empty session store.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[model.SessionID]*model.Session)}
}

// Create records a new active session starting now with the given
// scheduled length.
func (r *SessionRepo) Create(seatID model.SeatID, holder model.HolderID, durationHours int, now time.Time) *model.Session {
	s := &model.Session{
		ID:            model.SessionID("SES-" + uuid.NewString()),
		SeatID:        seatID,
		HolderID:      holder,
		StartTime:     now,
		EndTime:       now.Add(time.Duration(durationHours) * time.Hour),
		DurationHours: durationHours,
		Status:        model.SessionActive,
	}
	r.sessions[s.ID] = s
	r.order = append(r.order, s.ID)
	return s
}

// Get returns the session with the given ID or ErrSessionNotFound.
func (r *SessionRepo) Get(id model.SessionID) (*model.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Active yields the currently active sessions in creation order.
func (r *SessionRepo) Active() iter.Seq[*model.Session] {
	return func(yield func(*model.Session) bool) {
		for _, id := range r.order {
			if s := r.sessions[id]; s.Active() {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// ActiveCount returns the number of active sessions.
func (r *SessionRepo) ActiveCount() int {
	n := 0
	for _, id := range r.order {
		if r.sessions[id].Active() {
			n++
		}
	}
	return n
}

// HistoryFor yields a holder's sessions most recent first.  The
// sequence is finite and restartable.
func (r *SessionRepo) HistoryFor(holder model.HolderID) iter.Seq[*model.Session] {
	return func(yield func(*model.Session) bool) {
		for i := len(r.order) - 1; i >= 0; i-- {
			if s := r.sessions[r.order[i]]; s.HolderID == holder {
				if !yield(s) {
					return
				}
			}
		}
	}
}
