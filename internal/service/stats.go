package service

import (
	"math"
	"time"

	"github.com/iliyamo/library-study-space/internal/config"
	"github.com/iliyamo/library-study-space/internal/model"
)

// AreaStats is the per-area utilization line of the staff
// dashboard.
type AreaStats struct {
	Area           model.AreaID `json:"area"`
	Name           string       `json:"name"`
	Occupied       int          `json:"occupied"`
	Total          int          `json:"total"`
	UtilizationPct int          `json:"utilization_pct"`
}

// Stats is a point-in-time view over the registry and session
// store.  It is recomputed from scratch on every call; nothing is
// cached.
type Stats struct {
	TotalSeats     int         `json:"total_seats"`
	AvailableSeats int         `json:"available_seats"`
	OccupiedSeats  int         `json:"occupied_seats"`
	ReservedSeats  int         `json:"reserved_seats"`
	OccupancyRate  int         `json:"occupancy_rate"` // percent, rounded to nearest
	Areas          []AreaStats `json:"areas"`
	ActiveSessions int         `json:"active_sessions"`
}

// ActiveSessionView decorates an active session with the holder's
// name and elapsed minutes for the staff dashboard.
type ActiveSessionView struct {
	Session        model.Session `json:"session"`
	HolderName     string        `json:"holder_name"`
	ElapsedMinutes int           `json:"elapsed_minutes"`
}

// Stats derives the occupancy view.  Occupancy rate counts occupied
// seats only; reserved seats are in-between and excluded, matching
// the dashboard the numbers came from.
func (l *Library) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	byArea := make(map[model.AreaID]*AreaStats, len(l.cfg.Areas))
	stats := Stats{ActiveSessions: l.sessions.ActiveCount()}
	for _, area := range l.cfg.Areas {
		byArea[area.ID] = &AreaStats{Area: area.ID, Name: area.Name}
	}
	for seat := range l.seats.All() {
		stats.TotalSeats++
		a := byArea[seat.Area]
		if a != nil {
			a.Total++
		}
		switch seat.Status {
		case model.SeatAvailable:
			stats.AvailableSeats++
		case model.SeatOccupied:
			stats.OccupiedSeats++
			if a != nil {
				a.Occupied++
			}
		case model.SeatReserved:
			stats.ReservedSeats++
		}
	}
	if stats.TotalSeats > 0 {
		stats.OccupancyRate = roundPct(stats.OccupiedSeats, stats.TotalSeats)
	}
	for _, area := range l.cfg.Areas {
		a := byArea[area.ID]
		if a.Total > 0 {
			a.UtilizationPct = roundPct(a.Occupied, a.Total)
		}
		stats.Areas = append(stats.Areas, *a)
	}
	return stats
}

// ActiveSessionViews lists running sessions with holder names and
// minutes elapsed at the given instant.
func (l *Library) ActiveSessionViews(now time.Time) []ActiveSessionView {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []ActiveSessionView
	for ses := range l.sessions.Active() {
		view := ActiveSessionView{
			Session:        *ses,
			HolderName:     "Unknown",
			ElapsedMinutes: int(math.Round(now.Sub(ses.StartTime).Minutes())),
		}
		if h, err := l.holders.Get(ses.HolderID); err == nil {
			view.HolderName = h.Name
		}
		out = append(out, view)
	}
	return out
}

// AreaName resolves an area's display name from the configured
// floor plan.
func (l *Library) AreaName(id model.AreaID) string {
	return config.AreaName(l.cfg.Areas, id)
}

func roundPct(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
