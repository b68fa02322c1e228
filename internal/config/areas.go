package config

import "github.com/iliyamo/library-study-space/internal/model"

// AreaSpec defines one study area of the floor plan: how many seats
// it has, how their IDs are numbered and how likely a seat is to be
// free when the registry seeds its initial statuses.  Room-based
// areas set Rooms and SeatsPerRoom instead of Seats; their IDs are
// <prefix><room><seat> (SR11 … SR54) while flat areas use a three
// digit counter (QS001 … QS040).
type AreaSpec struct {
	ID            model.AreaID
	Name          string
	Prefix        string
	Seats         int
	Rooms         int
	SeatsPerRoom  int
	AvailableProb float64 // chance a seat seeds as available (cosmetic only)
}

// Total returns the number of seats the area contributes to the
// floor plan.
func (a AreaSpec) Total() int {
	if a.Rooms > 0 {
		return a.Rooms * a.SeatsPerRoom
	}
	return a.Seats
}

// DefaultAreas returns the library floor plan: 95 seats across four
// areas.  The availability probabilities are seed data for a
// believable initial view, nothing more.
func DefaultAreas() []AreaSpec {
	return []AreaSpec{
		{ID: "quietStudy", Name: "Quiet Study Area", Prefix: "QS", Seats: 40, AvailableProb: 0.6},
		{ID: "groupStudy", Name: "Group Study Area", Prefix: "GS", Seats: 20, AvailableProb: 0.4},
		{ID: "computerLab", Name: "Computer Lab", Prefix: "CL", Seats: 15, AvailableProb: 0.5},
		{ID: "studyRooms", Name: "Study Rooms", Prefix: "SR", Rooms: 5, SeatsPerRoom: 4, AvailableProb: 0.8},
	}
}

// AreaName resolves an area ID to its display name, falling back to
// the raw ID for unknown areas.
func AreaName(areas []AreaSpec, id model.AreaID) string {
	for _, a := range areas {
		if a.ID == id {
			return a.Name
		}
	}
	return string(id)
}
