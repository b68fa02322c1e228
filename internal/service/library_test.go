package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/iliyamo/library-study-space/internal/config"
	"github.com/iliyamo/library-study-space/internal/model"
	"github.com/iliyamo/library-study-space/internal/repository"
)

func testConfig() config.Config {
	return config.Config{
		BcryptCost: 4, // keep roster seeding fast in tests
		Areas: []config.AreaSpec{
			{ID: "quietStudy", Name: "Quiet Study Area", Prefix: "QS", Seats: 6, AvailableProb: 1},
			{ID: "studyRooms", Name: "Study Rooms", Prefix: "SR", Rooms: 2, SeatsPerRoom: 2, AvailableProb: 1},
		},
		SeedReservations:    0,
		DefaultSessionHours: 2,
		ExtensionHours:      1,
		MinDurationHours:    1,
		MaxDurationHours:    6,
	}
}

func testLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := New(testConfig(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

func TestReservationLifecycle(t *testing.T) {
	lib := testLibrary(t)

	res, seat, err := lib.PlaceReservation("QS001", "STU001", 2)
	if err != nil {
		t.Fatal(err)
	}
	if seat.Status != model.SeatReserved {
		t.Fatalf("seat should be reserved after place, got %s", seat.Status)
	}
	if res.SeatID != "QS001" || res.DurationHours != 2 {
		t.Fatalf("unexpected reservation: %+v", res)
	}

	ses, seat, err := lib.CheckIn("QS001", "STU001")
	if err != nil {
		t.Fatal(err)
	}
	if seat.Status != model.SeatOccupied || seat.HolderID != "STU001" || seat.SessionID != ses.ID {
		t.Fatalf("seat not occupied with references after check-in: %+v", seat)
	}
	if ses.DurationHours != 2 || ses.Status != model.SessionActive {
		t.Fatalf("unexpected session: %+v", ses)
	}
	if want := ses.StartTime.Add(2 * time.Hour); !ses.EndTime.Equal(want) {
		t.Fatalf("end time %v, want %v", ses.EndTime, want)
	}
	holder, err := lib.Holder("STU001")
	if err != nil {
		t.Fatal(err)
	}
	if holder.CurrentSessionID != ses.ID {
		t.Fatal("holder back-reference not set at check-in")
	}

	done, seat, err := lib.CheckOut(ses.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != model.SessionCompleted || done.ActualEnd == nil {
		t.Fatalf("session not completed: %+v", done)
	}
	if seat.Status != model.SeatAvailable || seat.HolderID != "" || seat.SessionID != "" {
		t.Fatalf("seat not freed after checkout: %+v", seat)
	}
	holder, _ = lib.Holder("STU001")
	if holder.CurrentSessionID != "" {
		t.Fatal("holder back-reference not cleared at checkout")
	}

	history := lib.HistoryFor("STU001")
	if len(history) != 1 {
		t.Fatalf("expected exactly one history entry, got %d", len(history))
	}
	if history[0].ID != ses.ID || history[0].Status != model.SessionCompleted {
		t.Fatalf("unexpected history entry: %+v", history[0])
	}
}

func TestDuplicateActiveSession(t *testing.T) {
	lib := testLibrary(t)
	if _, _, err := lib.PlaceReservation("QS001", "STU001", 2); err != nil {
		t.Fatal(err)
	}
	if _, _, err := lib.CheckIn("QS001", "STU001"); err != nil {
		t.Fatal(err)
	}

	_, _, err := lib.PlaceReservation("QS002", "STU001", 2)
	if err != repository.ErrDuplicateActiveSession {
		t.Fatalf("expected ErrDuplicateActiveSession, got %v", err)
	}
	seat, err := lib.Seat("QS002")
	if err != nil {
		t.Fatal(err)
	}
	if seat.Status != model.SeatAvailable {
		t.Fatalf("QS002 must stay available, got %s", seat.Status)
	}
}

func TestCheckInRequiresMatchingReservation(t *testing.T) {
	lib := testLibrary(t)

	if _, _, err := lib.CheckIn("QS001", "STU001"); err != repository.ErrNoReservation {
		t.Fatalf("no hold: expected ErrNoReservation, got %v", err)
	}

	if _, _, err := lib.PlaceReservation("QS001", "STU001", 2); err != nil {
		t.Fatal(err)
	}
	if _, _, err := lib.CheckIn("QS001", "STU002"); err != repository.ErrNoReservation {
		t.Fatalf("wrong holder: expected ErrNoReservation, got %v", err)
	}
	// the hold must survive the rejected attempt
	if _, _, err := lib.CheckIn("QS001", "STU001"); err != nil {
		t.Fatalf("matching check-in after rejection failed: %v", err)
	}
}

func TestPlaceOnReservedSeatFails(t *testing.T) {
	lib := testLibrary(t)
	if _, _, err := lib.PlaceReservation("QS001", "STU001", 2); err != nil {
		t.Fatal(err)
	}
	if _, _, err := lib.PlaceReservation("QS001", "STU002", 2); err != repository.ErrSeatUnavailable {
		t.Fatalf("expected ErrSeatUnavailable, got %v", err)
	}
}

func TestExtendMovesScheduledEndOnly(t *testing.T) {
	lib := testLibrary(t)
	if _, _, err := lib.PlaceReservation("QS001", "STU001", 2); err != nil {
		t.Fatal(err)
	}
	ses, _, err := lib.CheckIn("QS001", "STU001")
	if err != nil {
		t.Fatal(err)
	}

	extended, err := lib.Extend(ses.ID, 0) // zero means configured increment
	if err != nil {
		t.Fatal(err)
	}
	if want := ses.EndTime.Add(time.Hour); !extended.EndTime.Equal(want) {
		t.Fatalf("end time %v, want %v", extended.EndTime, want)
	}
	if extended.DurationHours != 3 || extended.Status != model.SessionActive {
		t.Fatalf("unexpected session after extend: %+v", extended)
	}
	seat, _ := lib.Seat("QS001")
	if seat.Status != model.SeatOccupied {
		t.Fatalf("extend must not touch the seat, got %s", seat.Status)
	}
}

func TestCheckOutIsTerminal(t *testing.T) {
	lib := testLibrary(t)
	if _, _, err := lib.PlaceReservation("QS001", "STU001", 2); err != nil {
		t.Fatal(err)
	}
	ses, _, err := lib.CheckIn("QS001", "STU001")
	if err != nil {
		t.Fatal(err)
	}
	done, _, err := lib.CheckOut(ses.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := lib.CheckOut(ses.ID); err != repository.ErrAlreadyCompleted {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	if _, err := lib.Extend(ses.ID, 1); err != repository.ErrAlreadyCompleted {
		t.Fatalf("extend on completed: expected ErrAlreadyCompleted, got %v", err)
	}
	again, err := lib.Session(ses.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !again.ActualEnd.Equal(*done.ActualEnd) {
		t.Fatal("failed checkout must not change the record")
	}
}

func TestStaffEndSessionMatchesCheckOut(t *testing.T) {
	lib := testLibrary(t)
	if _, _, err := lib.PlaceReservation("QS001", "STU002", 2); err != nil {
		t.Fatal(err)
	}
	ses, _, err := lib.CheckIn("QS001", "STU002")
	if err != nil {
		t.Fatal(err)
	}

	done, seat, err := lib.StaffEndSession(ses.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != model.SessionCompleted || seat.Status != model.SeatAvailable {
		t.Fatalf("staff end did not complete and free: %+v %+v", done, seat)
	}
	holder, _ := lib.Holder("STU002")
	if holder.CurrentSessionID != "" {
		t.Fatal("staff end must clear the holder back-reference")
	}
}

func TestTimeRemaining(t *testing.T) {
	lib := testLibrary(t)
	if _, _, err := lib.PlaceReservation("QS001", "STU001", 2); err != nil {
		t.Fatal(err)
	}
	ses, _, err := lib.CheckIn("QS001", "STU001")
	if err != nil {
		t.Fatal(err)
	}

	remaining, err := lib.TimeRemaining(ses.ID, ses.StartTime.Add(30*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 90*time.Minute {
		t.Fatalf("expected 90m remaining, got %v", remaining)
	}
	remaining, err = lib.TimeRemaining(ses.ID, ses.EndTime.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 0 {
		t.Fatalf("expired session must report zero, got %v", remaining)
	}
}

func TestReleaseReservationFreesSeat(t *testing.T) {
	lib := testLibrary(t)
	if _, _, err := lib.PlaceReservation("QS001", "STU001", 2); err != nil {
		t.Fatal(err)
	}
	seat, err := lib.ReleaseReservation("QS001")
	if err != nil {
		t.Fatal(err)
	}
	if seat.Status != model.SeatAvailable {
		t.Fatalf("released seat should be available, got %s", seat.Status)
	}
	// releasing again is a no-op
	if _, err := lib.ReleaseReservation("QS001"); err != nil {
		t.Fatalf("no-op release errored: %v", err)
	}
	if _, err := lib.Reservation("QS001"); err != repository.ErrNoReservation {
		t.Fatalf("expected ErrNoReservation, got %v", err)
	}
}

func TestSeedReservations(t *testing.T) {
	cfg := testConfig()
	cfg.SeedReservations = 3
	lib, err := New(cfg, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	reserved := lib.SeatsByStatus(model.SeatReserved)
	if len(reserved) != 3 {
		t.Fatalf("expected 3 seeded holds, got %d", len(reserved))
	}
	for _, seat := range reserved {
		res, err := lib.Reservation(seat.ID)
		if err != nil {
			t.Fatalf("reserved seat %s has no ledger entry", seat.ID)
		}
		if res.DurationHours != cfg.DefaultSessionHours {
			t.Fatalf("seeded hold duration %d, want %d", res.DurationHours, cfg.DefaultSessionHours)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	lib := testLibrary(t)
	holder, err := lib.Authenticate("STU001", "student123")
	if err != nil {
		t.Fatal(err)
	}
	if holder.Name != "John Smith" || holder.Role != model.RoleStudent {
		t.Fatalf("unexpected holder: %+v", holder)
	}
	if _, err := lib.Authenticate("STU001", "wrong"); err != repository.ErrHolderNotFound {
		t.Fatalf("wrong password: expected ErrHolderNotFound, got %v", err)
	}
	if _, err := lib.Authenticate("GHOST", "student123"); err != repository.ErrHolderNotFound {
		t.Fatalf("unknown holder: expected ErrHolderNotFound, got %v", err)
	}
}
