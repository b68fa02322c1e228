package repository

import (
	"testing"
	"time"

	"github.com/iliyamo/library-study-space/internal/model"
)

func testSeat(id model.SeatID, status model.SeatStatus) *model.Seat {
	return &model.Seat{ID: id, Area: "quietStudy", Status: status}
}

func TestPlaceAndConvert(t *testing.T) {
	r := NewReservationRepo(1, 6)
	now := time.Now().UTC()
	seat := testSeat("QS001", model.SeatAvailable)

	res, err := r.Place(seat, "STU001", 2, now, now)
	if err != nil {
		t.Fatal(err)
	}
	if res.SeatID != "QS001" || res.HolderID != "STU001" || res.DurationHours != 2 {
		t.Fatalf("unexpected reservation: %+v", res)
	}
	if res.ID == "" {
		t.Fatal("reservation must get an ID")
	}

	// second hold on the same seat must fail even while it still
	// reads as available
	if _, err := r.Place(seat, "STU002", 2, now, now); err != ErrSeatUnavailable {
		t.Fatalf("expected ErrSeatUnavailable, got %v", err)
	}

	got, err := r.ConvertToSession("QS001")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != res.ID {
		t.Fatalf("converted wrong reservation: %s vs %s", got.ID, res.ID)
	}
	if _, err := r.ConvertToSession("QS001"); err != ErrNoReservation {
		t.Fatalf("expected ErrNoReservation after convert, got %v", err)
	}
}

func TestPlaceValidatesSeatAndDuration(t *testing.T) {
	r := NewReservationRepo(1, 6)
	now := time.Now().UTC()

	if _, err := r.Place(testSeat("QS001", model.SeatReserved), "STU001", 2, now, now); err != ErrSeatUnavailable {
		t.Fatalf("reserved seat: expected ErrSeatUnavailable, got %v", err)
	}
	if _, err := r.Place(testSeat("QS001", model.SeatOccupied), "STU001", 2, now, now); err != ErrSeatUnavailable {
		t.Fatalf("occupied seat: expected ErrSeatUnavailable, got %v", err)
	}
	if _, err := r.Place(testSeat("QS001", model.SeatAvailable), "STU001", 0, now, now); err != ErrInvalidDuration {
		t.Fatalf("zero hours: expected ErrInvalidDuration, got %v", err)
	}
	if _, err := r.Place(testSeat("QS001", model.SeatAvailable), "STU001", 7, now, now); err != ErrInvalidDuration {
		t.Fatalf("seven hours: expected ErrInvalidDuration, got %v", err)
	}
}

func TestReleaseIsNoOpWithoutHold(t *testing.T) {
	r := NewReservationRepo(1, 6)
	if res := r.Release("QS001"); res != nil {
		t.Fatalf("expected nil, got %+v", res)
	}

	now := time.Now().UTC()
	if _, err := r.Place(testSeat("QS001", model.SeatAvailable), "STU001", 2, now, now); err != nil {
		t.Fatal(err)
	}
	if res := r.Release("QS001"); res == nil {
		t.Fatal("expected released reservation")
	}
	if r.Len() != 0 {
		t.Fatalf("ledger should be empty, has %d", r.Len())
	}
}
