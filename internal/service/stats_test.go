package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/iliyamo/library-study-space/internal/config"
	"github.com/iliyamo/library-study-space/internal/model"
)

func TestStatsCountsAndRates(t *testing.T) {
	cfg := testConfig()
	cfg.Areas = []config.AreaSpec{
		{ID: "quietStudy", Name: "Quiet Study Area", Prefix: "QS", Seats: 4, AvailableProb: 1},
	}
	lib, err := New(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := lib.PlaceReservation("QS001", "STU001", 2); err != nil {
		t.Fatal(err)
	}
	if _, _, err := lib.CheckIn("QS001", "STU001"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := lib.PlaceReservation("QS002", "STU002", 2); err != nil {
		t.Fatal(err)
	}

	stats := lib.Stats()
	if stats.TotalSeats != 4 || stats.OccupiedSeats != 1 || stats.ReservedSeats != 1 || stats.AvailableSeats != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	// occupancy counts occupied seats only, 1 of 4
	if stats.OccupancyRate != 25 {
		t.Fatalf("occupancy rate %d, want 25", stats.OccupancyRate)
	}
	if stats.ActiveSessions != 1 {
		t.Fatalf("active sessions %d, want 1", stats.ActiveSessions)
	}
	if len(stats.Areas) != 1 {
		t.Fatalf("expected one area line, got %d", len(stats.Areas))
	}
	area := stats.Areas[0]
	if area.Name != "Quiet Study Area" || area.Occupied != 1 || area.Total != 4 || area.UtilizationPct != 25 {
		t.Fatalf("unexpected area line: %+v", area)
	}
}

func TestActiveSessionViews(t *testing.T) {
	lib := testLibrary(t)
	if _, _, err := lib.PlaceReservation("QS001", "STU001", 2); err != nil {
		t.Fatal(err)
	}
	ses, _, err := lib.CheckIn("QS001", "STU001")
	if err != nil {
		t.Fatal(err)
	}

	views := lib.ActiveSessionViews(ses.StartTime.Add(45 * time.Minute))
	if len(views) != 1 {
		t.Fatalf("expected one view, got %d", len(views))
	}
	v := views[0]
	if v.Session.ID != ses.ID || v.HolderName != "John Smith" || v.ElapsedMinutes != 45 {
		t.Fatalf("unexpected view: %+v", v)
	}

	if _, _, err := lib.CheckOut(ses.ID); err != nil {
		t.Fatal(err)
	}
	if views := lib.ActiveSessionViews(time.Now()); len(views) != 0 {
		t.Fatalf("completed sessions must not appear, got %d", len(views))
	}
}

func TestExpiredSessions(t *testing.T) {
	lib := testLibrary(t)
	if _, _, err := lib.PlaceReservation("QS001", "STU001", 2); err != nil {
		t.Fatal(err)
	}
	ses, _, err := lib.CheckIn("QS001", "STU001")
	if err != nil {
		t.Fatal(err)
	}

	if expired := lib.ExpiredSessions(ses.StartTime.Add(time.Hour)); len(expired) != 0 {
		t.Fatalf("session not yet expired, got %d", len(expired))
	}
	expired := lib.ExpiredSessions(ses.EndTime.Add(time.Second))
	if len(expired) != 1 || expired[0].ID != ses.ID {
		t.Fatalf("expected the overrun session, got %+v", expired)
	}
	if expired[0].Status != model.SessionActive {
		t.Fatal("overrunning a session must not complete it")
	}
}
