package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestReservationWorkflowOverHTTP(t *testing.T) {
	_, lib := testService(t)
	h := NewStudentHandler(lib)
	e := echo.New()
	auth := map[string]any{"holder_id": "STU001"}

	rec := doJSON(e, http.MethodPost, "/v1/reservations",
		`{"seat_id":"QS001","duration_hours":2}`, h.PlaceReservation, auth)
	if rec.Code != http.StatusCreated {
		t.Fatalf("place status %d: %s", rec.Code, rec.Body.String())
	}

	// another holder hitting the same seat is a conflict
	rec = doJSON(e, http.MethodPost, "/v1/reservations",
		`{"seat_id":"QS001","duration_hours":2}`, h.PlaceReservation,
		map[string]any{"holder_id": "STU002"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("double place status %d, want 409", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/v1/checkin",
		`{"seat_id":"QS001"}`, h.CheckIn, auth)
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkin status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/v1/session", "", h.CurrentSession, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("current session status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/v1/checkout", "", h.CheckOut, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout status %d: %s", rec.Code, rec.Body.String())
	}
	// no active session left to check out of
	rec = doJSON(e, http.MethodPost, "/v1/checkout", "", h.CheckOut, auth)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second checkout status %d, want 404", rec.Code)
	}
}

func TestCheckInWithoutReservationIsBadRequest(t *testing.T) {
	_, lib := testService(t)
	h := NewStudentHandler(lib)
	e := echo.New()

	rec := doJSON(e, http.MethodPost, "/v1/checkin",
		`{"seat_id":"QS003"}`, h.CheckIn, map[string]any{"holder_id": "STU001"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("checkin without hold status %d, want 400", rec.Code)
	}
}

func TestAreaSeatsFilterAndUnknownArea(t *testing.T) {
	_, lib := testService(t)
	h := NewStudentHandler(lib)
	e := echo.New()

	c, rec := areaContext(e, "quietStudy", "?status=available")
	if err := h.AreaSeats(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("area seats status %d: %s", rec.Code, rec.Body.String())
	}

	c, rec = areaContext(e, "basement", "")
	_ = h.AreaSeats(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown area status %d, want 404", rec.Code)
	}
}

func areaContext(e *echo.Echo, area, query string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/v1/areas/"+area+"/seats"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(area)
	return c, rec
}
