package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-study-space/internal/model"
	"github.com/iliyamo/library-study-space/internal/queue"
	"github.com/iliyamo/library-study-space/internal/service"
)

// StudentHandler exposes the reservation and session workflow: the
// floor plan, placing and releasing holds, check-in, checkout,
// extension, history and stats.  All endpoints assume JWTAuth ran
// first.  The API is poll-based: clients re-query after every
// command and on each timer tick.
type StudentHandler struct {
	Lib *service.Library
}

func NewStudentHandler(lib *service.Library) *StudentHandler {
	return &StudentHandler{Lib: lib}
}

// FloorPlan returns every area with its seats in stable order, the
// data behind the seat map view.
func (h *StudentHandler) FloorPlan(c echo.Context) error {
	areas := make([]echo.Map, 0, len(h.Lib.Config().Areas))
	for _, area := range h.Lib.Config().Areas {
		areas = append(areas, echo.Map{
			"id":    area.ID,
			"name":  area.Name,
			"seats": h.Lib.SeatsByArea(area.ID),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// AreaSeats lists the seats of one area, optionally filtered by
// ?status=available|occupied|reserved.
func (h *StudentHandler) AreaSeats(c echo.Context) error {
	area := model.AreaID(c.Param("id"))
	seats := h.Lib.SeatsByArea(area)
	if len(seats) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown area"})
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := model.SeatStatus(raw)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		filtered := seats[:0]
		for _, s := range seats {
			if s.Status == status {
				filtered = append(filtered, s)
			}
		}
		seats = filtered
	}
	return c.JSON(http.StatusOK, echo.Map{
		"area":  area,
		"name":  h.Lib.AreaName(area),
		"seats": seats,
	})
}

type placeReq struct {
	SeatID        string `json:"seat_id"`
	DurationHours int    `json:"duration_hours"`
}

// PlaceReservation holds a seat for the authenticated holder.  A
// zero duration falls back to the configured default.
func (h *StudentHandler) PlaceReservation(c echo.Context) error {
	id, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req placeReq
	if err := c.Bind(&req); err != nil || req.SeatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
	}
	if req.DurationHours == 0 {
		req.DurationHours = h.Lib.Config().DefaultSessionHours
	}
	res, seat, err := h.Lib.PlaceReservation(model.SeatID(req.SeatID), id, req.DurationHours)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"reservation": res, "seat": seat})
}

// ReleaseReservation drops the hold on a seat and frees it.
func (h *StudentHandler) ReleaseReservation(c echo.Context) error {
	if _, ok := holderID(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	seat, err := h.Lib.ReleaseReservation(model.SeatID(c.Param("seatId")))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"seat": seat})
}

type checkInReq struct {
	SeatID string `json:"seat_id"`
}

// CheckIn converts the holder's reservation into an active session.
func (h *StudentHandler) CheckIn(c echo.Context) error {
	id, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkInReq
	if err := c.Bind(&req); err != nil || req.SeatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
	}
	ses, seat, err := h.Lib.CheckIn(model.SeatID(req.SeatID), id)
	if err != nil {
		return jsonError(c, err)
	}
	h.publish(c.Request().Context(), queue.EventCheckedIn, ses)
	return c.JSON(http.StatusCreated, echo.Map{"session": ses, "seat": seat})
}

// CurrentSession returns the holder's active session with its time
// remaining, or 404 when there is none.
func (h *StudentHandler) CurrentSession(c echo.Context) error {
	id, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	holder, err := h.Lib.Holder(id)
	if err != nil {
		return jsonError(c, err)
	}
	if holder.CurrentSessionID == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active session"})
	}
	ses, err := h.Lib.Session(holder.CurrentSessionID)
	if err != nil {
		return jsonError(c, err)
	}
	remaining, err := h.Lib.TimeRemaining(ses.ID, time.Now().UTC())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"session":           ses,
		"area":              h.Lib.AreaName(seatArea(h.Lib, ses.SeatID)),
		"remaining_seconds": int(remaining.Seconds()),
		"expired":           remaining <= 0,
	})
}

// CheckOut completes the holder's active session and frees the
// seat.
func (h *StudentHandler) CheckOut(c echo.Context) error {
	id, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	holder, err := h.Lib.Holder(id)
	if err != nil {
		return jsonError(c, err)
	}
	if holder.CurrentSessionID == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active session"})
	}
	ses, seat, err := h.Lib.CheckOut(holder.CurrentSessionID)
	if err != nil {
		return jsonError(c, err)
	}
	h.publish(c.Request().Context(), queue.EventCheckedOut, ses)
	return c.JSON(http.StatusOK, echo.Map{"session": ses, "seat": seat})
}

type extendReq struct {
	Hours int `json:"hours"`
}

// Extend pushes the holder's active session out, by the configured
// increment unless the body says otherwise.
func (h *StudentHandler) Extend(c echo.Context) error {
	id, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	holder, err := h.Lib.Holder(id)
	if err != nil {
		return jsonError(c, err)
	}
	if holder.CurrentSessionID == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active session"})
	}
	var req extendReq
	_ = c.Bind(&req) // empty body means default increment
	ses, err := h.Lib.Extend(holder.CurrentSessionID, req.Hours)
	if err != nil {
		return jsonError(c, err)
	}
	h.publish(c.Request().Context(), queue.EventExtended, ses)
	return c.JSON(http.StatusOK, echo.Map{"session": ses})
}

// History returns the holder's sessions, most recent first.
func (h *StudentHandler) History(c echo.Context) error {
	id, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": h.Lib.HistoryFor(id)})
}

// Stats returns the occupancy dashboard numbers.
func (h *StudentHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Lib.Stats())
}

func (h *StudentHandler) publish(ctx context.Context, eventType string, ses model.Session) {
	if !h.Lib.Config().EventsEnabled {
		return
	}
	name := ""
	if holder, err := h.Lib.Holder(ses.HolderID); err == nil {
		name = holder.Name
	}
	_ = queue.PublishSessionEvent(ctx, queue.SessionEvent{
		Type:       eventType,
		SessionID:  string(ses.ID),
		SeatID:     string(ses.SeatID),
		Area:       string(seatArea(h.Lib, ses.SeatID)),
		HolderID:   string(ses.HolderID),
		HolderName: name,
		At:         time.Now().UTC().Format(time.RFC3339),
	})
}

func seatArea(lib *service.Library, id model.SeatID) model.AreaID {
	if seat, err := lib.Seat(id); err == nil {
		return seat.Area
	}
	return ""
}
