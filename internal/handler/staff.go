package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-study-space/internal/model"
	"github.com/iliyamo/library-study-space/internal/queue"
	"github.com/iliyamo/library-study-space/internal/service"
)

// StaffHandler exposes the staff dashboard: active sessions across
// all holders, per-area utilization and the ability to end any
// session.  Routes are gated by RequireRole(STAFF); the engine
// itself does not check who ends a session.
type StaffHandler struct {
	Lib *service.Library
}

func NewStaffHandler(lib *service.Library) *StaffHandler {
	return &StaffHandler{Lib: lib}
}

// ActiveSessions lists every running session with the holder's name
// and elapsed minutes.
func (h *StaffHandler) ActiveSessions(c echo.Context) error {
	views := h.Lib.ActiveSessionViews(time.Now().UTC())
	return c.JSON(http.StatusOK, echo.Map{"sessions": views, "count": len(views)})
}

// EndSession terminates any holder's active session on their
// behalf.
func (h *StaffHandler) EndSession(c echo.Context) error {
	sessionID := model.SessionID(c.Param("id"))
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session id required"})
	}
	ses, seat, err := h.Lib.StaffEndSession(sessionID)
	if err != nil {
		return jsonError(c, err)
	}
	if h.Lib.Config().EventsEnabled {
		name := ""
		if holder, herr := h.Lib.Holder(ses.HolderID); herr == nil {
			name = holder.Name
		}
		_ = queue.PublishSessionEvent(c.Request().Context(), queue.SessionEvent{
			Type:       queue.EventStaffEnded,
			SessionID:  string(ses.ID),
			SeatID:     string(ses.SeatID),
			Area:       string(seat.Area),
			HolderID:   string(ses.HolderID),
			HolderName: name,
			At:         time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"session": ses, "seat": seat})
}

// AreaBreakdown returns per-area occupancy for the utilization
// panel.
func (h *StaffHandler) AreaBreakdown(c echo.Context) error {
	stats := h.Lib.Stats()
	return c.JSON(http.StatusOK, echo.Map{"areas": stats.Areas, "occupancy_rate": stats.OccupancyRate})
}
