package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-study-space/internal/handler"
	"github.com/iliyamo/library-study-space/internal/middleware"
	"github.com/iliyamo/library-study-space/internal/model"
)

// RegisterRoutes registers routes that do not require
// authentication.  Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the login endpoint under /v1/auth and the
// authenticated /v1/me endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/v1/auth/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleStudent, model.RoleStaff))
	auth.GET("/me", a.Me)
}

// RegisterStudent wires the reservation/session workflow.  Both
// roles may use it: staff members check seats out the same way
// students do.
func RegisterStudent(e *echo.Echo, s *handler.StudentHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleStudent, model.RoleStaff))

	g.GET("/floorplan", s.FloorPlan)
	g.GET("/areas/:id/seats", s.AreaSeats)
	g.POST("/reservations", s.PlaceReservation)
	g.DELETE("/reservations/:seatId", s.ReleaseReservation)
	g.POST("/checkin", s.CheckIn)
	g.GET("/session", s.CurrentSession)
	g.POST("/checkout", s.CheckOut)
	g.POST("/session/extend", s.Extend)
	g.GET("/sessions/history", s.History)
	g.GET("/stats", s.Stats)
}

// RegisterStaff wires the staff dashboard under /v1/staff, gated to
// the STAFF role.
func RegisterStaff(e *echo.Echo, s *handler.StaffHandler, jwtSecret string) {
	g := e.Group("/v1/staff")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleStaff))

	g.GET("/sessions", s.ActiveSessions)
	g.POST("/sessions/:id/end", s.EndSession)
	g.GET("/areas", s.AreaBreakdown)
}
