package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-study-space/internal/model"
	"github.com/iliyamo/library-study-space/internal/repository"
)

// holderID extracts the authenticated holder from the context where
// JWTAuth stored it.
func holderID(c echo.Context) (model.HolderID, bool) {
	v, ok := c.Get("holder_id").(string)
	if !ok || v == "" {
		return "", false
	}
	return model.HolderID(v), true
}

// jsonError translates the engine's sentinel errors into HTTP
// responses.  Every engine error is a recoverable caller error;
// anything unrecognised is a 500.
func jsonError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrSeatNotFound),
		errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, repository.ErrReservationNotFound),
		errors.Is(err, repository.ErrHolderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrNoReservation),
		errors.Is(err, repository.ErrInvalidDuration):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrSeatUnavailable),
		errors.Is(err, repository.ErrDuplicateActiveSession),
		errors.Is(err, repository.ErrAlreadyCompleted),
		errors.Is(err, repository.ErrInvalidTransition):
		status = http.StatusConflict
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
