package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-reservation/internal/repository"
	"github.com/iliyamo/airline-reservation/internal/service"
)

// CheckinHandler serves passenger check-in.
type CheckinHandler struct {
	Svc service.ReservationService
}

func NewCheckinHandler(svc service.ReservationService) *CheckinHandler {
	return &CheckinHandler{Svc: svc}
}

// CheckIn assigns a seat. The 200 response has the same shape whether
// the seat was just assigned or the passenger had already checked in;
// only the message wording differs. 404 without a valid ticket, 400 on
// bad input or unknown flight.
func (h *CheckinHandler) CheckIn(c echo.Context) error {
	var req ticketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Svc.CheckIn(c.Request().Context(), req.FlightID, req.PassengerName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoValidTicket):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no valid ticket for this flight"})
		case errors.Is(err, repository.ErrFlightNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight not found"})
		case errors.Is(err, service.ErrConflict):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "temporary conflict, retry"})
		default:
			if ve, ok := service.AsValidation(err); ok {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check-in failed"})
		}
	}
	msg := "checked in"
	if res.AlreadyCheckedIn {
		msg = "already checked in"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":     msg,
		"seat_number": res.SeatNumber,
	})
}
