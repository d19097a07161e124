package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-reservation/internal/repository"
	"github.com/iliyamo/airline-reservation/internal/service"
)

// PassengerHandler serves the check-in roster listing.
type PassengerHandler struct {
	Svc service.ReservationService
}

func NewPassengerHandler(svc service.ReservationService) *PassengerHandler {
	return &PassengerHandler{Svc: svc}
}

type passengerPageResp struct {
	FlightID        uint64                  `json:"flight_id"`
	Page            int                     `json:"page"`
	TotalPages      int                     `json:"total_pages"`
	TotalPassengers int                     `json:"total_passengers"`
	Passengers      []service.PassengerSeat `json:"passengers"`
}

// List returns one page of checked-in passengers for a flight, ordered
// by seat number. A missing or non-positive flight_id responds 400; a
// flight_id that does not resolve responds 404.
func (h *PassengerHandler) List(c echo.Context) error {
	flightID, err := strconv.ParseUint(c.QueryParam("flight_id"), 10, 64)
	if err != nil || flightID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_id must be a positive integer"})
	}
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}
	p, err := h.Svc.ListPassengers(c.Request().Context(), flightID, page)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFlightNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		default:
			if ve, ok := service.AsValidation(err); ok {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list passengers failed"})
		}
	}
	return c.JSON(http.StatusOK, passengerPageResp{
		FlightID:        p.FlightID,
		Page:            p.Page,
		TotalPages:      p.TotalPages,
		TotalPassengers: p.TotalPassengers,
		Passengers:      p.Passengers,
	})
}
