package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-reservation/internal/repository"
	"github.com/iliyamo/airline-reservation/internal/service"
)

// TicketHandler serves booking and cancellation.
type TicketHandler struct {
	Svc service.ReservationService
}

func NewTicketHandler(svc service.ReservationService) *TicketHandler {
	return &TicketHandler{Svc: svc}
}

type ticketReq struct {
	FlightID      uint64 `json:"flight_id"`
	PassengerName string `json:"passenger_name"`
}

type ticketResp struct {
	TicketNumber  string `json:"ticket_number"`
	FlightID      uint64 `json:"flight_id"`
	PassengerName string `json:"passenger_name"`
}

// Book issues a ticket. 201 on success, 409 when the flight is sold
// out, 400 on bad input. A flight_id that resolves to no flight is
// treated as bad input too: at booking time the client supplied the
// reference, so an unknown flight is a malformed request rather than
// a missing resource.
func (h *TicketHandler) Book(c echo.Context) error {
	var req ticketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t, err := h.Svc.Book(c.Request().Context(), req.FlightID, req.PassengerName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSoldOut):
			return c.JSON(http.StatusConflict, echo.Map{"error": "flight is sold out"})
		case errors.Is(err, repository.ErrFlightNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
		case errors.Is(err, service.ErrConflict):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "temporary conflict, retry"})
		default:
			if ve, ok := service.AsValidation(err); ok {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}
	return c.JSON(http.StatusCreated, ticketResp{
		TicketNumber:  t.Number,
		FlightID:      t.FlightID,
		PassengerName: t.PassengerName,
	})
}

// Cancel revokes a ticket and returns the seat to the pool. A missing
// flight responds 400 while a missing ticket responds 404; the split
// lets clients distinguish a bad reference from an already-cancelled
// booking.
func (h *TicketHandler) Cancel(c echo.Context) error {
	var req ticketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	err := h.Svc.Cancel(c.Request().Context(), req.FlightID, req.PassengerName)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFlightNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight not found"})
		case errors.Is(err, repository.ErrTicketNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		case errors.Is(err, service.ErrConflict):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "temporary conflict, retry"})
		default:
			if ve, ok := service.AsValidation(err); ok {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancellation failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "ticket cancelled",
		"flight_id":      req.FlightID,
		"passenger_name": req.PassengerName,
	})
}
