package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/repository"
	"github.com/iliyamo/airline-reservation/internal/service"
)

// FlightHandler serves the flight catalog endpoints.
type FlightHandler struct {
	Svc service.ReservationService
}

func NewFlightHandler(svc service.ReservationService) *FlightHandler {
	return &FlightHandler{Svc: svc}
}

// addFlightReq binds the numeric fields through pointers so an absent
// field is distinguishable from an explicit zero and can be named in
// the 400 response.
type addFlightReq struct {
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	AirportFrom string `json:"airport_from"`
	AirportTo   string `json:"airport_to"`
	Duration    *int   `json:"duration"`
	Capacity    *int   `json:"capacity"`
}

type flightResp struct {
	ID          uint64 `json:"id"`
	AirportFrom string `json:"airport_from"`
	AirportTo   string `json:"airport_to"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	Duration    int    `json:"duration"`
	Capacity    int    `json:"capacity"`
	Remaining   int    `json:"remaining"`
}

type flightPageResp struct {
	Page         int          `json:"page"`
	TotalPages   int          `json:"total_pages"`
	TotalFlights int          `json:"total_flights"`
	Flights      []flightResp `json:"flights"`
}

func toFlightResp(f *model.Flight) flightResp {
	return flightResp{
		ID:          f.ID,
		AirportFrom: f.AirportFrom,
		AirportTo:   f.AirportTo,
		DateFrom:    f.DateFrom,
		DateTo:      f.DateTo,
		Duration:    f.Duration,
		Capacity:    f.TotalCapacity,
		Remaining:   f.RemainingCapacity,
	}
}

// Create adds a flight. Responds 400 naming the first missing or
// malformed field, 201 with the created flight otherwise.
func (h *FlightHandler) Create(c echo.Context) error {
	var req addFlightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Duration == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid duration: field is required"})
	}
	if req.Capacity == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid capacity: field is required"})
	}
	f, err := h.Svc.AddFlight(c.Request().Context(), service.AddFlightCommand{
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		AirportFrom: req.AirportFrom,
		AirportTo:   req.AirportTo,
		Duration:    *req.Duration,
		Capacity:    *req.Capacity,
	})
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create flight failed"})
	}
	return c.JSON(http.StatusCreated, toFlightResp(f))
}

// List returns one fixed-size page of flights. Public: no auth needed.
func (h *FlightHandler) List(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}
	p, err := h.Svc.ListFlights(c.Request().Context(), page)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list flights failed"})
	}
	flights := make([]flightResp, 0, len(p.Flights))
	for i := range p.Flights {
		flights = append(flights, toFlightResp(&p.Flights[i]))
	}
	return c.JSON(http.StatusOK, flightPageResp{
		Page:         p.Page,
		TotalPages:   p.TotalPages,
		TotalFlights: p.TotalFlights,
		Flights:      flights,
	})
}

// Get returns a single flight by path id.
func (h *FlightHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	f, err := h.Svc.GetFlight(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load flight failed"})
	}
	return c.JSON(http.StatusOK, toFlightResp(f))
}
