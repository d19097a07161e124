package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/repository"
	"github.com/iliyamo/airline-reservation/internal/service"
	"github.com/iliyamo/airline-reservation/internal/service/mocks"
)

func newTestContext(method, target string, body []byte) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestFlightHandler_Create(t *testing.T) {
	svc := new(mocks.MockReservationService)
	h := NewFlightHandler(svc)

	svc.On("AddFlight", mock.Anything, mock.Anything).Return(&model.Flight{
		ID:                1,
		AirportFrom:       "VIE",
		AirportTo:         "LIS",
		DateFrom:          "2026-09-01T08:00",
		DateTo:            "2026-09-01T11:00",
		Duration:          180,
		TotalCapacity:     5,
		RemainingCapacity: 5,
	}, nil)

	body, _ := json.Marshal(map[string]any{
		"date_from": "2026-09-01T08:00", "date_to": "2026-09-01T11:00",
		"airport_from": "VIE", "airport_to": "LIS",
		"duration": 180, "capacity": 5,
	})
	c, rec := newTestContext(http.MethodPost, "/api/v1/flights", body)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(5), resp["remaining"])
	svc.AssertExpectations(t)
}

func TestFlightHandler_CreateMissingFieldNamesIt(t *testing.T) {
	svc := new(mocks.MockReservationService)
	h := NewFlightHandler(svc)

	svc.On("AddFlight", mock.Anything, mock.Anything).
		Return(nil, &service.ValidationError{Field: "airport_to", Reason: "field is required"})

	body, _ := json.Marshal(map[string]any{
		"date_from": "2026-09-01T08:00", "date_to": "2026-09-01T11:00",
		"airport_from": "VIE",
		"duration":     180, "capacity": 5,
	})
	c, rec := newTestContext(http.MethodPost, "/api/v1/flights", body)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "airport_to")
}

func TestFlightHandler_CreateAbsentNumericFieldNamesIt(t *testing.T) {
	full := map[string]any{
		"date_from": "2026-09-01T08:00", "date_to": "2026-09-01T11:00",
		"airport_from": "VIE", "airport_to": "LIS",
		"duration": 180, "capacity": 5,
	}
	for _, field := range []string{"duration", "capacity"} {
		t.Run(field, func(t *testing.T) {
			svc := new(mocks.MockReservationService)
			h := NewFlightHandler(svc)

			partial := make(map[string]any, len(full))
			for k, v := range full {
				partial[k] = v
			}
			delete(partial, field)
			body, _ := json.Marshal(partial)

			c, rec := newTestContext(http.MethodPost, "/api/v1/flights", body)
			require.NoError(t, h.Create(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), field)
			svc.AssertNotCalled(t, "AddFlight")
		})
	}
}

func TestFlightHandler_ListPaginates(t *testing.T) {
	svc := new(mocks.MockReservationService)
	h := NewFlightHandler(svc)

	flights := make([]model.Flight, 10)
	for i := range flights {
		flights[i] = model.Flight{ID: uint64(i + 1), TotalCapacity: 5, RemainingCapacity: 5}
	}
	svc.On("ListFlights", mock.Anything, 1).Return(&service.FlightPage{
		Page: 1, TotalPages: 3, TotalFlights: 25, Flights: flights,
	}, nil)

	c, rec := newTestContext(http.MethodGet, "/api/v1/flights?page=1", nil)
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp flightPageResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Flights, 10)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 25, resp.TotalFlights)
	svc.AssertExpectations(t)
}

func TestFlightHandler_ListDefaultsToPageOne(t *testing.T) {
	svc := new(mocks.MockReservationService)
	h := NewFlightHandler(svc)

	svc.On("ListFlights", mock.Anything, 1).Return(&service.FlightPage{
		Page: 1, TotalPages: 0, TotalFlights: 0, Flights: nil,
	}, nil)

	c, rec := newTestContext(http.MethodGet, "/api/v1/flights", nil)
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestFlightHandler_Get(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		mockReturn *model.Flight
		mockErr    error
		wantStatus int
	}{
		{"found", "1", &model.Flight{ID: 1}, nil, http.StatusOK},
		{"not found", "99", nil, repository.ErrFlightNotFound, http.StatusNotFound},
		{"bad id", "abc", nil, nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockReservationService)
			h := NewFlightHandler(svc)
			if tt.mockReturn != nil || tt.mockErr != nil {
				svc.On("GetFlight", mock.Anything, mock.Anything).Return(tt.mockReturn, tt.mockErr)
			}

			c, rec := newTestContext(http.MethodGet, "/api/v1/flights/"+tt.id, nil)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)
			require.NoError(t, h.Get(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
