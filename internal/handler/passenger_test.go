package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-reservation/internal/repository"
	"github.com/iliyamo/airline-reservation/internal/service"
	"github.com/iliyamo/airline-reservation/internal/service/mocks"
)

func TestPassengerHandler_List(t *testing.T) {
	svc := new(mocks.MockReservationService)
	h := NewPassengerHandler(svc)

	svc.On("ListPassengers", mock.Anything, uint64(7), 2).Return(&service.PassengerPage{
		FlightID: 7, Page: 2, TotalPages: 2, TotalPassengers: 12,
		Passengers: []service.PassengerSeat{
			{PassengerName: "Kim", SeatNumber: 11},
			{PassengerName: "Lee", SeatNumber: 12},
		},
	}, nil)

	c, rec := newTestContext(http.MethodGet, "/api/v1/passengers?flight_id=7&page=2", nil)
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp passengerPageResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(7), resp.FlightID)
	assert.Equal(t, 12, resp.TotalPassengers)
	require.Len(t, resp.Passengers, 2)
	assert.Equal(t, 11, resp.Passengers[0].SeatNumber)
	svc.AssertExpectations(t)
}

func TestPassengerHandler_ListRejectsBadFlightID(t *testing.T) {
	for _, q := range []string{"", "flight_id=0", "flight_id=-3", "flight_id=abc"} {
		svc := new(mocks.MockReservationService)
		h := NewPassengerHandler(svc)

		target := "/api/v1/passengers"
		if q != "" {
			target += "?" + q
		}
		c, rec := newTestContext(http.MethodGet, target, nil)
		require.NoError(t, h.List(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", q)
		svc.AssertNotCalled(t, "ListPassengers")
	}
}

func TestPassengerHandler_ListUnknownFlightIsNotFound(t *testing.T) {
	svc := new(mocks.MockReservationService)
	h := NewPassengerHandler(svc)
	svc.On("ListPassengers", mock.Anything, uint64(99), 1).Return(nil, repository.ErrFlightNotFound)

	c, rec := newTestContext(http.MethodGet, "/api/v1/passengers?flight_id=99", nil)
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
