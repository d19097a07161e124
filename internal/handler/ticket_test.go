package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/repository"
	"github.com/iliyamo/airline-reservation/internal/service"
	"github.com/iliyamo/airline-reservation/internal/service/mocks"
)

func bookBody(t *testing.T, flightID uint64, name string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{"flight_id": flightID, "passenger_name": name})
	require.NoError(t, err)
	return b
}

func TestTicketHandler_Book(t *testing.T) {
	tests := []struct {
		name       string
		mockReturn *model.Ticket
		mockErr    error
		wantStatus int
	}{
		{
			name:       "issued",
			mockReturn: &model.Ticket{Number: "T001", FlightID: 1, PassengerName: "Alice"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "sold out",
			mockErr:    service.ErrSoldOut,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "flight missing is a bad request",
			mockErr:    repository.ErrFlightNotFound,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad input",
			mockErr:    &service.ValidationError{Field: "passenger_name", Reason: "must not be empty"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "exhausted retries",
			mockErr:    service.ErrConflict,
			wantStatus: http.StatusServiceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockReservationService)
			h := NewTicketHandler(svc)
			svc.On("Book", mock.Anything, uint64(1), "Alice").Return(tt.mockReturn, tt.mockErr)

			c, rec := newTestContext(http.MethodPost, "/api/v1/tickets", bookBody(t, 1, "Alice"))
			require.NoError(t, h.Book(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp ticketResp
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "T001", resp.TicketNumber)
				assert.Equal(t, uint64(1), resp.FlightID)
				assert.Equal(t, "Alice", resp.PassengerName)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestTicketHandler_CancelSplitsNotFound(t *testing.T) {
	tests := []struct {
		name       string
		mockErr    error
		wantStatus int
	}{
		{"cancelled", nil, http.StatusOK},
		{"flight missing is a bad request", repository.ErrFlightNotFound, http.StatusBadRequest},
		{"ticket missing is not found", repository.ErrTicketNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockReservationService)
			h := NewTicketHandler(svc)
			svc.On("Cancel", mock.Anything, uint64(1), "Alice").Return(tt.mockErr)

			c, rec := newTestContext(http.MethodDelete, "/api/v1/tickets", bookBody(t, 1, "Alice"))
			require.NoError(t, h.Cancel(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
