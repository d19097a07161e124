package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/service"
)

// MockReservationService is a mock implementation of service.ReservationService
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) AddFlight(ctx context.Context, cmd service.AddFlightCommand) (*model.Flight, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Flight), args.Error(1)
}

func (m *MockReservationService) GetFlight(ctx context.Context, id uint64) (*model.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Flight), args.Error(1)
}

func (m *MockReservationService) ListFlights(ctx context.Context, page int) (*service.FlightPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FlightPage), args.Error(1)
}

func (m *MockReservationService) Book(ctx context.Context, flightID uint64, passengerName string) (*model.Ticket, error) {
	args := m.Called(ctx, flightID, passengerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockReservationService) Cancel(ctx context.Context, flightID uint64, passengerName string) error {
	args := m.Called(ctx, flightID, passengerName)
	return args.Error(0)
}

func (m *MockReservationService) CheckIn(ctx context.Context, flightID uint64, passengerName string) (*service.CheckinResult, error) {
	args := m.Called(ctx, flightID, passengerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckinResult), args.Error(1)
}

func (m *MockReservationService) ListPassengers(ctx context.Context, flightID uint64, page int) (*service.PassengerPage, error) {
	args := m.Called(ctx, flightID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PassengerPage), args.Error(1)
}
