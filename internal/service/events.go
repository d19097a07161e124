package service

import (
	"context"

	"github.com/iliyamo/airline-reservation/internal/model"
)

// EventPublisher receives reservation lifecycle notifications after the
// owning transaction has committed.  Publishing is best effort: a lost
// event must never fail or roll back the command that produced it, so
// implementations log failures instead of returning them.
type EventPublisher interface {
	TicketIssued(ctx context.Context, t *model.Ticket)
	TicketCancelled(ctx context.Context, t *model.Ticket)
	PassengerCheckedIn(ctx context.Context, rec *model.CheckinRecord)
}

// NopPublisher drops every event.  Used when the message broker is not
// configured and in tests that do not care about eventing.
type NopPublisher struct{}

func (NopPublisher) TicketIssued(context.Context, *model.Ticket)             {}
func (NopPublisher) TicketCancelled(context.Context, *model.Ticket)          {}
func (NopPublisher) PassengerCheckedIn(context.Context, *model.CheckinRecord) {}
