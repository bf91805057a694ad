// Package flow routes user events through the menu-driven conversational
// flows: hospital cab booking, medicine ordering, appointment booking,
// report chat and phone authentication.
package flow

import (
	"context"

	"healthbot/internal/booking"
	"healthbot/internal/domain"
)

// AuthProvider verifies phone numbers and passwords
type AuthProvider interface {
	CheckAccount(ctx context.Context, phone string) (domain.Account, error)
	Login(ctx context.Context, phone, password, name string) (domain.LoginResult, error)
}

// Commands run outside the engine. Their payload is relayed verbatim.
type Commands interface {
	UploadReport(ctx context.Context, phone string, doc domain.Document) (domain.CommandResult, error)
	ListReports(ctx context.Context, phone string) (domain.CommandResult, error)
	AskReports(ctx context.Context, phone, question string) (domain.CommandResult, error)
}

// Booker runs a booking and streams its progress through the notifier
type Booker interface {
	Simulate(ctx context.Context, n booking.Notifier, req booking.Request) (domain.BookingResult, error)
}

// Transition is what a state handler decided.
// A rejected transition keeps the state and re-shows its prompt.
// An accepted transition to StateNone ends the flow and clears its scratch fields.
type Transition struct {
	Accepted bool
	Next     domain.State
	Messages []domain.OutboundMessage
}

// turn carries one event through the router
type turn struct {
	ctx  context.Context
	sess *domain.Session
	ev   domain.InboundEvent
	ch   booking.Channel
	text string
}

func reject(notice string) Transition {
	return Transition{Messages: []domain.OutboundMessage{{Text: notice}}}
}

func advance(next domain.State) Transition {
	return Transition{Accepted: true, Next: next}
}

func finish(msgs ...domain.OutboundMessage) Transition {
	return Transition{Accepted: true, Next: domain.StateNone, Messages: msgs}
}

// stay accepts the input without moving
func stay(st domain.State, msgs ...domain.OutboundMessage) Transition {
	return Transition{Accepted: true, Next: st, Messages: msgs}
}

type discardChannel struct{}

func (discardChannel) Send(context.Context, domain.OutboundMessage) (domain.MessageRef, error) {
	return "", nil
}
