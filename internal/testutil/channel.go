package testutil

import (
	"context"
	"fmt"
	"sync"

	"healthbot/internal/domain"
)

// Edit records one message edit
type Edit struct {
	Ref  domain.MessageRef
	Text string
}

// FakeChannel records everything sent to a user and supports edits
type FakeChannel struct {
	mu      sync.Mutex
	sent    []domain.OutboundMessage
	edits   []Edit
	next    int
	SendErr error
	EditErr error
}

// Send records the message
func (f *FakeChannel) Send(_ context.Context, msg domain.OutboundMessage) (domain.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SendErr != nil {
		return "", f.SendErr
	}
	f.next++
	f.sent = append(f.sent, msg)
	return domain.MessageRef(fmt.Sprintf("msg-%d", f.next)), nil
}

// Edit records the edit
func (f *FakeChannel) Edit(_ context.Context, ref domain.MessageRef, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.EditErr != nil {
		return f.EditErr
	}
	f.edits = append(f.edits, Edit{Ref: ref, Text: text})
	return nil
}

// Sent returns a copy of the sent messages
func (f *FakeChannel) Sent() []domain.OutboundMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.OutboundMessage(nil), f.sent...)
}

// Edits returns a copy of the recorded edits
func (f *FakeChannel) Edits() []Edit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Edit(nil), f.edits...)
}

// SendOnlyChannel cannot edit messages
type SendOnlyChannel struct {
	inner FakeChannel
}

// Send records the message
func (s *SendOnlyChannel) Send(ctx context.Context, msg domain.OutboundMessage) (domain.MessageRef, error) {
	return s.inner.Send(ctx, msg)
}

// Sent returns a copy of the sent messages
func (s *SendOnlyChannel) Sent() []domain.OutboundMessage {
	return s.inner.Sent()
}
