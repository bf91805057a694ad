package booking

import (
	"context"
	"time"

	"healthbot/internal/domain"

	"go.uber.org/zap"
)

// Step is one timed status update
type Step struct {
	Text  string
	Delay time.Duration
}

// Channel delivers messages to one user
type Channel interface {
	Send(ctx context.Context, msg domain.OutboundMessage) (domain.MessageRef, error)
}

// Editor is implemented by channels that can rewrite a sent message
type Editor interface {
	Edit(ctx context.Context, ref domain.MessageRef, text string) error
}

// Notifier streams progress steps to the user
type Notifier interface {
	Notify(ctx context.Context, step Step) error
}

// Progress shows steps as edits of a single message when the channel supports it,
// and as separate messages otherwise. After each step it waits for the step delay
// without blocking anything but the current task.
type Progress struct {
	ch     Channel
	scale  float64
	logger *zap.Logger

	ref  domain.MessageRef
	sent bool
}

// NewProgress creates a notifier over ch. Delays are multiplied by scale.
func NewProgress(ch Channel, scale float64, logger *zap.Logger) *Progress {
	if scale < 0 {
		scale = 0
	}
	return &Progress{ch: ch, scale: scale, logger: logger}
}

// Notify shows the step then sleeps for its delay
func (p *Progress) Notify(ctx context.Context, step Step) error {
	if err := p.show(ctx, step.Text); err != nil {
		return err
	}
	return sleep(ctx, time.Duration(float64(step.Delay)*p.scale))
}

func (p *Progress) show(ctx context.Context, text string) error {
	editor, canEdit := p.ch.(Editor)
	if p.sent && canEdit {
		err := editor.Edit(ctx, p.ref, text)
		if err == nil {
			return nil
		}
		p.logger.Warn("Failed to edit progress message, sending new",
			zap.String("ref", string(p.ref)),
			zap.Error(err),
		)
	}

	ref, err := p.ch.Send(ctx, domain.OutboundMessage{Text: text})
	if err != nil {
		return err
	}
	p.ref = ref
	p.sent = true
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
