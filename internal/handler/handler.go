package handler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"healthbot/internal/booking"
	"healthbot/internal/dispatch"
	"healthbot/internal/domain"
)

// DefaultEventTimeout bounds the processing of one event, booking delays included
const DefaultEventTimeout = 2 * time.Minute

const busyMessage = "⏳ I'm still working on your previous messages, please wait a moment."

// Bot is the part of *tele.Bot the handler needs
type Bot interface {
	Handle(endpoint interface{}, h tele.HandlerFunc, m ...tele.MiddlewareFunc)
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// EventRouter turns events into replies
type EventRouter interface {
	Handle(ctx context.Context, ev domain.InboundEvent, ch booking.Channel) ([]domain.OutboundMessage, error)
}

// Submitter queues per-user work
type Submitter interface {
	Submit(userID domain.UserID, task dispatch.Task) error
}

// Handler bridges Telegram updates and the flow router
type Handler struct {
	bot       Bot
	router    EventRouter
	scheduler Submitter
	logger    *zap.Logger
	timeout   time.Duration
}

// NewHandler creates a new handler instance
func NewHandler(
	bot Bot,
	router EventRouter,
	scheduler Submitter,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		router:    router,
		scheduler: scheduler,
		logger:    logger,
		timeout:   DefaultEventTimeout,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Handle("/start", h.handleUpdate)
	h.bot.Handle(tele.OnText, h.handleUpdate)
	h.bot.Handle(tele.OnContact, h.handleUpdate)
	h.bot.Handle(tele.OnDocument, h.handleUpdate)
	h.bot.Handle(tele.OnPhoto, h.handleUpdate)
}

func (h *Handler) handleUpdate(c tele.Context) error {
	ev, ok := decodeEvent(c.Sender(), c.Message())
	if !ok {
		return nil
	}

	var to tele.Recipient = c.Sender()
	if chat := c.Chat(); chat != nil {
		to = chat
	}

	if err := h.enqueue(ev, to); err != nil {
		if errors.Is(err, dispatch.ErrQueueFull) {
			return c.Send(busyMessage)
		}
		return nil
	}
	return nil
}

// enqueue schedules the event behind the user's earlier events
func (h *Handler) enqueue(ev domain.InboundEvent, to tele.Recipient) error {
	rid := uuid.NewString()
	logger := h.logger.With(
		zap.String("rid", rid),
		zap.String("user_id", string(ev.UserID)),
	)
	ch := newChatChannel(h.bot, to, logger)

	err := h.scheduler.Submit(ev.UserID, func(ctx context.Context) {
		h.process(ctx, logger, ev, ch)
	})
	if err != nil {
		logger.Warn("Failed to queue event", zap.Error(err))
	}
	return err
}

func (h *Handler) process(ctx context.Context, logger *zap.Logger, ev domain.InboundEvent, ch *chatChannel) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	msgs, err := h.router.Handle(ctx, ev, ch)
	if err != nil {
		logger.Error("Failed to handle event", zap.Error(err))
	}

	for _, msg := range msgs {
		if _, err := ch.Send(ctx, msg); err != nil {
			logger.Error("Failed to send reply", zap.Error(err))
			return
		}
	}

	logger.Debug("Event handled",
		zap.Int("replies", len(msgs)),
		zap.Duration("took", time.Since(start)),
	)
}
