package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"healthbot/internal/domain"
)

// chatChannel sends and edits messages in one chat
type chatChannel struct {
	bot    Bot
	to     tele.Recipient
	logger *zap.Logger
}

func newChatChannel(bot Bot, to tele.Recipient, logger *zap.Logger) *chatChannel {
	return &chatChannel{bot: bot, to: to, logger: logger}
}

// Send delivers msg with its keyboard, if any
func (c *chatChannel) Send(_ context.Context, msg domain.OutboundMessage) (domain.MessageRef, error) {
	var opts []interface{}
	if markup := renderMarkup(msg); markup != nil {
		opts = append(opts, markup)
	}

	sent, err := c.bot.Send(c.to, msg.Text, opts...)
	if err != nil {
		return "", err
	}
	if sent == nil || sent.Chat == nil {
		return "", nil
	}

	id, chatID := sent.MessageSig()
	return encodeRef(chatID, id), nil
}

// Edit replaces the text of a sent message
func (c *chatChannel) Edit(_ context.Context, ref domain.MessageRef, text string) error {
	stored, err := decodeRef(ref)
	if err != nil {
		return err
	}

	if _, err := c.bot.Edit(stored, text); err != nil {
		if isNotModified(err) {
			c.logger.Debug("Message already shows this text", zap.String("ref", string(ref)))
			return nil
		}
		return err
	}
	return nil
}

func encodeRef(chatID int64, messageID string) domain.MessageRef {
	return domain.MessageRef(fmt.Sprintf("%d:%s", chatID, messageID))
}

func decodeRef(ref domain.MessageRef) (tele.StoredMessage, error) {
	chat, id, ok := strings.Cut(string(ref), ":")
	if !ok || id == "" {
		return tele.StoredMessage{}, fmt.Errorf("invalid message ref %q", ref)
	}
	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		return tele.StoredMessage{}, fmt.Errorf("invalid message ref %q: %w", ref, err)
	}
	return tele.StoredMessage{MessageID: id, ChatID: chatID}, nil
}

// isNotModified reports Telegram's refusal to apply an edit that changes nothing
func isNotModified(err error) bool {
	return errors.Is(err, tele.ErrMessageNotModified) || errors.Is(err, tele.ErrSameMessageContent)
}

// renderMarkup builds a reply keyboard from the message options
func renderMarkup(msg domain.OutboundMessage) *tele.ReplyMarkup {
	if len(msg.Options) == 0 {
		return nil
	}

	markup := &tele.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: msg.RequestContact,
	}
	rows := make([]tele.Row, 0, len(msg.Options))
	for _, labels := range msg.Options {
		row := make(tele.Row, 0, len(labels))
		for _, label := range labels {
			if msg.RequestContact {
				row = append(row, markup.Contact(label))
			} else {
				row = append(row, markup.Text(label))
			}
		}
		rows = append(rows, row)
	}
	markup.Reply(rows...)
	return markup
}
