package handler

import (
	"strconv"
	"strings"
	"unicode"

	tele "gopkg.in/telebot.v3"

	"healthbot/internal/domain"
)

const zeroWidthJoiner = '\u200d'

// cleanText drops non-printable characters, keeping line breaks and the
// joiner used by composed emoji such as "👨‍⚕️". Tabs become spaces.
func cleanText(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r == '\n' || r == zeroWidthJoiner || unicode.IsPrint(r):
			return r
		}
		return -1
	}, strings.TrimSpace(text))
}

// decodeEvent converts a Telegram message to an engine event.
// A contact that belongs to someone else is passed on without a phone number.
func decodeEvent(sender *tele.User, msg *tele.Message) (domain.InboundEvent, bool) {
	if sender == nil || msg == nil {
		return domain.InboundEvent{}, false
	}

	ev := domain.InboundEvent{
		UserID: domain.UserID(strconv.FormatInt(sender.ID, 10)),
		Text:   cleanText(msg.Text),
	}

	switch {
	case msg.Contact != nil:
		c := &domain.Contact{
			Name: strings.TrimSpace(msg.Contact.FirstName + " " + msg.Contact.LastName),
		}
		if msg.Contact.UserID == 0 || msg.Contact.UserID == sender.ID {
			c.Phone = msg.Contact.PhoneNumber
		}
		ev.Contact = c
	case msg.Document != nil:
		ev.Document = &domain.Document{
			FileID:   msg.Document.FileID,
			FileName: msg.Document.FileName,
			MIME:     msg.Document.MIME,
		}
	case msg.Photo != nil:
		ev.Document = &domain.Document{
			FileID: msg.Photo.FileID,
			MIME:   "image/jpeg",
		}
	}

	if ev.Text == "" && ev.Contact == nil && ev.Document == nil {
		return domain.InboundEvent{}, false
	}
	return ev, true
}
