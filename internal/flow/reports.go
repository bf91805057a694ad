package flow

import (
	"go.uber.org/zap"

	"healthbot/internal/domain"
)

func (r *Router) reportStates() []*StateDef {
	return []*StateDef{
		{
			State:  domain.StateChattingWithReports,
			Prompt: promptChat,
			Handle: r.handleChat,
		},
	}
}

func promptChat(*domain.Session) domain.OutboundMessage {
	return domain.OutboundMessage{
		Text:    "💬 Ask me anything about your reports.\n\nTap 🏠 Main Menu when you're done.",
		Options: [][]string{{MainMenuToken}},
	}
}

func (r *Router) handleChat(t *turn) Transition {
	if t.text == "" {
		return reject("❌ Please type your question.")
	}

	res, err := r.commands.AskReports(t.ctx, t.sess.AuthPhone, t.text)
	if err != nil {
		r.logger.Error("Failed to ask reports",
			zap.String("user_id", string(t.sess.UserID)),
			zap.Error(err),
		)
		return stay(domain.StateChattingWithReports, domain.OutboundMessage{
			Text:    failureNotice,
			Options: [][]string{{MainMenuToken}},
		})
	}

	return stay(domain.StateChattingWithReports, domain.OutboundMessage{
		Text:    res.Payload,
		Options: [][]string{{MainMenuToken}},
	})
}

func (r *Router) uploadPrompt(*turn) []domain.OutboundMessage {
	return []domain.OutboundMessage{
		mainMenu("📤 Send your report as a PDF or photo and I'll save it for you."),
	}
}

func (r *Router) viewReports(t *turn) []domain.OutboundMessage {
	res, err := r.commands.ListReports(t.ctx, t.sess.AuthPhone)
	if err != nil {
		r.logger.Error("Failed to list reports",
			zap.String("user_id", string(t.sess.UserID)),
			zap.Error(err),
		)
		return []domain.OutboundMessage{mainMenu(failureNotice)}
	}
	return []domain.OutboundMessage{mainMenu(res.Payload)}
}

// handleDocument stores an uploaded file without touching flow state
func (r *Router) handleDocument(t *turn) []domain.OutboundMessage {
	if !t.sess.Verified() {
		return []domain.OutboundMessage{askPhone("📱 Please verify your phone number before uploading reports.")}
	}

	res, err := r.commands.UploadReport(t.ctx, t.sess.AuthPhone, *t.ev.Document)
	if err != nil {
		r.logger.Error("Failed to upload report",
			zap.String("user_id", string(t.sess.UserID)),
			zap.Error(err),
		)
		return []domain.OutboundMessage{{Text: failureNotice}}
	}
	return []domain.OutboundMessage{{Text: res.Payload}}
}
