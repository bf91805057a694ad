package flow

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"healthbot/internal/domain"
)

func (r *Router) authStates() []*StateDef {
	return []*StateDef{
		{
			State:  domain.StateAwaitingPassword,
			Prompt: promptPassword,
			Handle: r.handlePassword,
		},
	}
}

func promptPassword(*domain.Session) domain.OutboundMessage {
	return domain.OutboundMessage{Text: "🔑 Please enter your password:"}
}

func (r *Router) start(t *turn) []domain.OutboundMessage {
	t.sess.ResetFlows()
	t.sess.Reset(domain.FamilyAuth)

	msgs := []domain.OutboundMessage{
		{Text: "👋 Welcome to Health Assistant Bot!"},
		{Text: "I can store and analyze your medical reports, order medicines, " +
			"book doctor appointments and get you to a hospital fast. 😇"},
	}
	if t.sess.Verified() {
		return append(msgs, mainMenu("🏠 Main Menu"))
	}
	return append(msgs, askPhone("First, please verify your phone number 👇"))
}

func (r *Router) handleContact(t *turn) []domain.OutboundMessage {
	phone := normalizePhone(t.ev.Contact.Phone)
	if phone == "" {
		return []domain.OutboundMessage{askPhone("❌ That contact has no phone number. Please share yours.")}
	}

	acct, err := r.auth.CheckAccount(t.ctx, phone)
	if err != nil {
		r.logger.Error("Failed to check account",
			zap.String("user_id", string(t.sess.UserID)),
			zap.Error(err),
		)
		return []domain.OutboundMessage{{Text: failureNotice}}
	}

	t.sess.ResetFlows()
	t.sess.Reset(domain.FamilyAuth)
	t.sess.AuthPhone, t.sess.AuthName = "", ""

	name := t.ev.Contact.Name
	if acct.Name != "" {
		name = acct.Name
	}

	if acct.Exists && !acct.RequiresPassword {
		r.verify(t.sess, phone, name)
		return onboarding(phone)
	}

	t.sess.PendingPhone = phone
	t.sess.PendingName = name
	t.sess.Set(domain.StateAwaitingPassword)

	greeting := "🆕 Looks like you're new here. Choose a password for your account."
	if acct.Exists {
		greeting = fmt.Sprintf("🔐 Welcome back, %s!", name)
	}
	return []domain.OutboundMessage{{Text: greeting}, promptPassword(t.sess)}
}

func (r *Router) handlePassword(t *turn) Transition {
	if t.text == "" {
		return reject("❌ Please type your password.")
	}
	if t.sess.PendingPhone == "" {
		r.logger.Warn("Inconsistent session: password pending without phone",
			zap.String("user_id", string(t.sess.UserID)),
		)
		return finish(askPhone("📱 Please share your phone number again."))
	}

	res, err := r.auth.Login(t.ctx, t.sess.PendingPhone, t.text, t.sess.PendingName)
	if err != nil {
		r.logger.Error("Login failed",
			zap.String("user_id", string(t.sess.UserID)),
			zap.Error(err),
		)
		return reject(failureNotice)
	}

	switch res.Status {
	case domain.LoginSuccess:
		phone := t.sess.PendingPhone
		name := t.sess.PendingName
		if res.Name != "" {
			name = res.Name
		}
		r.verify(t.sess, phone, name)
		return finish(onboarding(phone)...)
	case domain.LoginSaved:
		return stay(domain.StateAwaitingPassword, domain.OutboundMessage{Text: "✅ Your Data is Saved"})
	default:
		return reject("❌ Incorrect password. Please try again.")
	}
}

func (r *Router) verify(s *domain.Session, phone, name string) {
	s.AuthPhone = phone
	s.AuthName = name
	r.logger.Info("User verified",
		zap.String("user_id", string(s.UserID)),
	)
}

func onboarding(phone string) []domain.OutboundMessage {
	return []domain.OutboundMessage{
		{Text: fmt.Sprintf("👍 Phone number verified: %s\nSetup complete!", phone)},
		{Text: "Here is what I can do:\n\n" +
			"📤 Upload your medical reports and keep them in one place\n" +
			"💬 Ask questions about your reports\n" +
			"🏥 Get a cab to a hospital, now or later\n" +
			"📅 Book a doctor appointment\n" +
			"💊 Order medicines to your door"},
		mainMenu("👇 Choose an option below"),
	}
}

// normalizePhone keeps digits and a leading plus
func normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || b.String() == "+" {
		return ""
	}
	return b.String()
}
