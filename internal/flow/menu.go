package flow

import (
	"go.uber.org/zap"

	"healthbot/internal/domain"
)

// Main menu labels
const (
	MenuUploadReport    = "📤 Upload Report"
	MenuViewReports     = "📁 View Reports"
	MenuChatReports     = "💬 Chat with Reports"
	MenuFood            = "🍽 Best Food Near Me"
	MenuHospital        = "🏥 Get Me to Hospital"
	MenuAppointment     = "📅 Book Appointment"
	MenuOrderMedicines  = "💊 Order Medicines"
	SharePhoneLabel     = "📱 Share Phone Number"
	menuFallbackMessage = "Select from menu below 👇"
)

var mainMenuRows = [][]string{
	{MenuUploadReport, MenuViewReports},
	{MenuChatReports, MenuFood},
	{MenuHospital, MenuAppointment},
	{MenuOrderMedicines},
}

type menuEntry struct {
	label  string
	action func(t *turn) []domain.OutboundMessage
}

func (r *Router) menuEntries() []menuEntry {
	return []menuEntry{
		{label: MenuUploadReport, action: r.uploadPrompt},
		{label: MenuViewReports, action: r.viewReports},
		{label: MenuChatReports, action: r.enter(domain.StateChattingWithReports)},
		{label: MenuFood, action: r.foodNearMe},
		{label: MenuHospital, action: r.enter(domain.StateHospitalChoice)},
		{label: MenuAppointment, action: r.enter(domain.StateSpecialistChoice)},
		{label: MenuOrderMedicines, action: r.enter(domain.StateMedicineChoice)},
	}
}

func (r *Router) handleMenu(t *turn) []domain.OutboundMessage {
	entry, ok := r.registry.menuEntry(t.text)
	if !ok {
		return []domain.OutboundMessage{mainMenu(menuFallbackMessage)}
	}
	if !t.sess.Verified() {
		return []domain.OutboundMessage{askPhone("📱 Please verify your phone number first.")}
	}

	r.logger.Debug("Menu selected",
		zap.String("user_id", string(t.sess.UserID)),
		zap.String("label", entry.label),
	)
	return entry.action(t)
}

// enter starts a flow and drops any other flow in progress
func (r *Router) enter(first domain.State) func(t *turn) []domain.OutboundMessage {
	return func(t *turn) []domain.OutboundMessage {
		t.sess.Enter(first)
		return []domain.OutboundMessage{r.prompt(first, t.sess)}
	}
}

func (r *Router) foodNearMe(*turn) []domain.OutboundMessage {
	return []domain.OutboundMessage{mainMenu("🍽 Finding the best food options near you...\n\nThis feature is coming soon!")}
}

func mainMenu(text string) domain.OutboundMessage {
	return domain.OutboundMessage{Text: text, Options: mainMenuRows}
}

func askPhone(text string) domain.OutboundMessage {
	return domain.OutboundMessage{
		Text:           text,
		Options:        [][]string{{SharePhoneLabel}},
		RequestContact: true,
	}
}
