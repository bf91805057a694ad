package flow

import (
	"fmt"
	"strings"

	"healthbot/internal/booking"
	"healthbot/internal/domain"
)

// Medicine flow labels
const (
	SearchMedicinesLabel  = "🔍 Search Medicines"
	PopularMedicinesLabel = "⭐ Popular Medicines"
	ExpressDeliveryLabel  = "⚡ Express Delivery (30 min)"
	StandardDeliveryLabel = "🚚 Standard Delivery (2-3 hours)"
	ScheduleDeliveryLabel = "📅 Schedule Delivery"
)

func (r *Router) medicineStates() []*StateDef {
	return []*StateDef{
		{
			State:  domain.StateMedicineChoice,
			Prompt: promptMedicineChoice,
			Handle: r.handleMedicineChoice,
		},
		{
			State:  domain.StateMedicineSearch,
			Prompt: promptMedicineSearch,
			Handle: r.handleMedicineSearch,
			Back:   backTo(domain.StateMedicineChoice),
		},
		{
			State:  domain.StateMedicineSelection,
			Prompt: r.promptMedicineSelection,
			Handle: r.handleMedicineSelection,
			// popular medicines skip the search step
			Back: func(s *domain.Session) domain.State {
				if s.MedicineQuery != "" {
					return domain.StateMedicineSearch
				}
				return domain.StateMedicineChoice
			},
			Leave: func(s *domain.Session) {
				s.MedicineQuery = ""
				s.MedicineOptions = nil
			},
		},
		{
			State:  domain.StateDeliveryChoice,
			Prompt: promptDeliveryChoice,
			Handle: r.handleDeliveryChoice,
			Back:   backTo(domain.StateMedicineSelection),
			Leave:  func(s *domain.Session) { s.SelectedMedicine = "" },
		},
		{
			State:  domain.StateDeliverySchedule,
			Prompt: promptDeliverySchedule,
			Handle: r.handleDeliverySchedule,
			Back:   backTo(domain.StateDeliveryChoice),
		},
	}
}

func promptMedicineChoice(*domain.Session) domain.OutboundMessage {
	return domain.OutboundMessage{
		Text:    "💊 Order Medicines\n\nHow would you like to find your medicine?",
		Options: withNav([][]string{{SearchMedicinesLabel}, {PopularMedicinesLabel}}, false),
	}
}

func (r *Router) handleMedicineChoice(t *turn) Transition {
	switch {
	case matches(t.text, SearchMedicinesLabel):
		return advance(domain.StateMedicineSearch)
	case matches(t.text, PopularMedicinesLabel):
		t.sess.MedicineQuery = ""
		t.sess.MedicineOptions = append([]string(nil), r.cat.Medicines.Popular...)
		return advance(domain.StateMedicineSelection)
	}
	return reject("❌ Please choose Search or Popular Medicines.")
}

func promptMedicineSearch(*domain.Session) domain.OutboundMessage {
	return domain.OutboundMessage{
		Text:    "🔍 Type the name of the medicine you are looking for:",
		Options: withNav(nil, true),
	}
}

func (r *Router) handleMedicineSearch(t *turn) Transition {
	if t.text == "" {
		return reject("❌ Please type a medicine name.")
	}

	// the query becomes part of button labels, keep it on one line
	query := strings.Join(strings.Fields(t.text), " ")
	options := make([]string, 0, len(r.cat.SearchVariants()))
	for _, v := range r.cat.SearchVariants() {
		options = append(options, query+" "+v.Strength)
	}
	t.sess.MedicineQuery = query
	t.sess.MedicineOptions = options
	return advance(domain.StateMedicineSelection)
}

func (r *Router) promptMedicineSelection(s *domain.Session) domain.OutboundMessage {
	var b strings.Builder
	if s.MedicineQuery != "" {
		fmt.Fprintf(&b, "🔎 Results for \"%s\":\n\n", s.MedicineQuery)
		for i, v := range r.cat.SearchVariants() {
			fmt.Fprintf(&b, "%d. 💊 %s %s — ₹%d\n", i+1, s.MedicineQuery, v.Strength, v.Price)
		}
		b.WriteString("\nSelect a medicine to continue:")
	} else {
		b.WriteString("⭐ Popular Medicines\n\nSelect a medicine to continue:")
	}
	return domain.OutboundMessage{
		Text:    b.String(),
		Options: withNav(rows(s.MedicineOptions, 1), true),
	}
}

func (r *Router) handleMedicineSelection(t *turn) Transition {
	if len(t.sess.MedicineOptions) == 0 {
		return r.restart(t, "medicine_options", domain.StateMedicineChoice)
	}
	medicine, ok := pick(t.sess.MedicineOptions, t.text)
	if !ok {
		return reject("❌ Please pick a medicine from the list.")
	}
	t.sess.SelectedMedicine = medicine
	return advance(domain.StateDeliveryChoice)
}

func promptDeliveryChoice(s *domain.Session) domain.OutboundMessage {
	return domain.OutboundMessage{
		Text: fmt.Sprintf("📦 %s\n\nHow should we deliver it?", s.SelectedMedicine),
		Options: withNav([][]string{
			{ExpressDeliveryLabel},
			{StandardDeliveryLabel},
			{ScheduleDeliveryLabel},
		}, true),
	}
}

func (r *Router) handleDeliveryChoice(t *turn) Transition {
	switch {
	case matches(t.text, ExpressDeliveryLabel):
		return r.orderMedicine(t, "Express (30 min)")
	case matches(t.text, StandardDeliveryLabel):
		return r.orderMedicine(t, "Standard (2-3 hours)")
	case matches(t.text, ScheduleDeliveryLabel):
		return advance(domain.StateDeliverySchedule)
	}
	return reject("❌ Please pick a delivery option.")
}

func promptDeliverySchedule(*domain.Session) domain.OutboundMessage {
	return domain.OutboundMessage{
		Text:    "📅 When should we deliver? Type a date and time (e.g. Tomorrow 6 PM):",
		Options: withNav(nil, true),
	}
}

// handleDeliverySchedule takes the time verbatim, it is only echoed back
func (r *Router) handleDeliverySchedule(t *turn) Transition {
	if t.text == "" {
		return reject("❌ Please type when we should deliver.")
	}
	return r.orderMedicine(t, "Scheduled for "+t.text)
}

func (r *Router) orderMedicine(t *turn, delivery string) Transition {
	medicine := t.sess.SelectedMedicine
	if medicine == "" {
		return r.restart(t, "selected_medicine", domain.StateMedicineChoice)
	}

	res, err := r.simulate(t, booking.Request{
		Kind:     domain.BookingPharmacy,
		Medicine: medicine,
	})
	if err != nil {
		return r.bookingFailed(t, domain.BookingPharmacy, err)
	}

	text := fmt.Sprintf("✅ Order Placed!\n\n"+
		"💊 Medicine: %s\n"+
		"🏪 Pharmacy: %s\n"+
		"🚚 Delivery: %s\n"+
		"🆔 Order ID: %s",
		medicine, res.Provider, delivery, res.ConfirmationID)
	return finish(mainMenu(text))
}
