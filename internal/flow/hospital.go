package flow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"healthbot/internal/booking"
	"healthbot/internal/catalog"
	"healthbot/internal/domain"
)

// Hospital flow labels
const (
	BookNowLabel       = "🚨 Book Now"
	ScheduleLaterLabel = "⏰ Schedule for Later"
	CustomTimeLabel    = "✏️ Custom time"
)

// PickupTimeLayout formats scheduled pickups, e.g. "03:45 PM"
const PickupTimeLayout = "03:04 PM"

func (r *Router) hospitalStates() []*StateDef {
	return []*StateDef{
		{
			State:  domain.StateHospitalChoice,
			Prompt: r.promptHospitalChoice,
			Handle: r.handleHospitalChoice,
		},
		{
			State:  domain.StateScheduleChoice,
			Prompt: promptScheduleChoice,
			Handle: r.handleScheduleChoice,
			Back:   backTo(domain.StateHospitalChoice),
			Leave:  func(s *domain.Session) { s.SelectedHospital = "" },
		},
		{
			State:  domain.StateTimeChoice,
			Prompt: r.promptTimeChoice,
			Handle: r.handleTimeChoice,
			Back:   backTo(domain.StateScheduleChoice),
		},
		{
			State:  domain.StateCustomTime,
			Prompt: promptCustomTime,
			Handle: r.handleCustomTime,
			Back:   backTo(domain.StateTimeChoice),
		},
	}
}

func (r *Router) promptHospitalChoice(*domain.Session) domain.OutboundMessage {
	labels := make([]string, 0, len(r.cat.Hospitals))
	for _, h := range r.cat.Hospitals {
		labels = append(labels, h.Label())
	}
	return domain.OutboundMessage{
		Text:    "🏥 Get Me to Hospital\n\nWhich hospital should we take you to?",
		Options: withNav(rows(labels, 1), false),
	}
}

func (r *Router) handleHospitalChoice(t *turn) Transition {
	h, ok := r.cat.HospitalByLabel(t.text)
	if !ok {
		return reject("❌ Please pick a hospital from the list.")
	}
	t.sess.SelectedHospital = h.Name
	return advance(domain.StateScheduleChoice)
}

func promptScheduleChoice(s *domain.Session) domain.OutboundMessage {
	return domain.OutboundMessage{
		Text:    fmt.Sprintf("🚕 Ride to %s\n\nWhen do you need the cab?", s.SelectedHospital),
		Options: withNav([][]string{{BookNowLabel}, {ScheduleLaterLabel}}, true),
	}
}

func (r *Router) handleScheduleChoice(t *turn) Transition {
	switch {
	case matches(t.text, BookNowLabel):
		return r.bookCab(t, 0)
	case matches(t.text, ScheduleLaterLabel):
		return advance(domain.StateTimeChoice)
	}
	return reject("❌ Please choose Book Now or Schedule for Later.")
}

func (r *Router) promptTimeChoice(*domain.Session) domain.OutboundMessage {
	labels := make([]string, 0, len(r.cat.Delays))
	for _, d := range r.cat.Delays {
		labels = append(labels, d.Label)
	}
	options := append(rows(labels, 2), []string{CustomTimeLabel})
	return domain.OutboundMessage{
		Text:    "⏰ When should the cab pick you up?",
		Options: withNav(options, true),
	}
}

func (r *Router) handleTimeChoice(t *turn) Transition {
	if matches(t.text, CustomTimeLabel) {
		return advance(domain.StateCustomTime)
	}
	d, ok := r.cat.DelayByLabel(t.text)
	if !ok {
		return reject("❌ Please pick a time from the list.")
	}
	return r.bookCab(t, d.Minutes)
}

func promptCustomTime(*domain.Session) domain.OutboundMessage {
	return domain.OutboundMessage{
		Text:    fmt.Sprintf("✏️ In how many minutes should the cab pick you up? (1-%d)", catalog.MinutesPerDay),
		Options: withNav(nil, true),
	}
}

func (r *Router) handleCustomTime(t *turn) Transition {
	minutes, err := strconv.Atoi(t.text)
	if err != nil || minutes < 1 || minutes > catalog.MinutesPerDay {
		return reject(fmt.Sprintf("❌ Please enter a number of minutes between 1 and %d.", catalog.MinutesPerDay))
	}
	return r.bookCab(t, minutes)
}

// bookCab books a ride now when minutes is 0, otherwise schedules it
func (r *Router) bookCab(t *turn, minutes int) Transition {
	hospital := t.sess.SelectedHospital
	if hospital == "" {
		return r.restart(t, "selected_hospital", domain.StateHospitalChoice)
	}

	res, err := r.simulate(t, booking.Request{
		Kind:     domain.BookingCab,
		Hospital: hospital,
		Minutes:  minutes,
	})
	if err != nil {
		return r.bookingFailed(t, domain.BookingCab, err)
	}

	return finish(mainMenu(cabConfirmation(hospital, minutes, res)))
}

func cabConfirmation(hospital string, minutes int, res domain.BookingResult) string {
	var b strings.Builder
	if minutes == 0 {
		b.WriteString("✅ Cab Booked!\n\n")
	} else {
		b.WriteString("✅ Cab Scheduled!\n\n")
	}
	fmt.Fprintf(&b, "🏥 Hospital: %s\n", hospital)
	if minutes == 0 {
		fmt.Fprintf(&b, "⏱ Arriving in: %d min\n", int(res.ETA/time.Minute))
	} else {
		fmt.Fprintf(&b, "🕒 Pickup Time: %s (in %d min)\n", res.ScheduledAt.Format(PickupTimeLayout), minutes)
	}
	fmt.Fprintf(&b, "🚗 Driver: %s\n", res.Provider)
	fmt.Fprintf(&b, "🚘 Vehicle: %s (%s)\n", res.Vehicle, res.Plate)
	fmt.Fprintf(&b, "📞 Contact: %s\n", res.Contact)
	fmt.Fprintf(&b, "💰 Fare: ₹%d\n", res.Fare)
	fmt.Fprintf(&b, "🆔 Booking ID: %s\n\n", res.ConfirmationID)
	fmt.Fprintf(&b, "🗺 Directions: %s\n", res.MapsURL)
	fmt.Fprintf(&b, "🚕 Track ride: %s", res.RideURL)
	return b.String()
}
