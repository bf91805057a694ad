package flow

import (
	"fmt"

	"healthbot/internal/booking"
	"healthbot/internal/domain"
)

// AppointmentDateLayout formats the appointment day
const AppointmentDateLayout = "Mon, 02 Jan 2006"

func (r *Router) appointmentStates() []*StateDef {
	return []*StateDef{
		{
			State:  domain.StateSpecialistChoice,
			Prompt: r.promptSpecialistChoice,
			Handle: r.handleSpecialistChoice,
		},
		{
			State:  domain.StateDoctorChoice,
			Prompt: r.promptDoctorChoice,
			Handle: r.handleDoctorChoice,
			Back:   backTo(domain.StateSpecialistChoice),
			Leave:  func(s *domain.Session) { s.SelectedSpecialist = "" },
		},
		{
			State:  domain.StateAppointmentTime,
			Prompt: r.promptAppointmentTime,
			Handle: r.handleAppointmentTime,
			Back:   backTo(domain.StateDoctorChoice),
			Leave:  func(s *domain.Session) { s.SelectedDoctor = "" },
		},
	}
}

func (r *Router) promptSpecialistChoice(*domain.Session) domain.OutboundMessage {
	labels := make([]string, 0, len(r.cat.Specialists))
	for _, s := range r.cat.Specialists {
		labels = append(labels, s.Label)
	}
	return domain.OutboundMessage{
		Text:    "📅 Book Appointment\n\nWhich specialist do you need?",
		Options: withNav(rows(labels, 2), false),
	}
}

func (r *Router) handleSpecialistChoice(t *turn) Transition {
	sp, ok := r.cat.Specialist(t.text)
	if !ok {
		return reject("❌ Please pick a specialist from the list.")
	}
	t.sess.SelectedSpecialist = sp.Label
	return advance(domain.StateDoctorChoice)
}

func (r *Router) promptDoctorChoice(s *domain.Session) domain.OutboundMessage {
	sp, _ := r.cat.Specialist(s.SelectedSpecialist)
	return domain.OutboundMessage{
		Text:    fmt.Sprintf("%s\n\nChoose a doctor:", s.SelectedSpecialist),
		Options: withNav(rows(sp.Doctors, 1), true),
	}
}

func (r *Router) handleDoctorChoice(t *turn) Transition {
	if t.sess.SelectedSpecialist == "" {
		return r.restart(t, "selected_specialist", domain.StateSpecialistChoice)
	}
	doctor, ok := r.cat.Doctor(t.sess.SelectedSpecialist, t.text)
	if !ok {
		return reject("❌ Please pick one of the listed doctors.")
	}
	t.sess.SelectedDoctor = doctor
	return advance(domain.StateAppointmentTime)
}

func (r *Router) promptAppointmentTime(s *domain.Session) domain.OutboundMessage {
	return domain.OutboundMessage{
		Text:    fmt.Sprintf("👨‍⚕️ %s\n\nPick a time slot:", s.SelectedDoctor),
		Options: withNav(rows(r.cat.TimeSlots, 2), true),
	}
}

func (r *Router) handleAppointmentTime(t *turn) Transition {
	if t.sess.SelectedDoctor == "" || t.sess.SelectedSpecialist == "" {
		return r.restart(t, "selected_doctor", domain.StateSpecialistChoice)
	}
	slot, ok := r.cat.TimeSlot(t.text)
	if !ok {
		return reject("❌ Please pick a time slot from the list.")
	}

	res, err := r.simulate(t, booking.Request{
		Kind:   domain.BookingAppointment,
		Doctor: t.sess.SelectedDoctor,
		Slot:   slot,
	})
	if err != nil {
		return r.bookingFailed(t, domain.BookingAppointment, err)
	}

	text := fmt.Sprintf("✅ Appointment Confirmed!\n\n"+
		"🆔 Appointment ID: %s\n"+
		"👨‍⚕️ Doctor: %s\n"+
		"🏥 Specialty: %s\n"+
		"📅 Date: %s\n"+
		"🕐 Time: %s",
		res.ConfirmationID, t.sess.SelectedDoctor, t.sess.SelectedSpecialist,
		res.ScheduledAt.Format(AppointmentDateLayout), res.Slot)
	return finish(mainMenu(text))
}
