package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Family(t *testing.T) {
	tests := []struct {
		state    State
		expected Family
	}{
		{StateAwaitingPassword, FamilyAuth},
		{StateCustomTime, FamilyHospital},
		{StateDeliverySchedule, FamilyMedicine},
		{StateDoctorChoice, FamilyAppointment},
		{StateChattingWithReports, FamilyReports},
		{StateNone, ""},
		{State("awaiting_nothing"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.Family())
		})
	}
}

func TestSession_EnterClearsOtherFamilies(t *testing.T) {
	s := NewSession("42")
	s.Hospital = StateCustomTime
	s.SelectedHospital = "Lilavati Hospital"
	s.Medicine = StateDeliveryChoice
	s.SelectedMedicine = "Paracetamol 500mg"
	s.MedicineOptions = []string{"a", "b"}
	s.Reports = StateChattingWithReports

	s.Enter(StateSpecialistChoice)

	assert.Equal(t, StateSpecialistChoice, s.Appointment)
	assert.Equal(t, StateNone, s.Hospital)
	assert.Equal(t, StateNone, s.Medicine)
	assert.Equal(t, StateNone, s.Reports)
	assert.Empty(t, s.SelectedHospital)
	assert.Empty(t, s.SelectedMedicine)
	assert.Nil(t, s.MedicineOptions)
	assert.Equal(t, []Family{FamilyAppointment}, s.ActiveFamilies())
}

func TestSession_EnterKeepsAuth(t *testing.T) {
	s := NewSession("42")
	s.AuthPhone = "+919800000000"
	s.Auth = StateAwaitingPassword

	s.Enter(StateHospitalChoice)

	assert.Equal(t, StateAwaitingPassword, s.Auth)
	assert.Equal(t, "+919800000000", s.AuthPhone)
}

func TestSession_SetStaysInFamily(t *testing.T) {
	s := NewSession("42")
	s.Enter(StateHospitalChoice)
	s.Set(StateScheduleChoice)

	assert.Equal(t, StateScheduleChoice, s.Hospital)
	assert.Len(t, s.ActiveFamilies(), 1)
}

func TestSession_ResetClearsScratch(t *testing.T) {
	s := NewSession("42")
	s.Appointment = StateAppointmentTime
	s.SelectedSpecialist = "❤️ Cardiologist"
	s.SelectedDoctor = "Dr. Priya Mehta"
	s.Auth = StateAwaitingPassword
	s.PendingPhone = "+91"

	s.Reset(FamilyAppointment)
	s.Reset(FamilyAuth)

	assert.Equal(t, StateNone, s.Appointment)
	assert.Empty(t, s.SelectedSpecialist)
	assert.Empty(t, s.SelectedDoctor)
	assert.Equal(t, StateNone, s.Auth)
	assert.Empty(t, s.PendingPhone)
}

func TestSession_Flags(t *testing.T) {
	s := NewSession("42")
	s.Enter(StateTimeChoice)

	flags := s.Flags()

	assert.Len(t, flags, len(AllStates))
	assert.True(t, flags["awaiting_time_choice"])
	for name, set := range flags {
		if name != "awaiting_time_choice" {
			assert.False(t, set, name)
		}
	}
}

func TestSession_Clone(t *testing.T) {
	s := NewSession("42")
	s.MedicineOptions = []string{"Paracetamol 250mg"}

	c := s.Clone()
	c.MedicineOptions[0] = "changed"
	c.AuthPhone = "+91"

	assert.Equal(t, "Paracetamol 250mg", s.MedicineOptions[0])
	assert.Empty(t, s.AuthPhone)
}
