package domain

import "time"

// UserID identifies the owner of a session (chat id or phone number)
type UserID string

// Session holds the conversational context of one user.
// Every flow family keeps a single state field, so two steps of the same
// flow can never be active at once.
type Session struct {
	UserID UserID

	Auth        State
	Hospital    State
	Medicine    State
	Appointment State
	Reports     State

	// Scratch fields, owned by the flow that writes them
	SelectedHospital   string
	SelectedMedicine   string
	MedicineQuery      string
	MedicineOptions    []string
	SelectedSpecialist string
	SelectedDoctor     string

	AuthPhone    string
	AuthName     string
	PendingPhone string
	PendingName  string

	LastSeen time.Time
}

// NewSession creates an empty session with no active flow
func NewSession(userID UserID) *Session {
	return &Session{UserID: userID}
}

// Verified reports whether the user has completed phone verification
func (s *Session) Verified() bool {
	return s.AuthPhone != ""
}

// State returns the active state of a family
func (s *Session) State(f Family) State {
	switch f {
	case FamilyAuth:
		return s.Auth
	case FamilyHospital:
		return s.Hospital
	case FamilyMedicine:
		return s.Medicine
	case FamilyAppointment:
		return s.Appointment
	case FamilyReports:
		return s.Reports
	}
	return StateNone
}

func (s *Session) setState(f Family, st State) {
	switch f {
	case FamilyAuth:
		s.Auth = st
	case FamilyHospital:
		s.Hospital = st
	case FamilyMedicine:
		s.Medicine = st
	case FamilyAppointment:
		s.Appointment = st
	case FamilyReports:
		s.Reports = st
	}
}

// Set moves the state's family to st without touching other families
func (s *Session) Set(st State) {
	s.setState(st.Family(), st)
}

// Enter activates st and resets every other flow family.
// This is the only place where flows are isolated from each other.
func (s *Session) Enter(st State) {
	f := st.Family()
	for _, other := range flowFamilies {
		if other != f {
			s.Reset(other)
		}
	}
	s.setState(f, st)
}

// Reset clears the state and the scratch fields of a family
func (s *Session) Reset(f Family) {
	s.setState(f, StateNone)

	switch f {
	case FamilyAuth:
		s.PendingPhone = ""
		s.PendingName = ""
	case FamilyHospital:
		s.SelectedHospital = ""
	case FamilyMedicine:
		s.SelectedMedicine = ""
		s.MedicineQuery = ""
		s.MedicineOptions = nil
	case FamilyAppointment:
		s.SelectedSpecialist = ""
		s.SelectedDoctor = ""
	}
}

// ResetFlows clears every family entered from the main menu
func (s *Session) ResetFlows() {
	for _, f := range flowFamilies {
		s.Reset(f)
	}
}

// ActiveFamilies returns the families that currently have a state set
func (s *Session) ActiveFamilies() []Family {
	var active []Family
	for _, f := range Families {
		if s.State(f) != StateNone {
			active = append(active, f)
		}
	}
	return active
}

// Flags projects the session onto the flag names, one entry per known state
func (s *Session) Flags() map[string]bool {
	flags := make(map[string]bool, len(AllStates))
	for _, st := range AllStates {
		flags[string(st)] = s.State(st.Family()) == st
	}
	return flags
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	if s.MedicineOptions != nil {
		c.MedicineOptions = append([]string(nil), s.MedicineOptions...)
	}
	return &c
}
