package flow

import (
	"fmt"

	"healthbot/internal/domain"
)

// StateDef describes one step of a flow
type StateDef struct {
	State domain.State
	// Prompt renders what the user sees when the state is shown
	Prompt func(s *domain.Session) domain.OutboundMessage
	Handle func(t *turn) Transition
	// Back returns the preceding state. Nil marks the first state of a flow.
	Back func(s *domain.Session) domain.State
	// Leave clears the scratch fields this state collected
	Leave func(s *domain.Session)
}

// Flow is a named family of states
type Flow struct {
	Family domain.Family
	Name   string
	States []*StateDef
}

// dispatchOrder is the priority in which active states claim an event.
// The password state always wins so a pending login can never be bypassed.
var dispatchOrder = []domain.State{
	domain.StateAwaitingPassword,

	domain.StateDeliverySchedule,
	domain.StateMedicineSearch,
	domain.StateDeliveryChoice,
	domain.StateMedicineSelection,
	domain.StateMedicineChoice,

	domain.StateAppointmentTime,
	domain.StateDoctorChoice,
	domain.StateSpecialistChoice,

	domain.StateCustomTime,
	domain.StateTimeChoice,
	domain.StateScheduleChoice,
	domain.StateHospitalChoice,

	domain.StateChattingWithReports,
}

// Registry is the static table of flows, built once at startup
type Registry struct {
	flows  []Flow
	states map[domain.State]*StateDef
	order  []domain.State
	menu   []menuEntry
}

func newRegistry(flows []Flow, menu []menuEntry) (*Registry, error) {
	reg := &Registry{
		flows:  flows,
		states: make(map[domain.State]*StateDef),
		order:  dispatchOrder,
		menu:   menu,
	}

	for _, f := range flows {
		for _, def := range f.States {
			if def.State.Family() != f.Family {
				return nil, fmt.Errorf("state %q does not belong to flow %s", def.State, f.Name)
			}
			if _, dup := reg.states[def.State]; dup {
				return nil, fmt.Errorf("state %q registered twice", def.State)
			}
			if def.Prompt == nil || def.Handle == nil {
				return nil, fmt.Errorf("state %q has no prompt or handler", def.State)
			}
			reg.states[def.State] = def
		}
	}

	for _, st := range reg.order {
		if _, ok := reg.states[st]; !ok {
			return nil, fmt.Errorf("state %q has no definition", st)
		}
	}
	if len(reg.order) != len(reg.states) {
		return nil, fmt.Errorf("dispatch order covers %d of %d states", len(reg.order), len(reg.states))
	}

	return reg, nil
}

// Flows returns the registered flows
func (reg *Registry) Flows() []Flow {
	return reg.flows
}

// Lookup returns the definition of a state
func (reg *Registry) Lookup(st domain.State) (*StateDef, bool) {
	def, ok := reg.states[st]
	return def, ok
}

// Order returns the dispatch priority
func (reg *Registry) Order() []domain.State {
	return append([]domain.State(nil), reg.order...)
}

// route picks the highest priority active state
func (reg *Registry) route(s *domain.Session) (*StateDef, bool) {
	for _, st := range reg.order {
		if s.State(st.Family()) == st {
			return reg.states[st], true
		}
	}
	return nil, false
}

func (reg *Registry) menuEntry(text string) (menuEntry, bool) {
	for _, e := range reg.menu {
		if matches(text, e.label) {
			return e, true
		}
	}
	return menuEntry{}, false
}

func backTo(st domain.State) func(*domain.Session) domain.State {
	return func(*domain.Session) domain.State { return st }
}
