package domain

// Family groups the states of one flow
type Family string

const (
	FamilyAuth        Family = "auth"
	FamilyHospital    Family = "hospital"
	FamilyMedicine    Family = "medicine"
	FamilyAppointment Family = "appointment"
	FamilyReports     Family = "reports"
)

// State is one step inside a flow family.
// The string value matches the flag name the step was known by.
type State string

// StateNone means no state of the family is active
const StateNone State = ""

const (
	StateAwaitingPassword State = "awaiting_password"

	StateHospitalChoice State = "awaiting_hospital_choice"
	StateScheduleChoice State = "awaiting_schedule_choice"
	StateTimeChoice     State = "awaiting_time_choice"
	StateCustomTime     State = "awaiting_custom_time"

	StateMedicineChoice    State = "awaiting_medicine_choice"
	StateMedicineSearch    State = "awaiting_medicine_search"
	StateMedicineSelection State = "awaiting_medicine_selection"
	StateDeliveryChoice    State = "awaiting_delivery_choice"
	StateDeliverySchedule  State = "awaiting_delivery_schedule"

	StateSpecialistChoice State = "awaiting_specialist_choice"
	StateDoctorChoice     State = "awaiting_doctor_choice"
	StateAppointmentTime  State = "awaiting_appointment_time"

	StateChattingWithReports State = "chatting_with_reports"
)

var stateFamilies = map[State]Family{
	StateAwaitingPassword: FamilyAuth,

	StateHospitalChoice: FamilyHospital,
	StateScheduleChoice: FamilyHospital,
	StateTimeChoice:     FamilyHospital,
	StateCustomTime:     FamilyHospital,

	StateMedicineChoice:    FamilyMedicine,
	StateMedicineSearch:    FamilyMedicine,
	StateMedicineSelection: FamilyMedicine,
	StateDeliveryChoice:    FamilyMedicine,
	StateDeliverySchedule:  FamilyMedicine,

	StateSpecialistChoice: FamilyAppointment,
	StateDoctorChoice:     FamilyAppointment,
	StateAppointmentTime:  FamilyAppointment,

	StateChattingWithReports: FamilyReports,
}

// AllStates lists every known state in a stable order
var AllStates = []State{
	StateAwaitingPassword,
	StateHospitalChoice, StateScheduleChoice, StateTimeChoice, StateCustomTime,
	StateMedicineChoice, StateMedicineSearch, StateMedicineSelection, StateDeliveryChoice, StateDeliverySchedule,
	StateSpecialistChoice, StateDoctorChoice, StateAppointmentTime,
	StateChattingWithReports,
}

// Families lists every family, auth first
var Families = []Family{FamilyAuth, FamilyHospital, FamilyMedicine, FamilyAppointment, FamilyReports}

// flowFamilies are the families entered from the main menu
var flowFamilies = []Family{FamilyHospital, FamilyMedicine, FamilyAppointment, FamilyReports}

// Family returns the family the state belongs to, or "" for StateNone and unknown states
func (s State) Family() Family {
	return stateFamilies[s]
}

// Valid reports whether the state is a known state
func (s State) Valid() bool {
	_, ok := stateFamilies[s]
	return ok
}
