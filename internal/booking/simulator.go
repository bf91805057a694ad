// Package booking simulates cab, pharmacy and appointment bookings.
// A booking streams a few progress steps and then synthesizes a confirmation
// from the catalog's candidate pools.
package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"healthbot/internal/catalog"
	"healthbot/internal/domain"
)

// ErrBookingFailed is returned when the progress sequence could not be completed
var ErrBookingFailed = errors.New("booking failed")

// Request describes one booking
type Request struct {
	Kind domain.BookingKind

	Hospital string
	Minutes  int

	Medicine string

	Doctor string
	Slot   string
}

// Simulator produces booking confirmations without any backend
type Simulator struct {
	cat *catalog.Catalog
	now func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures a Simulator
type Option func(*Simulator)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// WithRand overrides the randomness source
func WithRand(rnd *rand.Rand) Option {
	return func(s *Simulator) { s.rnd = rnd }
}

// NewSimulator creates a simulator over the catalog pools
func NewSimulator(cat *catalog.Catalog, opts ...Option) *Simulator {
	s := &Simulator{
		cat: cat,
		now: time.Now,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Steps returns the progress steps configured for a booking kind
func (s *Simulator) Steps(kind domain.BookingKind) []Step {
	src := s.cat.Progress[string(kind)]
	steps := make([]Step, 0, len(src))
	for _, st := range src {
		steps = append(steps, Step{Text: st.Text, Delay: st.Delay()})
	}
	return steps
}

// Simulate streams the progress steps through n and synthesizes the result
func (s *Simulator) Simulate(ctx context.Context, n Notifier, req Request) (domain.BookingResult, error) {
	for _, step := range s.Steps(req.Kind) {
		if err := n.Notify(ctx, step); err != nil {
			return domain.BookingResult{}, fmt.Errorf("%w: %v", ErrBookingFailed, err)
		}
	}

	switch req.Kind {
	case domain.BookingCab:
		return s.cab(req), nil
	case domain.BookingPharmacy:
		return s.pharmacy(req), nil
	case domain.BookingAppointment:
		return s.appointment(req), nil
	}
	return domain.BookingResult{}, fmt.Errorf("%w: unknown booking kind %q", ErrBookingFailed, req.Kind)
}

// cab always assigns the first driver in the pool
func (s *Simulator) cab(req Request) domain.BookingResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	driver := s.cat.Drivers[0]
	maps, ride := Links(req.Hospital, s.cat.City)

	return domain.BookingResult{
		Kind:           domain.BookingCab,
		ConfirmationID: fmt.Sprintf("CAB%06d", s.rnd.Intn(1000000)),
		Provider:       driver.Name,
		Vehicle:        driver.Vehicle,
		Plate:          driver.Plate,
		Contact:        driver.Phone,
		Fare:           driver.Fare,
		ETA:            time.Duration(driver.ETAMinutes) * time.Minute,
		ScheduledAt:    now.Add(time.Duration(req.Minutes) * time.Minute),
		MapsURL:        maps,
		RideURL:        ride,
	}
}

func (s *Simulator) pharmacy(req Request) domain.BookingResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	pharmacy := s.cat.Pharmacies[s.rnd.Intn(len(s.cat.Pharmacies))]
	return domain.BookingResult{
		Kind:           domain.BookingPharmacy,
		ConfirmationID: fmt.Sprintf("MED%06d", s.rnd.Intn(1000000)),
		Provider:       pharmacy.Name,
		ScheduledAt:    s.now(),
	}
}

// appointment lands one to three days ahead
func (s *Simulator) appointment(req Request) domain.BookingResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("APT%06d", s.rnd.Intn(1000000))
	days := 1 + s.rnd.Intn(3)
	return domain.BookingResult{
		Kind:           domain.BookingAppointment,
		ConfirmationID: id,
		Provider:       req.Doctor,
		ScheduledAt:    s.now().AddDate(0, 0, days),
		Slot:           req.Slot,
	}
}
