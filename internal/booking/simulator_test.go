package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"healthbot/internal/domain"
	"healthbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(t *testing.T) *Simulator {
	return NewSimulator(testutil.NewTestCatalog(t),
		WithClock(testutil.Clock()),
		WithRand(testutil.NewTestRand()),
	)
}

func TestSimulator_CabUsesFirstDriver(t *testing.T) {
	sim := newTestSimulator(t)
	ch := &testutil.FakeChannel{}
	p := NewProgress(ch, 0, testutil.NewTestLogger())

	res, err := sim.Simulate(context.Background(), p, Request{
		Kind:     domain.BookingCab,
		Hospital: "Lilavati Hospital",
		Minutes:  45,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ramesh Yadav", res.Provider)
	assert.Equal(t, testutil.FixedNow.Add(45*time.Minute), res.ScheduledAt)
	assert.Contains(t, res.MapsURL, "Lilavati+Hospital%2C+Mumbai")
	assert.Regexp(t, `^CAB\d{6}$`, res.ConfirmationID)

	steps := sim.Steps(domain.BookingCab)
	assert.Len(t, ch.Sent(), 1)
	assert.Len(t, ch.Edits(), len(steps)-1)
}

func TestSimulator_CabIsDeterministic(t *testing.T) {
	ctx := context.Background()
	a, err := newTestSimulator(t).Simulate(ctx, NewProgress(&testutil.FakeChannel{}, 0, testutil.NewTestLogger()), Request{Kind: domain.BookingCab, Hospital: "X"})
	require.NoError(t, err)
	b, err := newTestSimulator(t).Simulate(ctx, NewProgress(&testutil.FakeChannel{}, 0, testutil.NewTestLogger()), Request{Kind: domain.BookingCab, Hospital: "X"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSimulator_CabIDsDifferWithinOneSecond(t *testing.T) {
	sim := newTestSimulator(t)
	ctx := context.Background()
	req := Request{Kind: domain.BookingCab, Hospital: "Lilavati Hospital"}

	a, err := sim.Simulate(ctx, NewProgress(&testutil.FakeChannel{}, 0, testutil.NewTestLogger()), req)
	require.NoError(t, err)
	b, err := sim.Simulate(ctx, NewProgress(&testutil.FakeChannel{}, 0, testutil.NewTestLogger()), req)
	require.NoError(t, err)

	assert.Equal(t, a.ScheduledAt, b.ScheduledAt, "same clock reading")
	assert.NotEqual(t, a.ConfirmationID, b.ConfirmationID)
	assert.Equal(t, a.Provider, b.Provider)
}

func TestSimulator_SeededRandomIsRepeatable(t *testing.T) {
	ctx := context.Background()
	req := Request{Kind: domain.BookingAppointment, Doctor: "Dr. Priya Mehta", Slot: "🕘 09:00 AM"}

	a, err := newTestSimulator(t).Simulate(ctx, NewProgress(&testutil.FakeChannel{}, 0, testutil.NewTestLogger()), req)
	require.NoError(t, err)
	b, err := newTestSimulator(t).Simulate(ctx, NewProgress(&testutil.FakeChannel{}, 0, testutil.NewTestLogger()), req)
	require.NoError(t, err)

	assert.Equal(t, a.ConfirmationID, b.ConfirmationID)
	assert.Equal(t, a.ScheduledAt, b.ScheduledAt)
	assert.True(t, strings.HasPrefix(a.ConfirmationID, "APT"))
	assert.Equal(t, "Dr. Priya Mehta", a.Provider)
	assert.Equal(t, "🕘 09:00 AM", a.Slot)
	assert.True(t, a.ScheduledAt.After(testutil.FixedNow))
}

func TestSimulator_Pharmacy(t *testing.T) {
	sim := newTestSimulator(t)
	cat := testutil.NewTestCatalog(t)

	res, err := sim.Simulate(context.Background(), NewProgress(&testutil.FakeChannel{}, 0, testutil.NewTestLogger()), Request{
		Kind:     domain.BookingPharmacy,
		Medicine: "Paracetamol 500mg",
	})
	require.NoError(t, err)

	names := make([]string, 0, len(cat.Pharmacies))
	for _, p := range cat.Pharmacies {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, res.Provider)
	assert.Len(t, res.ConfirmationID, len("MED000000"))
}

func TestSimulator_FailsWhenProgressFails(t *testing.T) {
	sim := newTestSimulator(t)
	ch := &testutil.FakeChannel{SendErr: errors.New("chat not found")}

	_, err := sim.Simulate(context.Background(), NewProgress(ch, 0, testutil.NewTestLogger()), Request{Kind: domain.BookingCab})
	assert.ErrorIs(t, err, ErrBookingFailed)
}

func TestSimulator_UnknownKind(t *testing.T) {
	sim := newTestSimulator(t)

	_, err := sim.Simulate(context.Background(), NewProgress(&testutil.FakeChannel{}, 0, testutil.NewTestLogger()), Request{Kind: "rocket"})
	assert.ErrorIs(t, err, ErrBookingFailed)
}

func TestLinks(t *testing.T) {
	maps, ride := Links("Hinduja Hospital", "Mumbai")

	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Hinduja+Hospital%2C+Mumbai", maps)
	assert.Equal(t, "https://m.uber.com/ul/?action=setPickup&dropoff[formatted_address]=Hinduja+Hospital%2C+Mumbai", ride)
}
