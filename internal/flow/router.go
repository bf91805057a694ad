package flow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"healthbot/internal/booking"
	"healthbot/internal/catalog"
	"healthbot/internal/domain"
	"healthbot/internal/session"
)

// CommandStart resets the conversation
const CommandStart = "/start"

const failureNotice = "⚠️ Something went wrong. Please try again."

// Router turns inbound events into replies and session changes
type Router struct {
	store    session.Store
	locks    *session.Locker
	cat      *catalog.Catalog
	auth     AuthProvider
	commands Commands
	booker   Booker
	logger   *zap.Logger

	registry      *Registry
	progressScale float64
	now           func() time.Time
}

// Option configures a Router
type Option func(*Router)

// WithProgressScale multiplies progress delays, 0 disables them
func WithProgressScale(scale float64) Option {
	return func(r *Router) { r.progressScale = scale }
}

// WithClock overrides the time source used for LastSeen
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

func NewRouter(
	store session.Store,
	cat *catalog.Catalog,
	auth AuthProvider,
	commands Commands,
	booker Booker,
	logger *zap.Logger,
	opts ...Option,
) (*Router, error) {
	r := &Router{
		store:         store,
		locks:         session.NewLocker(),
		cat:           cat,
		auth:          auth,
		commands:      commands,
		booker:        booker,
		logger:        logger,
		progressScale: 1,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	flows := []Flow{
		{Family: domain.FamilyAuth, Name: "authentication", States: r.authStates()},
		{Family: domain.FamilyHospital, Name: "hospital-cab", States: r.hospitalStates()},
		{Family: domain.FamilyMedicine, Name: "medicine-order", States: r.medicineStates()},
		{Family: domain.FamilyAppointment, Name: "appointment-booking", States: r.appointmentStates()},
		{Family: domain.FamilyReports, Name: "reports-chat", States: r.reportStates()},
	}
	reg, err := newRegistry(flows, r.menuEntries())
	if err != nil {
		return nil, fmt.Errorf("failed to build flow registry: %w", err)
	}
	r.registry = reg

	return r, nil
}

// Registry exposes the flow table
func (r *Router) Registry() *Registry {
	return r.registry
}

// Handle processes one event for one user. Events of the same user are
// serialized. Progress messages of a booking go through ch as they happen,
// the returned messages are the final replies.
func (r *Router) Handle(ctx context.Context, ev domain.InboundEvent, ch booking.Channel) ([]domain.OutboundMessage, error) {
	unlock := r.locks.Lock(ev.UserID)
	defer unlock()

	sess, err := r.store.Get(ctx, ev.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if ch == nil {
		ch = discardChannel{}
	}
	t := &turn{
		ctx:  ctx,
		sess: sess,
		ev:   ev,
		ch:   ch,
		text: strings.TrimSpace(ev.Text),
	}

	msgs := r.dispatch(t)

	sess.LastSeen = r.now()
	if err := r.store.Save(ctx, sess); err != nil {
		return msgs, fmt.Errorf("failed to save session: %w", err)
	}

	return msgs, nil
}

func (r *Router) dispatch(t *turn) []domain.OutboundMessage {
	if t.text == CommandStart {
		return r.start(t)
	}
	if t.ev.Contact != nil {
		return r.handleContact(t)
	}

	if active := t.sess.ActiveFamilies(); len(active) > 1 {
		r.logger.Warn("Inconsistent session: several flows active",
			zap.String("user_id", string(t.sess.UserID)),
			zap.Any("families", active),
		)
	}

	if t.ev.Document != nil && t.sess.Auth == domain.StateNone {
		return r.handleDocument(t)
	}

	if def, ok := r.registry.route(t.sess); ok {
		r.logger.Debug("Routing to state",
			zap.String("user_id", string(t.sess.UserID)),
			zap.String("state", string(def.State)),
		)
		return r.runState(t, def)
	}

	return r.handleMenu(t)
}

func (r *Router) runState(t *turn, def *StateDef) []domain.OutboundMessage {
	family := def.State.Family()

	if family != domain.FamilyAuth {
		switch t.text {
		case MainMenuToken:
			t.sess.Reset(family)
			return []domain.OutboundMessage{mainMenu("🏠 Main Menu")}
		case BackToken:
			if def.Back != nil {
				prev := def.Back(t.sess)
				if def.Leave != nil {
					def.Leave(t.sess)
				}
				t.sess.Set(prev)
				return []domain.OutboundMessage{r.prompt(prev, t.sess)}
			}
		}
	}

	tr := def.Handle(t)
	if !tr.Accepted {
		return append(tr.Messages, def.Prompt(t.sess))
	}

	if tr.Next == domain.StateNone {
		t.sess.Reset(family)
		return tr.Messages
	}

	t.sess.Set(tr.Next)
	if tr.Next == def.State {
		return tr.Messages
	}
	return append(tr.Messages, r.prompt(tr.Next, t.sess))
}

func (r *Router) prompt(st domain.State, s *domain.Session) domain.OutboundMessage {
	def, ok := r.registry.Lookup(st)
	if !ok {
		return mainMenu("Select from menu below 👇")
	}
	return def.Prompt(s)
}

// restart recovers from a scratch field that was never set
func (r *Router) restart(t *turn, field string, first domain.State) Transition {
	r.logger.Warn("Inconsistent session: missing field",
		zap.String("user_id", string(t.sess.UserID)),
		zap.String("field", field),
	)
	t.sess.Reset(first.Family())
	return Transition{
		Accepted: true,
		Next:     first,
		Messages: []domain.OutboundMessage{{Text: "⚠️ Let's start over."}},
	}
}

func (r *Router) simulate(t *turn, req booking.Request) (domain.BookingResult, error) {
	progress := booking.NewProgress(t.ch, r.progressScale, r.logger)
	return r.booker.Simulate(t.ctx, progress, req)
}

func (r *Router) bookingFailed(t *turn, kind domain.BookingKind, err error) Transition {
	r.logger.Error("Booking failed",
		zap.String("user_id", string(t.sess.UserID)),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	return reject("⚠️ We couldn't complete your booking. Please try again.")
}
