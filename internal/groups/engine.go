// Package groups is the transport-independent core API over the Group
// aggregate. Every mutation runs as lock(group) → load → mutate → versioned
// store → unlock, then publishes a domain event.
package groups

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Actor is the authenticated caller of an engine operation.
type Actor struct {
	UserID string
	Name   string
}

// Engine executes group operations against a store.
type Engine struct {
	store   storage.Store
	locks   *keyedMutex
	events  events.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
	codes   CodeGenerator
	recalc  models.RecalcMode
}

// Option configures an Engine.
type Option func(*Engine)

// WithEvents publishes domain events to p after each committed mutation.
func WithEvents(p events.Publisher) Option {
	return func(e *Engine) { e.events = p }
}

// WithMetrics records operation outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCodeGenerator overrides random code generation.
func WithCodeGenerator(g CodeGenerator) Option {
	return func(e *Engine) { e.codes = g }
}

// WithPreserveSettledDebts keeps settled debts across recalculation and
// counts them as payments.
func WithPreserveSettledDebts(preserve bool) Option {
	return func(e *Engine) {
		if preserve {
			e.recalc = models.RecalcPreserveSettled
		} else {
			e.recalc = models.RecalcDiscardSettled
		}
	}
}

// New creates an Engine over store.
func New(store storage.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		locks:  newKeyedMutex(),
		events: events.NopPublisher{},
		now:    func() time.Time { return time.Now().UTC() },
		codes:  RandomCode,
		recalc: models.RecalcDiscardSettled,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// mutate applies fn to the current version of the group under the group's
// lock and persists the result. Nothing is written if fn fails.
func (e *Engine) mutate(ctx context.Context, groupID string, fn func(g *models.Group) error) (*models.Group, error) {
	unlock := e.locks.Lock(groupID)
	defer unlock()

	g, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := fn(g); err != nil {
		return nil, err
	}

	g.UpdatedAt = e.now()
	if err := e.store.UpdateGroup(ctx, g); err != nil {
		if errors.Is(err, models.ErrVersionConflict) {
			e.metrics.VersionConflict()
		}
		return nil, err
	}
	return g, nil
}

// view loads a group and checks that actor may read it.
func (e *Engine) view(ctx context.Context, actor Actor, groupID string) (*models.Group, error) {
	g, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(g, actor); err != nil {
		return nil, err
	}
	return g, nil
}

// observe records the outcome of operation op and passes err through.
func (e *Engine) observe(op string, err error) error {
	outcome := "ok"
	if err != nil {
		outcome = models.KindOf(err).String()
	}
	e.metrics.ObserveOperation(op, outcome)
	return err
}

// publish sends a domain event. Failures are logged and counted only.
func (e *Engine) publish(ctx context.Context, t events.Type, g *models.Group, actor Actor, data map[string]any) {
	ev := events.Event{
		Type:      t,
		GroupID:   g.ID,
		ActorID:   actor.UserID,
		Version:   g.Version,
		Timestamp: e.now(),
		Data:      data,
	}
	err := e.events.Publish(ctx, ev)
	e.metrics.EventPublished(string(t), err)
	if err != nil {
		slog.WarnContext(ctx, "Failed to publish event", "type", t, "group_id", g.ID, "error", err)
	}
}

// linkUser and unlinkUser maintain the user's group list. The group document
// is the source of truth, so failures are logged rather than returned.
func (e *Engine) linkUser(ctx context.Context, userID, groupID string) {
	if err := e.store.AddGroupToUser(ctx, userID, groupID); err != nil {
		slog.WarnContext(ctx, "Failed to add group to user", "user_id", userID, "group_id", groupID, "error", err)
	}
}

func (e *Engine) unlinkUser(ctx context.Context, userID, groupID string) {
	if err := e.store.RemoveGroupFromUser(ctx, userID, groupID); err != nil {
		slog.WarnContext(ctx, "Failed to remove group from user", "user_id", userID, "group_id", groupID, "error", err)
	}
}

func requireMember(g *models.Group, actor Actor) error {
	if !g.IsActiveMember(actor.UserID) {
		return models.ErrNotAMember
	}
	return nil
}

func requireAdmin(g *models.Group, actor Actor) error {
	if err := requireMember(g, actor); err != nil {
		return err
	}
	if !g.IsAdmin(actor.UserID) {
		return models.ErrForbidden
	}
	return nil
}

func requireDeleter(g *models.Group, actor Actor) error {
	if err := requireMember(g, actor); err != nil {
		return err
	}
	if actor.UserID == g.OwnerID {
		return nil
	}
	if !g.IsActiveMember(g.OwnerID) && g.IsAdmin(actor.UserID) {
		return nil
	}
	return fmt.Errorf("%w: only the owner can delete the group", models.ErrForbidden)
}
