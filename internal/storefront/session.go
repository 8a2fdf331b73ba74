package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/scentshop/internal/cart"
	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/angelmondragon/scentshop/internal/notify"
	pkgerrors "github.com/angelmondragon/scentshop/pkg/errors"
	"github.com/angelmondragon/scentshop/pkg/enums"
	"github.com/angelmondragon/scentshop/pkg/logger"
	"github.com/angelmondragon/scentshop/pkg/metrics"
	"github.com/google/uuid"
)

const (
	msgSearchFailed = "Something went wrong while searching"
	msgGlobalFailed = "An error occurred. Please try again."
	defaultFailure  = "An error occurred"
)

// Params wires a Session.
type Params struct {
	Catalog *catalog.Catalog
	Center  *notify.Center
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
}

// Session is one storefront: search text, cart and notifications behind a
// single lock so that events run to completion one at a time.
type Session struct {
	mu      sync.Mutex
	id      uuid.UUID
	catalog *catalog.Catalog
	ledger  *cart.Ledger
	center  *notify.Center
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	status  Status
	search  string

	filter func(raw string, items []catalog.Item) []catalog.RankedItem
}

// NewSession builds a session with an empty cart.
func NewSession(p Params) (*Session, error) {
	if p.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	if p.Center == nil {
		p.Center = notify.NewCenter(notify.Options{Logger: p.Logger, Metrics: p.Metrics})
	}

	ledger, err := cart.NewLedger(cart.Params{
		Catalog:  p.Catalog,
		Notifier: p.Center,
		Logger:   p.Logger,
		Metrics:  p.Metrics,
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		id:      uuid.New(),
		catalog: p.Catalog,
		ledger:  ledger,
		center:  p.Center,
		logg:    p.Logger,
		metrics: p.Metrics,
		status:  normalStatus(),
		filter:  catalog.Filter,
	}, nil
}

func (s *Session) ID() string {
	return s.id.String()
}

func (s *Session) withSession(ctx context.Context) context.Context {
	return s.logg.WithSessionID(ctx, s.id.String())
}

func (s *Session) failedErrLocked() error {
	if !s.status.Failed() {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeAppFailed, "session failed").
		WithDetails(map[string]any{"message": s.status.Message})
}

// Search stores text as the current search and returns the ranked result.
// A failing derivation is reported once and degrades to an empty list.
func (s *Session) Search(ctx context.Context, text string) ([]catalog.RankedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failedErrLocked(); err != nil {
		return nil, err
	}
	s.search = text
	return s.deriveLocked(s.withSession(ctx)), nil
}

func (s *Session) deriveLocked(ctx context.Context) (results []catalog.RankedItem) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			s.logg.Error(s.logg.WithField(ctx, "search_text", s.search), "search.degraded", fmt.Errorf("panic: %v", rec))
			s.metrics.IncSearchDegraded()
			s.center.Error(ctx, msgSearchFailed)
			results = []catalog.RankedItem{}
		}
	}()

	results = s.filter(s.search, s.catalog.Items())
	s.metrics.ObserveSearch(len(catalog.ParseTerms(s.search)) > 0, time.Since(start), len(results))
	return results
}

func (s *Session) AddToCart(ctx context.Context, name string) (CartView, error) {
	return s.mutate(ctx, func(ctx context.Context) { s.ledger.AddItem(ctx, name) })
}

func (s *Session) RemoveFromCart(ctx context.Context, name string) (CartView, error) {
	return s.mutate(ctx, func(ctx context.Context) { s.ledger.RemoveItem(ctx, name) })
}

func (s *Session) UpdateQuantity(ctx context.Context, name string, quantity int) (CartView, error) {
	return s.mutate(ctx, func(ctx context.Context) { s.ledger.SetQuantity(ctx, name, quantity) })
}

func (s *Session) mutate(ctx context.Context, fn func(context.Context)) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failedErrLocked(); err != nil {
		return CartView{}, err
	}
	fn(s.withSession(ctx))
	return newCartView(s.ledger), nil
}

// Cart renders the current cart.
func (s *Session) Cart() (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failedErrLocked(); err != nil {
		return CartView{}, err
	}
	return newCartView(s.ledger), nil
}

// View returns the full visible state. Results are empty once the session failed.
func (s *Session) View(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := []catalog.RankedItem{}
	if !s.status.Failed() {
		results = s.deriveLocked(s.withSession(ctx))
	}
	return Snapshot{
		SessionID:     s.id.String(),
		Status:        s.status,
		SearchText:    s.search,
		Results:       results,
		Cart:          newCartView(s.ledger),
		Notifications: s.center.Active(),
	}
}

// Notifications drains the pending notifications.
func (s *Session) Notifications() []notify.Notification {
	return s.center.Drain()
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Fail is the global error handler. The first call moves the session to
// Failed and emits one notification; later calls are only logged.
func (s *Session) Fail(ctx context.Context, err error) {
	if err == nil {
		err = errors.New(defaultFailure)
	}
	ctx = s.withSession(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Failed() {
		s.logg.Error(ctx, "session.failed.again", err)
		return
	}

	message := err.Error()
	if message == "" {
		message = defaultFailure
	}
	s.status = Status{State: enums.AppStatusFailed, Message: message}
	s.logg.Error(s.logg.WithField(ctx, "dump", pkgerrors.Dump(err)), "session.failed", err)
	s.metrics.MarkSessionFailed()
	s.center.Error(ctx, msgGlobalFailed)
}

// Recover converts a recovered panic value into a global failure.
func (s *Session) Recover(ctx context.Context, recovered any) {
	switch v := recovered.(type) {
	case nil:
		return
	case error:
		s.Fail(ctx, v)
	case string:
		s.Fail(ctx, errors.New(v))
	default:
		s.Fail(ctx, fmt.Errorf("%v", v))
	}
}
