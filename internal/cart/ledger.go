package cart

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/angelmondragon/scentshop/internal/notify"
	pkgerrors "github.com/angelmondragon/scentshop/pkg/errors"
	"github.com/angelmondragon/scentshop/pkg/enums"
	"github.com/angelmondragon/scentshop/pkg/logger"
	"github.com/angelmondragon/scentshop/pkg/metrics"
	"github.com/shopspring/decimal"
)

const (
	msgAddFailed    = "Failed to add item to cart"
	msgRemoveFailed = "Failed to remove item from cart"
	msgUpdateFailed = "Failed to update quantity"
)

// ItemLookup resolves catalog items by name.
type ItemLookup interface {
	Lookup(name string) (catalog.Item, bool)
}

// Params wires the ledger collaborators.
type Params struct {
	Catalog  ItemLookup
	Notifier notify.Notifier
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
}

// Ledger is the ordered cart. Mutations never return errors: failures are
// logged, reported through the notifier and leave the lines untouched.
// A Ledger is not safe for concurrent use; callers serialize access.
type Ledger struct {
	lines    []Line
	catalog  ItemLookup
	notifier notify.Notifier
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewLedger builds an empty ledger backed by the provided collaborators.
func NewLedger(p Params) (*Ledger, error) {
	if p.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog lookup required")
	}
	if p.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	return &Ledger{
		lines:    []Line{},
		catalog:  p.Catalog,
		notifier: p.Notifier,
		logg:     p.Logger,
		metrics:  p.Metrics,
	}, nil
}

type mutation struct {
	lines   []Line
	outcome enums.OperationOutcome
	notice  string
}

// AddItem increments the line for name or appends a new one with quantity 1.
// Names missing from the catalog are ignored without a notification.
func (l *Ledger) AddItem(ctx context.Context, name string) {
	l.apply(ctx, enums.CartOperationAdd, name, msgAddFailed, func(lines []Line) (mutation, error) {
		item, ok := l.catalog.Lookup(name)
		if !ok {
			return mutation{lines: lines, outcome: enums.OperationOutcomeNoop}, nil
		}

		notice := fmt.Sprintf("Added %s to cart", name)
		if idx := indexOf(lines, name); idx >= 0 {
			if lines[idx].Quantity == math.MaxInt {
				return mutation{}, fmt.Errorf("quantity overflow for %q", name)
			}
			lines[idx].Quantity++
			return mutation{lines: lines, outcome: enums.OperationOutcomeSuccess, notice: notice}, nil
		}

		lines = append(lines, Line{
			Name:     item.Name,
			Price:    item.Price,
			Discount: item.Discount,
			Quantity: 1,
		})
		return mutation{lines: lines, outcome: enums.OperationOutcomeSuccess, notice: notice}, nil
	})
}

// RemoveItem deletes the line for name. The notification is emitted even when
// the line was not present.
func (l *Ledger) RemoveItem(ctx context.Context, name string) {
	l.apply(ctx, enums.CartOperationRemove, name, msgRemoveFailed, func(lines []Line) (mutation, error) {
		notice := fmt.Sprintf("Removed %s from cart", name)
		idx := indexOf(lines, name)
		if idx < 0 {
			return mutation{lines: lines, outcome: enums.OperationOutcomeNoop, notice: notice}, nil
		}
		return mutation{lines: slices.Delete(lines, idx, idx+1), outcome: enums.OperationOutcomeSuccess, notice: notice}, nil
	})
}

// SetQuantity replaces the quantity of an existing line. Zero behaves exactly
// like RemoveItem; a missing line is left absent. Quantities are not validated
// beyond the zero rule.
func (l *Ledger) SetQuantity(ctx context.Context, name string, quantity int) {
	if quantity == 0 {
		l.RemoveItem(ctx, name)
		return
	}
	l.apply(ctx, enums.CartOperationSetQuantity, name, msgUpdateFailed, func(lines []Line) (mutation, error) {
		idx := indexOf(lines, name)
		if idx < 0 {
			return mutation{lines: lines, outcome: enums.OperationOutcomeNoop}, nil
		}
		lines[idx].Quantity = quantity
		return mutation{lines: lines, outcome: enums.OperationOutcomeSuccess}, nil
	})
}

// apply runs fn on a copy of the lines and commits the copy only when fn
// neither fails nor panics.
func (l *Ledger) apply(ctx context.Context, op enums.CartOperation, name, failureMsg string, fn func([]Line) (mutation, error)) {
	ctx = l.logg.WithFields(l.logg.WithItemName(ctx, name), map[string]any{"operation": op.String()})

	result, err := l.run(fn)
	if err != nil {
		l.logg.Error(ctx, "cart.mutation.failed", err)
		l.metrics.IncCartOperation(op.String(), enums.OperationOutcomeFailure.String())
		l.notifier.Error(ctx, failureMsg)
		return
	}

	l.lines = result.lines
	l.metrics.IncCartOperation(op.String(), result.outcome.String())
	l.logg.Info(l.logg.WithField(ctx, "outcome", result.outcome.String()), "cart.mutation")
	if result.notice != "" {
		l.notifier.Success(ctx, result.notice)
	}
}

func (l *Ledger) run(fn func([]Line) (mutation, error)) (result mutation, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn(slices.Clone(l.lines))
}

// Lines returns a copy of the cart lines in insertion order.
func (l *Ledger) Lines() []Line {
	return slices.Clone(l.lines)
}

// Find returns the line for name, if present.
func (l *Ledger) Find(name string) (Line, bool) {
	if idx := indexOf(l.lines, name); idx >= 0 {
		return l.lines[idx], true
	}
	return Line{}, false
}

func (l *Ledger) Len() int {
	return len(l.lines)
}

// ItemCount sums the quantities of every line.
func (l *Ledger) ItemCount() int {
	total := 0
	for _, line := range l.lines {
		total += line.Quantity
	}
	return total
}

// Total sums the line subtotals.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func indexOf(lines []Line, name string) int {
	return slices.IndexFunc(lines, func(line Line) bool { return line.Name == name })
}
