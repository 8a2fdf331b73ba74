package storefront

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/angelmondragon/scentshop/internal/notify"
	pkgerrors "github.com/angelmondragon/scentshop/pkg/errors"
	"github.com/angelmondragon/scentshop/pkg/enums"
	"github.com/angelmondragon/scentshop/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	s, err := NewSession(Params{Catalog: cat})
	require.NoError(t, err)
	return s
}

func messages(ns []notify.Notification) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Message)
	}
	return out
}

func TestNewSessionRequiresCatalog(t *testing.T) {
	_, err := NewSession(Params{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestSearchRanksAndRemembersText(t *testing.T) {
	s := newTestSession(t)

	results, err := s.Search(context.Background(), "vainilla, almizcle")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Chanel No. 5", results[0].Name)
	assert.Equal(t, 2, results[0].MatchCount)
	assert.Equal(t, "Eternity for Women", results[1].Name)
	assert.Equal(t, "J'adore by Dior", results[2].Name)

	snap := s.View(context.Background())
	assert.Equal(t, "vainilla, almizcle", snap.SearchText)
	assert.Len(t, snap.Results, 3)
}

func TestSearchFailureDegradesToEmpty(t *testing.T) {
	reg := prometheus.NewRegistry()
	cat, err := catalog.Default()
	require.NoError(t, err)
	s, err := NewSession(Params{Catalog: cat, Metrics: metrics.NewStorefrontMetrics(reg)})
	require.NoError(t, err)
	s.filter = func(string, []catalog.Item) []catalog.RankedItem { panic("boom") }

	results, err := s.Search(context.Background(), "rosa")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Equal(t, []string{msgSearchFailed}, messages(s.Notifications()))
	assert.False(t, s.Status().Failed())
	assert.Equal(t, float64(1), gatheredValue(t, reg, "scentshop_search_degraded_total"))
}

func gatheredValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		m := mf.GetMetric()[0]
		if m.GetGauge() != nil {
			return m.GetGauge().GetValue()
		}
		return m.GetCounter().GetValue()
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestCartFlow(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "Acqua di Gio")
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "Acqua di Gio")
	require.NoError(t, err)
	view, err := s.UpdateQuantity(ctx, "Acqua di Gio", 3)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.Equal(t, "72.50", view.Lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "217.50", view.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, "217.50", view.Total.StringFixed(2))

	view, err = s.RemoveFromCart(ctx, "Acqua di Gio")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.NotNil(t, view.Lines)

	assert.Equal(t, []string{
		"Added Acqua di Gio to cart",
		"Added Acqua di Gio to cart",
		"Removed Acqua di Gio from cart",
	}, messages(s.Notifications()))
	assert.Empty(t, s.Notifications())
}

func TestFailIsOneWayAndBlocksOperations(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	_, err := s.AddToCart(ctx, "Chanel No. 5")
	require.NoError(t, err)
	s.Notifications()

	s.Fail(ctx, errors.New("render exploded"))
	s.Fail(ctx, errors.New("second"))

	status := s.Status()
	assert.Equal(t, enums.AppStatusFailed, status.State)
	assert.Equal(t, "render exploded", status.Message)
	assert.Equal(t, []string{msgGlobalFailed}, messages(s.Notifications()))

	_, err = s.Search(ctx, "rosa")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeAppFailed))
	_, err = s.AddToCart(ctx, "Chanel No. 5")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeAppFailed))
	_, err = s.RemoveFromCart(ctx, "Chanel No. 5")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeAppFailed))
	_, err = s.UpdateQuantity(ctx, "Chanel No. 5", 2)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeAppFailed))
	_, err = s.Cart()
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeAppFailed))

	snap := s.View(ctx)
	assert.True(t, snap.Status.Failed())
	assert.Empty(t, snap.Results)
	assert.Equal(t, 1, snap.Cart.ItemCount)
}

func TestRecoverConvertsPanicValues(t *testing.T) {
	s := newTestSession(t)
	s.Recover(context.Background(), nil)
	assert.False(t, s.Status().Failed())

	s.Recover(context.Background(), "nil map write")
	assert.Equal(t, Status{State: enums.AppStatusFailed, Message: "nil map write"}, s.Status())
}

func TestRecoverEmptyMessageUsesDefault(t *testing.T) {
	s := newTestSession(t)
	s.Recover(context.Background(), "")
	assert.Equal(t, defaultFailure, s.Status().Message)
}

func TestFailMarksGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	cat, err := catalog.Default()
	require.NoError(t, err)
	s, err := NewSession(Params{Catalog: cat, Metrics: metrics.NewStorefrontMetrics(reg)})
	require.NoError(t, err)

	s.Fail(context.Background(), nil)

	assert.Equal(t, float64(1), gatheredValue(t, reg, "scentshop_session_failed"))
	assert.Equal(t, defaultFailure, s.Status().Message)
}
