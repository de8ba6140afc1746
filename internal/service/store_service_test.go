package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humphrey-He/storefront/internal/metrics"
	"github.com/Humphrey-He/storefront/internal/session"
	"github.com/Humphrey-He/storefront/pkg/checkout"
	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
	"github.com/Humphrey-He/storefront/pkg/filter"
	"github.com/Humphrey-He/storefront/pkg/loader"
	"github.com/Humphrey-He/storefront/pkg/money"
)

func newTestService(t *testing.T, opts ...Option) *StoreService {
	t.Helper()
	c, err := loader.Sample().Load(context.Background())
	require.NoError(t, err)

	sessions := session.New(session.Config{CleanupInterval: -1}, nil)
	t.Cleanup(func() { _ = sessions.Close() })

	opts = append([]Option{WithFormatter(money.NewFormatter("en", "T"))}, opts...)
	return NewStoreService(c, sessions, opts...)
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		Customer:      checkout.Customer{FirstName: "Ali", LastName: "Rezaei", Phone: "0912"},
		Shipping:      checkout.ShippingAddress{Address: "Street 1", City: "Tehran"},
		PaymentMethod: checkout.PaymentCash,
	}
}

func TestListProducts(t *testing.T) {
	s := newTestService(t)

	all := s.ListProducts("", filter.Options{SortBy: filter.SortByName})
	assert.Len(t, all, 10)

	fans := s.ListProducts("", filter.Options{Categories: []string{"fans"}, SortBy: filter.SortByPriceDesc})
	require.Len(t, fans, 3)
	assert.Equal(t, "fan-centrifugal-9", fans[0].ID)
	assert.Equal(t, "4,900,000 T", fans[0].FormattedPrice)
	assert.Equal(t, "fan-axial-50", fans[1].ID)
	assert.Equal(t, "800,000 T", fans[1].FormattedSavings)
}

func TestProductLookup(t *testing.T) {
	s := newTestService(t)

	p, err := s.Product("pkg-30000")
	require.NoError(t, err)
	assert.True(t, p.IsContactPrice)
	assert.Empty(t, p.FormattedPrice)

	_, err = s.Product("missing")
	assert.True(t, storeerrors.IsNotFound(err))
}

func TestFacets(t *testing.T) {
	s := newTestService(t)
	f := s.Facets()
	assert.True(t, f.HasPrices)
	assert.True(t, f.PriceBounds.Min.Equal(decimal.NewFromInt(450000)))
	assert.True(t, f.PriceBounds.Max.Equal(decimal.NewFromInt(64800000)))
	assert.Equal(t, map[string]int{"packages": 4, "fans": 3, "motors": 3}, f.CategoryCount)
	assert.Len(t, f.Brands, 5)

	assert.Equal(t, f.PriceBounds, s.PriceBounds())
	assert.Equal(t, 0, filter.Options{SortBy: filter.SortByName, PriceRange: &f.PriceBounds}.ActiveCount(s.PriceBounds()))
}

func TestCartFlow(t *testing.T) {
	s := newTestService(t)
	id := s.CreateCart()

	out, err := s.AddToCart(id, "motor-1hp")
	require.NoError(t, err)
	assert.Equal(t, "added", out.Outcome)

	out, err = s.AddToCart(id, "motor-1hp")
	require.NoError(t, err)
	assert.Equal(t, "incremented", out.Outcome)
	assert.Equal(t, 2, out.Line.Quantity)

	view, err := s.UpdateCartItem(id, "motor-1hp", 99)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Lines[0].Quantity)
	assert.True(t, view.Quote.Shipping.IsZero())

	_, err = s.UpdateCartItem(id, "pump-water", 1)
	assert.ErrorIs(t, err, storeerrors.ErrProductNotFound)

	view, err = s.RemoveCartItem(id, "motor-1hp")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, "0 T", view.FormattedTotal)
}

func TestAddContactPricedReturnsPhone(t *testing.T) {
	s := newTestService(t, WithContactPhone("021-1"))
	id := s.CreateCart()

	out, err := s.AddToCart(id, "motor-3phase-custom")
	require.NoError(t, err)
	assert.Equal(t, "contact", out.Outcome)
	assert.Equal(t, "021-1", out.Phone)
	assert.Nil(t, out.Line)

	view, err := s.Cart(id)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestAddErrors(t *testing.T) {
	s := newTestService(t)
	id := s.CreateCart()

	_, err := s.AddToCart("nope", "motor-1hp")
	assert.ErrorIs(t, err, storeerrors.ErrSessionNotFound)

	_, err = s.AddToCart(id, "nope")
	assert.ErrorIs(t, err, storeerrors.ErrProductNotFound)

	_, err = s.AddToCart(id, "pkg-3500")
	assert.True(t, storeerrors.IsStockExceeded(err))
}

func TestCheckoutClearsCart(t *testing.T) {
	var submitted *checkout.Order
	s := newTestService(t, WithSubmitter(checkout.SubmitterFunc(func(_ context.Context, o *checkout.Order) error {
		submitted = o
		return nil
	})), WithAssembler(checkout.NewAssembler(checkout.WithClock(func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}))))
	id := s.CreateCart()

	_, err := s.AddToCart(id, "fan-blade-set")
	require.NoError(t, err)
	_, err = s.AddToCart(id, "fan-blade-set")
	require.NoError(t, err)

	order, err := s.Checkout(context.Background(), id, validRequest())
	require.NoError(t, err)
	assert.Same(t, order, submitted)
	assert.True(t, order.GoodsTotal().Equal(decimal.NewFromInt(1700000)))
	assert.True(t, order.FinalTotal().Equal(decimal.NewFromInt(2000000)))

	view, err := s.Cart(id)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCheckoutFailuresKeepCart(t *testing.T) {
	boom := errors.New("sink down")
	s := newTestService(t, WithSubmitter(checkout.SubmitterFunc(func(context.Context, *checkout.Order) error {
		return boom
	})))
	id := s.CreateCart()
	_, err := s.AddToCart(id, "pump-water")
	require.NoError(t, err)

	req := validRequest()
	req.Customer.FirstName = ""
	_, err = s.Checkout(context.Background(), id, req)
	assert.Equal(t, "firstName", storeerrors.FieldOf(err))

	_, err = s.Checkout(context.Background(), id, validRequest())
	assert.ErrorIs(t, err, boom)

	view, err := s.Cart(id)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

func TestMetricsRecorded(t *testing.T) {
	m := metrics.New(metrics.Basic)
	s := newTestService(t, WithMetrics(m), WithSubmitter(checkout.SubmitterFunc(func(context.Context, *checkout.Order) error {
		return nil
	})))
	id := s.CreateCart()

	_, _ = s.AddToCart(id, "pump-water")
	_, _ = s.AddToCart(id, "pump-water")
	_, _ = s.AddToCart(id, "pkg-30000")
	_, _ = s.AddToCart(id, "pkg-3500")

	req := validRequest()
	req.PaymentMethod = "cheque"
	_, err := s.Checkout(context.Background(), id, req)
	require.Error(t, err)
	_, err = s.Checkout(context.Background(), id, validRequest())
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.CartAdded)
	assert.Equal(t, uint64(1), snap.CartIncrements)
	assert.Equal(t, uint64(1), snap.ContactRouted)
	assert.Equal(t, uint64(1), snap.StockRejected)
	assert.Equal(t, uint64(1), snap.OrderFailures)
	assert.Equal(t, uint64(1), snap.Orders)
	assert.True(t, snap.OrderValue.Equal(decimal.NewFromInt(1200000)))
}

func TestCheckoutSerializesConcurrentAdds(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	s := newTestService(t, WithSubmitter(checkout.SubmitterFunc(func(context.Context, *checkout.Order) error {
		close(entered)
		<-release
		return nil
	})))
	id := s.CreateCart()
	_, err := s.AddToCart(id, "fan-axial-50")
	require.NoError(t, err)

	type result struct {
		order *checkout.Order
		err   error
	}
	done := make(chan result, 1)
	go func() {
		o, err := s.Checkout(context.Background(), id, validRequest())
		done <- result{o, err}
	}()
	<-entered

	added := make(chan error, 1)
	go func() {
		_, err := s.AddToCart(id, "fan-centrifugal-9")
		added <- err
	}()
	select {
	case <-added:
		t.Fatal("add completed while the order was being submitted")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)

	res := <-done
	require.NoError(t, res.err)
	require.NoError(t, <-added)

	items := res.order.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fan-axial-50", items[0].ProductID)

	view, err := s.Cart(id)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "fan-centrifugal-9", view.Lines[0].ProductID)
}
