package features

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/storefront/internal/service"
	"github.com/Humphrey-He/storefront/internal/session"
	"github.com/Humphrey-He/storefront/pkg/checkout"
	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
	"github.com/Humphrey-He/storefront/pkg/filter"
	"github.com/Humphrey-He/storefront/pkg/loader"
	"github.com/Humphrey-He/storefront/pkg/money"
)

type storefrontTestContext struct {
	sessions  *session.Store
	svc       *service.StoreService
	sessionID string
	listed    []service.ProductView
	outcome   service.AddOutcome
	addErr    error
	order     *checkout.Order
	err       error
}

func (c *storefrontTestContext) reset() {
	if c.sessions != nil {
		_ = c.sessions.Close()
	}
	*c = storefrontTestContext{}
}

func (c *storefrontTestContext) theSampleCatalog(ctx context.Context) error {
	cat, err := loader.Sample().Load(ctx)
	if err != nil {
		return err
	}
	c.sessions = session.New(session.Config{CleanupInterval: -1}, nil)
	c.svc = service.NewStoreService(cat, c.sessions,
		service.WithFormatter(money.NewFormatter("en", "T")),
		service.WithSubmitter(checkout.SubmitterFunc(func(context.Context, *checkout.Order) error { return nil })),
	)
	return nil
}

func (c *storefrontTestContext) aNewCartSession() error {
	c.sessionID = c.svc.CreateCart()
	return nil
}

func (c *storefrontTestContext) iListProductsInCategorySortedBy(category, sortBy string) error {
	key, err := filter.ParseSortKey(sortBy)
	if err != nil {
		return err
	}
	c.listed = c.svc.ListProducts("", filter.Options{Categories: []string{category}, SortBy: key})
	return nil
}

func (c *storefrontTestContext) theProductIdsAre(want string) error {
	got := make([]string, len(c.listed))
	for i, p := range c.listed {
		got[i] = p.ID
	}
	if strings.Join(got, ",") != want {
		return fmt.Errorf("expected %s, got %s", want, strings.Join(got, ","))
	}
	return nil
}

func (c *storefrontTestContext) iAddToTheCart(productID string) error {
	c.outcome, c.addErr = c.svc.AddToCart(c.sessionID, productID)
	return nil
}

func (c *storefrontTestContext) iAddToTheCartTimes(productID string, times int) error {
	for i := 0; i < times; i++ {
		if _, err := c.svc.AddToCart(c.sessionID, productID); err != nil {
			return err
		}
	}
	return nil
}

func (c *storefrontTestContext) theOutcomeIs(want string) error {
	if c.addErr != nil {
		return fmt.Errorf("add failed: %w", c.addErr)
	}
	if c.outcome.Outcome != want {
		return fmt.Errorf("expected outcome %q, got %q", want, c.outcome.Outcome)
	}
	return nil
}

func (c *storefrontTestContext) theShopperIsAskedToCall(phone string) error {
	if c.outcome.Phone != phone {
		return fmt.Errorf("expected phone %q, got %q", phone, c.outcome.Phone)
	}
	return nil
}

func (c *storefrontTestContext) theLastAddFailedForInsufficientStock() error {
	if !storeerrors.IsStockExceeded(c.addErr) {
		return fmt.Errorf("expected a stock error, got %v", c.addErr)
	}
	return nil
}

func (c *storefrontTestContext) theCartHasLineWithItemsTotalling(lines, items int, total int64) error {
	view, err := c.svc.Cart(c.sessionID)
	if err != nil {
		return err
	}
	if len(view.Lines) != lines {
		return fmt.Errorf("expected %d lines, got %d", lines, len(view.Lines))
	}
	if view.Totals.Items != items {
		return fmt.Errorf("expected %d items, got %d", items, view.Totals.Items)
	}
	if !view.Totals.Price.Equal(decimal.NewFromInt(total)) {
		return fmt.Errorf("expected total %d, got %s", total, view.Totals.Price)
	}
	return nil
}

func (c *storefrontTestContext) theCartIsEmpty() error {
	view, err := c.svc.Cart(c.sessionID)
	if err != nil {
		return err
	}
	if len(view.Lines) != 0 {
		return fmt.Errorf("expected an empty cart, got %d lines", len(view.Lines))
	}
	return nil
}

func (c *storefrontTestContext) theQuoteIs(goods, shipping, final int64) error {
	view, err := c.svc.Cart(c.sessionID)
	if err != nil {
		return err
	}
	q := view.Quote
	if !q.Goods.Equal(decimal.NewFromInt(goods)) ||
		!q.Shipping.Equal(decimal.NewFromInt(shipping)) ||
		!q.Final.Equal(decimal.NewFromInt(final)) {
		return fmt.Errorf("expected %d/%d/%d, got %s/%s/%s", goods, shipping, final, q.Goods, q.Shipping, q.Final)
	}
	return nil
}

func (c *storefrontTestContext) iCheckOutWithFirstName(ctx context.Context, firstName string) error {
	c.order, c.err = c.svc.Checkout(ctx, c.sessionID, service.CheckoutRequest{
		Customer:      checkout.Customer{FirstName: firstName, LastName: "Karimi", Phone: "09120000000"},
		Shipping:      checkout.ShippingAddress{Address: "Valiasr 12", City: "Tehran"},
		PaymentMethod: checkout.PaymentCash,
	})
	return nil
}

func (c *storefrontTestContext) checkoutFailsOnField(field string) error {
	if c.err == nil {
		return fmt.Errorf("expected checkout to fail")
	}
	if got := storeerrors.FieldOf(c.err); got != field {
		return fmt.Errorf("expected field %q, got %q (%v)", field, got, c.err)
	}
	return nil
}

func (c *storefrontTestContext) anOrderIsPlacedWithFinalTotal(final int64) error {
	if c.err != nil {
		return c.err
	}
	if !c.order.FinalTotal().Equal(decimal.NewFromInt(final)) {
		return fmt.Errorf("expected final total %d, got %s", final, c.order.FinalTotal())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &storefrontTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the sample catalog$`, tc.theSampleCatalog)
	ctx.Step(`^a new cart session$`, tc.aNewCartSession)

	ctx.Step(`^I list products in category "([^"]*)" sorted by "([^"]*)"$`, tc.iListProductsInCategorySortedBy)
	ctx.Step(`^I add "([^"]*)" to the cart$`, tc.iAddToTheCart)
	ctx.Step(`^I add "([^"]*)" to the cart (\d+) times$`, tc.iAddToTheCartTimes)
	ctx.Step(`^I check out with first name "([^"]*)"$`, tc.iCheckOutWithFirstName)

	ctx.Step(`^the product ids are "([^"]*)"$`, tc.theProductIdsAre)
	ctx.Step(`^the outcome is "([^"]*)"$`, tc.theOutcomeIs)
	ctx.Step(`^the shopper is asked to call "([^"]*)"$`, tc.theShopperIsAskedToCall)
	ctx.Step(`^the last add failed for insufficient stock$`, tc.theLastAddFailedForInsufficientStock)
	ctx.Step(`^the cart has (\d+) lines? with (\d+) items totalling (\d+)$`, tc.theCartHasLineWithItemsTotalling)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the quote is goods (\d+) shipping (\d+) final (\d+)$`, tc.theQuoteIs)
	ctx.Step(`^checkout fails on field "([^"]*)"$`, tc.checkoutFailsOnField)
	ctx.Step(`^an order is placed with final total (\d+)$`, tc.anOrderIsPlacedWithFinalTotal)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"storefront.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
