// Package service implements the storefront use cases on top of the core
// packages. It sits between the HTTP and CLI adapters and the catalog, cart,
// and checkout packages, and owns the mapping from session ids to ledgers.
//
// Package service 在核心包之上实现店面用例。
// 它位于HTTP和CLI适配器与目录、购物车、结账包之间，并负责会话ID到账本的映射。
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Humphrey-He/storefront/internal/metrics"
	"github.com/Humphrey-He/storefront/internal/session"
	"github.com/Humphrey-He/storefront/pkg/cart"
	"github.com/Humphrey-He/storefront/pkg/catalog"
	"github.com/Humphrey-He/storefront/pkg/checkout"
	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
	"github.com/Humphrey-He/storefront/pkg/filter"
	"github.com/Humphrey-He/storefront/pkg/money"
)

// DefaultContactPhone is given to shoppers for contact-priced products.
const DefaultContactPhone = "02188776655"

// CheckoutRequest is the shopper input for placing an order.
type CheckoutRequest struct {
	Customer      checkout.Customer        `json:"customer"`
	Shipping      checkout.ShippingAddress `json:"shipping"`
	PaymentMethod checkout.PaymentMethod   `json:"paymentMethod"`
}

// StoreService handles catalog browsing, carts and checkout.
//
// StoreService 处理目录浏览、购物车和结账。
type StoreService struct {
	catalog      *catalog.Catalog
	sessions     *session.Store
	engine       *filter.Engine
	assembler    *checkout.Assembler
	submitter    checkout.Submitter
	formatter    *money.Formatter
	contactPhone string
	metrics      *metrics.Metrics
	facets       Facets
	logger       *zap.Logger
}

// Option configures a StoreService.
type Option func(*StoreService)

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *StoreService) { s.logger = logger }
}

// WithEngine sets the filter engine.
func WithEngine(e *filter.Engine) Option {
	return func(s *StoreService) { s.engine = e }
}

// WithAssembler sets the order assembler.
func WithAssembler(a *checkout.Assembler) Option {
	return func(s *StoreService) { s.assembler = a }
}

// WithSubmitter sets where placed orders go.
func WithSubmitter(sub checkout.Submitter) Option {
	return func(s *StoreService) { s.submitter = sub }
}

// WithFormatter sets the price formatter.
func WithFormatter(f *money.Formatter) Option {
	return func(s *StoreService) { s.formatter = f }
}

// WithContactPhone sets the phone number returned for contact-priced products.
func WithContactPhone(phone string) Option {
	return func(s *StoreService) { s.contactPhone = phone }
}

// WithMetrics records cart and checkout activity in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *StoreService) { s.metrics = m }
}

// NewStoreService creates a StoreService.
//
// NewStoreService 创建StoreService。
//
// Parameters:
//   - c: The product catalog
//   - sessions: The cart session store
//   - opts: Optional collaborators
//
// Returns:
//   - *StoreService: A new service instance
func NewStoreService(c *catalog.Catalog, sessions *session.Store, opts ...Option) *StoreService {
	s := &StoreService{
		catalog:      c,
		sessions:     sessions,
		engine:       filter.New(),
		assembler:    checkout.NewAssembler(),
		formatter:    money.Default(),
		contactPhone: DefaultContactPhone,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.submitter == nil {
		s.submitter = checkout.NewLogSubmitter(s.logger)
	}
	s.facets = buildFacets(c)
	return s
}

// ContactPhone returns the phone number for contact-priced products.
func (s *StoreService) ContactPhone() string {
	return s.contactPhone
}

// ListProducts searches, filters and sorts the catalog.
func (s *StoreService) ListProducts(query string, opts filter.Options) []ProductView {
	products := s.engine.Apply(s.catalog.Products(), query, opts)
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = productView(p, s.formatter)
	}
	return out
}

// Product returns one product.
func (s *StoreService) Product(id string) (ProductView, error) {
	p, err := s.catalog.Product(id)
	if err != nil {
		return ProductView{}, err
	}
	return productView(p, s.formatter), nil
}

// Categories returns the catalog categories.
func (s *StoreService) Categories() []catalog.Category {
	return s.catalog.Categories()
}

// Facets returns the filter sidebar data for the whole catalog.
// It is computed once in NewStoreService; callers must not modify the
// returned slices or map.
func (s *StoreService) Facets() Facets {
	return s.facets
}

// PriceBounds returns the lowest and highest resolved price in the catalog.
func (s *StoreService) PriceBounds() filter.PriceRange {
	return s.facets.PriceBounds
}

func buildFacets(c *catalog.Catalog) Facets {
	products := c.Products()
	categories := c.Categories()
	bounds, ok := filter.PriceBounds(products)

	counts := make(map[string]int, len(categories))
	for id, group := range filter.GroupByCategory(products, categories) {
		counts[id] = len(group)
	}
	return Facets{
		Brands:        filter.Brands(products),
		PriceBounds:   bounds,
		HasPrices:     ok,
		Defaults:      filter.DefaultOptions(products),
		CategoryCount: counts,
		Categories:    categories,
	}
}

// CreateCart opens a new cart session and returns its id.
func (s *StoreService) CreateCart() string {
	id, _ := s.sessions.Create()
	s.logger.Debug("cart created", zap.String("session", id))
	return id
}

// Cart returns the cart of session id.
func (s *StoreService) Cart(sessionID string) (CartView, error) {
	ledger, err := s.sessions.Get(sessionID)
	if err != nil {
		return CartView{}, err
	}
	return s.cartView(sessionID, ledger), nil
}

// AddToCart adds one unit of productID to the cart of sessionID.
// Contact-priced products are not added; the outcome carries the contact phone.
//
// AddToCart 将一个单位的productID添加到sessionID的购物车。
// 询价商品不会被添加；结果中带有联系电话。
//
// Parameters:
//   - sessionID: The cart session
//   - productID: The product to add
//
// Returns:
//   - AddOutcome: What happened
//   - error: Not-found errors for the session or product, or a stock error
func (s *StoreService) AddToCart(sessionID, productID string) (AddOutcome, error) {
	ledger, err := s.sessions.Get(sessionID)
	if err != nil {
		return AddOutcome{}, err
	}
	p, err := s.catalog.Product(productID)
	if err != nil {
		return AddOutcome{}, err
	}

	res, err := ledger.Add(p)
	if err != nil {
		if storeerrors.IsStockExceeded(err) {
			s.metrics.RecordStockRejection()
		}
		s.logger.Info("add to cart rejected",
			zap.String("session", sessionID),
			zap.String("product", productID),
			zap.Error(err))
		return AddOutcome{}, err
	}

	out := AddOutcome{Outcome: res.Outcome.String()}
	s.metrics.RecordCartAdd(out.Outcome)
	if res.Outcome == cart.OutcomeContactRouted {
		out.Phone = s.contactPhone
		return out, nil
	}
	lv := lineView(res.Line, s.formatter)
	out.Line = &lv
	return out, nil
}

// UpdateCartItem sets the quantity of productID, clamped to its stock.
// A quantity of zero or less removes the line.
func (s *StoreService) UpdateCartItem(sessionID, productID string, qty int) (CartView, error) {
	ledger, err := s.sessions.Get(sessionID)
	if err != nil {
		return CartView{}, err
	}
	if _, ok := ledger.UpdateQuantity(productID, qty); !ok {
		return CartView{}, storeerrors.NewProductError(productID, storeerrors.ErrProductNotFound)
	}
	return s.cartView(sessionID, ledger), nil
}

// RemoveCartItem removes productID from the cart. Removing an absent line succeeds.
func (s *StoreService) RemoveCartItem(sessionID, productID string) (CartView, error) {
	ledger, err := s.sessions.Get(sessionID)
	if err != nil {
		return CartView{}, err
	}
	ledger.Remove(productID)
	return s.cartView(sessionID, ledger), nil
}

// Checkout assembles an order from the cart of sessionID, submits it and
// empties the cart. A failed validation leaves the cart unchanged.
//
// Checkout 从sessionID的购物车组装订单，提交订单并清空购物车。
// 验证失败时购物车保持不变。
//
// Parameters:
//   - ctx: Context for the submission
//   - sessionID: The cart session
//   - req: The shopper input
//
// Returns:
//   - *checkout.Order: The placed order
//   - error: A validation, not-found or submission error
func (s *StoreService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*checkout.Order, error) {
	ledger, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	// Adds and updates on this session wait until the order is submitted or rejected.
	var order *checkout.Order
	err = ledger.Drain(func(lines []cart.Line) error {
		o, err := s.assembler.Assemble(lines, req.Customer, req.Shipping, req.PaymentMethod)
		if err != nil {
			return err
		}
		if err := s.submitter.Submit(ctx, o); err != nil {
			return fmt.Errorf("submit order %s: %w", o.ID(), err)
		}
		order = o
		return nil
	})
	if err != nil {
		s.metrics.RecordOrderFailure()
		return nil, err
	}

	s.metrics.RecordOrder(order.FinalTotal())
	s.logger.Info("order placed",
		zap.String("session", sessionID),
		zap.String("order_id", order.ID()),
		zap.Stringer("final_total", order.FinalTotal()))
	return order, nil
}

// SessionStats returns the session store counters.
func (s *StoreService) SessionStats() session.Stats {
	return s.sessions.Stats()
}

func (s *StoreService) cartView(sessionID string, ledger *cart.Ledger) CartView {
	lines := ledger.Lines()
	views := make([]LineView, len(lines))
	for i, l := range lines {
		views[i] = lineView(l, s.formatter)
	}
	quote := s.assembler.Quote(lines)
	return CartView{
		SessionID:         sessionID,
		Lines:             views,
		Totals:            ledger.Totals(),
		Quote:             quote,
		FormattedTotal:    s.formatter.Format(quote.Goods),
		FormattedShipping: s.formatter.Format(quote.Shipping),
		FormattedFinal:    s.formatter.Format(quote.Final),
	}
}
