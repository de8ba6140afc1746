// Package cart implements the per-session cart ledger.
// A Ledger keeps product lines in insertion order and enforces that every line
// holds between one and its stock snapshot units.
//
// Package cart 实现每个会话的购物车账本。
// Ledger 按插入顺序保存商品行，并保证每一行的数量介于1和其库存快照之间。
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/storefront/pkg/catalog"
	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
)

// Outcome describes what an Add call did.
type Outcome int

const (
	// OutcomeAdded means a new line was created with quantity 1.
	OutcomeAdded Outcome = iota
	// OutcomeIncremented means an existing line grew by one unit.
	OutcomeIncremented
	// OutcomeContactRouted means the product has no price and the shopper
	// must be sent to the contact channel. The ledger is unchanged.
	OutcomeContactRouted
)

// String returns the outcome name used on the wire.
func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeIncremented:
		return "incremented"
	case OutcomeContactRouted:
		return "contact"
	default:
		return "unknown"
	}
}

// AddResult reports the effect of Add.
type AddResult struct {
	Outcome Outcome
	Line    Line // The line after the mutation; zero for OutcomeContactRouted
}

// Line is one product entry in a cart. Name, Brand, Image, UnitPrice and Stock
// are snapshots taken when the line was created.
//
// Line 是购物车中的一个商品条目。Name、Brand、Image、UnitPrice和Stock
// 是创建该行时获取的快照。
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Image     string          `json:"image,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
}

// Subtotal returns UnitPrice × Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals is the derived summary of a ledger.
type Totals struct {
	Items int             `json:"items"`
	Price decimal.Decimal `json:"price"`
}

// Ledger is a cart owned by one session.
// All methods are safe for concurrent use.
//
// Ledger 是一个会话拥有的购物车。
// 所有方法都可以安全地并发使用。
type Ledger struct {
	mu    sync.Mutex
	lines map[string]*Line
	order []string
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{lines: make(map[string]*Line)}
}

// Add puts one unit of p into the cart.
//
// Add 将一个单位的p放入购物车。
//
// Parameters:
//   - p: The product to add, as currently found in the catalog
//
// Returns:
//   - AddResult: What happened; OutcomeContactRouted leaves the cart untouched
//   - error: A *errors.StockError when the stock ceiling is already reached
func (l *Ledger) Add(p catalog.Product) (AddResult, error) {
	if p.IsContactPrice() {
		return AddResult{Outcome: OutcomeContactRouted}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if line, ok := l.lines[p.ID]; ok {
		ceiling := min(line.Stock, p.Stock)
		if line.Quantity >= ceiling {
			return AddResult{}, storeerrors.NewStockError(p.ID, ceiling)
		}
		line.Quantity++
		return AddResult{Outcome: OutcomeIncremented, Line: *line}, nil
	}

	if p.Stock < 1 {
		return AddResult{}, storeerrors.NewStockError(p.ID, p.Stock)
	}
	price, _ := p.ResolvedPrice()
	line := &Line{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Image:     p.Image,
		UnitPrice: price,
		Quantity:  1,
		Stock:     p.Stock,
	}
	l.lines[p.ID] = line
	l.order = append(l.order, p.ID)
	return AddResult{Outcome: OutcomeAdded, Line: *line}, nil
}

// UpdateQuantity sets the quantity of line id, clamped to [0, line.Stock].
// A resulting quantity of 0 removes the line.
//
// UpdateQuantity 设置id行的数量，限制在[0, line.Stock]范围内。
// 结果数量为0时删除该行。
//
// Parameters:
//   - id: The product id of the line
//   - qty: The requested quantity
//
// Returns:
//   - Line: The updated line; zero when removed or absent
//   - bool: false when no line with id exists
func (l *Ledger) UpdateQuantity(id string, qty int) (Line, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line, ok := l.lines[id]
	if !ok {
		return Line{}, false
	}
	qty = max(0, min(qty, line.Stock))
	if qty == 0 {
		l.removeLocked(id)
		return Line{}, true
	}
	line.Quantity = qty
	return *line, true
}

// Remove deletes line id. Removing an absent line is a no-op.
func (l *Ledger) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeLocked(id)
}

func (l *Ledger) removeLocked(id string) {
	if _, ok := l.lines[id]; !ok {
		return
	}
	delete(l.lines, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Totals sums quantities and subtotals over all lines.
func (l *Ledger) Totals() Totals {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := Totals{Price: decimal.Zero}
	for _, id := range l.order {
		line := l.lines[id]
		t.Items += line.Quantity
		t.Price = t.Price.Add(line.Subtotal())
	}
	return t
}

// Lines returns a copy of the lines in insertion order.
func (l *Ledger) Lines() []Line {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Line, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.lines[id])
	}
	return out
}

// Line returns the line for id.
func (l *Ledger) Line(id string) (Line, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line, ok := l.lines[id]
	if !ok {
		return Line{}, false
	}
	return *line, true
}

// Len returns the number of distinct lines.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// Drain hands a copy of the lines to fn while holding the ledger lock and
// empties the ledger only when fn succeeds. Other mutations of the same ledger
// wait until fn returns, so nothing added meanwhile is lost. fn must not call
// back into the ledger.
//
// Drain 在持有账本锁的情况下将行的副本交给fn，仅当fn成功时清空账本。
// 对同一账本的其他修改会等待fn返回，因此期间添加的内容不会丢失。
// fn不得回调账本。
//
// Parameters:
//   - fn: Receives the current lines in insertion order
//
// Returns:
//   - error: The error returned by fn; the ledger is unchanged in that case
func (l *Ledger) Drain(fn func(lines []Line) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := make([]Line, 0, len(l.order))
	for _, id := range l.order {
		lines = append(lines, *l.lines[id])
	}
	if err := fn(lines); err != nil {
		return err
	}
	l.lines = make(map[string]*Line)
	l.order = nil
	return nil
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = make(map[string]*Line)
	l.order = nil
}
