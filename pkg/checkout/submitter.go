package checkout

import (
	"context"

	"go.uber.org/zap"
)

// Submitter hands an assembled order to a fulfilment sink.
type Submitter interface {
	Submit(ctx context.Context, order *Order) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, order *Order) error

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, order *Order) error {
	return f(ctx, order)
}

// LogSubmitter records orders in the structured log and accepts them.
type LogSubmitter struct {
	logger *zap.Logger
}

// NewLogSubmitter creates a LogSubmitter. A nil logger discards output.
func NewLogSubmitter(logger *zap.Logger) *LogSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSubmitter{logger: logger}
}

// Submit logs the order.
func (s *LogSubmitter) Submit(ctx context.Context, order *Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Info("order submitted",
		zap.String("order_id", order.ID()),
		zap.String("payment_method", string(order.PaymentMethod())),
		zap.Int("lines", len(order.items)),
		zap.Stringer("goods_total", order.GoodsTotal()),
		zap.Stringer("shipping_cost", order.ShippingCost()),
		zap.Stringer("final_total", order.FinalTotal()),
		zap.Any("order", order),
	)
	return nil
}
