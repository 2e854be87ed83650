package email

import (
	"context"
	"log/slog"

	"github.com/utafrali/bookshop/internal/domain"
)

// LogSender is a Sender that writes the confirmation to the log instead of
// delivering mail. It always succeeds.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-backed confirmation sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Name returns the sender name.
func (s *LogSender) Name() string {
	return "log"
}

// SendOrderConfirmation logs the confirmation details.
func (s *LogSender) SendOrderConfirmation(ctx context.Context, recipient string, order *domain.Order) error {
	s.logger.InfoContext(ctx, "order confirmation sent",
		slog.String("recipient", recipient),
		slog.String("order_id", order.ID),
		slog.Int("items", order.TotalItems()),
		slog.Float64("total", order.Total),
	)
	return nil
}
