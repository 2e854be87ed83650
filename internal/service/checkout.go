package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/bookshop/internal/domain"
	"github.com/utafrali/bookshop/internal/email"
	"github.com/utafrali/bookshop/internal/event"
	"github.com/utafrali/bookshop/internal/payment"
	"github.com/utafrali/bookshop/internal/repository"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// CheckoutInput holds the checkout form fields. UserEmail is the signed-in
// account resolved from the session, empty for anonymous shoppers; Email is
// the contact address typed into the form and the two may differ.
type CheckoutInput struct {
	Name          string
	Email         string
	UserEmail     string
	Address       string
	City          string
	ZipCode       string
	PaymentMethod string
	CardNumber    string
	ExpiryDate    string
	CVV           string
	DiscountCode  string
}

// CheckoutResult is the outcome of a successful checkout. DiscountMessage is
// non-empty when a discount code was submitted, whether it matched or not.
type CheckoutResult struct {
	Order           *domain.Order
	DiscountMessage string
}

// CheckoutService orchestrates the purchase flow: validation, discount
// lookup, payment authorization, order creation, cart clearing and the
// confirmation email.
type CheckoutService struct {
	carts     *CartService
	orders    repository.OrderRepository
	users     repository.UserRepository
	gateway   payment.Gateway
	sender    email.Sender
	producer  *event.Producer
	logger    *slog.Logger
	discounts map[string]float64
}

// NewCheckoutService creates a new checkout service. The discounts table maps
// upper-cased codes to a percentage off (e.g. "SAVE10" -> 10). The producer
// may be nil when event publishing is disabled.
func NewCheckoutService(
	carts *CartService,
	orders repository.OrderRepository,
	users repository.UserRepository,
	gateway payment.Gateway,
	sender email.Sender,
	producer *event.Producer,
	logger *slog.Logger,
	discounts map[string]float64,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		orders:    orders,
		users:     users,
		gateway:   gateway,
		sender:    sender,
		producer:  producer,
		logger:    logger,
		discounts: discounts,
	}
}

// Checkout places an order for the contents of the given cart.
//
// A submitted-but-unknown discount code does not abort the purchase: the
// result carries the "Invalid discount code" message and payment proceeds at
// full price. A declined charge leaves the cart untouched and creates no
// order.
func (s *CheckoutService) Checkout(ctx context.Context, cartID string, input CheckoutInput) (*CheckoutResult, error) {
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("Your cart is empty.")
	}

	if input.CardNumber == "" || input.ExpiryDate == "" || input.CVV == "" {
		return nil, apperrors.InvalidInput("Please fill in all credit card details")
	}

	subtotal := cart.TotalPrice()
	discount, discountMsg := s.applyDiscount(input.DiscountCode, subtotal)
	total := subtotal - discount

	result, err := s.gateway.Charge(ctx, &payment.ChargeInput{
		Method:     input.PaymentMethod,
		CardNumber: input.CardNumber,
		ExpiryDate: input.ExpiryDate,
		CVV:        input.CVV,
		Amount:     total,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "payment gateway unavailable",
			slog.String("gateway", s.gateway.Name()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("charge: %w", err)
	}
	if !result.Success {
		s.logger.InfoContext(ctx, "payment declined",
			slog.String("cart_id", cartID),
			slog.Float64("amount", total),
		)
		return nil, apperrors.PaymentFailed(result.Message)
	}

	order := &domain.Order{
		ID:            uuid.New().String(),
		CustomerEmail: input.Email,
		CustomerName:  input.Name,
		Items:         cart.Snapshot(),
		Shipping: domain.ShippingInfo{
			Address: input.Address,
			City:    input.City,
			ZipCode: input.ZipCode,
		},
		PaymentMethod: input.PaymentMethod,
		TransactionID: result.TransactionID,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// The payment went through, so from here every step degrades instead
	// of failing the purchase. Order history belongs to the signed-in
	// account; anonymous purchases leave no history even when the contact
	// email matches a registered user.
	if input.UserEmail != "" {
		if err := s.users.AddOrderRef(ctx, input.UserEmail, order.ID); err != nil {
			s.logger.ErrorContext(ctx, "failed to record order on user history",
				slog.String("email", input.UserEmail),
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.carts.Clear(ctx, cartID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.sender.SendOrderConfirmation(ctx, input.Email, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to send order confirmation",
			slog.String("sender", s.sender.Name()),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if s.producer != nil {
		if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.placed event",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("transaction_id", order.TransactionID),
		slog.Int("items", order.TotalItems()),
		slog.Float64("total", order.Total),
	)

	return &CheckoutResult{Order: order, DiscountMessage: discountMsg}, nil
}

// applyDiscount resolves the discount code against the configured table.
// Codes match case-insensitively. Returns the amount off and the user-facing
// message; both are zero-valued when no code was submitted.
func (s *CheckoutService) applyDiscount(code string, subtotal float64) (float64, string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, ""
	}

	percent, ok := s.discounts[strings.ToUpper(code)]
	if !ok {
		return 0, "Invalid discount code"
	}

	amount := subtotal * percent / 100
	return amount, fmt.Sprintf("Discount applied! You saved $%.2f!", amount)
}
