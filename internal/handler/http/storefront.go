package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/bookshop/internal/catalog"
	"github.com/utafrali/bookshop/internal/service"
	"github.com/utafrali/bookshop/internal/session"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
	"github.com/utafrali/bookshop/pkg/logger"
)

// sharedCartKey addresses the cart repository for every request. All
// browsers see and mutate the same cart; keying by the session id here is
// what a per-visitor cart would take. Kept as-is to reproduce the storefront
// this service replaces.
const sharedCartKey = "shared"

// StorefrontHandler serves the HTML storefront.
type StorefrontHandler struct {
	catalog  *catalog.Catalog
	carts    *service.CartService
	users    *service.UserService
	checkout *service.CheckoutService
	orders   *service.OrderService
	sessions *session.Manager
	renderer *Renderer
	logger   *slog.Logger
}

// NewStorefrontHandler creates the storefront HTTP handler.
func NewStorefrontHandler(
	cat *catalog.Catalog,
	carts *service.CartService,
	users *service.UserService,
	checkout *service.CheckoutService,
	orders *service.OrderService,
	sessions *session.Manager,
	renderer *Renderer,
	logger *slog.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		catalog:  cat,
		carts:    carts,
		users:    users,
		checkout: checkout,
		orders:   orders,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// begin resolves the request's session and enriches the context with the
// signed-in user for logging.
func (h *StorefrontHandler) begin(w http.ResponseWriter, r *http.Request) (string, context.Context) {
	sid := h.sessions.Resolve(w, r)
	ctx := r.Context()
	if email := h.sessions.User(sid); email != "" {
		ctx = logger.WithUserEmail(ctx, email)
	}
	return sid, ctx
}

func (h *StorefrontHandler) render(w http.ResponseWriter, r *http.Request, sid string, status int, page string, data any) {
	err := h.renderer.Render(w, status, page, pageData{
		Flashes:   h.sessions.PopFlashes(sid),
		UserEmail: h.sessions.User(sid),
		Data:      data,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusFound)
}

// Home handles GET /.
func (h *StorefrontHandler) Home(w http.ResponseWriter, r *http.Request) {
	sid, _ := h.begin(w, r)
	h.render(w, r, sid, http.StatusOK, "index", struct {
		Books any
	}{Books: h.catalog.Books()})
}

// AddToCart handles POST /add-to-cart.
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sid, ctx := h.begin(w, r)
	title := r.PostFormValue("title")

	quantity, err := service.ParseQuantity(r.PostFormValue("quantity"))
	if err != nil {
		h.sessions.Flash(sid, "Invalid quantity. Please enter a valid number.")
		redirect(w, r, "/")
		return
	}
	if quantity <= 0 {
		h.sessions.Flash(sid, "Quantity must be positive")
		redirect(w, r, "/")
		return
	}

	if _, err := h.carts.AddBook(ctx, sharedCartKey, title, quantity); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.sessions.Flash(sid, "Book not found.")
		} else {
			h.sessions.Flash(sid, apperrors.Message(err))
		}
		redirect(w, r, "/")
		return
	}

	h.sessions.Flash(sid, fmt.Sprintf("Added %d \"%s\" to cart!", quantity, title))
	redirect(w, r, "/")
}

// ViewCart handles GET /cart.
func (h *StorefrontHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	sid, ctx := h.begin(w, r)

	cart, err := h.carts.Get(ctx, sharedCartKey)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, sid, http.StatusOK, "cart", struct {
		Cart any
	}{Cart: cart})
}

// UpdateCart handles POST /update-cart. A quantity of zero skips the
// positive-quantity rule and writes the line directly, so the zeroed line
// stays in the cart.
func (h *StorefrontHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	sid, ctx := h.begin(w, r)
	title := r.PostFormValue("title")

	quantity, err := service.ParseQuantity(r.PostFormValue("quantity"))
	if err != nil {
		h.sessions.Flash(sid, "Invalid quantity. Please enter a valid number.")
		redirect(w, r, "/cart")
		return
	}
	if quantity < 0 {
		h.sessions.Flash(sid, "Quantity must be positive")
		redirect(w, r, "/cart")
		return
	}

	if quantity == 0 {
		_, err = h.carts.SetQuantity(ctx, sharedCartKey, title, 0)
	} else {
		_, err = h.carts.UpdateQuantity(ctx, sharedCartKey, title, quantity)
	}
	if err != nil {
		h.sessions.Flash(sid, apperrors.Message(err))
	}

	redirect(w, r, "/cart")
}

// RemoveFromCart handles POST /remove-from-cart. Removing an absent title is
// a no-op that still reports success.
func (h *StorefrontHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sid, ctx := h.begin(w, r)
	title := r.PostFormValue("title")

	if _, err := h.carts.RemoveBook(ctx, sharedCartKey, title); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.sessions.Flash(sid, fmt.Sprintf("Removed \"%s\" from your cart.", title))
	redirect(w, r, "/cart")
}

// CheckoutForm handles GET /checkout.
func (h *StorefrontHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	sid, ctx := h.begin(w, r)

	cart, err := h.carts.Get(ctx, sharedCartKey)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if cart.IsEmpty() {
		h.sessions.Flash(sid, "Your cart is empty.")
		redirect(w, r, "/")
		return
	}

	var name, email string
	if addr := h.sessions.User(sid); addr != "" {
		email = addr
		if user, err := h.users.GetByEmail(ctx, addr); err == nil {
			name = user.Name
		}
	}

	h.render(w, r, sid, http.StatusOK, "checkout", struct {
		Cart  any
		Name  string
		Email string
	}{Cart: cart, Name: name, Email: email})
}

// ProcessCheckout handles POST /process-checkout.
func (h *StorefrontHandler) ProcessCheckout(w http.ResponseWriter, r *http.Request) {
	sid, ctx := h.begin(w, r)

	input := service.CheckoutInput{
		Name:          r.PostFormValue("name"),
		Email:         r.PostFormValue("email"),
		Address:       r.PostFormValue("address"),
		City:          r.PostFormValue("city"),
		ZipCode:       r.PostFormValue("zip_code"),
		PaymentMethod: r.PostFormValue("payment_method"),
		CardNumber:    r.PostFormValue("card_number"),
		ExpiryDate:    r.PostFormValue("expiry_date"),
		CVV:           r.PostFormValue("cvv"),
		DiscountCode:  r.PostFormValue("discount_code"),
	}
	input.UserEmail = h.sessions.User(sid)
	if input.Email == "" {
		input.Email = input.UserEmail
	}

	result, err := h.checkout.Checkout(ctx, sharedCartKey, input)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPaymentFailed):
			h.sessions.Flash(sid, "Payment failed: "+apperrors.Message(err))
			redirect(w, r, "/checkout")
		case errors.Is(err, apperrors.ErrInvalidInput):
			msg := apperrors.Message(err)
			h.sessions.Flash(sid, msg)
			if msg == "Your cart is empty." {
				redirect(w, r, "/")
			} else {
				redirect(w, r, "/checkout")
			}
		default:
			h.serverError(w, r, err)
		}
		return
	}

	if result.DiscountMessage != "" {
		h.sessions.Flash(sid, result.DiscountMessage)
	}
	h.sessions.Flash(sid, "Payment successful!")
	redirect(w, r, "/order-confirmation/"+result.Order.ID)
}

// OrderConfirmation handles GET /order-confirmation/{orderID}.
func (h *StorefrontHandler) OrderConfirmation(w http.ResponseWriter, r *http.Request) {
	sid, ctx := h.begin(w, r)

	order, err := h.orders.GetByID(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			redirect(w, r, "/")
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, sid, http.StatusOK, "confirmation", struct {
		Order any
	}{Order: order})
}

// RegisterForm handles GET /register.
func (h *StorefrontHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	sid, _ := h.begin(w, r)
	h.render(w, r, sid, http.StatusOK, "register", nil)
}

// Register handles POST /register. Registration always succeeds: the email
// is stored exactly as submitted, and re-registering an address overwrites
// the earlier account.
func (h *StorefrontHandler) Register(w http.ResponseWriter, r *http.Request) {
	sid, ctx := h.begin(w, r)

	_, err := h.users.Register(ctx, service.RegisterInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Name:     r.PostFormValue("name"),
		Address:  r.PostFormValue("address"),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			h.sessions.Flash(sid, apperrors.Message(err))
			redirect(w, r, "/register")
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.sessions.Flash(sid, "Account created successfully!")
	redirect(w, r, "/login")
}

// LoginForm handles GET /login.
func (h *StorefrontHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	sid, _ := h.begin(w, r)
	h.render(w, r, sid, http.StatusOK, "login", nil)
}

// Login handles POST /login.
func (h *StorefrontHandler) Login(w http.ResponseWriter, r *http.Request) {
	sid, ctx := h.begin(w, r)

	user, err := h.users.Login(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			h.sessions.Flash(sid, "Invalid email or password")
			redirect(w, r, "/login")
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.sessions.SetUser(sid, user.Email)
	h.sessions.Flash(sid, "Logged in successfully!")
	redirect(w, r, "/")
}

// Logout handles GET /logout.
func (h *StorefrontHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, _ := h.begin(w, r)
	h.sessions.ClearUser(sid)
	redirect(w, r, "/")
}

// Account handles GET /account, showing the signed-in user's order history.
func (h *StorefrontHandler) Account(w http.ResponseWriter, r *http.Request) {
	sid, ctx := h.begin(w, r)

	email := h.sessions.User(sid)
	if email == "" {
		redirect(w, r, "/login")
		return
	}

	user, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.sessions.ClearUser(sid)
			redirect(w, r, "/login")
			return
		}
		h.serverError(w, r, err)
		return
	}

	orders, err := h.orders.ListByCustomer(ctx, email)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, sid, http.StatusOK, "account", struct {
		User   any
		Orders any
	}{User: user, Orders: orders})
}

func (h *StorefrontHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
