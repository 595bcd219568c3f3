package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	cartapp "github.com/donutopia/storefront/internal/cart/application"
	catalog "github.com/donutopia/storefront/internal/catalog/domain"
	checkout "github.com/donutopia/storefront/internal/checkout/domain"
	orderapp "github.com/donutopia/storefront/internal/order/application"
	"github.com/donutopia/storefront/pkg/idempotency"
	"github.com/donutopia/storefront/pkg/toast"
)

const sessionCookie = "donutopia_session"

type Handler struct {
	log    *slog.Logger
	carts  *cartapp.Service
	orders *orderapp.Service
	guard  *idempotency.Guard
	tracer trace.Tracer
}

// NewHandler wires the storefront API. guard may be nil; submission then
// runs without the duplicate-click check.
func NewHandler(log *slog.Logger, carts *cartapp.Service, orders *orderapp.Service, guard *idempotency.Guard) *Handler {
	return &Handler{
		log:    log,
		carts:  carts,
		orders: orders,
		guard:  guard,
		tracer: otel.Tracer("storefront-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Use(h.session)
		r.Use(withToasts)

		r.Get("/menu", h.menu)
		r.Post("/cart/adjust", h.adjustCart)
		r.Post("/cart/set", h.setCartQuantity)
		r.Delete("/cart", h.clearCart)
		r.Get("/cart/summary", h.cartSummary)
		r.Get("/checkout/quote", h.quote)
		r.Post("/orders", h.submitOrder)
		r.Post("/orders/qrcode", h.orderQRCode)
	})

	return r
}

// session binds every request to a browser session via cookie, creating one
// on first contact. The cart lives and dies with this cookie.
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), id)))
	})
}

func withToasts(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := toast.WithRecorder(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type sessionKey struct{}

func withSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func sessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "storefront",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) menu(w http.ResponseWriter, r *http.Request) {
	t := productType(r.URL.Query().Get("type"))
	if !t.Valid() {
		http.Error(w, "unknown product type", http.StatusBadRequest)
		return
	}

	view, err := h.carts.Menu(r.Context(), sessionID(r.Context()), t)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type adjustCartReq struct {
	Flavor   string `json:"flavor"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Delta    int    `json:"delta"`
}

func (h *Handler) adjustCart(w http.ResponseWriter, r *http.Request) {
	var req adjustCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	t := productType(req.Type)
	if !t.Valid() {
		http.Error(w, "unknown product type", http.StatusBadRequest)
		return
	}

	out, err := h.carts.Adjust(r.Context(), sessionID(r.Context()), cartapp.AdjustCommand{
		Flavor:   req.Flavor,
		Category: req.Category,
		Type:     t,
		Delta:    req.Delta,
	})
	h.writeSync(w, r, out, err)
}

type setCartReq struct {
	Flavor   string `json:"flavor"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Quantity string `json:"quantity"`
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req setCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	t := productType(req.Type)
	if !t.Valid() {
		http.Error(w, "unknown product type", http.StatusBadRequest)
		return
	}

	out, err := h.carts.SetQuantity(r.Context(), sessionID(r.Context()), cartapp.SetCommand{
		Flavor:   req.Flavor,
		Category: req.Category,
		Type:     t,
		Raw:      req.Quantity,
	})
	h.writeSync(w, r, out, err)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	active := productType(r.URL.Query().Get("type"))
	if !active.Valid() {
		active = catalog.TypeTraditional
	}

	out, err := h.carts.Clear(r.Context(), sessionID(r.Context()), active)
	h.writeSync(w, r, out, err)
}

func (h *Handler) cartSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.carts.Summary(r.Context(), sessionID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	mode := checkout.DeliveryMode(r.URL.Query().Get("delivery"))
	if mode == "" {
		mode = checkout.ModePickup
	}
	if !mode.Valid() {
		http.Error(w, "unknown delivery mode", http.StatusBadRequest)
		return
	}

	summary, err := h.carts.Summary(r.Context(), sessionID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, checkout.NewQuote(summary.SubtotalCents, mode))
}

type submitOrderReq struct {
	CustomerName  string `json:"customer_name"`
	DeliveryType  string `json:"delivery_type"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
	NeedChange    bool   `json:"need_change"`
	ChangeFor     string `json:"change_for"`
}

type submitOrderResp struct {
	WhatsAppURL string   `json:"whatsapp_url"`
	Message     string   `json:"message"`
	Notices     []string `json:"notices,omitempty"`
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	result, status, body := h.processSubmit(w, r)
	if result == nil {
		if body != nil {
			writeJSON(w, status, body)
		}
		return
	}
	writeJSON(w, http.StatusOK, submitOrderResp{
		WhatsAppURL: result.WhatsAppURL,
		Message:     result.Message,
		Notices:     toast.FromContext(r.Context()).Messages(),
	})
}

// orderQRCode runs the same submit pipeline but answers with a QR code of
// the hand-off link, for customers browsing on a desktop.
func (h *Handler) orderQRCode(w http.ResponseWriter, r *http.Request) {
	result, status, body := h.processSubmit(w, r)
	if result == nil {
		if body != nil {
			writeJSON(w, status, body)
		}
		return
	}

	png, err := qrcode.Encode(result.WhatsAppURL, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// processSubmit decodes, validates and composes an order. On failure it
// returns a nil result plus the status and JSON body to write (nil body
// means the response was already written).
func (h *Handler) processSubmit(w http.ResponseWriter, r *http.Request) (*orderapp.SubmitResult, int, any) {
	ctx, span := h.tracer.Start(r.Context(), "SubmitOrder")
	defer span.End()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return nil, 0, nil
	}

	var req submitOrderReq
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return nil, 0, nil
	}

	mode := checkout.DeliveryMode(req.DeliveryType)
	if mode == "" {
		mode = checkout.ModePickup
	}
	if !mode.Valid() {
		http.Error(w, "unknown delivery mode", http.StatusBadRequest)
		return nil, 0, nil
	}

	sel := checkout.Selection{
		Mode:       mode,
		Name:       req.CustomerName,
		Address:    req.Address,
		NeedChange: req.NeedChange,
		ChangeFor:  req.ChangeFor,
	}
	sel.SelectPayment(checkout.PaymentMethod(req.PaymentMethod))

	session := sessionID(ctx)
	cart, err := h.carts.Cart(ctx, session)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, 0, nil
	}

	result, err := h.orders.Submit(ctx, cart, sel)
	if err != nil {
		var ve *checkout.ValidationError
		if errors.As(err, &ve) {
			return nil, http.StatusUnprocessableEntity, map[string]any{
				"notices": toast.FromContext(ctx).Messages(),
			}
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, 0, nil
	}

	if h.guard != nil {
		key := h.guard.Key(session, raw)
		stored, dup, err := h.guard.Claim(ctx, key, result.WhatsAppURL)
		if err != nil {
			h.log.Warn("idempotency guard unavailable", "err", err)
		} else if dup {
			h.log.Info("duplicate submit, returning original hand-off", "session", session)
			result.WhatsAppURL = stored
		}
	}

	return &result, 0, nil
}

type syncResp struct {
	cartapp.Sync
	Notices []string `json:"notices,omitempty"`
}

func (h *Handler) writeSync(w http.ResponseWriter, r *http.Request, out cartapp.Sync, err error) {
	switch {
	case errors.Is(err, cartapp.ErrUnknownItem):
		http.Error(w, "unknown menu item", http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, syncResp{
		Sync:    out,
		Notices: toast.FromContext(r.Context()).Messages(),
	})
}

func productType(s string) catalog.ProductType {
	if s == "" {
		return catalog.TypeTraditional
	}
	return catalog.ProductType(s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
