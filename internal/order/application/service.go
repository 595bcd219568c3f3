package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/donutopia/storefront/internal/analytics"
	cart "github.com/donutopia/storefront/internal/cart/domain"
	checkout "github.com/donutopia/storefront/internal/checkout/domain"
	"github.com/donutopia/storefront/internal/order/domain"
)

type Service struct {
	log      *slog.Logger
	notifier Notifier
	tracker  analytics.Tracker
	composer Composer
}

func NewService(log *slog.Logger, notifier Notifier, tracker analytics.Tracker, composer Composer) *Service {
	return &Service{log: log, notifier: notifier, tracker: tracker, composer: composer}
}

type SubmitResult struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// Submit validates the checkout selection against the cart's grand total,
// composes the order message and returns the hand-off URL. Validation
// failures surface as a toast and abort; nothing is mutated either way.
// Whether the customer's device actually opens the link is not this
// service's problem.
func (s *Service) Submit(ctx context.Context, c *cart.Cart, sel checkout.Selection) (SubmitResult, error) {
	_, subtotal := c.Totals()
	quote := checkout.NewQuote(subtotal, sel.Mode)

	if err := sel.Validate(quote.TotalCents); err != nil {
		var ve *checkout.ValidationError
		if errors.As(err, &ve) {
			s.notifier.Notify(ctx, ve.Notice)
		}
		return SubmitResult{}, err
	}

	message := domain.ComposeMessage(c.Lines(), sel, quote)
	url := s.composer.Compose(message)

	s.tracker.Track(ctx, analytics.Event{Category: "Order", Action: "Submit", Label: string(sel.Payment)})
	s.tracker.Track(ctx, analytics.Event{Category: "Contact", Action: "WhatsApp Click", Label: "CTA"})
	s.log.Info("order handed off",
		"mode", string(sel.Mode),
		"payment", string(sel.Payment),
		"total_cents", int64(quote.TotalCents))

	return SubmitResult{Message: message, WhatsAppURL: url}, nil
}
