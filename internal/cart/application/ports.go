package application

import (
	"context"

	"github.com/donutopia/storefront/internal/cart/domain"
)

// Notifier is the toast sink. The concrete rendering lives outside the core.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Store resolves the cart bound to a browser session, creating it empty on
// first use. Carts live for the session only.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
}
