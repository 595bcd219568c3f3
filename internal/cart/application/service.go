package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/donutopia/storefront/internal/analytics"
	"github.com/donutopia/storefront/internal/cart/domain"
	catalog "github.com/donutopia/storefront/internal/catalog/domain"
)

var ErrUnknownItem = errors.New("unknown menu item")

type Service struct {
	log      *slog.Logger
	catalog  *catalog.Store
	carts    Store
	notifier Notifier
	tracker  analytics.Tracker
}

func NewService(log *slog.Logger, cat *catalog.Store, carts Store, notifier Notifier, tracker analytics.Tracker) *Service {
	return &Service{log: log, catalog: cat, carts: carts, notifier: notifier, tracker: tracker}
}

type AdjustCommand struct {
	Flavor   string
	Category string
	Type     catalog.ProductType
	Delta    int
}

type SetCommand struct {
	Flavor   string
	Category string
	Type     catalog.ProductType
	Raw      string
}

// Sync carries everything the page must repaint after a cart mutation: the
// menu for the mutated item's product type and the floating summary. Both
// reflect the post-mutation cart before the command returns.
type Sync struct {
	Menu           MenuView    `json:"menu"`
	Summary        SummaryView `json:"summary"`
	CheckoutClosed bool        `json:"checkout_closed,omitempty"`
}

// Adjust adds the delta to the item's quantity. Unit prices come from the
// catalog, never from the caller.
func (s *Service) Adjust(ctx context.Context, sessionID string, cmd AdjustCommand) (Sync, error) {
	price, ok := s.catalog.UnitPrice(cmd.Type, cmd.Category, cmd.Flavor)
	if !ok {
		return Sync{}, ErrUnknownItem
	}
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return Sync{}, err
	}

	cart.Adjust(cmd.Flavor, cmd.Category, price, cmd.Delta, cmd.Type)
	return s.sync(cart, cmd.Type)
}

// SetQuantity sets an absolute quantity from raw input. Invalid or
// non-positive input removes the line; that is recovery, not an error.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, cmd SetCommand) (Sync, error) {
	price, ok := s.catalog.UnitPrice(cmd.Type, cmd.Category, cmd.Flavor)
	if !ok {
		return Sync{}, ErrUnknownItem
	}
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return Sync{}, err
	}

	cart.Set(cmd.Flavor, cmd.Category, price, cmd.Type, cmd.Raw)
	return s.sync(cart, cmd.Type)
}

// Clear empties the cart, closes the checkout view and confirms with a toast.
func (s *Service) Clear(ctx context.Context, sessionID string, active catalog.ProductType) (Sync, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return Sync{}, err
	}

	cart.Clear()
	s.notifier.Notify(ctx, "Sacola esvaziada! 🍩")
	s.tracker.Track(ctx, analytics.Event{Category: "Cart", Action: "Clear", Label: "CTA"})

	out, err := s.sync(cart, active)
	out.CheckoutClosed = true
	return out, err
}

func (s *Service) Menu(ctx context.Context, sessionID string, t catalog.ProductType) (MenuView, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return MenuView{}, err
	}
	view, ok := ProjectMenu(s.catalog, cart, t)
	if !ok {
		return MenuView{}, ErrUnknownItem
	}
	return view, nil
}

func (s *Service) Summary(ctx context.Context, sessionID string) (SummaryView, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return SummaryView{}, err
	}
	return Summarize(cart), nil
}

// Cart exposes the session cart to the order pipeline.
func (s *Service) Cart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.carts.Get(ctx, sessionID)
}

func (s *Service) sync(cart *domain.Cart, t catalog.ProductType) (Sync, error) {
	menu, ok := ProjectMenu(s.catalog, cart, t)
	if !ok {
		return Sync{}, ErrUnknownItem
	}
	return Sync{Menu: menu, Summary: Summarize(cart)}, nil
}
