package application

import (
	"fmt"

	"github.com/donutopia/storefront/internal/cart/domain"
	catalog "github.com/donutopia/storefront/internal/catalog/domain"
	"github.com/donutopia/storefront/pkg/money"
)

// MenuView is the display model for one product type: every category and
// flavor of the active catalog with the session's current quantities filled
// in. Cart lines of the other product type stay in the cart but never show
// up here.
type MenuView struct {
	Type       catalog.ProductType `json:"type"`
	Title      string              `json:"title"`
	Categories []CategoryView      `json:"categories"`
}

type CategoryView struct {
	Name  string     `json:"name"`
	Items []ItemView `json:"items"`
}

type ItemView struct {
	Flavor      string      `json:"flavor"`
	Description string      `json:"description"`
	PriceCents  money.Cents `json:"price_cents"`
	PriceLabel  string      `json:"price_label"`
	Quantity    int         `json:"quantity"`
}

// SummaryView backs the floating cart: total quantity and subtotal across
// both product types, hidden while the cart is empty.
type SummaryView struct {
	Count         int         `json:"count"`
	CountLabel    string      `json:"count_label"`
	SubtotalCents money.Cents `json:"subtotal_cents"`
	SubtotalLabel string      `json:"subtotal_label"`
	Visible       bool        `json:"visible"`
}

// ProjectMenu is a pure projection; it reads the catalog and the cart and
// touches neither.
func ProjectMenu(store *catalog.Store, c *domain.Cart, t catalog.ProductType) (MenuView, bool) {
	cat, ok := store.Catalog(t)
	if !ok {
		return MenuView{}, false
	}

	description := "Donut grande tradicional."
	if t == catalog.TypeMini {
		description = "Mini Cake Donut fofinho."
	}

	view := MenuView{Type: t, Title: cat.Title}
	for _, category := range cat.Categories {
		cv := CategoryView{Name: category.Name}
		for _, flavor := range category.Flavors {
			cv.Items = append(cv.Items, ItemView{
				Flavor:      flavor,
				Description: description,
				PriceCents:  category.PriceCents,
				PriceLabel:  money.FormatBRL(category.PriceCents),
				Quantity:    c.Quantity(domain.LineKey{Flavor: flavor, Type: t}),
			})
		}
		view.Categories = append(view.Categories, cv)
	}
	return view, true
}

func Summarize(c *domain.Cart) SummaryView {
	count, subtotal := c.Totals()
	return SummaryView{
		Count:         count,
		CountLabel:    fmt.Sprintf("%d itens", count),
		SubtotalCents: subtotal,
		SubtotalLabel: money.FormatBRL(subtotal),
		Visible:       count > 0,
	}
}
