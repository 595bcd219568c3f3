package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	cart "github.com/donutopia/storefront/internal/cart/domain"
	catalog "github.com/donutopia/storefront/internal/catalog/domain"
	checkout "github.com/donutopia/storefront/internal/checkout/domain"
	"github.com/donutopia/storefront/internal/order/domain"
)

func pickupSelection() checkout.Selection {
	return checkout.Selection{
		Mode:    checkout.ModePickup,
		Name:    "Ana",
		Payment: checkout.PaymentPix,
	}
}

func TestComposeMessage_Pickup(t *testing.T) {
	c := cart.New()
	c.Adjust("Chocolate", "Clássicos", 1000, 2, catalog.TypeTraditional)
	c.Adjust("Oreo", "Gourmet", 1400, 1, catalog.TypeTraditional)

	sel := pickupSelection()
	_, subtotal := c.Totals()
	quote := checkout.NewQuote(subtotal, sel.Mode)

	msg := domain.ComposeMessage(c.Lines(), sel, quote)

	assert.True(t, strings.HasPrefix(msg, "*Novo Pedido - Donutopia*\n\n"))
	assert.Contains(t, msg, "*Cliente:* Ana\n")
	assert.Contains(t, msg, "2x Chocolate (Trad.) - R$ 20,00\n")
	assert.Contains(t, msg, "1x Oreo (Trad.) - R$ 14,00\n")
	assert.Contains(t, msg, "*Entrega:* Retirada no Local\n")
	assert.Contains(t, msg, "*Total Final: R$ 34,00*\n")
	assert.Contains(t, msg, "*Pagamento:* Pix\n")
	assert.NotContains(t, msg, "Endereço")
	assert.NotContains(t, msg, "Delivery")
	assert.NotContains(t, msg, "Troco")
}

func TestComposeMessage_Delivery(t *testing.T) {
	c := cart.New()
	c.Adjust("Chocolate", "Clássicos", 250, 6, catalog.TypeMini)

	sel := checkout.Selection{
		Mode:    checkout.ModeDelivery,
		Name:    "Bruno",
		Address: "Rua das Flores, 10",
		Payment: checkout.PaymentCredit,
	}
	_, subtotal := c.Totals()
	quote := checkout.NewQuote(subtotal, sel.Mode)

	msg := domain.ComposeMessage(c.Lines(), sel, quote)

	assert.Contains(t, msg, "6x Chocolate (Mini) - R$ 15,00\n")
	assert.Contains(t, msg, "*Entrega:* Delivery (Promissão) - R$ 8,00\n")
	assert.Contains(t, msg, "*Endereço:* Rua das Flores, 10\n")
	assert.Contains(t, msg, "*Total Final: R$ 23,00*\n")
	assert.Contains(t, msg, "*Pagamento:* Cartão de Crédito\n")
}

func TestComposeMessage_CashWithChange(t *testing.T) {
	c := cart.New()
	c.Adjust("Nutella", "Gourmet", 1400, 1, catalog.TypeTraditional)

	sel := checkout.Selection{
		Mode:       checkout.ModePickup,
		Name:       "Carla",
		Payment:    checkout.PaymentCash,
		NeedChange: true,
		ChangeFor:  "R$ 50,00",
	}
	quote := checkout.NewQuote(1400, sel.Mode)

	msg := domain.ComposeMessage(c.Lines(), sel, quote)

	assert.Contains(t, msg, "*Pagamento:* Dinheiro\n")
	// verbatim, exactly as typed
	assert.True(t, strings.HasSuffix(msg, "*Troco para:* R$ 50,00\n"))
}

func TestComposeMessage_Deterministic(t *testing.T) {
	build := func() *cart.Cart {
		c := cart.New()
		c.Adjust("Oreo", "Gourmet", 450, 1, catalog.TypeMini)
		c.Adjust("Chocolate", "Clássicos", 1000, 1, catalog.TypeTraditional)
		c.Adjust("Beijinho", "Recheados", 1200, 1, catalog.TypeTraditional)
		return c
	}

	sel := pickupSelection()
	quote := checkout.NewQuote(2650, sel.Mode)

	first := domain.ComposeMessage(build().Lines(), sel, quote)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, domain.ComposeMessage(build().Lines(), sel, quote))
	}

	// traditional lines precede minis
	assert.Less(t,
		strings.Index(first, "1x Beijinho (Trad.)"),
		strings.Index(first, "1x Oreo (Mini)"))
}
