// Package domain serializes a cart and checkout selection into the WhatsApp
// order message. The format is fixed; the shop reads these messages by eye.
package domain

import (
	"fmt"
	"strings"

	cart "github.com/donutopia/storefront/internal/cart/domain"
	checkout "github.com/donutopia/storefront/internal/checkout/domain"
	"github.com/donutopia/storefront/pkg/money"
)

const header = "*Novo Pedido - Donutopia*"

// ComposeMessage renders the order summary. Callers validate the selection
// first; this function formats whatever it is given.
func ComposeMessage(lines []cart.Line, sel checkout.Selection, quote checkout.Quote) string {
	var b strings.Builder

	b.WriteString(header + "\n\n")
	fmt.Fprintf(&b, "*Cliente:* %s\n", sel.Name)
	b.WriteString("*Pedido:*\n")

	for _, line := range lines {
		lineTotal := money.Cents(line.Quantity) * line.UnitPrice
		fmt.Fprintf(&b, "%dx %s (%s) - %s\n",
			line.Quantity, line.Flavor, line.Type.ShortLabel(), money.FormatBRL(lineTotal))
	}

	if sel.Mode == checkout.ModeDelivery {
		fmt.Fprintf(&b, "\n*Entrega:* Delivery (Promissão) - %s\n", money.FormatBRL(checkout.DeliveryFee))
		fmt.Fprintf(&b, "*Endereço:* %s\n", sel.Address)
	} else {
		b.WriteString("\n*Entrega:* Retirada no Local\n")
	}

	fmt.Fprintf(&b, "\n*Total Final: %s*\n", quote.TotalLabel)
	fmt.Fprintf(&b, "*Pagamento:* %s\n", sel.Payment)

	if sel.Payment.Cash() && sel.NeedChange {
		// the raw text goes out verbatim; the shop sees what the customer typed
		fmt.Fprintf(&b, "*Troco para:* %s\n", sel.ChangeFor)
	}

	return b.String()
}
