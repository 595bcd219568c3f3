package domain

import (
	"strings"

	"github.com/donutopia/storefront/pkg/money"
)

// DeliveryFee is the flat charge for delivery orders.
const DeliveryFee money.Cents = 800

type DeliveryMode string

const (
	ModePickup   DeliveryMode = "pickup"
	ModeDelivery DeliveryMode = "delivery"
)

func (m DeliveryMode) Valid() bool {
	return m == ModePickup || m == ModeDelivery
}

// PaymentMethod values are the labels shown on the order message.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Dinheiro"
	PaymentPix    PaymentMethod = "Pix"
	PaymentCredit PaymentMethod = "Cartão de Crédito"
	PaymentDebit  PaymentMethod = "Cartão de Débito"
)

func (p PaymentMethod) Cash() bool {
	return p == PaymentCash
}

// Selection is the state of the checkout form.
type Selection struct {
	Mode       DeliveryMode
	Name       string
	Address    string
	Payment    PaymentMethod
	NeedChange bool
	ChangeFor  string
}

// SelectPayment switches the payment method. Any non-cash method resets the
// change sub-form regardless of its previous state.
func (s *Selection) SelectPayment(p PaymentMethod) {
	s.Payment = p
	if !p.Cash() {
		s.NeedChange = false
		s.ChangeFor = ""
	}
}

// AddressRequired reports whether the address field applies; the delivery
// note is shown under the same condition.
func (s Selection) AddressRequired() bool {
	return s.Mode == ModeDelivery
}

// Quote carries the derived totals for a cart subtotal and delivery mode.
type Quote struct {
	SubtotalCents money.Cents `json:"subtotal_cents"`
	FeeCents      money.Cents `json:"fee_cents"`
	TotalCents    money.Cents `json:"total_cents"`
	SubtotalLabel string      `json:"subtotal_label"`
	TotalLabel    string      `json:"total_label"`
	ShowAddress   bool        `json:"show_address"`
}

func NewQuote(subtotal money.Cents, mode DeliveryMode) Quote {
	var fee money.Cents
	if mode == ModeDelivery {
		fee = DeliveryFee
	}
	total := subtotal + fee
	return Quote{
		SubtotalCents: subtotal,
		FeeCents:      fee,
		TotalCents:    total,
		SubtotalLabel: money.FormatBRL(subtotal),
		TotalLabel:    money.FormatBRL(total),
		ShowAddress:   mode == ModeDelivery,
	}
}

// ValidationError is a user-recoverable rejection. Notice is the toast text
// shown to the customer.
type ValidationError struct {
	Notice string
}

func (e *ValidationError) Error() string { return e.Notice }

var (
	ErrMissingName    = &ValidationError{Notice: "Por favor, digite seu nome."}
	ErrMissingAddress = &ValidationError{Notice: "Por favor, informe o endereço de entrega."}
	ErrMissingChange  = &ValidationError{Notice: "Por favor, informe para quanto você precisa de troco."}
	ErrChangeTooLow   = &ValidationError{Notice: "O valor para troco deve ser maior que o total do pedido."}
)

// Validate checks the selection against the grand total, stopping at the
// first failure. The change amount must be strictly greater than the total;
// paying with exact money needs no change.
func (s Selection) Validate(total money.Cents) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrMissingName
	}
	if s.Mode == ModeDelivery && strings.TrimSpace(s.Address) == "" {
		return ErrMissingAddress
	}
	if s.Payment.Cash() && s.NeedChange {
		if strings.TrimSpace(s.ChangeFor) == "" {
			return ErrMissingChange
		}
		amount, err := money.ParseBRL(s.ChangeFor)
		if err != nil || amount <= total {
			return ErrChangeTooLow
		}
	}
	return nil
}
