// Package whatsapp builds the outbound hand-off link. The storefront opens
// the URL in a new tab; nothing here talks to WhatsApp directly.
package whatsapp

import "net/url"

// DefaultPhone is the shop's fixed WhatsApp contact.
const DefaultPhone = "5514997000091"

type Composer struct {
	phone string
}

func NewComposer(phone string) Composer {
	if phone == "" {
		phone = DefaultPhone
	}
	return Composer{phone: phone}
}

func (c Composer) Compose(message string) string {
	return "https://wa.me/" + c.phone + "?text=" + url.QueryEscape(message)
}
