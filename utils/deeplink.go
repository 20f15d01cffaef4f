package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

// FormatBRL renders centavos as "R$ 12,34".
func FormatBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sR$ %d,%02d", sign, cents/100, cents%100)
}

// WhatsAppLink builds a pre-filled wa.me link. Fire and forget; the
// storefront only hands the URL to the browser.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, "55") {
		digits = "55" + digits
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}

// OrderConfirmationMessage is the templated copy of a finalized order sent
// to the restaurant's support channel.
func OrderConfirmationMessage(o *entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pedido #%d - %s\n", o.OrderNumber, o.CustomerName)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "%dx %s (%s)\n", it.Quantity, it.Name, FormatBRL(it.Price*int64(it.Quantity)))
	}
	if o.Discount > 0 {
		fmt.Fprintf(&b, "Desconto: -%s\n", FormatBRL(o.Discount))
	}
	if o.DeliveryFee > 0 {
		fmt.Fprintf(&b, "Entrega: %s\n", FormatBRL(o.DeliveryFee))
	}
	fmt.Fprintf(&b, "Total: %s\nPagamento: %s", FormatBRL(o.Total), o.PaymentMethod)
	return b.String()
}
