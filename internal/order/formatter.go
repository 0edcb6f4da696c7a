package order

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rossellmestanza/menudigital/pkg/money"
)

// FormatConfig carries the storefront settings the formatter needs.
type FormatConfig struct {
	Currency       string
	WhatsAppNumber string
}

// Format renders the order as the Spanish WhatsApp message sent to the
// restaurant. Formatting is pure: the same order always yields the same
// message.
func Format(o Order, cfg FormatConfig) string {
	var b strings.Builder

	b.WriteString("¡Hola! Quiero hacer un pedido:\n\n")
	b.WriteString(banner(o.Type))
	b.WriteString("\n\n")

	for _, line := range o.Lines {
		b.WriteString("• ")
		b.WriteString(line.Name)
		b.WriteString(" x")
		b.WriteString(strconv.Itoa(line.Quantity))
		b.WriteString(" - ")
		b.WriteString(money.Format(cfg.Currency, line.SubtotalCents()))
		b.WriteString("\n")

		for _, name := range sortedKeys(line.Variables) {
			b.WriteString("  ↳ ")
			b.WriteString(name)
			b.WriteString(": ")
			b.WriteString(line.Variables[name])
			b.WriteString("\n")
		}
		if len(line.Extras) > 0 {
			b.WriteString("  ↳ Extras: ")
			b.WriteString(strings.Join(line.Extras, ", "))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(customerBlock(o.Type, o.Customer))
	b.WriteString("\n💰 *Total: ")
	b.WriteString(money.Format(cfg.Currency, o.TotalCents))
	b.WriteString("*")

	return b.String()
}

// WhatsAppURL builds the wa.me link carrying the encoded message.
func WhatsAppURL(number, message string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

func banner(t Type) string {
	switch t {
	case TypeDelivery:
		return "🚚 *DELIVERY*"
	case TypeTakeaway:
		return "🛍️ *PARA LLEVAR*"
	case TypeDineIn:
		return "🍽️ *EN MESA*"
	}
	return ""
}

func customerBlock(t Type, c Customer) string {
	var b strings.Builder

	switch t {
	case TypeDineIn:
		b.WriteString("🔢 *MESA:* ")
		b.WriteString(strings.TrimSpace(c.Table))
		b.WriteString("\n")
	case TypeDelivery:
		b.WriteString("📋 *DATOS:*\n")
		b.WriteString("Nombre: " + strings.TrimSpace(c.Name) + "\n")
		b.WriteString("Teléfono: " + strings.TrimSpace(c.Phone) + "\n")
		b.WriteString("Dirección: " + strings.TrimSpace(c.Address) + "\n")
		if ref := strings.TrimSpace(c.Reference); ref != "" {
			b.WriteString("Referencia: " + ref + "\n")
		}
		b.WriteString("Pago: " + strings.TrimSpace(c.PaymentMethod) + "\n")
		if obs := strings.TrimSpace(c.Observations); obs != "" {
			b.WriteString("Observaciones: " + obs + "\n")
		}
	case TypeTakeaway:
		b.WriteString("📋 *DATOS:*\n")
		b.WriteString("Nombre: " + strings.TrimSpace(c.Name) + "\n")
		b.WriteString("Teléfono: " + strings.TrimSpace(c.Phone) + "\n")
	}

	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
