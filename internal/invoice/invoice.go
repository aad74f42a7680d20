// Package invoice renders priced orders as flat text lines suited for an
// SMS-length message.
package invoice

import (
	"fmt"

	"github.com/masrawy/order-intake/internal/order"
)

type Mode string

const (
	// ModePreview is the pre-confirmation rendering: quantities and names
	// only, no per-line prices. Pair it with the grand total.
	ModePreview Mode = "preview"
	// ModeReceipt is the post-creation rendering: unit prices, line amounts,
	// totals block, and a localized header/footer.
	ModeReceipt Mode = "receipt"
)

type labelSet struct {
	ThankYou   string
	OrderID    string
	Total      string
	Tax        string
	GrandTotal string
	Closing    string
}

// Unknown locale codes fall back to English.
var locales = map[string]labelSet{
	"en": {
		ThankYou:   "Thank you for your order from Masrawy",
		OrderID:    "Order ID",
		Total:      "Total",
		Tax:        "Tax",
		GrandTotal: "Grand Total",
		Closing:    "Thank you for your order!",
	},
	"ar": {
		ThankYou:   "شكرا لطلبك من مصراوي",
		OrderID:    "رقم الطلب",
		Total:      "المجموع",
		Tax:        "الضريبة",
		GrandTotal: "الاجمالي",
		Closing:    "شكراً لطلبك!",
	},
}

func labelsFor(locale string) labelSet {
	if l, ok := locales[locale]; ok {
		return l
	}
	return locales["en"]
}

// Format renders a priced order as ordered, newline-joinable lines.
// orderID is only shown in receipt mode. Notes pass through verbatim and are
// never translated.
func Format(p order.PricedOrder, orderID, locale string, mode Mode) []string {
	l := labelsFor(locale)

	var lines []string
	if mode == ModeReceipt {
		lines = append(lines, l.ThankYou, fmt.Sprintf("%s: %s", l.OrderID, orderID), "")
	}

	for _, ln := range p.Lines {
		switch ln.Kind {
		case order.LineItem:
			name := ln.Name
			if name == "" {
				name = "Unknown Item"
			}
			if mode == ModeReceipt {
				lines = append(lines, fmt.Sprintf("%s %dx$%s = $%s", name, ln.Quantity, ln.UnitPrice.StringFixed(2), ln.Amount.StringFixed(2)))
			} else {
				lines = append(lines, fmt.Sprintf("%d %s", ln.Quantity, name))
			}
		case order.LineModifier:
			if mode == ModeReceipt {
				lines = append(lines, fmt.Sprintf("%s  %dx$%s = $%s", ln.Name, ln.Quantity, ln.UnitPrice.StringFixed(2), ln.Amount.StringFixed(2)))
			} else {
				lines = append(lines, fmt.Sprintf("%d %s", ln.Quantity, ln.Name))
			}
		case order.LineNote:
			lines = append(lines, ln.Name)
		}
	}

	if mode == ModeReceipt {
		lines = append(lines,
			fmt.Sprintf("%s: $%s", l.Total, p.Subtotal.StringFixed(2)),
			fmt.Sprintf("%s: $%s", l.Tax, p.Tax.StringFixed(2)),
			fmt.Sprintf("%s: $%s", l.GrandTotal, p.GrandTotal.StringFixed(2)),
			l.Closing,
		)
	}
	return lines
}
