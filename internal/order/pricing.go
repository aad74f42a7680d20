package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price computes line amounts, subtotal, tax, and grand total for a
// normalized order. Accumulation is exact; rounding happens only at the tax
// and grand-total steps so per-line cents never drift.
func Price(o Order, taxRate decimal.Decimal) (PricedOrder, error) {
	if len(o.Items) == 0 {
		return PricedOrder{}, fmt.Errorf("%w: order has no items", ErrInvalidOrder)
	}

	subtotal := decimal.Zero
	lines := make([]Line, 0, len(o.Items))

	for i, it := range o.Items {
		unit := it.BasePrice
		if unit == nil {
			unit = it.Price
		}
		if unit == nil {
			return PricedOrder{}, fmt.Errorf("%w: item %d (%s) has neither base_price nor price", ErrInvalidOrder, i, it.Name)
		}

		base := unit.Mul(decimal.NewFromInt(int64(it.Quantity)))
		itemTotal := base
		lines = append(lines, Line{
			Kind:      LineItem,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: *unit,
			Amount:    base,
		})

		for _, m := range it.Modifiers {
			if !m.IsActive {
				continue
			}
			amount := m.PriceDelta.Mul(decimal.NewFromInt(int64(m.Quantity)))
			itemTotal = itemTotal.Add(amount)
			lines = append(lines, Line{
				Kind:      LineModifier,
				Name:      m.Name,
				Quantity:  m.Quantity,
				UnitPrice: m.PriceDelta,
				Amount:    amount,
			})
		}

		if it.Note != "" {
			lines = append(lines, Line{Kind: LineNote, Name: it.Note})
		}

		subtotal = subtotal.Add(itemTotal)
	}

	tax := subtotal.Mul(taxRate).Round(2)
	grand := subtotal.Add(tax).Round(2)

	return PricedOrder{
		Order:      o,
		Lines:      lines,
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: grand,
	}, nil
}
