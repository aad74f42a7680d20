package order

import "github.com/masrawy/order-intake/internal/session"

// Normalize completes a raw payload into an Order. Absent options become an
// empty sequence, absent notes empty strings, absent quantities 1, and
// modifiers are active unless the payload says otherwise. Whatever
// customer_id/business_id the caller asserted is discarded in favor of the
// session's resolved identities; billing identity is never client input.
//
// Normalizing the result of a previous Normalize is a no-op.
func Normalize(raw RawOrder, sess session.Session) (Order, error) {
	if raw.Items == nil {
		return Order{}, ErrMalformedOrder
	}

	lang := raw.LanguageCode
	if lang == "" {
		lang = sess.Language
	}

	o := Order{
		LanguageCode:  lang,
		BusinessID:    sess.BusinessID,
		CustomerID:    sess.CustomerID,
		BusinessPhone: raw.BusinessPhone,
		CustomerPhone: raw.CustomerPhone,
		Items:         make([]Item, 0, len(*raw.Items)),
	}

	for _, ri := range *raw.Items {
		it := Item{
			ItemID:    ri.ItemID,
			Name:      ri.Name,
			BasePrice: ri.BasePrice,
			Price:     ri.Price,
			Quantity:  1,
			Options:   ri.Options,
			Modifiers: make([]Modifier, 0, len(ri.Modifiers)),
		}
		if ri.Quantity != nil {
			it.Quantity = *ri.Quantity
		}
		if ri.Note != nil {
			it.Note = *ri.Note
		}
		if it.Options == nil {
			it.Options = []map[string]any{}
		}
		for _, rm := range ri.Modifiers {
			m := Modifier{
				ModifierID:      rm.ModifierID,
				ModifierGroupID: rm.ModifierGroupID,
				Name:            rm.Name,
				PriceDelta:      rm.PriceDelta,
				Quantity:        1,
				IsActive:        true,
			}
			if rm.Quantity != nil {
				m.Quantity = *rm.Quantity
			}
			if rm.IsActive != nil {
				m.IsActive = *rm.IsActive
			}
			it.Modifiers = append(it.Modifiers, m)
		}
		o.Items = append(o.Items, it)
	}
	return o, nil
}

// Raw converts a normalized Order back into the payload shape, mainly so
// callers can re-submit or inspect what normalization produced.
func (o Order) Raw() RawOrder {
	items := make([]RawItem, 0, len(o.Items))
	for _, it := range o.Items {
		qty := it.Quantity
		note := it.Note
		ri := RawItem{
			ItemID:    it.ItemID,
			Name:      it.Name,
			BasePrice: it.BasePrice,
			Price:     it.Price,
			Quantity:  &qty,
			Note:      &note,
			Options:   it.Options,
			Modifiers: make([]RawModifier, 0, len(it.Modifiers)),
		}
		for _, m := range it.Modifiers {
			mqty := m.Quantity
			active := m.IsActive
			ri.Modifiers = append(ri.Modifiers, RawModifier{
				ModifierID:      m.ModifierID,
				ModifierGroupID: m.ModifierGroupID,
				Name:            m.Name,
				PriceDelta:      m.PriceDelta,
				Quantity:        &mqty,
				IsActive:        &active,
			})
		}
		items = append(items, ri)
	}
	return RawOrder{
		LanguageCode:  o.LanguageCode,
		BusinessID:    o.BusinessID,
		CustomerID:    o.CustomerID,
		BusinessPhone: o.BusinessPhone,
		CustomerPhone: o.CustomerPhone,
		Items:         &items,
	}
}
