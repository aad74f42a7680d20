package order

import "github.com/shopspring/decimal"

// Order is a normalized, priced-ready order. CustomerID and BusinessID are
// always the identities resolved from the call session, never the ones the
// caller sent.
type Order struct {
	LanguageCode  string `json:"language_code"`
	BusinessID    int    `json:"business_id"`
	CustomerID    int    `json:"customer_id"`
	BusinessPhone string `json:"business_phone"`
	CustomerPhone string `json:"customer_phone"`
	Items         []Item `json:"items"`
}

type Item struct {
	ItemID int    `json:"item_id"`
	Name   string `json:"name"`
	// Upstream catalogs disagree on the field name; pricing falls back to
	// Price when BasePrice is absent.
	BasePrice *decimal.Decimal `json:"base_price,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Quantity  int              `json:"quantity"`
	Note      string           `json:"note"`
	Options   []map[string]any `json:"options"`
	Modifiers []Modifier       `json:"modifiers"`
}

type Modifier struct {
	ModifierID      int             `json:"modifier_id"`
	ModifierGroupID int             `json:"modifier_group_id"`
	Name            string          `json:"name"`
	PriceDelta      decimal.Decimal `json:"price_delta"`
	Quantity        int             `json:"quantity"`
	IsActive        bool            `json:"is_active"`
}

type LineKind string

const (
	LineItem     LineKind = "item"
	LineModifier LineKind = "modifier"
	LineNote     LineKind = "note"
)

// Line is one priced row of an order, in item-then-modifier-then-note
// traversal order. Note lines carry the note text in Name and no amounts.
type Line struct {
	Kind      LineKind        `json:"kind"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// PricedOrder is an Order with computed amounts. Subtotal is the exact
// unrounded sum of line contributions; Tax and GrandTotal are rounded
// half-up to two decimal places.
type PricedOrder struct {
	Order
	Lines      []Line          `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}
