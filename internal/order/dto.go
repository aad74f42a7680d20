package order

import "github.com/shopspring/decimal"

// RawOrder is the order payload as the tool caller sent it. Pointer fields
// distinguish "absent" from "empty" so normalization can default them.
// swagger:model RawOrder
type RawOrder struct {
	LanguageCode  string     `json:"language_code" example:"en"`
	BusinessID    int        `json:"business_id"   example:"97"`
	CustomerID    int        `json:"customer_id"   example:"33"`
	BusinessPhone string     `json:"business_phone" example:"+15550100"`
	CustomerPhone string     `json:"customer_phone" example:"+15550123"`
	Items         *[]RawItem `json:"items"`
}

// swagger:model RawItem
type RawItem struct {
	ItemID    int              `json:"item_id"    example:"12"`
	Name      string           `json:"name"       example:"Chicken Shawarma"`
	BasePrice *decimal.Decimal `json:"base_price" example:"10.00"`
	Price     *decimal.Decimal `json:"price"      example:"10.00"`
	Quantity  *int             `json:"quantity"   example:"2"`
	Note      *string          `json:"note"       example:"no onions"`
	Options   []map[string]any `json:"options"`
	Modifiers []RawModifier    `json:"modifiers"`
}

// swagger:model RawModifier
type RawModifier struct {
	ModifierID      int             `json:"modifier_id"       example:"3"`
	ModifierGroupID int             `json:"modifier_group_id" example:"1"`
	Name            string          `json:"name"              example:"Extra Garlic Sauce"`
	PriceDelta      decimal.Decimal `json:"price_delta"       example:"1.50"`
	Quantity        *int            `json:"quantity"          example:"2"`
	IsActive        *bool           `json:"is_active"         example:"true"`
}
