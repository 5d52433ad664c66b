package models

// OptionCategory groups mutually exclusive option items of an item,
// e.g. "Size" with items "S", "M", "L".
type OptionCategory struct {
	ID     int64  `json:"id" db:"id"`
	ItemID int64  `json:"itemId" db:"item_id"`
	Name   string `json:"name" db:"name" example:"Size"`

	// Related entities
	OptionItems []*OptionItem `json:"optionItems,omitempty"`
}

// OptionItem is a selectable choice within an option category. PriceDelta is
// a signed amount added to the item's base price.
type OptionItem struct {
	ID         int64  `json:"id" db:"id"`
	CategoryID int64  `json:"categoryId" db:"category_id"`
	Name       string `json:"name" db:"name" example:"XL"`
	PriceDelta int64  `json:"priceDelta" db:"price_delta" example:"2000"`
}
