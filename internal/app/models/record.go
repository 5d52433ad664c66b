package models

// Record is one participant's concrete order against an item: a set of
// selected option items plus a quantity.
//
// Business rule (enforced by the record service, not here): the selected
// options must cover each option category of the item exactly once.
type Record struct {
	ID            int64 `json:"id" db:"id"`
	ParticipantID int64 `json:"participantId" db:"participant_id"`
	ItemID        int64 `json:"itemId" db:"item_id"`
	Quantity      int   `json:"quantity" db:"quantity" example:"2"`

	// Related entities
	Options     []*OptionItem `json:"options,omitempty"`
	Participant *User         `json:"participant,omitempty"`
}

/// Cost returns the total cost of the record: the item base price plus every
// selected option's price delta, multiplied by the quantity. No validation
// of the selection is performed here; callers are responsible for ensuring
// the options span the item's categories.
func (r *Record) Cost(basePrice int64) int64 {
	price := basePrice
	for _, opt := range r.Options {
		price += opt.PriceDelta
	}
	return price * int64(r.Quantity)
}
