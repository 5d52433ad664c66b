package models

// Payment aggregates what one participant owes for one item: the sum of all
// of their record costs. There is at most one payment per (item, participant)
// pair. Status advances forward only; the schema stores a plain column and
// the payment service rejects backward transitions.
type Payment struct {
	ID            int64         `json:"id" db:"id"`
	ItemID        int64         `json:"itemId" db:"item_id"`
	ParticipantID int64         `json:"participantId" db:"participant_id"`
	Total         int64         `json:"total" db:"total" example:"30000"`
	Status        PaymentStatus `json:"status" db:"status" example:"PENDING"`

	// Related entities
	Participant *User `json:"participant,omitempty"`
}
