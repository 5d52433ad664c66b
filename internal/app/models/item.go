package models

import "time"

// Item represents a single group-buy listing.
//
// The deadline is fixed at creation: participants cannot join after it, and
// the item service refuses to change it afterwards. Deleting an item through
// the API only flips IsDeleted; a physical delete cascades to contents,
// comments and option categories.
type Item struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Title        string     `json:"title" db:"title" example:"Hoodie group order"`
	HostID       int64      `json:"hostId" db:"host_id" example:"1"`
	Price        int64      `json:"price" db:"price" example:"15000"` // smallest currency unit
	JoinType     JoinType   `json:"joinType" db:"join_type" example:"OPEN"`
	CreatedDate  time.Time  `json:"createdDate" db:"created_date"`
	Deadline     time.Time  `json:"deadline" db:"deadline"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty" db:"delivery_date"`
	IsDeleted    bool       `json:"isDeleted" db:"is_deleted"`

	// Related entities
	Host             *User             `json:"host,omitempty"`
	Contents         []*Content        `json:"contents,omitempty"`
	OptionCategories []*OptionCategory `json:"optionCategories,omitempty"`
}

// Joinable reports whether a participant may join the item at time t.
func (i *Item) Joinable(t time.Time) bool {
	return !i.IsDeleted && i.JoinType == JoinTypeOpen && t.Before(i.Deadline)
}
