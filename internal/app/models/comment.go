package models

import "time"

// Comment represents a single comment on an item.
// CreatedDate is set once on insert and never updated.
type Comment struct {
	ID          int64     `json:"id" db:"id"`
	ItemID      int64     `json:"itemId" db:"item_id"`
	WriterID    int64     `json:"writerId" db:"writer_id"`
	Content     string    `json:"content" db:"content"`
	CreatedDate time.Time `json:"createdDate" db:"created_date"`
	IsDeleted   bool      `json:"isDeleted" db:"is_deleted"`

	// Related entities
	Writer *User `json:"writer,omitempty"`
}
