package dto

import (
	"time"

	"github.com/jaeho/gongu/internal/app/models"
)

// CreateItemRequest is the payload for creating an item
type CreateItemRequest struct {
	Title        string     `json:"title" binding:"required,max=100" example:"Hoodie group order"`
	Price        int64      `json:"price" binding:"min=0" example:"15000"`
	JoinType     string     `json:"joinType" binding:"required,jointype" example:"OPEN"`
	Deadline     time.Time  `json:"deadline" binding:"required"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
}

// UpdateItemRequest is the payload for updating an item. The deadline is
// fixed at creation and intentionally absent here.
type UpdateItemRequest struct {
	Title        string     `json:"title" binding:"required,max=100"`
	Price        int64      `json:"price" binding:"min=0"`
	JoinType     string     `json:"joinType" binding:"required,jointype"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
}

// CreateContentRequest is the payload for adding a content block to an item.
// For IMAGE contents the image file travels as multipart form data instead
// of a JSON body field.
type CreateContentRequest struct {
	Type     string  `json:"type" binding:"required,contenttype" example:"TEXT"`
	Content  *string `json:"content,omitempty"`
	Link     *string `json:"link,omitempty"`
	IsHidden bool    `json:"isHidden"`
}

// UpdateContentRequest is the payload for updating a content block
type UpdateContentRequest struct {
	Content  *string `json:"content,omitempty"`
	Link     *string `json:"link,omitempty"`
	IsHidden *bool   `json:"isHidden,omitempty"`
	Ord      *int    `json:"ord,omitempty" binding:"omitempty,min=1"`
}

// CreateCommentRequest is the payload for posting a comment
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required" example:"count me in"`
}

// CreateOptionCategoryRequest is the payload for adding an option category
type CreateOptionCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Size"`
}

// CreateOptionItemRequest is the payload for adding an option item
type CreateOptionItemRequest struct {
	Name       string `json:"name" binding:"required,max=100" example:"XL"`
	PriceDelta int64  `json:"priceDelta" example:"2000"`
}

// CreateRecordRequest is the payload for joining an item
type CreateRecordRequest struct {
	OptionItemIDs []int64 `json:"optionItemIds"`
	Quantity      int     `json:"quantity" binding:"required,min=1" example:"2"`
}

// UpdatePaymentStatusRequest advances a payment's lifecycle state
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,paystatus" example:"JOINED"`
}

// RecordResponse is a record together with its derived cost
type RecordResponse struct {
	Record *models.Record `json:"record"`
	Cost   int64          `json:"cost" example:"2400"`
}

// UserLogResponse is a log entry together with its rendered summary
type UserLogResponse struct {
	Log    *models.UserLog `json:"log"`
	Pretty string          `json:"pretty"`
}
