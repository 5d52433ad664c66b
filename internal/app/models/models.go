package models

// JoinType controls whether new participants may join an item.
type JoinType string

const (
	JoinTypeOpen   JoinType = "OPEN"
	JoinTypeClosed JoinType = "CLOSED"
)

// Valid reports whether the join type is a known value.
func (j JoinType) Valid() bool {
	return j == JoinTypeOpen || j == JoinTypeClosed
}

// ContentType describes the payload kind of a content block.
type ContentType string

const (
	ContentTypeText  ContentType = "TEXT"
	ContentTypeImage ContentType = "IMAGE"
	ContentTypeVideo ContentType = "VIDEO"
)

// Valid reports whether the content type is a known value.
func (c ContentType) Valid() bool {
	return c == ContentTypeText || c == ContentTypeImage || c == ContentTypeVideo
}

// PaymentStatus is the lifecycle state of a payment.
// The lifecycle is monotonic: PENDING -> JOINED -> PAID.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusJoined  PaymentStatus = "JOINED"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

var paymentStatusRank = map[PaymentStatus]int{
	PaymentStatusPending: 0,
	PaymentStatusJoined:  1,
	PaymentStatusPaid:    2,
}

// Valid reports whether the payment status is a known value.
func (p PaymentStatus) Valid() bool {
	_, ok := paymentStatusRank[p]
	return ok
}

// CanAdvanceTo reports whether moving from the current status to next is a
// forward transition. Staying on the same status counts as forward.
func (p PaymentStatus) CanAdvanceTo(next PaymentStatus) bool {
	cur, ok := paymentStatusRank[p]
	if !ok {
		return false
	}
	nxt, ok := paymentStatusRank[next]
	if !ok {
		return false
	}
	return nxt >= cur
}
