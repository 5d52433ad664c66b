package models

// Content represents a text, image or video block of an item page.
//
// Ord is the 1-based position among the item's contents. Exactly one of
// Content, Image and Link should be populated, matching Type; the schema
// leaves all three nullable, so the content service enforces the pairing.
type Content struct {
	ID       int64       `json:"id" db:"id"`
	ItemID   int64       `json:"itemId" db:"item_id"`
	Ord      int         `json:"ord" db:"ord"`
	Type     ContentType `json:"type" db:"type" example:"TEXT"`
	Content  *string     `json:"content,omitempty" db:"content"` // text body (TEXT)
	Image    *string     `json:"image,omitempty" db:"image"`     // stored image path (IMAGE)
	Link     *string     `json:"link,omitempty" db:"link"`       // video URL (VIDEO)
	IsHidden bool        `json:"isHidden" db:"is_hidden"`
}

// Payload returns the populated payload field for the content's type.
func (c *Content) Payload() *string {
	switch c.Type {
	case ContentTypeText:
		return c.Content
	case ContentTypeImage:
		return c.Image
	case ContentTypeVideo:
		return c.Link
	}
	return nil
}

// PayloadMatchesType reports whether exactly the payload field matching the
// declared type is populated and the other two are empty.
func (c *Content) PayloadMatchesType() bool {
	set := func(s *string) bool { return s != nil && *s != "" }

	switch c.Type {
	case ContentTypeText:
		return set(c.Content) && !set(c.Image) && !set(c.Link)
	case ContentTypeImage:
		return set(c.Image) && !set(c.Content) && !set(c.Link)
	case ContentTypeVideo:
		return set(c.Link) && !set(c.Content) && !set(c.Image)
	}
	return false
}
