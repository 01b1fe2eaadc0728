package order

import (
	"strings"
	"time"

	"procurement/internal/pkg/errs"
)

// Comment is a note attached to an order. It is owned by its author.
type Comment struct {
	id         int64
	orderID    int64
	authorID   int64
	text       string
	isInternal bool
	createdAt  time.Time
	updatedAt  time.Time
}

// NewComment validates and creates a comment written by authorID.
func NewComment(orderID, authorID int64, text string, isInternal bool, now time.Time) (*Comment, error) {
	text = strings.TrimSpace(text)
	if orderID <= 0 {
		return nil, errs.NewValueIsRequiredError("order")
	}
	if authorID <= 0 {
		return nil, errs.NewValueIsRequiredError("author")
	}
	if text == "" {
		return nil, errs.NewValueIsRequiredError("comment")
	}

	now = now.UTC()
	return &Comment{
		orderID:    orderID,
		authorID:   authorID,
		text:       text,
		isInternal: isInternal,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// RestoreComment rebuilds a persisted comment.
func RestoreComment(id, orderID, authorID int64, text string, isInternal bool, createdAt, updatedAt time.Time) *Comment {
	return &Comment{
		id:         id,
		orderID:    orderID,
		authorID:   authorID,
		text:       text,
		isInternal: isInternal,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (c *Comment) ID() int64            { return c.id }
func (c *Comment) OrderID() int64       { return c.orderID }
func (c *Comment) AuthorID() int64      { return c.authorID }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) IsInternal() bool     { return c.isInternal }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
func (c *Comment) UpdatedAt() time.Time { return c.updatedAt }

// IsAuthoredBy reports comment ownership.
func (c *Comment) IsAuthoredBy(userID int64) bool {
	return c.authorID == userID
}

// AssignID is called by the repository once the row has an identity.
func (c *Comment) AssignID(id int64) {
	c.id = id
}

// Edit replaces the text and, when isInternal is not nil, the visibility flag.
func (c *Comment) Edit(text string, isInternal *bool, now time.Time) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errs.NewValueIsRequiredError("comment")
	}

	c.text = text
	if isInternal != nil {
		c.isInternal = *isInternal
	}
	c.updatedAt = now.UTC()
	return nil
}
