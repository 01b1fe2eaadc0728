package order

import (
	"strings"
	"time"

	"procurement/internal/pkg/errs"
)

const maxFileNameLength = 255

// StoredFile describes a file accepted by the file store.
type StoredFile struct {
	Name        string
	Reference   string
	Size        int64
	ContentType string
}

// Document is a file attached to an order. It is owned by its uploader.
type Document struct {
	id          int64
	orderID     int64
	file        StoredFile
	description *string
	uploadedBy  int64
	uploadedAt  time.Time
	updatedAt   time.Time
}

// NewDocument records a file that was already saved to the file store.
func NewDocument(orderID, uploadedBy int64, file StoredFile, description *string, now time.Time) (*Document, error) {
	file.Name = strings.TrimSpace(file.Name)
	switch {
	case orderID <= 0:
		return nil, errs.NewValueIsRequiredError("order")
	case uploadedBy <= 0:
		return nil, errs.NewValueIsRequiredError("uploader")
	case file.Name == "":
		return nil, errs.NewValueIsRequiredError("file name")
	case len(file.Name) > maxFileNameLength:
		return nil, errs.NewValueIsOutOfRangeError("file name length", len(file.Name), 1, maxFileNameLength)
	case file.Reference == "":
		return nil, errs.NewValueIsRequiredError("file reference")
	case file.Size < 0:
		return nil, errs.NewValueIsOutOfRangeError("file size", file.Size, 0, "unbounded")
	}

	now = now.UTC()
	return &Document{
		orderID:     orderID,
		file:        file,
		description: description,
		uploadedBy:  uploadedBy,
		uploadedAt:  now,
		updatedAt:   now,
	}, nil
}

// RestoreDocument rebuilds a persisted document.
func RestoreDocument(
	id, orderID, uploadedBy int64,
	file StoredFile,
	description *string,
	uploadedAt, updatedAt time.Time,
) *Document {
	return &Document{
		id:          id,
		orderID:     orderID,
		file:        file,
		description: description,
		uploadedBy:  uploadedBy,
		uploadedAt:  uploadedAt,
		updatedAt:   updatedAt,
	}
}

func (d *Document) ID() int64             { return d.id }
func (d *Document) OrderID() int64        { return d.orderID }
func (d *Document) File() StoredFile      { return d.file }
func (d *Document) Description() *string  { return d.description }
func (d *Document) UploadedBy() int64     { return d.uploadedBy }
func (d *Document) UploadedAt() time.Time { return d.uploadedAt }
func (d *Document) UpdatedAt() time.Time  { return d.updatedAt }

// IsUploadedBy reports document ownership.
func (d *Document) IsUploadedBy(userID int64) bool {
	return d.uploadedBy == userID
}

// AssignID is called by the repository once the row has an identity.
func (d *Document) AssignID(id int64) {
	d.id = id
}

// Describe replaces the document description. Only metadata is editable:
// the stored file never changes.
func (d *Document) Describe(description *string, now time.Time) {
	d.description = description
	d.updatedAt = now.UTC()
}
