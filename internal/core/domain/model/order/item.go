package order

import (
	"fmt"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const maxItemNameLength = 255

// ItemDetails carries the caller-supplied fields of a line item.
type ItemDetails struct {
	AssetID     *int64
	CategoryID  *int64
	Name        string
	Description *string
	Quantity    int
	UnitPrice   *decimal.Decimal
	TotalPrice  *decimal.Decimal
	Notes       *string
}

// Item is a line item of an order. Quantity is at least 1 and, whenever a
// unit price is known, the total price equals unit price × quantity.
type Item struct {
	id          int64
	assetID     *int64
	categoryID  *int64
	name        string
	description *string
	quantity    int
	unitPrice   *decimal.Decimal
	totalPrice  *decimal.Decimal
	notes       *string
	createdAt   time.Time
}

// NewItem validates details and derives the total price from the unit price
// when the caller left it out. A supplied total that disagrees with
// unit price × quantity is rejected.
func NewItem(details ItemDetails, now time.Time) (*Item, error) {
	name := strings.TrimSpace(details.Name)
	if name == "" {
		return nil, errs.NewValueIsRequiredError("item name")
	}
	if len(name) > maxItemNameLength {
		return nil, errs.NewValueIsOutOfRangeError("item name length", len(name), 1, maxItemNameLength)
	}
	if details.Quantity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", details.Quantity, 1, "unbounded")
	}
	if err := kernel.ValidateAmount("unit price", details.UnitPrice); err != nil {
		return nil, err
	}
	if err := kernel.ValidateAmount("total price", details.TotalPrice); err != nil {
		return nil, err
	}

	total := details.TotalPrice
	if details.UnitPrice != nil {
		expected := details.UnitPrice.Mul(decimal.NewFromInt(int64(details.Quantity)))
		if total != nil && !total.Equal(expected) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"total price",
				fmt.Errorf("%s is not %s × %d", total, details.UnitPrice, details.Quantity),
			)
		}
		total = &expected
	}

	return &Item{
		assetID:     details.AssetID,
		categoryID:  details.CategoryID,
		name:        name,
		description: details.Description,
		quantity:    details.Quantity,
		unitPrice:   details.UnitPrice,
		totalPrice:  total,
		notes:       details.Notes,
		createdAt:   now.UTC(),
	}, nil
}

// RestoreItem rebuilds a persisted item without re-deriving its total.
func RestoreItem(id int64, details ItemDetails, createdAt time.Time) *Item {
	return &Item{
		id:          id,
		assetID:     details.AssetID,
		categoryID:  details.CategoryID,
		name:        details.Name,
		description: details.Description,
		quantity:    details.Quantity,
		unitPrice:   details.UnitPrice,
		totalPrice:  details.TotalPrice,
		notes:       details.Notes,
		createdAt:   createdAt,
	}
}

func (i *Item) ID() int64                    { return i.id }
func (i *Item) AssetID() *int64              { return i.assetID }
func (i *Item) CategoryID() *int64           { return i.categoryID }
func (i *Item) Name() string                 { return i.name }
func (i *Item) Description() *string         { return i.description }
func (i *Item) Quantity() int                { return i.quantity }
func (i *Item) UnitPrice() *decimal.Decimal  { return i.unitPrice }
func (i *Item) TotalPrice() *decimal.Decimal { return i.totalPrice }
func (i *Item) Notes() *string               { return i.notes }
func (i *Item) CreatedAt() time.Time         { return i.createdAt }

// AssignID is called by the repository once the row has an identity.
func (i *Item) AssignID(id int64) {
	i.id = id
}
