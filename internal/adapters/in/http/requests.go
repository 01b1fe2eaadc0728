package http

import (
	"encoding/json"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type itemRequest struct {
	AssetID     *int64           `json:"asset_id" validate:"omitempty,gt=0"`
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
	Name        string           `json:"name" validate:"required,max=255"`
	Description *string          `json:"description"`
	Quantity    int              `json:"quantity" validate:"required,gte=1"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TotalPrice  *decimal.Decimal `json:"total_price"`
	Notes       *string          `json:"notes"`
}

type createOrderRequest struct {
	OrderTypeID     *int64           `json:"order_type_id" validate:"required,gt=0"`
	DepartmentID    *int64           `json:"department_id" validate:"omitempty,gt=0"`
	Title           string           `json:"title" validate:"required,max=255"`
	Description     *string          `json:"description"`
	Priority        string           `json:"priority"`
	EstimatedAmount *decimal.Decimal `json:"estimated_amount"`
	Currency        string           `json:"currency" validate:"omitempty,len=3"`
	RequestedDate   *string          `json:"requested_date" validate:"omitempty,datetime=2006-01-02"`
	RequiredByDate  *string          `json:"required_by_date" validate:"omitempty,datetime=2006-01-02"`
	Metadata        json.RawMessage  `json:"metadata"`
	Items           []itemRequest    `json:"items" validate:"dive"`
}

// toDomain converts the request into order details and item details.
// Priority and currency are normalised here so the aggregate stores
// canonical codes.
func (r createOrderRequest) toDomain() (order.Details, []order.ItemDetails, error) {
	priority, err := order.ParsePriority(r.Priority)
	if err != nil {
		return order.Details{}, nil, err
	}
	currency, err := kernel.NewCurrency(r.Currency)
	if err != nil {
		return order.Details{}, nil, err
	}

	details := order.Details{
		OrderTypeID:     r.OrderTypeID,
		DepartmentID:    r.DepartmentID,
		Title:           r.Title,
		Description:     r.Description,
		Priority:        priority,
		EstimatedAmount: r.EstimatedAmount,
		Currency:        currency,
		Metadata:        r.Metadata,
	}
	if r.RequestedDate != nil {
		requested, parseErr := parseDate("requested date", *r.RequestedDate)
		if parseErr != nil {
			return order.Details{}, nil, parseErr
		}
		details.RequestedDate = requested
	}
	if details.RequiredByDate, err = parseOptionalDate("required by date", r.RequiredByDate); err != nil {
		return order.Details{}, nil, err
	}

	items := make([]order.ItemDetails, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, order.ItemDetails{
			AssetID:     item.AssetID,
			CategoryID:  item.CategoryID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Notes:       item.Notes,
		})
	}

	return details, items, nil
}

type updateOrderRequest struct {
	OrderTypeID     *int64           `json:"order_type_id" validate:"omitempty,gt=0"`
	DepartmentID    *int64           `json:"department_id" validate:"omitempty,gt=0"`
	Title           *string          `json:"title" validate:"omitempty,max=255"`
	Description     *string          `json:"description"`
	Priority        *string          `json:"priority"`
	EstimatedAmount *decimal.Decimal `json:"estimated_amount"`
	Currency        *string          `json:"currency" validate:"omitempty,len=3"`
	RequestedDate   *string          `json:"requested_date" validate:"omitempty,datetime=2006-01-02"`
	RequiredByDate  *string          `json:"required_by_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r updateOrderRequest) toPatch() (order.Patch, error) {
	patch := order.Patch{
		OrderTypeID:     r.OrderTypeID,
		DepartmentID:    r.DepartmentID,
		Title:           r.Title,
		Description:     r.Description,
		EstimatedAmount: r.EstimatedAmount,
	}

	if r.Priority != nil {
		priority, err := order.ParsePriority(*r.Priority)
		if err != nil {
			return order.Patch{}, err
		}
		patch.Priority = &priority
	}
	if r.Currency != nil {
		currency, err := kernel.NewCurrency(*r.Currency)
		if err != nil {
			return order.Patch{}, err
		}
		patch.Currency = &currency
	}

	var err error
	if patch.RequestedDate, err = parseOptionalDate("requested date", r.RequestedDate); err != nil {
		return order.Patch{}, err
	}
	if patch.RequiredByDate, err = parseOptionalDate("required by date", r.RequiredByDate); err != nil {
		return order.Patch{}, err
	}

	return patch, nil
}

type changeStatusRequest struct {
	Comments *string `json:"comments" validate:"omitempty,max=2000"`
}

type addCommentRequest struct {
	Comment    string `json:"comment" validate:"required,max=5000"`
	IsInternal bool   `json:"is_internal"`
}

type updateCommentRequest struct {
	Comment    string `json:"comment" validate:"required,max=5000"`
	IsInternal *bool  `json:"is_internal"`
}

type updateDocumentRequest struct {
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func parseDate(param, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return t, nil
}

func parseOptionalDate(param string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(param, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
