// Package orderrepo persists the order aggregate: the orders row and its
// line items.
package orderrepo

import (
	"time"

	"procurement/internal/adapters/out/postgres/referencerepo"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the orders table. Items, comments, documents and history rows
// reference it with ON DELETE CASCADE.
type OrderDTO struct {
	ID              int64            `gorm:"primaryKey"`
	OrderNumber     string           `gorm:"size:50;uniqueIndex;not null"`
	OrderTypeID     *int64           `gorm:"index"`
	StatusID        int64            `gorm:"index;not null"`
	RequesterID     int64            `gorm:"index;not null"`
	DepartmentID    *int64           `gorm:"index"`
	Title           string           `gorm:"size:255;not null"`
	Description     *string          `gorm:"type:text"`
	Priority        string           `gorm:"size:20;not null;default:medium"`
	EstimatedAmount *decimal.Decimal `gorm:"type:numeric(18,2)"`
	Currency        string           `gorm:"size:3;not null;default:GEL"`
	RequestedDate   time.Time        `gorm:"type:date;not null"`
	RequiredByDate  *time.Time       `gorm:"type:date"`
	ApprovedDate    *time.Time
	CompletedDate   *time.Time
	CreatedBy       *int64
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
	Version         int64          `gorm:"not null;default:1"`
	Metadata        datatypes.JSON `gorm:"type:jsonb"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Status     *referencerepo.OrderStatusDTO `gorm:"foreignKey:StatusID"`
	OrderType  *referencerepo.OrderTypeDTO   `gorm:"foreignKey:OrderTypeID"`
	Department *referencerepo.DepartmentDTO  `gorm:"foreignKey:DepartmentID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	ID          int64            `gorm:"primaryKey"`
	OrderID     int64            `gorm:"index;not null"`
	AssetID     *int64           `gorm:"index"`
	CategoryID  *int64           `gorm:"index"`
	Name        string           `gorm:"size:255;not null"`
	Description *string          `gorm:"type:text"`
	Quantity    int              `gorm:"not null"`
	UnitPrice   *decimal.Decimal `gorm:"type:numeric(18,2)"`
	TotalPrice  *decimal.Decimal `gorm:"type:numeric(18,2)"`
	Notes       *string          `gorm:"type:text"`
	CreatedAt   time.Time
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	dto := OrderDTO{
		ID:              o.ID(),
		OrderNumber:     o.Number().String(),
		OrderTypeID:     d.OrderTypeID,
		StatusID:        int64(o.Status()),
		RequesterID:     o.RequesterID(),
		DepartmentID:    d.DepartmentID,
		Title:           d.Title,
		Description:     d.Description,
		Priority:        d.Priority.String(),
		EstimatedAmount: d.EstimatedAmount,
		Currency:        string(d.Currency),
		RequestedDate:   d.RequestedDate,
		RequiredByDate:  d.RequiredByDate,
		ApprovedDate:    o.ApprovedDate(),
		CompletedDate:   o.CompletedDate(),
		CreatedBy:       o.CreatedBy(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
		Metadata:        datatypes.JSON(d.Metadata),
	}

	dto.Items = make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID(),
			OrderID:     o.ID(),
			AssetID:     item.AssetID(),
			CategoryID:  item.CategoryID(),
			Name:        item.Name(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			TotalPrice:  item.TotalPrice(),
			Notes:       item.Notes(),
			CreatedAt:   item.CreatedAt(),
		})
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]*order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.RestoreItem(item.ID, order.ItemDetails{
			AssetID:     item.AssetID,
			CategoryID:  item.CategoryID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Notes:       item.Notes,
		}, item.CreatedAt))
	}

	var metadata []byte
	if len(dto.Metadata) > 0 {
		metadata = []byte(dto.Metadata)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          dto.ID,
		Number:      dto.OrderNumber,
		Status:      order.Status(dto.StatusID),
		RequesterID: dto.RequesterID,
		Details: order.Details{
			OrderTypeID:     dto.OrderTypeID,
			DepartmentID:    dto.DepartmentID,
			Title:           dto.Title,
			Description:     dto.Description,
			Priority:        order.Priority(dto.Priority),
			EstimatedAmount: dto.EstimatedAmount,
			Currency:        kernel.Currency(dto.Currency),
			RequestedDate:   dto.RequestedDate.UTC(),
			RequiredByDate:  dto.RequiredByDate,
			Metadata:        metadata,
		},
		ApprovedDate:  dto.ApprovedDate,
		CompletedDate: dto.CompletedDate,
		CreatedBy:     dto.CreatedBy,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		Version:       dto.Version,
		Items:         items,
	})
}
