// Package referencerepo maps the administrator-managed reference tables the
// engine reads: order statuses, order types and departments.
package referencerepo

import (
	"time"

	"procurement/internal/core/domain/model/order"
)

// OrderStatusDTO is a row of the status vocabulary. Its ID equals the
// numeric value of order.Status so that status_id columns can be mapped
// without a lookup.
type OrderStatusDTO struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false"`
	Code     string `gorm:"size:50;uniqueIndex;not null"`
	Name     string `gorm:"size:100;not null"`
	NameKa   string `gorm:"size:100"`
	Color    string `gorm:"size:20"`
	OrderSeq int    `gorm:"not null;default:0"`
	IsActive bool   `gorm:"not null;default:true"`
}

func (OrderStatusDTO) TableName() string {
	return "order_statuses"
}

type OrderTypeDTO struct {
	ID               int64  `gorm:"primaryKey"`
	Code             string `gorm:"size:50;uniqueIndex;not null"`
	Name             string `gorm:"size:100;not null"`
	NameKa           string `gorm:"size:100"`
	RequiresApproval bool   `gorm:"not null;default:true"`
	ApprovalLevels   int    `gorm:"not null;default:1"`
	IsActive         bool   `gorm:"not null;default:true"`
	CreatedAt        time.Time
}

func (OrderTypeDTO) TableName() string {
	return "order_types"
}

type DepartmentDTO struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (DepartmentDTO) TableName() string {
	return "departments"
}

// statusCatalog is the seeded vocabulary; names and colors follow the
// workflow's conventional presentation.
var statusCatalog = []OrderStatusDTO{
	{ID: int64(order.Pending), Code: order.Pending.String(), Name: "Pending", NameKa: "მოლოდინში", Color: "#f59e0b", OrderSeq: 1},
	{ID: int64(order.Review), Code: order.Review.String(), Name: "In review", NameKa: "განხილვაში", Color: "#3b82f6", OrderSeq: 2},
	{ID: int64(order.Approved), Code: order.Approved.String(), Name: "Approved", NameKa: "დამტკიცებული", Color: "#10b981", OrderSeq: 3},
	{ID: int64(order.Completed), Code: order.Completed.String(), Name: "Completed", NameKa: "დასრულებული", Color: "#059669", OrderSeq: 4},
	{ID: int64(order.Cancelled), Code: order.Cancelled.String(), Name: "Cancelled", NameKa: "გაუქმებული", Color: "#6b7280", OrderSeq: 5},
	{ID: int64(order.Rejected), Code: order.Rejected.String(), Name: "Rejected", NameKa: "უარყოფილი", Color: "#ef4444", OrderSeq: 6},
	{ID: int64(order.Archived), Code: order.Archived.String(), Name: "Archived", NameKa: "დაარქივებული", Color: "#9ca3af", OrderSeq: 7},
}

// StatusCatalog returns a copy of the seeded status rows.
func StatusCatalog() []OrderStatusDTO {
	return append([]OrderStatusDTO(nil), statusCatalog...)
}
