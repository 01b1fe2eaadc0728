// Package commentrepo persists order comments.
package commentrepo

import (
	"time"

	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/core/domain/model/order"
)

type CommentDTO struct {
	ID         int64     `gorm:"primaryKey"`
	OrderID    int64     `gorm:"index;not null"`
	UserID     int64     `gorm:"index;not null"`
	Comment    string    `gorm:"type:text;not null"`
	IsInternal bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time

	Order *orderrepo.OrderDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (CommentDTO) TableName() string {
	return "order_comments"
}

func fromDomain(c *order.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		OrderID:    c.OrderID(),
		UserID:     c.AuthorID(),
		Comment:    c.Text(),
		IsInternal: c.IsInternal(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

func toDomain(dto CommentDTO) *order.Comment {
	return order.RestoreComment(dto.ID, dto.OrderID, dto.UserID, dto.Comment, dto.IsInternal, dto.CreatedAt, dto.UpdatedAt)
}
