// Package documentrepo persists metadata of files attached to orders. The
// contents live in the file store under FilePath.
package documentrepo

import (
	"time"

	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/core/domain/model/order"
)

type DocumentDTO struct {
	ID          int64     `gorm:"primaryKey"`
	OrderID     int64     `gorm:"index;not null"`
	FileName    string    `gorm:"size:255;not null"`
	FilePath    string    `gorm:"size:500;not null"`
	FileSize    int64     `gorm:"not null"`
	MimeType    string    `gorm:"size:100"`
	Description *string   `gorm:"type:text"`
	UploadedBy  int64     `gorm:"index;not null"`
	UploadedAt  time.Time `gorm:"not null"`
	UpdatedAt   time.Time

	Order *orderrepo.OrderDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (DocumentDTO) TableName() string {
	return "order_documents"
}

func fromDomain(d *order.Document) DocumentDTO {
	f := d.File()
	return DocumentDTO{
		ID:          d.ID(),
		OrderID:     d.OrderID(),
		FileName:    f.Name,
		FilePath:    f.Reference,
		FileSize:    f.Size,
		MimeType:    f.ContentType,
		Description: d.Description(),
		UploadedBy:  d.UploadedBy(),
		UploadedAt:  d.UploadedAt(),
		UpdatedAt:   d.UpdatedAt(),
	}
}

func toDomain(dto DocumentDTO) *order.Document {
	return order.RestoreDocument(
		dto.ID, dto.OrderID, dto.UploadedBy,
		order.StoredFile{Name: dto.FileName, Reference: dto.FilePath, Size: dto.FileSize, ContentType: dto.MimeType},
		dto.Description, dto.UploadedAt, dto.UpdatedAt,
	)
}
