// Package queries contains the read side of the workflow engine. Handlers
// run SQL directly against the store and return flat read models; every
// query that touches an order applies the same visibility rule as the
// order policy.
package queries

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusRef names a status the way the client displays it.
type StatusRef struct {
	ID     int64
	Code   string
	Name   string
	NameKa string
}

// OrderSummary is one row of the order list.
type OrderSummary struct {
	ID              int64
	OrderNumber     string
	Title           string
	Description     *string
	Priority        string
	Status          StatusRef
	OrderTypeID     *int64
	RequesterID     int64
	DepartmentID    *int64
	EstimatedAmount *decimal.Decimal
	Currency        string
	RequestedDate   time.Time
	RequiredByDate  *time.Time
	CreatedAt       time.Time
	ItemsCount      int
}

// OrderDetail is a single order with everything attached to it.
type OrderDetail struct {
	ID              int64
	OrderNumber     string
	OrderTypeID     *int64
	OrderTypeName   *string
	OrderTypeNameKa *string
	Status          StatusRef
	RequesterID     int64
	DepartmentID    *int64
	DepartmentName  *string
	Title           string
	Description     *string
	Priority        string
	EstimatedAmount *decimal.Decimal
	Currency        string
	RequestedDate   time.Time
	RequiredByDate  *time.Time
	ApprovedDate    *time.Time
	CompletedDate   *time.Time
	CreatedBy       *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	// Metadata is the opaque JSON stored with the order, nil when absent.
	Metadata []byte

	Items     []ItemView
	Documents []DocumentView
	Comments  []CommentView
	History   []HistoryEntryView
}

type ItemView struct {
	ID          int64
	OrderID     int64
	AssetID     *int64
	CategoryID  *int64
	Name        string
	Description *string
	Quantity    int
	UnitPrice   *decimal.Decimal
	TotalPrice  *decimal.Decimal
	Notes       *string
	CreatedAt   time.Time
}

type DocumentView struct {
	ID          int64
	OrderID     int64
	FileName    string
	FileSize    int64
	MimeType    string
	Description *string
	UploadedBy  int64
	UploadedAt  time.Time
}

type CommentView struct {
	ID         int64
	OrderID    int64
	UserID     int64
	Comment    string
	IsInternal bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HistoryEntryView is a workflow entry with both statuses resolved to names.
// From is nil for the creation entry.
type HistoryEntryView struct {
	ID        int64
	From      *StatusRef
	To        StatusRef
	ChangedBy int64
	ChangedAt time.Time
	Comments  *string
}

type OrderTypeView struct {
	ID               int64
	Code             string
	Name             string
	NameKa           string
	RequiresApproval bool
	ApprovalLevels   int
}

type OrderStatusView struct {
	ID       int64
	Code     string
	Name     string
	NameKa   string
	Color    string
	OrderSeq int
}

// ItemSearchResult is an item of an earlier order, offered when filling in a
// new one.
type ItemSearchResult struct {
	ID          int64
	OrderID     int64
	OrderNumber string
	Name        string
	Quantity    int
	UnitPrice   *decimal.Decimal
	TotalPrice  *decimal.Decimal
	CreatedAt   time.Time
}
