package http

import (
	"encoding/json"
	"time"

	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type statusResponse struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name,omitempty"`
	NameKa string `json:"name_ka,omitempty"`
}

type itemResponse struct {
	ID          int64            `json:"id"`
	AssetID     *int64           `json:"asset_id"`
	CategoryID  *int64           `json:"category_id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TotalPrice  *decimal.Decimal `json:"total_price"`
	Notes       *string          `json:"notes"`
	CreatedAt   time.Time        `json:"created_at"`
}

// orderResponse is the state of an order right after a command changed it.
type orderResponse struct {
	ID              int64            `json:"id"`
	OrderNumber     string           `json:"order_number"`
	Status          statusResponse   `json:"status"`
	OrderTypeID     *int64           `json:"order_type_id"`
	RequesterID     int64            `json:"requester_id"`
	DepartmentID    *int64           `json:"department_id"`
	Title           string           `json:"title"`
	Description     *string          `json:"description"`
	Priority        string           `json:"priority"`
	EstimatedAmount *decimal.Decimal `json:"estimated_amount"`
	Currency        string           `json:"currency"`
	RequestedDate   string           `json:"requested_date"`
	RequiredByDate  *string          `json:"required_by_date"`
	ApprovedDate    *time.Time       `json:"approved_date"`
	CompletedDate   *time.Time       `json:"completed_date"`
	CreatedBy       *int64           `json:"created_by"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Version         int64            `json:"version"`
	Metadata        json.RawMessage  `json:"metadata,omitempty"`
	Items           []itemResponse   `json:"items,omitempty"`
	Warnings        []string         `json:"warnings,omitempty"`
}

func newOrderResponse(o *order.Order) orderResponse {
	d := o.Details()
	resp := orderResponse{
		ID:              o.ID(),
		OrderNumber:     o.Number().String(),
		Status:          statusResponse{ID: int64(o.Status()), Code: o.Status().String()},
		OrderTypeID:     d.OrderTypeID,
		RequesterID:     o.RequesterID(),
		DepartmentID:    d.DepartmentID,
		Title:           d.Title,
		Description:     d.Description,
		Priority:        d.Priority.String(),
		EstimatedAmount: d.EstimatedAmount,
		Currency:        string(d.Currency),
		RequestedDate:   d.RequestedDate.Format(dateLayout),
		RequiredByDate:  formatDate(d.RequiredByDate),
		ApprovedDate:    o.ApprovedDate(),
		CompletedDate:   o.CompletedDate(),
		CreatedBy:       o.CreatedBy(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
		Metadata:        d.Metadata,
	}
	for _, item := range o.Items() {
		resp.Items = append(resp.Items, itemResponse{
			ID:          item.ID(),
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
	return resp
}

type historyEntryResponse struct {
	ID        int64           `json:"id"`
	From      *statusResponse `json:"from_status"`
	To        statusResponse  `json:"to_status"`
	ChangedBy int64           `json:"changed_by"`
	ChangedAt time.Time       `json:"changed_at"`
	Comments  *string         `json:"comments"`
}

type statusChangeResponse struct {
	Order   orderResponse        `json:"order"`
	History historyEntryResponse `json:"history"`
}

func newStatusChangeResponse(o *order.Order, entry order.WorkflowEntry) statusChangeResponse {
	history := historyEntryResponse{
		ID:        entry.ID(),
		To:        statusResponse{ID: int64(entry.To()), Code: entry.To().String()},
		ChangedBy: entry.ChangedBy(),
		ChangedAt: entry.ChangedAt(),
		Comments:  entry.Comments(),
	}
	if from := entry.From(); from != nil {
		history.From = &statusResponse{ID: int64(*from), Code: from.String()}
	}
	return statusChangeResponse{Order: newOrderResponse(o), History: history}
}

type commentResponse struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"order_id"`
	UserID     int64     `json:"user_id"`
	Comment    string    `json:"comment"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newCommentResponse(c *order.Comment) commentResponse {
	return commentResponse{
		ID:         c.ID(),
		OrderID:    c.OrderID(),
		UserID:     c.AuthorID(),
		Comment:    c.Text(),
		IsInternal: c.IsInternal(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

type documentResponse struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"order_id"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	Description *string   `json:"description"`
	UploadedBy  int64     `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func newDocumentResponse(d *order.Document) documentResponse {
	return documentResponse{
		ID:          d.ID(),
		OrderID:     d.OrderID(),
		FileName:    d.File().Name,
		FileSize:    d.File().Size,
		MimeType:    d.File().ContentType,
		Description: d.Description(),
		UploadedBy:  d.UploadedBy(),
		UploadedAt:  d.UploadedAt(),
	}
}

// Read model mappings.

func statusRef(s queries.StatusRef) statusResponse {
	return statusResponse{ID: s.ID, Code: s.Code, Name: s.Name, NameKa: s.NameKa}
}

type orderSummaryResponse struct {
	ID              int64            `json:"id"`
	OrderNumber     string           `json:"order_number"`
	Title           string           `json:"title"`
	Description     *string          `json:"description"`
	Priority        string           `json:"priority"`
	Status          statusResponse   `json:"status"`
	OrderTypeID     *int64           `json:"order_type_id"`
	RequesterID     int64            `json:"requester_id"`
	DepartmentID    *int64           `json:"department_id"`
	EstimatedAmount *decimal.Decimal `json:"estimated_amount"`
	Currency        string           `json:"currency"`
	RequestedDate   string           `json:"requested_date"`
	RequiredByDate  *string          `json:"required_by_date"`
	CreatedAt       time.Time        `json:"created_at"`
	ItemsCount      int              `json:"items_count"`
}

func newOrderSummaries(orders []queries.OrderSummary) []orderSummaryResponse {
	resp := make([]orderSummaryResponse, len(orders))
	for i, o := range orders {
		resp[i] = orderSummaryResponse{
			ID:              o.ID,
			OrderNumber:     o.OrderNumber,
			Title:           o.Title,
			Description:     o.Description,
			Priority:        o.Priority,
			Status:          statusRef(o.Status),
			OrderTypeID:     o.OrderTypeID,
			RequesterID:     o.RequesterID,
			DepartmentID:    o.DepartmentID,
			EstimatedAmount: o.EstimatedAmount,
			Currency:        o.Currency,
			RequestedDate:   o.RequestedDate.Format(dateLayout),
			RequiredByDate:  formatDate(o.RequiredByDate),
			CreatedAt:       o.CreatedAt,
			ItemsCount:      o.ItemsCount,
		}
	}
	return resp
}

type orderDetailResponse struct {
	ID              int64                  `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	OrderTypeID     *int64                 `json:"order_type_id"`
	OrderTypeName   *string                `json:"order_type_name"`
	OrderTypeNameKa *string                `json:"order_type_name_ka"`
	Status          statusResponse         `json:"status"`
	RequesterID     int64                  `json:"requester_id"`
	DepartmentID    *int64                 `json:"department_id"`
	DepartmentName  *string                `json:"department_name"`
	Title           string                 `json:"title"`
	Description     *string                `json:"description"`
	Priority        string                 `json:"priority"`
	EstimatedAmount *decimal.Decimal       `json:"estimated_amount"`
	Currency        string                 `json:"currency"`
	RequestedDate   string                 `json:"requested_date"`
	RequiredByDate  *string                `json:"required_by_date"`
	ApprovedDate    *time.Time             `json:"approved_date"`
	CompletedDate   *time.Time             `json:"completed_date"`
	CreatedBy       *int64                 `json:"created_by"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Version         int64                  `json:"version"`
	Metadata        json.RawMessage        `json:"metadata,omitempty"`
	Items           []itemResponse         `json:"items"`
	Documents       []documentResponse     `json:"documents"`
	Comments        []commentResponse      `json:"comments"`
	History         []historyEntryResponse `json:"history"`
}

func newOrderDetailResponse(o queries.OrderDetail) orderDetailResponse {
	resp := orderDetailResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		OrderTypeID:     o.OrderTypeID,
		OrderTypeName:   o.OrderTypeName,
		OrderTypeNameKa: o.OrderTypeNameKa,
		Status:          statusRef(o.Status),
		RequesterID:     o.RequesterID,
		DepartmentID:    o.DepartmentID,
		DepartmentName:  o.DepartmentName,
		Title:           o.Title,
		Description:     o.Description,
		Priority:        o.Priority,
		EstimatedAmount: o.EstimatedAmount,
		Currency:        o.Currency,
		RequestedDate:   o.RequestedDate.Format(dateLayout),
		RequiredByDate:  formatDate(o.RequiredByDate),
		ApprovedDate:    o.ApprovedDate,
		CompletedDate:   o.CompletedDate,
		CreatedBy:       o.CreatedBy,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Version:         o.Version,
		Metadata:        o.Metadata,
		Items:           make([]itemResponse, len(o.Items)),
		Documents:       newDocumentViews(o.Documents),
		Comments:        newCommentViews(o.Comments),
		History:         newHistoryViews(o.History),
	}
	for i, item := range o.Items {
		resp.Items[i] = itemResponse{
			ID:          item.ID,
			AssetID:     item.AssetID,
			CategoryID:  item.CategoryID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Notes:       item.Notes,
			CreatedAt:   item.CreatedAt,
		}
	}
	return resp
}

func newDocumentViews(docs []queries.DocumentView) []documentResponse {
	resp := make([]documentResponse, len(docs))
	for i, d := range docs {
		resp[i] = documentResponse{
			ID:          d.ID,
			OrderID:     d.OrderID,
			FileName:    d.FileName,
			FileSize:    d.FileSize,
			MimeType:    d.MimeType,
			Description: d.Description,
			UploadedBy:  d.UploadedBy,
			UploadedAt:  d.UploadedAt,
		}
	}
	return resp
}

func newCommentViews(comments []queries.CommentView) []commentResponse {
	resp := make([]commentResponse, len(comments))
	for i, c := range comments {
		resp[i] = commentResponse{
			ID:         c.ID,
			OrderID:    c.OrderID,
			UserID:     c.UserID,
			Comment:    c.Comment,
			IsInternal: c.IsInternal,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		}
	}
	return resp
}

func newHistoryViews(history []queries.HistoryEntryView) []historyEntryResponse {
	resp := make([]historyEntryResponse, len(history))
	for i, h := range history {
		resp[i] = historyEntryResponse{
			ID:        h.ID,
			To:        statusRef(h.To),
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
			Comments:  h.Comments,
		}
		if h.From != nil {
			from := statusRef(*h.From)
			resp[i].From = &from
		}
	}
	return resp
}

type orderStatusResponse struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	NameKa   string `json:"name_ka"`
	Color    string `json:"color"`
	OrderSeq int    `json:"order_seq"`
}

type orderTypeResponse struct {
	ID               int64  `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	NameKa           string `json:"name_ka"`
	RequiresApproval bool   `json:"requires_approval"`
	ApprovalLevels   int    `json:"approval_levels"`
}

type itemSearchResponse struct {
	ID          int64            `json:"id"`
	OrderID     int64            `json:"order_id"`
	OrderNumber string           `json:"order_number"`
	Name        string           `json:"name"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TotalPrice  *decimal.Decimal `json:"total_price"`
	CreatedAt   time.Time        `json:"created_at"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
