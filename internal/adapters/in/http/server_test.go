package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "procurement/internal/adapters/in/http"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testSecret    = []byte("test-secret")
	testNow       = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

type MockHandler[In, Out any] struct {
	mock.Mock
}

func (m *MockHandler[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(Out)
	return out, args.Error(1)
}

type MockVoidHandler[In any] struct {
	mock.Mock
}

func (m *MockVoidHandler[In]) Handle(ctx context.Context, in In) error {
	return m.Called(ctx, in).Error(0)
}

type MockStatusChanger struct {
	mock.Mock
}

func (m *MockStatusChanger) Handle(
	ctx context.Context,
	cmd commands.ChangeOrderStatusCommand,
) (*order.Order, order.WorkflowEntry, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	entry, _ := args.Get(1).(order.WorkflowEntry)
	return o, entry, args.Error(2)
}

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) HasPermission(ctx context.Context, userID int64, perm access.Permission) (bool, error) {
	args := m.Called(ctx, userID, perm)
	return args.Bool(0), args.Error(1)
}

func (m *MockResolver) ResolvePrincipal(ctx context.Context, userID int64) (access.Principal, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(access.Principal)
	return p, args.Error(1)
}

type errorBody struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func newAPI(handlers httpin.Handlers, resolver *MockResolver) *echo.Echo {
	e := echo.New()
	reg := prometheus.NewRegistry()
	auth := httpin.NewAuthenticator(testSecret, resolver, discardLogger)
	httpin.RegisterHandlers(e, httpin.NewServer(handlers, discardLogger), auth.Middleware(), httpin.NewMetrics(reg), reg)
	return e
}

func resolverFor(userID int64, perms ...access.Permission) *MockResolver {
	r := &MockResolver{}
	r.On("ResolvePrincipal", mock.Anything, userID).Return(access.MustNewPrincipal(userID, perms...), nil)
	return r
}

func token(t *testing.T, secret []byte, subject string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, testSecret, "7"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func persistedOrder(t *testing.T) *order.Order {
	t.Helper()
	number, err := order.NewNumber(testNow, 1)
	require.NoError(t, err)
	typeID := int64(2)
	o, err := order.NewOrder(number, 7, order.Details{OrderTypeID: &typeID, Title: "Laptop purchase"}, nil, testNow)
	require.NoError(t, err)
	o.Persisted(11, 1)
	return o
}

func TestAuthentication(t *testing.T) {
	t.Run("rejects a request without token", func(t *testing.T) {
		resolver := &MockResolver{}
		e := newAPI(httpin.Handlers{}, resolver)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, httpin.KindUnauthorized, decodeError(t, rec).Kind)
		resolver.AssertNotCalled(t, "ResolvePrincipal", mock.Anything, mock.Anything)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		e := newAPI(httpin.Handlers{}, &MockResolver{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, []byte("other"), "7"))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a non numeric subject", func(t *testing.T) {
		e := newAPI(httpin.Handlers{}, &MockResolver{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, testSecret, "alice"))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("reports an unavailable permission store as 503", func(t *testing.T) {
		resolver := &MockResolver{}
		resolver.On("ResolvePrincipal", mock.Anything, int64(7)).
			Return(access.Principal{}, errs.NewDependencyUnavailableError("postgres", context.DeadlineExceeded))
		e := newAPI(httpin.Handlers{}, resolver)

		rec := do(t, e, http.MethodGet, "/api/v1/orders", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, httpin.KindDependencyUnavailable, decodeError(t, rec).Kind)
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("passes the principal and body to the command", func(t *testing.T) {
		created := persistedOrder(t)
		handler := &MockHandler[commands.CreateOrderCommand, commands.CreateOrderResult]{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			items := cmd.Items()
			return cmd.Principal().UserID() == 7 &&
				cmd.Details().Title == "Laptop purchase" &&
				cmd.Details().Priority == order.PriorityHigh &&
				len(items) == 1 && items[0].Quantity == 3 && items[0].UnitPrice.String() == "1200.5"
		})).Return(commands.CreateOrderResult{Order: created, Warnings: []string{"event not published"}}, nil)

		e := newAPI(httpin.Handlers{CreateOrder: handler}, resolverFor(7, access.OrdersCreate))
		rec := do(t, e, http.MethodPost, "/api/v1/orders", `{
			"order_type_id": 2,
			"title": "Laptop purchase",
			"priority": "HIGH",
			"requested_date": "2026-10-14",
			"items": [{"name": "Laptop", "quantity": 3, "unit_price": "1200.50"}]
		}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ORD-2026100001", body["order_number"])
		assert.Equal(t, []any{"event not published"}, body["warnings"])
		assert.Equal(t, "pending", body["status"].(map[string]any)["code"])
		handler.AssertExpectations(t)
	})

	t.Run("rejects a body without title before reaching the command", func(t *testing.T) {
		handler := &MockHandler[commands.CreateOrderCommand, commands.CreateOrderResult]{}
		e := newAPI(httpin.Handlers{CreateOrder: handler}, resolverFor(7, access.OrdersCreate))

		rec := do(t, e, http.MethodPost, "/api/v1/orders", `{"order_type_id": 2}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, httpin.KindValidationFailed, decodeError(t, rec).Kind)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		handler := &MockHandler[commands.CreateOrderCommand, commands.CreateOrderResult]{}
		e := newAPI(httpin.Handlers{CreateOrder: handler}, resolverFor(7, access.OrdersCreate))

		rec := do(t, e, http.MethodPost, "/api/v1/orders", `{"order_type_id": 2, "title": "x", "required_by_date": "14.10.2026"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("maps permission denied to 403", func(t *testing.T) {
		handler := &MockHandler[commands.CreateOrderCommand, commands.CreateOrderResult]{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(commands.CreateOrderResult{}, errs.NewPermissionDeniedError(access.OrdersCreate.String()))
		e := newAPI(httpin.Handlers{CreateOrder: handler}, resolverFor(7))

		rec := do(t, e, http.MethodPost, "/api/v1/orders", `{"order_type_id": 2, "title": "x"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, httpin.KindPermissionDenied, decodeError(t, rec).Kind)
	})
}

func TestChangeOrderStatus(t *testing.T) {
	t.Run("returns the order and the recorded entry", func(t *testing.T) {
		o := persistedOrder(t)
		_, err := o.ChangeStatus(order.Review, testNow.Add(time.Hour))
		require.NoError(t, err)
		entry, err := order.NewTransitionEntry(11, order.Pending, order.Review, 7, testNow.Add(time.Hour), nil)
		require.NoError(t, err)

		handler := &MockStatusChanger{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
			return cmd.OrderID() == 11 && cmd.Target() == order.Review &&
				cmd.Comments() != nil && *cmd.Comments() == "ready"
		})).Return(o, entry.WithID(5), nil)

		e := newAPI(httpin.Handlers{ChangeStatus: handler}, resolverFor(7, access.OrdersViewAll))
		rec := do(t, e, http.MethodPost, "/api/v1/orders/11/status/review", `{"comments": "ready"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body struct {
			Order struct {
				Status struct{ Code string } `json:"status"`
			} `json:"order"`
			History struct {
				ID   int64 `json:"id"`
				From struct{ Code string } `json:"from_status"`
				To   struct{ Code string } `json:"to_status"`
			} `json:"history"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "review", body.Order.Status.Code)
		assert.Equal(t, int64(5), body.History.ID)
		assert.Equal(t, "pending", body.History.From.Code)
		assert.Equal(t, "review", body.History.To.Code)
	})

	t.Run("accepts an empty body", func(t *testing.T) {
		handler := &MockStatusChanger{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
			return cmd.Comments() == nil
		})).Return(nil, order.WorkflowEntry{}, errs.NewObjectNotFoundError("order", "11"))

		e := newAPI(httpin.Handlers{ChangeStatus: handler}, resolverFor(7, access.OrdersViewAll))
		rec := do(t, e, http.MethodPost, "/api/v1/orders/11/status/review", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, httpin.KindNotFound, decodeError(t, rec).Kind)
	})

	t.Run("rejects an unknown status code without calling the engine", func(t *testing.T) {
		handler := &MockStatusChanger{}
		e := newAPI(httpin.Handlers{ChangeStatus: handler}, resolverFor(7))

		rec := do(t, e, http.MethodPost, "/api/v1/orders/11/status/draft", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
	}{
		{"invalid transition", errs.NewInvalidTransitionError("pending", "completed"), http.StatusConflict, httpin.KindInvalidTransition},
		{"stale version", errs.NewConflictError("order 11"), http.StatusConflict, httpin.KindConflict},
		{"permission denied", errs.NewPermissionDeniedError("orders.complete"), http.StatusForbidden, httpin.KindPermissionDenied},
		{"store down", errs.NewDependencyUnavailableError("postgres", context.Canceled), http.StatusServiceUnavailable, httpin.KindDependencyUnavailable},
	}
	for _, tt := range tests {
		t.Run("maps "+tt.name, func(t *testing.T) {
			handler := &MockStatusChanger{}
			handler.On("Handle", mock.Anything, mock.Anything).Return(nil, order.WorkflowEntry{}, tt.err)
			e := newAPI(httpin.Handlers{ChangeStatus: handler}, resolverFor(7, access.OrdersComplete))

			rec := do(t, e, http.MethodPost, "/api/v1/orders/11/status/completed", "")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantKind, decodeError(t, rec).Kind)
		})
	}

	t.Run("hides internal errors", func(t *testing.T) {
		handler := &MockStatusChanger{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(nil, order.WorkflowEntry{}, io.ErrUnexpectedEOF)
		e := newAPI(httpin.Handlers{ChangeStatus: handler}, resolverFor(7))

		rec := do(t, e, http.MethodPost, "/api/v1/orders/11/status/completed", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, httpin.KindInternal, body.Kind)
		assert.Equal(t, "internal server error", body.Message)
	})
}

func TestOrderQueries(t *testing.T) {
	t.Run("get order maps the detail read model", func(t *testing.T) {
		handler := &MockHandler[queries.GetOrderQuery, queries.OrderDetail]{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
			return q.OrderID() == 11 && q.Principal().UserID() == 7
		})).Return(queries.OrderDetail{
			ID:            11,
			OrderNumber:   "ORD-2026100001",
			Status:        queries.StatusRef{ID: 2, Code: "review", Name: "Review"},
			Title:         "Laptop purchase",
			RequestedDate: testNow,
			Metadata:      []byte(`{"budget_code": "IT-7"}`),
			Items:         []queries.ItemView{{ID: 1, Name: "Laptop", Quantity: 3}},
			History: []queries.HistoryEntryView{
				{ID: 1, To: queries.StatusRef{ID: 1, Code: "pending"}},
				{ID: 2, From: &queries.StatusRef{ID: 1, Code: "pending"}, To: queries.StatusRef{ID: 2, Code: "review"}},
			},
		}, nil)

		e := newAPI(httpin.Handlers{GetOrder: handler}, resolverFor(7))
		rec := do(t, e, http.MethodGet, "/api/v1/orders/11", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "2026-10-14", body["requested_date"])
		assert.Equal(t, map[string]any{"budget_code": "IT-7"}, body["metadata"])
		assert.Len(t, body["items"], 1)
		assert.Empty(t, body["documents"])
		history := body["history"].([]any)
		require.Len(t, history, 2)
		assert.Nil(t, history[0].(map[string]any)["from_status"])
	})

	t.Run("rejects a non numeric id", func(t *testing.T) {
		e := newAPI(httpin.Handlers{}, resolverFor(7))

		rec := do(t, e, http.MethodGet, "/api/v1/orders/abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list passes filters", func(t *testing.T) {
		handler := &MockHandler[queries.ListOrdersQuery, []queries.OrderSummary]{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			return q.Status() != nil && *q.Status() == order.Review &&
				q.RequesterID() != nil && *q.RequesterID() == 9 &&
				q.Limit() == 10 && q.Offset() == 20
		})).Return([]queries.OrderSummary{{ID: 11, OrderNumber: "ORD-2026100001", ItemsCount: 2}}, nil)

		e := newAPI(httpin.Handlers{ListOrders: handler}, resolverFor(7, access.OrdersViewAll))
		rec := do(t, e, http.MethodGet, "/api/v1/orders?status=review&requester_id=9&limit=10&offset=20", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"items_count":2`)
		handler.AssertExpectations(t)
	})

	t.Run("search forwards the term", func(t *testing.T) {
		handler := &MockHandler[queries.SearchOrderItemsQuery, []queries.ItemSearchResult]{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.SearchOrderItemsQuery) bool {
			return q.Term() == "lap"
		})).Return([]queries.ItemSearchResult{{ID: 1, Name: "Laptop", OrderNumber: "ORD-2026100001"}}, nil)

		e := newAPI(httpin.Handlers{SearchItems: handler}, resolverFor(7))
		rec := do(t, e, http.MethodGet, "/api/v1/order-items/search?q=lap", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Laptop"`)
	})
}

func TestComments(t *testing.T) {
	t.Run("add returns the created comment", func(t *testing.T) {
		comment, err := order.NewComment(11, 7, "please hurry", true, testNow)
		require.NoError(t, err)
		comment.AssignID(3)

		handler := &MockHandler[commands.AddCommentCommand, *order.Comment]{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AddCommentCommand) bool {
			return cmd.OrderID() == 11 && cmd.Text() == "please hurry" && cmd.IsInternal()
		})).Return(comment, nil)

		e := newAPI(httpin.Handlers{AddComment: handler}, resolverFor(7))
		rec := do(t, e, http.MethodPost, "/api/v1/orders/11/comments", `{"comment": "please hurry", "is_internal": true}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"id":3`)
		assert.Contains(t, rec.Body.String(), `"user_id":7`)
	})

	t.Run("delete of another user's comment is forbidden", func(t *testing.T) {
		handler := &MockVoidHandler[commands.DeleteCommentCommand]{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeleteCommentCommand) bool {
			return cmd.OrderID() == 11 && cmd.CommentID() == 3
		})).Return(errs.NewPermissionDeniedError("delete comment"))

		e := newAPI(httpin.Handlers{DeleteComment: handler}, resolverFor(7))
		rec := do(t, e, http.MethodDelete, "/api/v1/orders/11/comments/3", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestDocuments(t *testing.T) {
	t.Run("upload streams the multipart file into the command", func(t *testing.T) {
		document, err := order.NewDocument(11, 7, order.StoredFile{
			Name: "invoice.pdf", Reference: "2026/10/abc.pdf", Size: 7, ContentType: "application/pdf",
		}, nil, testNow)
		require.NoError(t, err)
		document.AssignID(4)

		handler := &MockHandler[commands.UploadDocumentCommand, *order.Document]{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UploadDocumentCommand) bool {
			return cmd.FileName() == "invoice.pdf" &&
				cmd.ContentType() == "application/pdf" &&
				cmd.Description() != nil && *cmd.Description() == "signed"
		})).Return(document, nil)

		var buf bytes.Buffer
		form := multipart.NewWriter(&buf)
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="file"; filename="invoice.pdf"`}
		header["Content-Type"] = []string{"application/pdf"}
		part, err := form.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1."))
		require.NoError(t, err)
		require.NoError(t, form.WriteField("description", "signed"))
		require.NoError(t, form.Close())

		e := newAPI(httpin.Handlers{UploadDocument: handler}, resolverFor(7))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/11/documents", &buf)
		req.Header.Set(echo.HeaderContentType, form.FormDataContentType())
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, testSecret, "7"))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"file_name":"invoice.pdf"`)
		handler.AssertExpectations(t)
	})

	t.Run("upload without file part is rejected", func(t *testing.T) {
		handler := &MockHandler[commands.UploadDocumentCommand, *order.Document]{}
		e := newAPI(httpin.Handlers{UploadDocument: handler}, resolverFor(7))

		rec := do(t, e, http.MethodPost, "/api/v1/orders/11/documents", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("delete of a foreign document reads as not found", func(t *testing.T) {
		handler := &MockVoidHandler[commands.DeleteDocumentCommand]{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(errs.NewObjectNotFoundError("document", "4"))

		e := newAPI(httpin.Handlers{DeleteDocument: handler}, resolverFor(7))
		rec := do(t, e, http.MethodDelete, "/api/v1/orders/11/documents/4", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("download streams the stored file as an attachment", func(t *testing.T) {
		handler := &MockHandler[queries.GetDocumentContentQuery, queries.DocumentContent]{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetDocumentContentQuery) bool {
			return q.OrderID() == 11 && q.DocumentID() == 4
		})).Return(queries.DocumentContent{
			FileName: "invoice.pdf",
			MimeType: "application/pdf",
			Size:     7,
			Content:  io.NopCloser(strings.NewReader("%PDF-1.")),
		}, nil)

		e := newAPI(httpin.Handlers{DocumentContent: handler}, resolverFor(7))
		rec := do(t, e, http.MethodGet, "/api/v1/orders/11/documents/4/content", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, `attachment; filename=invoice.pdf`, rec.Header().Get(echo.HeaderContentDisposition))
		assert.Equal(t, "%PDF-1.", rec.Body.String())
	})

	t.Run("download of an invisible order is forbidden", func(t *testing.T) {
		handler := &MockHandler[queries.GetDocumentContentQuery, queries.DocumentContent]{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(queries.DocumentContent{}, errs.NewPermissionDeniedError("view order"))

		e := newAPI(httpin.Handlers{DocumentContent: handler}, resolverFor(7))
		rec := do(t, e, http.MethodGet, "/api/v1/orders/11/documents/4/content", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	e := newAPI(httpin.Handlers{}, &MockResolver{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `procurement_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
