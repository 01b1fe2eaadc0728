package commands_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// memoryStore is an in-memory stand-in for the database. A unit of work
// works on a private copy taken at Begin and writes it back on Commit, so a
// rolled back transaction leaves no trace.
type memoryStore struct {
	mu sync.Mutex

	nextID      int64
	orders      map[int64]*order.Order
	history     []order.WorkflowEntry
	comments    map[int64]*order.Comment
	documents   map[int64]*order.Document
	outbox      []outboxRow
	activeTypes map[int64]bool
	departments map[int64]bool

	// failCommit, when set, makes every Commit fail.
	failCommit error
}

type outboxRow struct {
	message     ports.OutboxMessage
	publishedAt *time.Time
	lastError   string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		orders:      map[int64]*order.Order{},
		comments:    map[int64]*order.Comment{},
		documents:   map[int64]*order.Document{},
		activeTypes: map[int64]bool{2: true, 3: false},
		departments: map[int64]bool{5: true},
	}
}

func (s *memoryStore) clone() *memoryStore {
	c := &memoryStore{
		nextID:      s.nextID,
		orders:      make(map[int64]*order.Order, len(s.orders)),
		history:     append([]order.WorkflowEntry(nil), s.history...),
		comments:    make(map[int64]*order.Comment, len(s.comments)),
		documents:   make(map[int64]*order.Document, len(s.documents)),
		outbox:      append([]outboxRow(nil), s.outbox...),
		activeTypes: s.activeTypes,
		departments: s.departments,
	}
	for id, o := range s.orders {
		c.orders[id] = cloneOrder(o)
	}
	for id, cm := range s.comments {
		c.comments[id] = order.RestoreComment(cm.ID(), cm.OrderID(), cm.AuthorID(), cm.Text(), cm.IsInternal(), cm.CreatedAt(), cm.UpdatedAt())
	}
	for id, d := range s.documents {
		c.documents[id] = order.RestoreDocument(d.ID(), d.OrderID(), d.UploadedBy(), d.File(), d.Description(), d.UploadedAt(), d.UpdatedAt())
	}
	return c
}

func (s *memoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

// put stores o directly, bypassing any unit of work.
func (s *memoryStore) put(o *order.Order) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.Persisted(s.id(), 1)
	s.orders[o.ID()] = cloneOrder(o)
	return o
}

func (s *memoryStore) order(id int64) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

func (s *memoryStore) historyOf(orderID int64) []order.WorkflowEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []order.WorkflowEntry
	for _, e := range s.history {
		if e.OrderID() == orderID {
			out = append(out, e)
		}
	}
	return out
}

func (s *memoryStore) pendingOutbox() []ports.OutboxMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ports.OutboxMessage
	for _, row := range s.outbox {
		if row.publishedAt == nil {
			out = append(out, row.message)
		}
	}
	return out
}

func cloneOrder(o *order.Order) *order.Order {
	restored, err := order.RestoreOrder(order.Snapshot{
		ID:            o.ID(),
		Number:        o.Number().String(),
		Status:        o.Status(),
		RequesterID:   o.RequesterID(),
		Details:       o.Details(),
		ApprovedDate:  o.ApprovedDate(),
		CompletedDate: o.CompletedDate(),
		CreatedBy:     o.CreatedBy(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Version:       o.Version(),
		Items:         o.Items(),
	})
	if err != nil {
		panic(err)
	}
	return restored
}

type memoryUoW struct {
	store *memoryStore
	tx    *memoryStore
}

type memoryUoWFactory struct{ store *memoryStore }

func (f memoryUoWFactory) Create() commands.UoW { return &memoryUoW{store: f.store} }

type memoryOutboxUoWFactory struct{ store *memoryStore }

func (f memoryOutboxUoWFactory) Create() commands.OutboxUoW { return &memoryUoW{store: f.store} }

func (u *memoryUoW) Begin(_ context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.tx = u.store.clone()
	return nil
}

func (u *memoryUoW) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.store.failCommit != nil {
		return u.store.failCommit
	}
	committed := u.tx.clone()
	u.store.nextID = committed.nextID
	u.store.orders = committed.orders
	u.store.history = committed.history
	u.store.comments = committed.comments
	u.store.documents = committed.documents
	u.store.outbox = committed.outbox
	u.tx = nil
	return nil
}

func (u *memoryUoW) Rollback(_ context.Context) error {
	u.tx = nil
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository         { return memoryOrders{u} }
func (u *memoryUoW) WorkflowRepository() ports.WorkflowRepository   { return memoryHistory{u} }
func (u *memoryUoW) ReferenceRepository() ports.ReferenceRepository { return memoryReferences{u} }
func (u *memoryUoW) CommentRepository() ports.CommentRepository     { return memoryComments{u} }
func (u *memoryUoW) DocumentRepository() ports.DocumentRepository   { return memoryDocuments{u} }
func (u *memoryUoW) OutboxRepository() ports.OutboxRepository       { return memoryOutbox{u} }

type memoryOrders struct{ u *memoryUoW }

func (r memoryOrders) Add(_ context.Context, o *order.Order) error {
	for _, existing := range r.u.tx.orders {
		if existing.Number().IsEqual(o.Number()) {
			return errs.NewConflictError("order number " + o.Number().String())
		}
	}
	for _, item := range o.Items() {
		item.AssignID(r.u.tx.id())
	}
	o.Persisted(r.u.tx.id(), 1)
	r.u.tx.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memoryOrders) Update(_ context.Context, o *order.Order) error {
	stored, ok := r.u.tx.orders[o.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", strconv.FormatInt(o.ID(), 10))
	}
	if stored.Version() != o.Version() {
		return errs.NewConflictError("order " + strconv.FormatInt(o.ID(), 10))
	}
	o.Persisted(o.ID(), o.Version()+1)
	r.u.tx.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memoryOrders) Get(_ context.Context, id int64) (*order.Order, error) {
	stored, ok := r.u.tx.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", strconv.FormatInt(id, 10))
	}
	return cloneOrder(stored), nil
}

func (r memoryOrders) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r memoryOrders) Delete(_ context.Context, id int64) error {
	if _, ok := r.u.tx.orders[id]; !ok {
		return errs.NewObjectNotFoundError("order", strconv.FormatInt(id, 10))
	}
	delete(r.u.tx.orders, id)
	for cid, c := range r.u.tx.comments {
		if c.OrderID() == id {
			delete(r.u.tx.comments, cid)
		}
	}
	for did, d := range r.u.tx.documents {
		if d.OrderID() == id {
			delete(r.u.tx.documents, did)
		}
	}
	kept := r.u.tx.history[:0]
	for _, e := range r.u.tx.history {
		if e.OrderID() != id {
			kept = append(kept, e)
		}
	}
	r.u.tx.history = kept
	return nil
}

func (r memoryOrders) NextNumberSequence(_ context.Context, prefix string) (int, error) {
	highest := 0
	for _, o := range r.u.tx.orders {
		if seq, ok := order.SequenceOf(o.Number().String(), prefix); ok && seq > highest {
			highest = seq
		}
	}
	return highest + 1, nil
}

type memoryHistory struct{ u *memoryUoW }

func (r memoryHistory) Record(_ context.Context, e order.WorkflowEntry) (order.WorkflowEntry, error) {
	e = e.WithID(r.u.tx.id())
	r.u.tx.history = append(r.u.tx.history, e)
	return e, nil
}

func (r memoryHistory) ListByOrder(_ context.Context, orderID int64) ([]order.WorkflowEntry, error) {
	var out []order.WorkflowEntry
	for _, e := range r.u.tx.history {
		if e.OrderID() == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memoryReferences struct{ u *memoryUoW }

func (r memoryReferences) OrderTypeIsActive(_ context.Context, id int64) (bool, error) {
	return r.u.tx.activeTypes[id], nil
}

func (r memoryReferences) DepartmentExists(_ context.Context, id int64) (bool, error) {
	return r.u.tx.departments[id], nil
}

type memoryComments struct{ u *memoryUoW }

func (r memoryComments) Add(_ context.Context, c *order.Comment) error {
	c.AssignID(r.u.tx.id())
	r.u.tx.comments[c.ID()] = c
	return nil
}

func (r memoryComments) Get(_ context.Context, orderID, commentID int64) (*order.Comment, error) {
	c, ok := r.u.tx.comments[commentID]
	if !ok || c.OrderID() != orderID {
		return nil, errs.NewObjectNotFoundError("comment", strconv.FormatInt(commentID, 10))
	}
	return c, nil
}

func (r memoryComments) Update(_ context.Context, c *order.Comment) error {
	r.u.tx.comments[c.ID()] = c
	return nil
}

func (r memoryComments) Delete(ctx context.Context, orderID, commentID int64) error {
	if _, err := r.Get(ctx, orderID, commentID); err != nil {
		return err
	}
	delete(r.u.tx.comments, commentID)
	return nil
}

type memoryDocuments struct{ u *memoryUoW }

func (r memoryDocuments) Add(_ context.Context, d *order.Document) error {
	d.AssignID(r.u.tx.id())
	r.u.tx.documents[d.ID()] = d
	return nil
}

func (r memoryDocuments) Get(_ context.Context, orderID, documentID int64) (*order.Document, error) {
	d, ok := r.u.tx.documents[documentID]
	if !ok || d.OrderID() != orderID {
		return nil, errs.NewObjectNotFoundError("document", strconv.FormatInt(documentID, 10))
	}
	return d, nil
}

func (r memoryDocuments) Update(_ context.Context, d *order.Document) error {
	r.u.tx.documents[d.ID()] = d
	return nil
}

func (r memoryDocuments) Delete(ctx context.Context, orderID, documentID int64) error {
	if _, err := r.Get(ctx, orderID, documentID); err != nil {
		return err
	}
	delete(r.u.tx.documents, documentID)
	return nil
}

func (r memoryDocuments) ListByOrder(_ context.Context, orderID int64) ([]*order.Document, error) {
	var out []*order.Document
	for _, d := range r.u.tx.documents {
		if d.OrderID() == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

type memoryOutbox struct{ u *memoryUoW }

func (r memoryOutbox) Add(_ context.Context, event order.CreatedEvent) error {
	r.u.tx.outbox = append(r.u.tx.outbox, outboxRow{message: ports.OutboxMessage{ID: event.EventID, Event: event}})
	return nil
}

func (r memoryOutbox) ListPending(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	var out []ports.OutboxMessage
	for _, row := range r.u.tx.outbox {
		if row.publishedAt == nil && len(out) < limit {
			out = append(out, row.message)
		}
	}
	return out, nil
}

func (r memoryOutbox) MarkPublished(_ context.Context, id kernel.UUID, at time.Time) error {
	for i := range r.u.tx.outbox {
		if r.u.tx.outbox[i].message.ID.IsEqual(id) {
			r.u.tx.outbox[i].publishedAt = &at
			return nil
		}
	}
	return errs.NewObjectNotFoundError("outbox message", id.String())
}

func (r memoryOutbox) MarkFailed(_ context.Context, id kernel.UUID, reason string) error {
	for i := range r.u.tx.outbox {
		if r.u.tx.outbox[i].message.ID.IsEqual(id) {
			r.u.tx.outbox[i].message.Attempts++
			r.u.tx.outbox[i].lastError = reason
			return nil
		}
	}
	return errs.NewObjectNotFoundError("outbox message", id.String())
}
