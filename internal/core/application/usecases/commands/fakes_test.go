package commands_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingPublisher struct {
	mu     sync.Mutex
	err    error
	events []order.CreatedEvent
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, event order.CreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) published() []order.CreatedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]order.CreatedEvent(nil), p.events...)
}

type memoryFiles struct {
	mu      sync.Mutex
	saveErr error
	next    int
	files   map[string][]byte
	deleted []string
}

func newMemoryFiles() *memoryFiles {
	return &memoryFiles{files: map[string][]byte{}}
}

func (f *memoryFiles) Save(_ context.Context, name string, content io.Reader) (string, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", 0, f.saveErr
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, content)
	if err != nil {
		return "", 0, err
	}
	f.next++
	ref := strconv.Itoa(f.next) + "-" + name
	f.files[ref] = buf.Bytes()
	return ref, n, nil
}

func (f *memoryFiles) Delete(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, ref)
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *memoryFiles) stored() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

// engine wires every command handler to one in-memory store.
type engine struct {
	store     *memoryStore
	publisher *recordingPublisher
	files     *memoryFiles
	clock     *clock.Fixed

	create       commands.CreateOrderCommandHandler
	update       commands.UpdateOrderCommandHandler
	changeStatus commands.ChangeOrderStatusCommandHandler
	deleteOrder  commands.DeleteOrderCommandHandler
	addComment   commands.AddCommentCommandHandler
	editComment  commands.UpdateCommentCommandHandler
	dropComment  commands.DeleteCommentCommandHandler
	upload       commands.UploadDocumentCommandHandler
	editDocument commands.UpdateDocumentCommandHandler
	dropDocument commands.DeleteDocumentCommandHandler
	relay        commands.RelayOutboxCommandHandler
}

func newEngine() *engine {
	store := newMemoryStore()
	factory := memoryUoWFactory{store: store}
	publisher := &recordingPublisher{}
	files := newMemoryFiles()
	clk := clock.NewFixed(testNow)
	logger := discardLogger()

	return &engine{
		store:     store,
		publisher: publisher,
		files:     files,
		clock:     clk,

		create:       commands.NewCreateOrderCommandHandler(factory, publisher, clk, logger),
		update:       commands.NewUpdateOrderCommandHandler(factory, clk, logger),
		changeStatus: commands.NewChangeOrderStatusCommandHandler(factory, clk, logger),
		deleteOrder:  commands.NewDeleteOrderCommandHandler(factory, files, logger),
		addComment:   commands.NewAddCommentCommandHandler(factory, clk, logger),
		editComment:  commands.NewUpdateCommentCommandHandler(factory, clk, logger),
		dropComment:  commands.NewDeleteCommentCommandHandler(factory, logger),
		upload:       commands.NewUploadDocumentCommandHandler(factory, files, clk, logger),
		editDocument: commands.NewUpdateDocumentCommandHandler(factory, clk, logger),
		dropDocument: commands.NewDeleteDocumentCommandHandler(factory, files, logger),
		relay:        commands.NewRelayOutboxCommandHandler(memoryOutboxUoWFactory{store: store}, publisher, clk, logger),
	}
}

// MockUoW is used where a test needs to control the transaction itself.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) WorkflowRepository() ports.WorkflowRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkflowRepository)
}

func (m *MockUoW) ReferenceRepository() ports.ReferenceRepository {
	args := m.Called()
	return args.Get(0).(ports.ReferenceRepository)
}

func (m *MockUoW) CommentRepository() ports.CommentRepository {
	args := m.Called()
	return args.Get(0).(ports.CommentRepository)
}

func (m *MockUoW) DocumentRepository() ports.DocumentRepository {
	args := m.Called()
	return args.Get(0).(ports.DocumentRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) NextNumberSequence(ctx context.Context, prefix string) (int, error) {
	args := m.Called(ctx, prefix)
	return args.Int(0), args.Error(1)
}

type MockReferenceRepository struct{ mock.Mock }

func (m *MockReferenceRepository) OrderTypeIsActive(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferenceRepository) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
