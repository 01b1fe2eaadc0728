package cmd

import (
	"log/slog"

	httpin "procurement/internal/adapters/in/http"
	"procurement/internal/adapters/out/postgres"
	"procurement/internal/adapters/out/postgres/accessrepo"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/ports"
	"procurement/internal/jobs"
	"procurement/internal/pkg/clock"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// DocumentFiles is the file store the API process writes and serves
// document contents from.
type DocumentFiles interface {
	ports.FileStore
	ports.FileReader
}

// CompositionRoot wires the adapters of the API process to the use cases.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	files      DocumentFiles
	clock      clock.Clock
	registry   *prometheus.Registry
	logger     *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	files DocumentFiles,
	registry *prometheus.Registry,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		files:      files,
		clock:      clock.System{},
		registry:   registry,
		logger:     logger,
	}
}

func (c *CompositionRoot) unitOfWorkFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.unitOfWorkFactory(), c.publisher, c.clock, c.logger).
		WithPublishTimeout(c.cfg.PublishTimeout)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher, c.clock, c.logger)
}

// CreateHandlers builds every use case exposed over HTTP.
func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	uow := c.unitOfWorkFactory()

	return httpin.Handlers{
		CreateOrder:    c.CreateCreateOrderCommandHandler(),
		UpdateOrder:    commands.NewUpdateOrderCommandHandler(uow, c.clock, c.logger),
		ChangeStatus:   commands.NewChangeOrderStatusCommandHandler(uow, c.clock, c.logger),
		DeleteOrder:    commands.NewDeleteOrderCommandHandler(uow, c.files, c.logger),
		AddComment:     commands.NewAddCommentCommandHandler(uow, c.clock, c.logger),
		UpdateComment:  commands.NewUpdateCommentCommandHandler(uow, c.clock, c.logger),
		DeleteComment:  commands.NewDeleteCommentCommandHandler(uow, c.logger),
		UploadDocument: commands.NewUploadDocumentCommandHandler(uow, c.files, c.clock, c.logger),
		UpdateDocument: commands.NewUpdateDocumentCommandHandler(uow, c.clock, c.logger),
		DeleteDocument: commands.NewDeleteDocumentCommandHandler(uow, c.files, c.logger),

		GetOrder:          queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrders:        queries.NewListOrdersQueryHandler(c.gormDB),
		GetOrderHistory:   queries.NewGetOrderHistoryQueryHandler(c.gormDB),
		ListComments:      queries.NewListOrderCommentsQueryHandler(c.gormDB),
		ListDocuments:     queries.NewListOrderDocumentsQueryHandler(c.gormDB),
		DocumentContent:   queries.NewGetDocumentContentQueryHandler(c.gormDB, c.files),
		ListOrderStatuses: queries.NewListOrderStatusesQueryHandler(c.gormDB),
		ListOrderTypes:    queries.NewListOrderTypesQueryHandler(c.gormDB),
		SearchItems:       queries.NewSearchOrderItemsQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(c.CreateHandlers(), c.logger)
}

func (c *CompositionRoot) CreateAuthenticator() *httpin.Authenticator {
	return httpin.NewAuthenticator([]byte(c.cfg.JWTSecret), accessrepo.NewGormPermissionResolver(c.gormDB, c.clock), c.logger)
}

func (c *CompositionRoot) CreateMetrics() *httpin.Metrics {
	return httpin.NewMetrics(c.registry)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := jobs.NewOutboxRelayJob(
		c.CreateRelayOutboxCommandHandler(),
		c.cfg.OutboxRelaySchedule,
		c.cfg.OutboxBatchSize,
		c.registry,
		c.logger,
	)
	return jobs.NewJobManager(c.logger).Register("outbox relay", relay)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
