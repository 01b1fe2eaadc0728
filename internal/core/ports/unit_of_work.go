package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction. Repositories obtained after Begin
// are bound to it; client code manages Begin/Commit/Rollback explicitly.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	WorkflowRepository() WorkflowRepository
	CommentRepository() CommentRepository
	DocumentRepository() DocumentRepository
	ReferenceRepository() ReferenceRepository
	OutboxRepository() OutboxRepository
}
