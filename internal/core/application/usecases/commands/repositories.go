// Package commands contains the operations that change order state. Every
// command runs inside one unit of work (one database transaction) and takes
// the calling access.Principal explicitly.
package commands

import (
	"context"

	"procurement/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order aggregate repositories within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
		WorkflowRepository() ports.WorkflowRepository
		ReferenceRepository() ports.ReferenceRepository
	}

	// ChildRepoFactory provides comment and document repositories within a transaction.
	ChildRepoFactory interface {
		CommentRepository() ports.CommentRepository
		DocumentRepository() ports.DocumentRepository
	}

	// OutboxRepoFactory provides the outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// UoW spans every repository of the engine.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... change o, record history
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ChildRepoFactory
		OutboxRepoFactory
	}

	// UoWFactory creates a fresh UoW per command.
	UoWFactory interface {
		Create() UoW
	}

	// OutboxUoW is the narrow unit of work of the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates outbox units of work.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
