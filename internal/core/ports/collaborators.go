package ports

import (
	"context"
	"io"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
)

// PermissionResolver turns a user id into the permissions granted through
// the user's unexpired roles. A user without matching rows holds nothing; only
// store failures are errors.
type PermissionResolver interface {
	HasPermission(ctx context.Context, userID int64, perm access.Permission) (bool, error)
	ResolvePrincipal(ctx context.Context, userID int64) (access.Principal, error)
}

// FileStore keeps uploaded document contents.
type FileStore interface {
	// Save stores content and returns an opaque reference and the byte count.
	Save(ctx context.Context, suggestedName string, content io.Reader) (reference string, size int64, err error)

	// Delete releases a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, reference string) error
}

// ApproverDirectory lists the mailboxes to notify about new orders. An empty
// list is not an error.
type ApproverDirectory interface {
	ApproverEmails(ctx context.Context) ([]string, error)
}

// FileReader reads stored document contents back.
type FileReader interface {
	Open(ctx context.Context, reference string) (io.ReadCloser, error)
}

// EventPublisher hands committed events to the message broker.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event order.CreatedEvent) error
}

// Notifier tells people about new orders. It runs outside the engine, behind
// the event publisher.
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, event order.CreatedEvent) error
}
