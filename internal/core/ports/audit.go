package ports

import (
	"context"

	"github.com/storefront/storefront-api/internal/core/domain"
)

// AuditRepository stores authentication events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditSink accepts events without blocking the caller. Delivery is best
// effort: a full or stopped sink drops the event.
type AuditSink interface {
	Record(event domain.AuthEvent)
}
