package presence

import (
	"context"
	"time"

	"horizon-rp/quartermaster/internal/models/dtos"
)

// Clients that stop heartbeating are dropped after this TTL.
const MemberTTL = 90 * time.Second

// Unsubscribe detaches a sync handler registered via Subscribe.
type Unsubscribe func()

// ChannelHub is the shared presence state behind the tracker. Implementations
// hold ephemeral members per entity channel and fan out sync notifications
// whenever membership changes. Nothing here is persisted.
type ChannelHub interface {
	// Track registers (or refreshes) a member on an entity channel.
	Track(ctx context.Context, entity, clientKey string, viewer dtos.PresenceViewer) error

	// Touch refreshes a member's heartbeat without changing its identity.
	Touch(ctx context.Context, entity, clientKey string) error

	// Untrack removes a member from an entity channel.
	Untrack(ctx context.Context, entity, clientKey string) error

	// Members returns the live members of an entity channel keyed by client key.
	Members(ctx context.Context, entity string) (map[string]dtos.PresenceViewer, error)

	// Subscribe registers a handler invoked on every membership change of the
	// entity channel. The handler must not block.
	Subscribe(ctx context.Context, entity string, handler func()) (Unsubscribe, error)

	// Sweep drops members whose heartbeat expired and returns how many were
	// removed across all channels.
	Sweep(ctx context.Context) (int, error)

	// Close releases any underlying connections.
	Close() error
}
