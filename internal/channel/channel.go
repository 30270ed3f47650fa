package channel

import "context"

// Channel delivers one rendered message to a single target address.
// Implementations are fire-and-forget from the dispatcher's perspective:
// the dispatcher never retries, it only records the outcome.
type Channel interface {
	Send(ctx context.Context, target, text string) error
}
