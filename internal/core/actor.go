package core

import "context"

type actorKey struct{}

// SystemActor is recorded for writes that have no authenticated user, such
// as CLI maintenance and public form submissions.
const SystemActor = "system"

// WithActor returns a context carrying the id of the user performing writes.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the user set by WithActor, or SystemActor.
func ActorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(actorKey{}).(string); ok && id != "" {
		return id
	}
	return SystemActor
}
