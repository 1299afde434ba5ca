package activity

import "context"

type actorKey struct{}

// DefaultActor is recorded when no authenticated caller is known.
const DefaultActor = "local"

// WithActor returns a context carrying the caller recorded on activity entries.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller stored by WithActor, or DefaultActor.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return DefaultActor
}
