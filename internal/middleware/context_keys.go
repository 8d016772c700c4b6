package middleware

import "context"

// contextKey is a private type for context values set by middleware.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	actorIDKey   = contextKey("actorID")
)

// GetActorIDFromCtx retrieves the authenticated actor (user) ID from the
// request context. It returns the ID and a boolean indicating if it was found.
func GetActorIDFromCtx(ctx context.Context) (string, bool) {
	v := ctx.Value(actorIDKey)
	if v == nil {
		return "", false
	}
	actorID, ok := v.(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
