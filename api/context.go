package api

import (
	"context"

	"github.com/plateful-app/plateful-backend/models"
)

type keyType string

const userKey keyType = "user"

// ctxWithUser adds the authenticated user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the authenticated user from the context; nil when the
// request is anonymous.
func ctxGetUser(ctx context.Context) *models.User {
	if value := ctx.Value(userKey); value != nil {
		if user, ok := value.(*models.User); ok {
			return user
		}
	}
	return nil
}
