package testutil

import (
	"context"

	"github.com/Kabele/invoicely/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxUserEmail, "owner@invoicely.test")
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// ContextForUser builds a request context for a specific user, for tests that
// exercise per-user isolation
func ContextForUser(userID string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, userID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
