package sideeffect

import (
	"context"

	"go.uber.org/zap"
)

// Hook is one best-effort action run after the primary write of a use case
// has succeeded.
type Hook struct {
	Name string
	Run  func(ctx context.Context) error
}

// Run executes hooks in order. Failures are logged and swallowed: once the
// primary write is committed, the operation is successful regardless of
// what happens here.
func Run(ctx context.Context, logger *zap.Logger, hooks []Hook) {
	for _, h := range hooks {
		if err := h.Run(ctx); err != nil {
			logger.Warn("post-commit hook failed",
				zap.String("hook", h.Name),
				zap.Error(err),
			)
		}
	}
}
