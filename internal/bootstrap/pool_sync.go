package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ndifor/vitrine/internal/database/postgres"
)

// SyncSlotPool provisions missing slot rows so the pool holds at least
// poolSize numbered slots. Existing rows are never modified and the pool is
// never shrunk here: a smaller configured size only logs a warning, so live
// listings on higher-numbered slots keep running until an operator retires
// them through the admin surface.
func SyncSlotPool(ctx context.Context, repo *postgres.SlotRepository, poolSize int) error {
	slog.Info(LogMsgSyncingSlotPool, "pool_size", poolSize)

	if poolSize < 1 {
		return fmt.Errorf("%s %d", ErrMsgInvalidSlotPoolSize, poolSize)
	}

	created, total, err := repo.EnsureSlotPool(ctx, poolSize)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncSlotPool, err)
	}

	if created > 0 {
		slog.Info(LogMsgSlotPoolProvisioned, "created", created, "total", total)
	} else {
		slog.Info(LogMsgSlotPoolUnchanged, "total", total)
	}

	if total > poolSize {
		slog.Warn(LogMsgSlotPoolLargerThanConfig, "total", total, "configured", poolSize)
	}

	return nil
}
