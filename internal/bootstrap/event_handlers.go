package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/ndifor/vitrine/internal/audit"
	"github.com/ndifor/vitrine/internal/event"
	"github.com/ndifor/vitrine/internal/metrics"
	"github.com/ndifor/vitrine/internal/storefront"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus          event.Bus
	AuditService      audit.Service
	StorefrontService storefront.Service
}

// RegisterEventHandlers sets up all event bus subscribers:
// - Metrics collector (transition/rejection/reconcile counters)
// - Audit trail writer (persists transitions to slot_transitions)
// - Storefront cache invalidator (drops cached views on state change)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	// Register Metrics Collector
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	// Subscribe the audit trail writer
	if err := deps.AuditService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeAudit, err)
	}
	slog.Info(LogMsgAuditWriterSubscribed)

	// Subscribe storefront cache invalidation
	if err := deps.StorefrontService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeStorefront, err)
	}
	slog.Info(LogMsgStorefrontCacheSubscribed)

	return nil
}
