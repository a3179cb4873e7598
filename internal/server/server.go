package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ndifor/vitrine/internal/admin"
	"github.com/ndifor/vitrine/internal/audit"
	"github.com/ndifor/vitrine/internal/database"
	"github.com/ndifor/vitrine/internal/handler"
	"github.com/ndifor/vitrine/internal/logger"
	"github.com/ndifor/vitrine/internal/metrics"
	"github.com/ndifor/vitrine/internal/reconciler"
	"github.com/ndifor/vitrine/internal/slot"
	"github.com/ndifor/vitrine/internal/storefront"
)

type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	slotService       slot.Service
	adminService      admin.Service
	auditService      audit.Service
	reconcilerService reconciler.Service
	storefrontService storefront.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey, reconcileKey string, trustedProxies []string, auditRetentionDays int, dbPool database.Pool, slotReader handler.SlotReader, slotService slot.Service, adminService admin.Service, auditService audit.Service, reconcilerService reconciler.Service, storefrontService storefront.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Reconcile trigger. Lives outside /api/v1 and carries its own
	// shared-secret check, so an external scheduler never holds the admin key.
	reconcileHandler := handler.NewReconcileHandler(reconcilerService, reconcileKey)
	r.Get("/tasks/reconcile", reconcileHandler.HandleReconcile)
	r.Post("/tasks/reconcile", reconcileHandler.HandleReconcile)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Seller routes
		sellerHandler := handler.NewSellerHandler(slotService)
		r.Route("/slots/{slotID}", func(r chi.Router) {
			r.Post("/draft", sellerHandler.HandleSubmitDraft)
			r.Post("/draft/ready", sellerHandler.HandleMarkReady)
		})

		// Storefront routes (public reads)
		storefrontHandler := handler.NewStorefrontHandler(storefrontService)
		r.Route("/storefront", func(r chi.Router) {
			r.Get("/listings", storefrontHandler.HandleListListings)
			r.Get("/slots/{slotID}", storefrontHandler.HandleGetSlotView)
		})

		// Admin routes
		adminHandler := handler.NewAdminHandler(adminService, slotReader, auditService)
		adminMetricsHandler := handler.NewAdminMetricsHandler()
		adminCacheHandler := handler.NewAdminCacheHandler(storefrontService)
		adminCleanupHandler := handler.NewAdminCleanupHandler(auditService, auditRetentionDays)
		r.Route("/admin", func(r chi.Router) {
			r.Route("/slots", func(r chi.Router) {
				r.Get("/", adminHandler.HandleListSlots)
				r.Post("/batch/{operation}", adminHandler.HandleBatch)

				r.Route("/{slotID}", func(r chi.Router) {
					r.Get("/", adminHandler.HandleGetSlot)
					r.Get("/audit", adminHandler.HandleSlotAudit)
					r.Post("/approve", adminHandler.HandleApproveDraft)
					r.Post("/reject", adminHandler.HandleRejectDraft)
					r.Post("/set-maintenance", adminHandler.HandleSetMaintenance)
					r.Post("/clear-maintenance", adminHandler.HandleClearMaintenance)
					r.Post("/remove", adminHandler.HandleRemoveProduct)
				})
			})

			r.Get("/transitions", adminHandler.HandleQueryTransitions)
			r.Get("/metrics", adminMetricsHandler.HandleGetMetrics)

			// Admin cache routes
			r.Route("/cache", func(r chi.Router) {
				r.Get("/stats", adminCacheHandler.HandleGetCacheStats)
			})

			// Admin audit routes
			r.Route("/audit", func(r chi.Router) {
				r.Post("/cleanup", adminCleanupHandler.HandleManualCleanup)
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:            dbPool,
		slotService:       slotService,
		adminService:      adminService,
		auditService:      auditService,
		reconcilerService: reconcilerService,
		storefrontService: storefrontService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
