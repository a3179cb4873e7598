package config

import "time"

// Defaults applied when the corresponding environment variable is unset
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"

	DefaultDBName = "vitrine"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
)

// Slot engine defaults
const (
	// DefaultSlotPoolSize is the number of numbered merchandising slots the
	// seed tooling provisions.
	DefaultSlotPoolSize = 24

	// DefaultListingDurationDays is the display window granted when a draft
	// is approved.
	DefaultListingDurationDays = 30

	// DefaultTransitionMaxRetries bounds version-conflict retries for a
	// single transition attempt.
	DefaultTransitionMaxRetries = 3

	// DefaultAuditRetentionDays is how long transition history is kept
	// before the nightly cleanup removes it.
	DefaultAuditRetentionDays = 90
)

// Storefront read-cache defaults
const (
	DefaultStorefrontCacheSize = 128
	DefaultStorefrontCacheTTL  = 5 * time.Minute
)

// Worker pool defaults
const (
	DefaultWorkerCount     = 2
	DefaultWorkerQueueSize = 50
)
