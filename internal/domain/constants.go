package domain

// Storefront language constants - the two localized listing names every
// slot carries
const (
	LangEnglish = "en"
	LangFrench  = "fr"
)

// Transition source constants for audit attribution and event metadata
const (
	SourceSeller     = "seller"
	SourceAdmin      = "admin"
	SourceReconciler = "reconciler"
)

// Batch constants
const (
	MaxBatchSlots = 100
)

// Shared metadata keys used across multiple modules for event payloads
// These keys ensure consistency when publishing and consuming events
const (
	// MetadataKeySource is used to store the transition origin in event metadata
	MetadataKeySource = "source"
)
