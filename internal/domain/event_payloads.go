package domain

// SlotTransitionPayload is the event payload shared by all slot.* transition events
type SlotTransitionPayload struct {
	SlotID     int    `json:"slot_id"`
	Event      string `json:"event"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Source     string `json:"source"`
	Timestamp  int64  `json:"timestamp"`
}

// TransitionRejectedPayload is the event payload for slot.transition.rejected events
type TransitionRejectedPayload struct {
	SlotID     int    `json:"slot_id"`
	Event      string `json:"event"`
	SlotStatus string `json:"slot_status"`
	Reason     string `json:"reason"`
	Source     string `json:"source"`
	Timestamp  int64  `json:"timestamp"`
}

// ListingPublishedPayload is the event payload for slot.listing.published events
type ListingPublishedPayload struct {
	SlotID     int    `json:"slot_id"`
	NameEn     string `json:"name_en"`
	NameFr     string `json:"name_fr"`
	PriceMinor int64  `json:"price_minor"`
	Currency   string `json:"currency"`
	StartTime  int64  `json:"start_time"`
	EndTime    int64  `json:"end_time"`
	Source     string `json:"source"`
	Timestamp  int64  `json:"timestamp"`
}

// ListingExpiredPayload is the event payload for slot.listing.expired events
type ListingExpiredPayload struct {
	SlotID    int    `json:"slot_id"`
	NameEn    string `json:"name_en"`
	EndTime   int64  `json:"end_time"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

// ReconcileCompletedPayload is the event payload for reconcile.completed events
type ReconcileCompletedPayload struct {
	Processed  int   `json:"processed"`
	Updated    int   `json:"updated"`
	Failed     int   `json:"failed"`
	DurationMs int64 `json:"duration_ms"`
	Timestamp  int64 `json:"timestamp"`
}
