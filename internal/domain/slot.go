package domain

import (
	"fmt"
	"time"
)

// SlotStatus is the occupancy state of a merchandising slot.
type SlotStatus string

const (
	SlotStatusEmpty       SlotStatus = "empty"
	SlotStatusLive        SlotStatus = "live"
	SlotStatusMaintenance SlotStatus = "maintenance"
)

// IsValid reports whether the status is one of the known slot statuses.
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusEmpty, SlotStatusLive, SlotStatusMaintenance:
		return true
	}
	return false
}

// DraftStatus is the review state of a slot's pending submission.
type DraftStatus string

const (
	DraftStatusNone           DraftStatus = "none"
	DraftStatusDrafting       DraftStatus = "drafting"
	DraftStatusReadyToPublish DraftStatus = "ready_to_publish"
	DraftStatusRejected       DraftStatus = "rejected"
)

// IsValid reports whether the status is one of the known draft statuses.
func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftStatusNone, DraftStatusDrafting, DraftStatusReadyToPublish, DraftStatusRejected:
		return true
	}
	return false
}

// DraftListing is a seller-submitted candidate listing awaiting review.
// It is created, replaced and cleared atomically by transitions, never
// mutated field-by-field.
type DraftListing struct {
	NameEn        string    `json:"name_en"`
	NameFr        string    `json:"name_fr"`
	PriceMinor    int64     `json:"price_minor"`
	Currency      string    `json:"currency"`
	SellerContact string    `json:"seller_contact"`
	ImageURLs     []string  `json:"image_urls"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Clone returns a deep copy of the draft listing.
func (d *DraftListing) Clone() *DraftListing {
	if d == nil {
		return nil
	}
	out := *d
	if d.ImageURLs != nil {
		out.ImageURLs = make([]string, len(d.ImageURLs))
		copy(out.ImageURLs, d.ImageURLs)
	}
	return &out
}

// LiveListing is the publicly visible, time-boxed occupant of a slot.
// It is always a copy of the approved draft plus its display window.
type LiveListing struct {
	DraftListing
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Clone returns a deep copy of the live listing.
func (l *LiveListing) Clone() *LiveListing {
	if l == nil {
		return nil
	}
	out := *l
	out.DraftListing = *l.DraftListing.Clone()
	return &out
}

// Slot is a stable, numbered merchandising position. Slots are created once
// from seed data and never destroyed; they cycle between empty, live and
// maintenance while drafts move through review independently.
//
// UpdatedAt doubles as the optimistic version token: every committed
// transition advances it, and conditional writes are keyed on the value
// observed at read time.
type Slot struct {
	ID          int           `json:"id"`
	SlotStatus  SlotStatus    `json:"slot_status"`
	DraftStatus DraftStatus   `json:"draft_status"`
	Draft       *DraftListing `json:"draft,omitempty"`
	Live        *LiveListing  `json:"live,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Clone returns a deep copy of the slot, including its sub-records.
func (s Slot) Clone() Slot {
	out := s
	out.Draft = s.Draft.Clone()
	out.Live = s.Live.Clone()
	return out
}

// LiveExpired reports whether the slot hosts a live listing whose display
// window has elapsed at the given instant.
func (s *Slot) LiveExpired(now time.Time) bool {
	return s.SlotStatus == SlotStatusLive && s.Live != nil && now.After(s.Live.EndTime)
}

// Validate checks the structural invariants that must hold for every slot at
// rest. The persistence layer does not enforce these; callers must validate
// before every write.
func (s *Slot) Validate() error {
	if !s.SlotStatus.IsValid() {
		return fmt.Errorf("%w: unknown slot status %q", ErrInvalidSlotState, s.SlotStatus)
	}
	if !s.DraftStatus.IsValid() {
		return fmt.Errorf("%w: unknown draft status %q", ErrInvalidSlotState, s.DraftStatus)
	}
	if (s.SlotStatus == SlotStatusLive) != (s.Live != nil) {
		return fmt.Errorf("%w: live record present=%t with slot status %q", ErrInvalidSlotState, s.Live != nil, s.SlotStatus)
	}
	if (s.DraftStatus != DraftStatusNone) != (s.Draft != nil) {
		return fmt.Errorf("%w: draft record present=%t with draft status %q", ErrInvalidSlotState, s.Draft != nil, s.DraftStatus)
	}
	if s.Live != nil && s.Live.StartTime.After(s.Live.EndTime) {
		return fmt.Errorf("%w: live window starts after it ends", ErrInvalidSlotState)
	}
	return nil
}
