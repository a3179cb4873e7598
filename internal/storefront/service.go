package storefront

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/event"
	"github.com/ndifor/vitrine/internal/logger"
)

// Cache defaults applied when configuration leaves them unset
const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = 30 * time.Second
)

// Log messages
const (
	LogMsgPriceRenderFailed = "Failed to render listing price"
	LogMsgCacheInvalidated  = "Storefront cache invalidated"
	LogMsgCacheCleared      = "Storefront cache cleared"
)

// Repository defines the storage reads the storefront needs
type Repository interface {
	// GetSlot retrieves one slot by id
	GetSlot(ctx context.Context, id int) (*domain.Slot, error)

	// ListLiveSlots retrieves every slot currently hosting a live listing
	ListLiveSlots(ctx context.Context) ([]domain.Slot, error)
}

// Listing is the public, localized view of a live listing
type Listing struct {
	SlotID        int       `json:"slot_id"`
	Name          string    `json:"name"`
	Price         string    `json:"price"`
	PriceMinor    int64     `json:"price_minor"`
	Currency      string    `json:"currency"`
	SellerContact string    `json:"seller_contact"`
	ImageURLs     []string  `json:"image_urls,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Language      string    `json:"language"`
}

// SlotView is the public view of any slot: its occupancy, plus the listing
// when one is live
type SlotView struct {
	SlotID     int               `json:"slot_id"`
	SlotStatus domain.SlotStatus `json:"slot_status"`
	Listing    *Listing          `json:"listing,omitempty"`
}

// Service serves the public storefront reads
type Service interface {
	// Subscribe registers the cache invalidation handlers
	Subscribe(bus event.Bus) error

	// ListListings returns every live listing, localized for the requested
	// language
	ListListings(ctx context.Context, lang string) ([]Listing, error)

	// GetSlotView returns the public view of one slot
	GetSlotView(ctx context.Context, slotID int, lang string) (*SlotView, error)

	// CacheStats reports read-cache performance counters
	CacheStats() CacheStats
}

type service struct {
	repo  Repository
	cache *slotCache
}

// NewService creates a new storefront service backed by an LRU cache
func NewService(repo Repository, cacheSize int, cacheTTL time.Duration) Service {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &service{
		repo:  repo,
		cache: newSlotCache(cacheSize, cacheTTL),
	}
}

// Subscribe registers invalidation for every event that changes the public
// view. Draft review moves never change it, so they are not subscribed.
func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		domain.EventTypeListingPublished,
		domain.EventTypeListingRemoved,
		domain.EventTypeListingExpired,
		domain.EventTypeMaintenanceSet,
		domain.EventTypeMaintenanceCleared,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleInvalidation)
	}

	return nil
}

// slotRef extracts the slot id common to every slot event payload
type slotRef struct {
	SlotID int `json:"slot_id"`
}

// handleInvalidation drops cached state for the changed slot. Invalidation
// never fails the publisher.
func (s *service) handleInvalidation(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	ref, err := event.DecodePayload[slotRef](evt.Payload)
	if err != nil || ref.SlotID == 0 {
		s.cache.Clear()
		log.Debug(LogMsgCacheCleared, "type", evt.Type)
		return nil
	}

	s.cache.InvalidateSlot(ref.SlotID)
	log.Debug(LogMsgCacheInvalidated, "type", evt.Type, "slot_id", ref.SlotID)
	return nil
}

// ListListings returns every live listing, localized
func (s *service) ListListings(ctx context.Context, lang string) ([]Listing, error) {
	display := matchLanguage(lang)

	slots, ok := s.cache.GetList()
	if !ok {
		fetched, err := s.repo.ListLiveSlots(ctx)
		if err != nil {
			return nil, fmt.Errorf("list live slots: %w", err)
		}
		s.cache.SetList(fetched)
		slots = fetched
	}

	listings := make([]Listing, 0, len(slots))
	for i := range slots {
		if slots[i].Live == nil {
			continue
		}
		listings = append(listings, renderListing(ctx, slots[i].ID, slots[i].Live, display))
	}
	return listings, nil
}

// CacheStats reports read-cache performance counters
func (s *service) CacheStats() CacheStats {
	return s.cache.GetStats()
}

// GetSlotView returns the public view of one slot
func (s *service) GetSlotView(ctx context.Context, slotID int, lang string) (*SlotView, error) {
	display := matchLanguage(lang)

	sl, ok := s.cache.GetSlot(slotID)
	if !ok {
		fetched, err := s.repo.GetSlot(ctx, slotID)
		if err != nil {
			return nil, err
		}
		s.cache.SetSlot(slotID, fetched)
		sl = fetched
	}

	view := &SlotView{
		SlotID:     sl.ID,
		SlotStatus: sl.SlotStatus,
	}
	if sl.Live != nil {
		listing := renderListing(ctx, sl.ID, sl.Live, display)
		view.Listing = &listing
	}
	return view, nil
}

// renderListing localizes one live listing for display
func renderListing(ctx context.Context, slotID int, live *domain.LiveListing, lang string) Listing {
	name := live.NameEn
	if lang == domain.LangFrench {
		name = live.NameFr
	}

	price, err := domain.FormatPriceMajor(live.PriceMinor, live.Currency)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPriceRenderFailed,
			"slot_id", slotID, "currency", live.Currency, "error", err)
	}

	return Listing{
		SlotID:        slotID,
		Name:          name,
		Price:         price,
		PriceMinor:    live.PriceMinor,
		Currency:      live.Currency,
		SellerContact: live.SellerContact,
		ImageURLs:     live.ImageURLs,
		StartTime:     live.StartTime,
		EndTime:       live.EndTime,
		Language:      lang,
	}
}

// supportedLanguages matches requests against the two display languages the
// listings carry. English is first and therefore the fallback.
var supportedLanguages = language.NewMatcher([]language.Tag{
	language.English,
	language.French,
})

// matchLanguage resolves a raw language request ("fr", "fr-CM",
// "en-US,fr;q=0.8") to one of the supported display languages
func matchLanguage(requested string) string {
	if requested == "" {
		return domain.LangEnglish
	}
	tags, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(tags) == 0 {
		return domain.LangEnglish
	}
	_, index, _ := supportedLanguages.Match(tags...)
	if index == 1 {
		return domain.LangFrench
	}
	return domain.LangEnglish
}
