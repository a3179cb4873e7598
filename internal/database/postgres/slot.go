package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndifor/vitrine/internal/domain"
)

// SlotRepository provides PostgreSQL persistence for the slot pool.
type SlotRepository struct {
	db *pgxpool.Pool
}

func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{db: db}
}

const slotColumns = `id, slot_status, draft_status,
		draft_name_en, draft_name_fr, draft_price, draft_currency,
		draft_seller_contact, draft_image_urls, draft_updated_at,
		live_name_en, live_name_fr, live_price, live_currency,
		live_seller_contact, live_image_urls, live_updated_at,
		live_start_time, live_end_time,
		updated_at`

// GetSlot retrieves one slot by id.
func (r *SlotRepository) GetSlot(ctx context.Context, id int) (*domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: slot %d", domain.ErrSlotNotFound, id)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSlot, err)
	}

	return slot, nil
}

// ListSlots retrieves the whole pool ordered by slot id.
func (r *SlotRepository) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSlots, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListLiveSlots retrieves every slot currently hosting a live listing.
func (r *SlotRepository) ListLiveSlots(ctx context.Context) ([]domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE slot_status = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, string(domain.SlotStatusLive))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSlots, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// EnsureSlotPool inserts any missing slot rows for ids 1..size, leaving
// existing rows untouched. Returns the number of rows created alongside the
// resulting pool size. Rows above size are never removed; shrinking the pool
// is a manual operation.
func (r *SlotRepository) EnsureSlotPool(ctx context.Context, size int) (created int, total int, err error) {
	query := `
		INSERT INTO slots (id)
		SELECT n FROM generate_series(1, $1) AS n
		ON CONFLICT (id) DO NOTHING`

	tag, err := r.db.Exec(ctx, query, size)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrMsgFailedToEnsureSlotPool, err)
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM slots`).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountSlots, err)
	}

	return int(tag.RowsAffected()), total, nil
}

// UpdateSlot persists the slot only if the stored updated_at still equals
// expectedToken. The new token comes from clock_timestamp() so it advances
// even within a single transaction. A vanished row is disambiguated into
// not-found versus version conflict with a follow-up existence check.
func (r *SlotRepository) UpdateSlot(ctx context.Context, updated domain.Slot, expectedToken time.Time) (*domain.Slot, error) {
	query := `
		UPDATE slots SET
			slot_status = $2, draft_status = $3,
			draft_name_en = $4, draft_name_fr = $5, draft_price = $6, draft_currency = $7,
			draft_seller_contact = $8, draft_image_urls = $9, draft_updated_at = $10,
			live_name_en = $11, live_name_fr = $12, live_price = $13, live_currency = $14,
			live_seller_contact = $15, live_image_urls = $16, live_updated_at = $17,
			live_start_time = $18, live_end_time = $19,
			updated_at = clock_timestamp()
		WHERE id = $1 AND updated_at = $20
		RETURNING ` + slotColumns

	args, err := slotArgs(updated)
	if err != nil {
		return nil, err
	}
	args = append(args, expectedToken)

	slot, err := scanSlot(r.db.QueryRow(ctx, query, args...))
	if err == nil {
		return slot, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateSlot, err)
	}

	// No row matched: either the slot does not exist or the token is stale.
	var exists bool
	checkErr := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM slots WHERE id = $1)`, updated.ID).Scan(&exists)
	if checkErr != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCheckSlotExists, checkErr)
	}
	if !exists {
		return nil, fmt.Errorf("%w: slot %d", domain.ErrSlotNotFound, updated.ID)
	}

	return nil, fmt.Errorf("%w: slot %d", domain.ErrVersionConflict, updated.ID)
}

// slotArgs flattens a slot into the positional arguments shared by the
// update statement: id, statuses, draft columns, live columns.
func slotArgs(s domain.Slot) ([]interface{}, error) {
	var (
		draftNameEn, draftNameFr, draftCurrency, draftContact *string
		draftPrice                                            *int64
		draftImages                                           []byte
		draftSubmittedAt                                      *time.Time
	)
	if s.Draft != nil {
		d := s.Draft
		draftNameEn, draftNameFr = &d.NameEn, &d.NameFr
		draftPrice = &d.PriceMinor
		draftCurrency, draftContact = &d.Currency, &d.SellerContact
		if len(d.ImageURLs) > 0 {
			encoded, err := json.Marshal(d.ImageURLs)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeImageURLs, err)
			}
			draftImages = encoded
		}
		draftSubmittedAt = &d.SubmittedAt
	}

	var (
		liveNameEn, liveNameFr, liveCurrency, liveContact *string
		livePrice                                         *int64
		liveImages                                        []byte
		liveSubmittedAt, liveStart, liveEnd               *time.Time
	)
	if s.Live != nil {
		l := s.Live
		liveNameEn, liveNameFr = &l.NameEn, &l.NameFr
		livePrice = &l.PriceMinor
		liveCurrency, liveContact = &l.Currency, &l.SellerContact
		if len(l.ImageURLs) > 0 {
			encoded, err := json.Marshal(l.ImageURLs)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeImageURLs, err)
			}
			liveImages = encoded
		}
		liveSubmittedAt = &l.SubmittedAt
		liveStart, liveEnd = &l.StartTime, &l.EndTime
	}

	return []interface{}{
		s.ID, string(s.SlotStatus), string(s.DraftStatus),
		draftNameEn, draftNameFr, draftPrice, draftCurrency,
		draftContact, draftImages, draftSubmittedAt,
		liveNameEn, liveNameFr, livePrice, liveCurrency,
		liveContact, liveImages, liveSubmittedAt,
		liveStart, liveEnd,
	}, nil
}

func scanSlot(row pgx.Row) (*domain.Slot, error) {
	var (
		s                        domain.Slot
		slotStatus, draftStatus  string
		draftNameEn, draftNameFr *string
		draftPrice               *int64
		draftCurrency            *string
		draftContact             *string
		draftImages              []byte
		draftSubmittedAt         *time.Time
		liveNameEn, liveNameFr   *string
		livePrice                *int64
		liveCurrency             *string
		liveContact              *string
		liveImages               []byte
		liveSubmittedAt          *time.Time
		liveStart, liveEnd       *time.Time
	)

	err := row.Scan(
		&s.ID, &slotStatus, &draftStatus,
		&draftNameEn, &draftNameFr, &draftPrice, &draftCurrency,
		&draftContact, &draftImages, &draftSubmittedAt,
		&liveNameEn, &liveNameFr, &livePrice, &liveCurrency,
		&liveContact, &liveImages, &liveSubmittedAt,
		&liveStart, &liveEnd,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.SlotStatus = domain.SlotStatus(slotStatus)
	s.DraftStatus = domain.DraftStatus(draftStatus)

	if s.DraftStatus != domain.DraftStatusNone {
		draft := domain.DraftListing{
			NameEn:        strOrEmpty(draftNameEn),
			NameFr:        strOrEmpty(draftNameFr),
			PriceMinor:    int64OrZero(draftPrice),
			Currency:      strOrEmpty(draftCurrency),
			SellerContact: strOrEmpty(draftContact),
			SubmittedAt:   timeOrZero(draftSubmittedAt),
		}
		if err := decodeImageURLs(draftImages, &draft.ImageURLs); err != nil {
			return nil, err
		}
		s.Draft = &draft
	}

	if s.SlotStatus == domain.SlotStatusLive {
		live := domain.LiveListing{
			DraftListing: domain.DraftListing{
				NameEn:        strOrEmpty(liveNameEn),
				NameFr:        strOrEmpty(liveNameFr),
				PriceMinor:    int64OrZero(livePrice),
				Currency:      strOrEmpty(liveCurrency),
				SellerContact: strOrEmpty(liveContact),
				SubmittedAt:   timeOrZero(liveSubmittedAt),
			},
			StartTime: timeOrZero(liveStart),
			EndTime:   timeOrZero(liveEnd),
		}
		if err := decodeImageURLs(liveImages, &live.ImageURLs); err != nil {
			return nil, err
		}
		s.Live = &live
	}

	return &s, nil
}

func scanSlots(rows pgx.Rows) ([]domain.Slot, error) {
	var slots []domain.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanSlot, err)
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanSlot, err)
	}
	return slots, nil
}

func decodeImageURLs(raw []byte, dest *[]string) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDecodeImageURLs, err)
	}
	return nil
}

func strOrEmpty(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

func int64OrZero(p *int64) int64 {
	if p != nil {
		return *p
	}
	return 0
}

func timeOrZero(p *time.Time) time.Time {
	if p != nil {
		return *p
	}
	return time.Time{}
}
