package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndifor/vitrine/internal/audit"
)

// TransitionRepository provides PostgreSQL persistence for the slot
// transition audit trail.
type TransitionRepository struct {
	db *pgxpool.Pool
}

func NewTransitionRepository(db *pgxpool.Pool) *TransitionRepository {
	return &TransitionRepository{db: db}
}

const transitionColumns = `transition_id, slot_id, event_type, from_status, to_status, source, reason, payload, created_at`

// RecordTransition appends one transition record.
func (r *TransitionRepository) RecordTransition(ctx context.Context, rec audit.TransitionRecord) error {
	var payload []byte
	if rec.Payload != nil {
		encoded, err := json.Marshal(rec.Payload)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToEncodePayload, err)
		}
		payload = encoded
	}

	query := `
		INSERT INTO slot_transitions (slot_id, event_type, from_status, to_status, source, reason, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		rec.SlotID, rec.EventType,
		nullIfEmpty(rec.FromStatus), nullIfEmpty(rec.ToStatus),
		nullIfEmpty(rec.Source), nullIfEmpty(rec.Reason),
		payload,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordTransition, err)
	}

	return nil
}

// GetTransitions retrieves transition records matching the filter, newest
// first. The query is assembled from the populated filter fields.
func (r *TransitionRepository) GetTransitions(ctx context.Context, filter audit.TransitionFilter) ([]audit.TransitionRecord, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + transitionColumns + ` FROM slot_transitions`)

	var args []interface{}
	var conditions []string

	if filter.SlotID != nil {
		args = append(args, *filter.SlotID)
		conditions = append(conditions, fmt.Sprintf("slot_id = $%d", len(args)))
	}
	if filter.EventType != nil {
		args = append(args, *filter.EventType)
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if filter.Source != nil {
		args = append(args, *filter.Source)
		conditions = append(conditions, fmt.Sprintf("source = $%d", len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.Until != nil {
		args = append(args, *filter.Until)
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}

	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC, transition_id DESC")

	args = append(args, clampQueryLimit(filter.Limit))
	query.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTransitions, err)
	}
	defer rows.Close()

	return scanTransitions(rows)
}

// GetTransitionsBySlot retrieves the recent history of one slot, newest first.
func (r *TransitionRepository) GetTransitionsBySlot(ctx context.Context, slotID int, limit int) ([]audit.TransitionRecord, error) {
	query := `
		SELECT ` + transitionColumns + `
		FROM slot_transitions
		WHERE slot_id = $1
		ORDER BY created_at DESC, transition_id DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, slotID, clampQueryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTransitions, err)
	}
	defer rows.Close()

	return scanTransitions(rows)
}

// CleanupOldTransitions removes records older than the retention window and
// reports how many were deleted.
func (r *TransitionRepository) CleanupOldTransitions(ctx context.Context, retentionDays int) (int64, error) {
	query := `DELETE FROM slot_transitions WHERE created_at < NOW() - INTERVAL '1 day' * $1`

	tag, err := r.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupTransitions, err)
	}

	return tag.RowsAffected(), nil
}

func scanTransitions(rows pgx.Rows) ([]audit.TransitionRecord, error) {
	var records []audit.TransitionRecord
	for rows.Next() {
		var (
			rec                  audit.TransitionRecord
			fromStatus, toStatus *string
			source, reason       *string
			payload              []byte
		)

		err := rows.Scan(
			&rec.ID, &rec.SlotID, &rec.EventType,
			&fromStatus, &toStatus, &source, &reason,
			&payload, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanTransition, err)
		}

		rec.FromStatus = strOrEmpty(fromStatus)
		rec.ToStatus = strOrEmpty(toStatus)
		rec.Source = strOrEmpty(source)
		rec.Reason = strOrEmpty(reason)

		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &rec.Payload); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodePayload, err)
			}
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanTransition, err)
	}
	return records, nil
}

func clampQueryLimit(limit int) int {
	if limit <= 0 {
		return audit.DefaultQueryLimit
	}
	if limit > audit.MaxQueryLimit {
		return audit.MaxQueryLimit
	}
	return limit
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
