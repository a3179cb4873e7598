package domain

// ReconcileFailure records a slot the reconciler could not bring back in
// line, with a human-readable reason. One bad slot never aborts the sweep.
type ReconcileFailure struct {
	SlotID int    `json:"slot_id"`
	Reason string `json:"reason"`
}

// ReconcileReport summarizes a single reconciliation sweep. Processed counts
// every live slot examined; Updated counts the subset actually expired.
type ReconcileReport struct {
	Processed int                `json:"processed"`
	Updated   int                `json:"updated"`
	Failures  []ReconcileFailure `json:"failures,omitempty"`
}

// BatchOutcomeStatus tags the per-slot result of a batch operation.
type BatchOutcomeStatus string

const (
	BatchOutcomeSuccess BatchOutcomeStatus = "success"
	BatchOutcomeFailure BatchOutcomeStatus = "failure"
	BatchOutcomeSkipped BatchOutcomeStatus = "skipped"
)

// BatchItemOutcome is the result for one slot in a batch operation. Exactly
// one of Slot or Reason is set: Slot carries the post-transition state on
// success, Reason explains a failure or skip.
type BatchItemOutcome struct {
	SlotID int                `json:"slot_id"`
	Status BatchOutcomeStatus `json:"status"`
	Slot   *Slot              `json:"slot,omitempty"`
	Reason string             `json:"reason,omitempty"`
}

// BatchReport aggregates a batch run. Outcomes preserves the request order of
// the slot IDs, including entries skipped after a cancellation.
type BatchReport struct {
	Outcomes  []BatchItemOutcome `json:"outcomes"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Skipped   int                `json:"skipped"`
}

// Counts returns succeeded, failed and skipped tallies recomputed from the
// outcome list.
func (r *BatchReport) Counts() (succeeded, failed, skipped int) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case BatchOutcomeSuccess:
			succeeded++
		case BatchOutcomeFailure:
			failed++
		case BatchOutcomeSkipped:
			skipped++
		}
	}
	return succeeded, failed, skipped
}
