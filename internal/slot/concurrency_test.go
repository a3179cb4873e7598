package slot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndifor/vitrine/internal/domain"
)

// fakeStore is an in-memory Repository with real compare-and-swap semantics,
// used to exercise the guard under genuine contention.
type fakeStore struct {
	mu    sync.Mutex
	slots map[int]domain.Slot
	seq   int
}

func newFakeStore(slots ...domain.Slot) *fakeStore {
	fs := &fakeStore{slots: make(map[int]domain.Slot)}
	for _, s := range slots {
		fs.slots[s.ID] = s.Clone()
	}
	return fs
}

func (f *fakeStore) GetSlot(ctx context.Context, id int) (*domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	out := s.Clone()
	return &out, nil
}

func (f *fakeStore) UpdateSlot(ctx context.Context, updated domain.Slot, expectedToken time.Time) (*domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[updated.ID]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	if !s.UpdatedAt.Equal(expectedToken) {
		return nil, domain.ErrVersionConflict
	}
	f.seq++
	committed := updated.Clone()
	committed.UpdatedAt = testToken.Add(time.Duration(f.seq) * time.Millisecond)
	f.slots[updated.ID] = committed
	out := committed.Clone()
	return &out, nil
}

func (f *fakeStore) snapshot(id int) domain.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[id].Clone()
}

// TestService_ConcurrentApprove_ExactlyOneWinner verifies the race property:
// concurrent approvals of the same slot resolve to a single committed
// listing, with every loser seeing a precondition failure or a conflict.
func TestService_ConcurrentApprove_ExactlyOneWinner(t *testing.T) {
	store := newFakeStore(readySlot(3))
	svc := NewService(store, NewMachine(testDuration), nil, DefaultMaxRetries)
	ctx := context.Background()

	concurrency := 10
	var wg sync.WaitGroup
	wg.Add(concurrency)

	results := make([]error, concurrency)
	for i := 0; i < concurrency; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := svc.Apply(ctx, 3, Event{Type: EventApproveDraft, Source: domain.SourceAdmin})
			results[n] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		ok := errors.Is(err, domain.ErrPreconditionFailed) || errors.Is(err, domain.ErrVersionConflict)
		assert.True(t, ok, "loser saw unexpected error: %v", err)
	}
	assert.Equal(t, 1, successes, "exactly one approval commits")

	final := store.snapshot(3)
	require.NoError(t, final.Validate())
	assert.Equal(t, domain.SlotStatusLive, final.SlotStatus)
	require.NotNil(t, final.Live)
	assert.Equal(t, draftFixture().NameEn, final.Live.NameEn, "the committed listing is the reviewed draft, never a merge")
}

// TestService_ConcurrentMixedEvents_InvariantsHold hammers several slots with
// overlapping transitions and checks that every slot still satisfies the
// at-rest invariants afterwards.
func TestService_ConcurrentMixedEvents_InvariantsHold(t *testing.T) {
	slots := []domain.Slot{
		emptySlot(1),
		readySlot(2),
		liveSlot(3, testNow.Add(-48*time.Hour), testNow.Add(-time.Hour)),
		maintenanceSlot(4),
		draftingSlot(5),
	}
	store := newFakeStore(slots...)
	svc := NewService(store, NewMachine(testDuration), nil, DefaultMaxRetries)
	ctx := context.Background()

	events := []Event{
		{Type: EventSubmitDraft, Draft: draftFixture(), Source: domain.SourceSeller},
		{Type: EventMarkReadyToPublish, Source: domain.SourceSeller},
		{Type: EventApproveDraft, Source: domain.SourceAdmin},
		{Type: EventRejectDraft, Source: domain.SourceAdmin},
		{Type: EventSetMaintenance, Source: domain.SourceAdmin},
		{Type: EventClearMaintenance, Source: domain.SourceAdmin},
		{Type: EventRemoveProduct, Source: domain.SourceAdmin},
		{Type: EventExpireListing, Source: domain.SourceReconciler},
	}

	concurrency := 50
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go func(n int) {
			defer wg.Done()
			slotID := slots[n%len(slots)].ID
			ev := events[n%len(events)]
			_, err := svc.Apply(ctx, slotID, ev)
			if err != nil {
				// Rejections and conflicts are expected under contention;
				// anything else is a bug.
				ok := errors.Is(err, domain.ErrPreconditionFailed) ||
					errors.Is(err, domain.ErrVersionConflict)
				assert.True(t, ok, "unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	for _, s := range slots {
		final := store.snapshot(s.ID)
		assert.NoError(t, final.Validate(), "slot %d violates invariants", s.ID)
	}
}

// TestService_SequentialLivesRequireRemoval verifies no second listing can
// commit over a live one without an intervening removal.
func TestService_SequentialLivesRequireRemoval(t *testing.T) {
	store := newFakeStore(readySlot(6))
	svc := NewService(store, NewMachine(testDuration), nil, DefaultMaxRetries)
	ctx := context.Background()

	_, err := svc.Apply(ctx, 6, Event{Type: EventApproveDraft, Source: domain.SourceAdmin})
	require.NoError(t, err)

	// A full second cycle against the now-live slot: submit and review a new
	// draft, then try to approve it over the live listing.
	second := &domain.DraftListing{
		NameEn:        "Beaded necklace",
		NameFr:        "Collier de perles",
		PriceMinor:    300000,
		Currency:      "XAF",
		SellerContact: "+237659998877",
	}
	_, err = svc.Apply(ctx, 6, Event{Type: EventSubmitDraft, Draft: second, Source: domain.SourceSeller})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, 6, Event{Type: EventMarkReadyToPublish, Source: domain.SourceSeller})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, 6, Event{Type: EventApproveDraft, Source: domain.SourceAdmin})
	require.Error(t, err, "second listing must not commit over the first")
	assert.True(t, errors.Is(err, domain.ErrPreconditionFailed))

	_, err = svc.Apply(ctx, 6, Event{Type: EventRemoveProduct, Source: domain.SourceAdmin})
	require.NoError(t, err)
	got, err := svc.Apply(ctx, 6, Event{Type: EventApproveDraft, Source: domain.SourceAdmin})
	require.NoError(t, err)

	require.NotNil(t, got.Live)
	assert.Equal(t, "Beaded necklace", got.Live.NameEn)
	require.NoError(t, got.Validate())
}
