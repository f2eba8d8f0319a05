package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"btrscout/internal/models"
	"btrscout/internal/repository"
)

// Store owns the current dataset snapshot. Refresh loads all five datasets,
// swaps the snapshot pointer atomically and notifies subscribers; readers
// take whichever snapshot is current and keep using it for the whole
// request, so no locking is needed on the read path.
type Store struct {
	repo   repository.Repository
	logger *zap.Logger

	current atomic.Pointer[Snapshot]

	mu      sync.Mutex
	subs    []chan *Snapshot
	dropped uint64
}

func NewStore(repo repository.Repository, logger *zap.Logger) *Store {
	s := &Store{repo: repo, logger: logger}
	s.current.Store(&Snapshot{})
	return s
}

// Current never returns nil; before the first refresh it returns an empty
// snapshot with every dataset unavailable.
func (s *Store) Current() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	return s.current.Load()
}

// Subscribe returns a channel that receives each newly loaded snapshot.
// Slow subscribers miss snapshots rather than blocking a refresh.
func (s *Store) Subscribe(buf int) <-chan *Snapshot {
	if buf <= 0 {
		buf = 1
	}
	ch := make(chan *Snapshot, buf)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel returned by Subscribe and closes it.
func (s *Store) Unsubscribe(ch <-chan *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Refresh loads every dataset and swaps the snapshot. A dataset whose load
// fails is marked unavailable in the new snapshot; the refresh itself only
// errors when the repository is missing.
func (s *Store) Refresh(ctx context.Context) error {
	if s == nil || s.repo == nil {
		return nil
	}
	next := &Snapshot{LoadedAt: time.Now().UTC()}

	if items, err := s.repo.ListTransactions(ctx); err != nil {
		s.warn("transactions load failed", err)
	} else {
		next.Transactions = nonNil(items)
	}
	if items, err := s.repo.ListRentals(ctx); err != nil {
		s.warn("rentals load failed", err)
	} else {
		next.Rentals = nonNil(items)
	}
	if items, err := s.repo.ListAmenities(ctx); err != nil {
		s.warn("amenities load failed", err)
	} else {
		next.Amenities = nonNil(items)
	}
	if items, err := s.repo.ListEnergyRecords(ctx); err != nil {
		s.warn("energy records load failed", err)
	} else {
		next.Energy = nonNil(items)
	}
	if items, err := s.repo.ListPlanningApplications(ctx); err != nil {
		s.warn("planning applications load failed", err)
	} else {
		next.Planning = nonNil(items)
	}

	s.current.Store(next)
	s.saveStates(ctx, next)
	s.fanout(next)

	if s.logger != nil {
		s.logger.Info("dataset snapshot refreshed",
			zap.Int("transactions", len(next.Transactions)),
			zap.Int("rentals", len(next.Rentals)),
			zap.Int("amenities", len(next.Amenities)),
			zap.Int("energy", len(next.Energy)),
			zap.Int("planning", len(next.Planning)),
		)
	}
	return nil
}

func (s *Store) fanout(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			atomic.AddUint64(&s.dropped, 1)
		}
	}
}

func (s *Store) saveStates(ctx context.Context, snap *Snapshot) {
	for _, name := range models.DatasetNames() {
		item := &models.DatasetState{
			Name:        name,
			RowCount:    int64(snap.RowCount(name)),
			RefreshedAt: snap.LoadedAt,
		}
		if err := s.repo.UpsertDatasetState(ctx, item); err != nil {
			s.warn("dataset state upsert failed", err)
		}
	}
}

func (s *Store) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, zap.Error(err))
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
