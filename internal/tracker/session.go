package tracker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"besfit/internal/metrics"
)

// Persister stores encoded snapshots. Version grows with every mutation of a
// session; implementations may ignore it.
type Persister interface {
	SaveSnapshot(ctx context.Context, accountID uint, data []byte, version uint64) error
}

const (
	saveAttempts = 3
	saveBackoff  = 50 * time.Millisecond
	saveTimeout  = 5 * time.Second
)

// Session is the per-account context: the day ledger, the profile it is
// summarized against, and the write-behind persistence of both.
type Session struct {
	accountID uint
	limits    BodyLimits
	persister Persister
	log       logrus.FieldLogger

	mu      sync.Mutex
	ledger  *DayLedger
	profile Profile
	version uint64

	writeMu sync.Mutex
	tried   uint64 // newest version a write was attempted for
	lastErr error
	pending sync.WaitGroup
}

type SessionOption func(*Session)

func WithLimits(l BodyLimits) SessionOption {
	return func(s *Session) { s.limits = l }
}

func WithLogger(log logrus.FieldLogger) SessionOption {
	return func(s *Session) { s.log = log }
}

// NewSession builds a session from snap. A nil persister keeps everything in
// memory.
func NewSession(accountID uint, snap Snapshot, version uint64, p Persister, opts ...SessionOption) *Session {
	s := &Session{
		accountID: accountID,
		persister: p,
		ledger:    snap.Ledger(),
		profile:   snap.Profile(),
		version:   version,
		tried:     version,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("account_id", accountID)
	return s
}

func (s *Session) AccountID() uint { return s.accountID }

func (s *Session) AddFoods(batch []FoodSelection) ([]FoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.ledger.AddFoodEntries(batch)
	s.commit("add_food", err)
	return added, err
}

func (s *Session) RemoveFood(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ledger.RemoveFoodEntry(id)
	s.commit("remove_food", err)
	return err
}

func (s *Session) RemoveFoodAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ledger.RemoveFoodEntryAt(index)
	s.commit("remove_food", err)
	return err
}

// AddExercises logs a batch using the profile's current weight.
func (s *Session) AddExercises(batch []ExerciseSelection) ([]ExerciseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.ledger.AddExerciseEntries(batch, s.profile.BodyValues.Weight)
	s.commit("add_exercise", err)
	return added, err
}

func (s *Session) RemoveExercise(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ledger.RemoveExerciseEntry(id)
	s.commit("remove_exercise", err)
	return err
}

func (s *Session) RemoveExerciseAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ledger.RemoveExerciseEntryAt(index)
	s.commit("remove_exercise", err)
	return err
}

func (s *Session) SetWater(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ledger.SetWaterCount(n)
	s.commit("set_water", err)
	return err
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Reset()
	s.commit("reset", nil)
}

func (s *Session) AdjustBodyValue(field BodyField, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.profile.AdjustBodyValue(field, delta, s.limits)
	s.commit("adjust_body", err)
	return v, err
}

// Restore replaces the whole ledger and profile with snap.
func (s *Session) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = snap.Ledger()
	s.profile = snap.Profile()
	s.commit("restore", nil)
}

func (s *Session) Summary() DailySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Summary(s.profile)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Flush waits for every scheduled snapshot write to finish.
func (s *Session) Flush() {
	s.pending.Wait()
}

// LastPersistError returns the error of the most recent failed write, or nil
// once a later write succeeded.
func (s *Session) LastPersistError() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.lastErr
}

func (s *Session) snapshotLocked() Snapshot {
	return NewSnapshot(s.ledger, s.profile, strconv.FormatUint(uint64(s.accountID), 10))
}

// commit records the mutation and, when it succeeded, schedules a write of
// the new state. Callers hold s.mu.
func (s *Session) commit(op string, err error) {
	metrics.RecordMutation(op, err)
	if err != nil || s.persister == nil {
		return
	}

	s.version++
	version := s.version
	data, encErr := EncodeSnapshot(s.snapshotLocked())
	if encErr != nil {
		s.log.WithError(encErr).Warn("encode snapshot")
		metrics.RecordSnapshotWrite("error")
		return
	}

	s.pending.Add(1)
	go s.write(data, version)
}

func (s *Session) write(data []byte, version uint64) {
	defer s.pending.Done()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// an older version must not overwrite a newer one, even a failed one
	if version <= s.tried {
		metrics.RecordSnapshotWrite("stale")
		return
	}
	s.tried = version

	var err error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err = s.persister.SaveSnapshot(ctx, s.accountID, data, version)
		cancel()
		if err == nil {
			break
		}
		if attempt < saveAttempts {
			time.Sleep(time.Duration(attempt) * saveBackoff)
		}
	}

	if err != nil {
		s.lastErr = fmt.Errorf("%w: version %d: %v", ErrPersistence, version, err)
		s.log.WithError(err).WithField("version", version).Warn("snapshot write failed")
		metrics.RecordSnapshotWrite("error")
		return
	}
	s.lastErr = nil
	metrics.RecordSnapshotWrite("ok")
}
