package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// SnapshotStore loads and saves per-account snapshots. LoadSnapshot returns
// ErrSnapshotNotFound for an account with nothing saved.
type SnapshotStore interface {
	Persister
	LoadSnapshot(ctx context.Context, accountID uint) ([]byte, uint64, error)
}

// Manager hands out one Session per account, loading it from the store on
// first use.
type Manager struct {
	store    SnapshotStore
	defaults Profile
	limits   BodyLimits
	log      logrus.FieldLogger

	mu       sync.RWMutex
	sessions map[uint]*Session
}

func NewManager(store SnapshotStore, defaults Profile, limits BodyLimits, log logrus.FieldLogger) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		store:    store,
		defaults: defaults,
		limits:   limits,
		log:      log,
		sessions: make(map[uint]*Session),
	}
}

// Session returns the account's session, creating it from the stored
// snapshot (or the default profile) when it is not loaded yet.
func (m *Manager) Session(ctx context.Context, accountID uint) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[accountID]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[accountID]; ok {
		return s, nil
	}

	snap := NewSnapshot(NewDayLedger(), m.defaults, "")
	var version uint64
	data, v, err := m.store.LoadSnapshot(ctx, accountID)
	switch {
	case err == nil:
		snap, err = DecodeSnapshot(data, m.defaults)
		if err != nil {
			return nil, fmt.Errorf("load session %d: %w", accountID, err)
		}
		version = v
	case errors.Is(err, ErrSnapshotNotFound):
	default:
		return nil, fmt.Errorf("load session %d: %w", accountID, err)
	}

	s = NewSession(accountID, snap, version, m.store, WithLimits(m.limits), WithLogger(m.log))
	m.sessions[accountID] = s
	return s, nil
}

// Defaults returns the profile new sessions start from.
func (m *Manager) Defaults() Profile { return m.defaults }

// Flush waits for pending writes of every loaded session.
func (m *Manager) Flush() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		s.Flush()
	}
}
