package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/wizard"
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithWizardOptions sets options applied to every wizard the manager
// rebuilds, typically the submitter and translator.
func WithWizardOptions(options ...wizard.Option) ManagerOption {
	return func(m *Manager) {
		m.wizardOptions = append(m.wizardOptions, options...)
	}
}

// WithIDGenerator overrides uuid.NewString.
func WithIDGenerator(fn func() string) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithManagerClock overrides time.Now for snapshot timestamps.
func WithManagerClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithManagerLogger sets the manager logger.
func WithManagerLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager applies events to stored wizards. Updates to the same session are
// serialized and never wait on other sessions; an update arriving while that
// session is submitting is rejected with wizard.ErrSubmitting instead of
// waiting for the send.
type Manager struct {
	store         Store
	wizardOptions []wizard.Option
	newID         func() string
	now           func() time.Time
	logger        *zap.Logger

	locksMu sync.Mutex
	locks   map[string]*sessionLock

	busyMu sync.Mutex
	busy   map[string]struct{}
}

// NewManager wraps store.
func NewManager(store Store, options ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		newID:  uuid.NewString,
		now:    time.Now,
		logger: zap.NewNop(),
		locks:  make(map[string]*sessionLock),
		busy:   make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Create starts a new session in the NotStarted state.
func (m *Manager) Create(ctx context.Context) (Snapshot, error) {
	now := m.now()
	snap := Snapshot{
		ID:        m.newID(),
		Snapshot:  wizard.New().Snapshot(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Put(ctx, snap); err != nil {
		return Snapshot{}, err
	}
	m.logger.Debug("wizard session created", zap.String("session_id", snap.ID))
	return snap, nil
}

// Get returns the stored snapshot.
func (m *Manager) Get(ctx context.Context, id string) (Snapshot, error) {
	return m.store.Get(ctx, id)
}

// Wizard rebuilds the wizard for a stored snapshot without saving it.
func (m *Manager) Wizard(snap Snapshot, options ...wizard.Option) *wizard.Wizard {
	opts := append([]wizard.Option{wizard.WithSnapshot(snap.Snapshot)}, m.wizardOptions...)
	return wizard.New(append(opts, options...)...)
}

// Update loads the session, runs fn against its wizard and stores the result.
// The snapshot is stored even when fn fails, so partial progress such as a
// failed submission is kept; the error from fn is returned alongside it.
func (m *Manager) Update(ctx context.Context, id string, fn func(*wizard.Wizard) error, options ...wizard.Option) (Snapshot, error) {
	if m.isBusy(id) {
		return Snapshot{}, wizard.ErrSubmitting
	}

	unlock := m.lock(id)
	defer unlock()

	snap, err := m.store.Get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	w := m.Wizard(snap, options...)
	w.OnChange(func(state wizard.State) {
		m.setBusy(id, state.Phase == wizard.PhaseSubmitting)
	})
	defer m.setBusy(id, false)

	fnErr := fn(w)

	snap.Snapshot = w.Snapshot()
	snap.UpdatedAt = m.now()
	// Persist even when the request was cancelled during a send.
	if err := m.store.Put(context.WithoutCancel(ctx), snap); err != nil {
		return snap, errors.Join(fnErr, err)
	}
	return snap, fnErr
}

// Delete removes a session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

// sessionLock is a per-id mutex, dropped from the table once no update holds
// or waits for it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (m *Manager) lock(id string) (unlock func()) {
	m.locksMu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.locksMu.Unlock()
	}
}

func (m *Manager) isBusy(id string) bool {
	m.busyMu.Lock()
	defer m.busyMu.Unlock()
	_, ok := m.busy[id]
	return ok
}

func (m *Manager) setBusy(id string, busy bool) {
	m.busyMu.Lock()
	defer m.busyMu.Unlock()
	if busy {
		m.busy[id] = struct{}{}
		return
	}
	delete(m.busy, id)
}
