package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/wizard"
)

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("session: not found")
	// ErrInvalidData is returned when a stored payload cannot be decoded.
	ErrInvalidData = errors.New("session: invalid data")
	// ErrClosed is returned after the store was closed.
	ErrClosed = errors.New("session: store closed")
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Snapshot is a stored wizard.
type Snapshot struct {
	ID string `json:"id" msgpack:"id"`
	wizard.Snapshot
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
	UpdatedAt time.Time `json:"updated_at" msgpack:"updated_at"`
}

// Store persists snapshots by id.
type Store interface {
	Get(ctx context.Context, id string) (Snapshot, error)
	Put(ctx context.Context, snapshot Snapshot) error
	Delete(ctx context.Context, id string) error
}

type entry struct {
	data    []byte
	expires time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithTTL sets how long a session lives after its last Put.
func WithTTL(ttl time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithJanitorInterval sets how often expired sessions are swept. Zero
// disables the janitor; expired entries are still hidden from Get.
func WithJanitorInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval >= 0 {
			s.interval = interval
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) MemoryStoreOption {
	return func(s *MemoryStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// MemoryStore is an in-process Store. Payloads are kept encoded so callers
// never share mutable state through the store.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]entry
	serializer *MsgPackSerializer
	ttl        time.Duration
	interval   time.Duration
	now        func() time.Time
	logger     *zap.Logger

	closed    bool
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore creates a store and starts its janitor.
func NewMemoryStore(options ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries:    make(map[string]entry),
		serializer: NewMsgPackSerializer(),
		ttl:        DefaultTTL,
		interval:   time.Minute,
		now:        time.Now,
		logger:     zap.NewNop(),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.interval > 0 {
		go s.janitor()
	} else {
		close(s.done)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	e, ok := s.entries[id]
	if ok && !s.now().Before(e.expires) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var snap Snapshot
	if err := s.serializer.Unmarshal(e.data, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *MemoryStore) Put(ctx context.Context, snapshot Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(snapshot.ID) == "" {
		return errors.New("session: snapshot id is required")
	}

	data, err := s.serializer.Marshal(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.entries[snapshot.ID] = entry{data: data, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	delete(s.entries, id)
	return nil
}

// Len reports how many entries are held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep removes expired entries and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Close stops the janitor and drops every session.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.entries = make(map[string]entry)
		s.mu.Unlock()
		close(s.stop)
	})
	<-s.done
	return nil
}

func (s *MemoryStore) janitor() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Debug("expired wizard sessions", zap.Int("removed", removed))
			}
		}
	}
}
