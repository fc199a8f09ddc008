package testsupport

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-contactform/pkg/mail"
)

// RecordingSender captures every message and replies with Receipt or Err.
type RecordingSender struct {
	Receipt mail.Receipt
	Err     error

	mu       sync.Mutex
	messages []mail.Message
}

func (s *RecordingSender) Send(_ context.Context, msg mail.Message) (mail.Receipt, error) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	if s.Err != nil {
		return mail.Receipt{}, s.Err
	}
	return s.Receipt, nil
}

// Messages returns a copy of the recorded messages.
func (s *RecordingSender) Messages() []mail.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mail.Message(nil), s.messages...)
}

// Calls reports how many times Send ran.
func (s *RecordingSender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// BlockingSender parks every Send until Release is called. It ignores
// context cancellation, modelling a provider client without deadlines.
type BlockingSender struct {
	once    sync.Once
	release chan struct{}
	started chan struct{}
}

// NewBlockingSender returns a sender that blocks until Release.
func NewBlockingSender() *BlockingSender {
	return &BlockingSender{
		release: make(chan struct{}),
		started: make(chan struct{}, 16),
	}
}

func (s *BlockingSender) Send(context.Context, mail.Message) (mail.Receipt, error) {
	select {
	case s.started <- struct{}{}:
	default:
	}
	<-s.release
	return mail.Receipt{ID: "late"}, nil
}

// Started is signalled each time a Send begins.
func (s *BlockingSender) Started() <-chan struct{} {
	return s.started
}

// Release unblocks all pending and future sends. Safe to call repeatedly.
func (s *BlockingSender) Release() {
	s.once.Do(func() { close(s.release) })
}

// ContextSender blocks until its context is done and returns ctx.Err().
type ContextSender struct{}

func (ContextSender) Send(ctx context.Context, _ mail.Message) (mail.Receipt, error) {
	<-ctx.Done()
	return mail.Receipt{}, ctx.Err()
}

// PanicSender panics with Value on every call.
type PanicSender struct {
	Value any
}

func (s PanicSender) Send(context.Context, mail.Message) (mail.Receipt, error) {
	panic(fmt.Sprint(s.Value))
}
