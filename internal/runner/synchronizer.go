package runner

import (
	"context"
	"sync"
)

// Synchronizer is a binary wake-up signal between producer and consumer.
// Signals sent while the consumer is not waiting coalesce into one wake-up;
// a signal sent during a Wait always wakes it.
type Synchronizer struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending bool
}

func NewSynchronizer() *Synchronizer {
	s := &Synchronizer{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Signal marks an event available and wakes the waiting consumer, if any.
func (s *Synchronizer) Signal() {
	s.mu.Lock()
	s.pending = true
	s.mu.Unlock()
	s.cond.Signal()
}

// Wait blocks until a signal arrives or ctx is done. WatchCancel must be
// running on the same ctx for cancellation to interrupt an in-progress wait.
func (s *Synchronizer) Wait(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.cond.Wait()
	}

	s.pending = false
	return nil
}

// WatchCancel wakes all waiters when ctx is cancelled so Wait can observe it.
// The broadcast happens under the mutex: a waiter between its ctx check and
// cond.Wait still holds the lock, so the wake-up cannot slip past it.
func (s *Synchronizer) WatchCancel(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	}()
}
