package events

import (
	"context"
	"sync"
)

// MemoryStream is the in-process Stream. Each subscriber owns an
// unbounded FIFO drained by its own pump goroutine, so a publisher
// never waits for a slow consumer and per-subscriber delivery order
// matches publish order.
type MemoryStream[T any] struct {
	mu   sync.Mutex
	subs map[*memorySub[T]]struct{}
}

func NewMemoryStream[T any]() *MemoryStream[T] {
	return &MemoryStream[T]{subs: make(map[*memorySub[T]]struct{})}
}

func (s *MemoryStream[T]) Publish(_ context.Context, payload T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		sub.enqueue(payload)
	}
}

func (s *MemoryStream[T]) Subscribe(ctx context.Context) *Subscription[T] {
	sub := &memorySub[T]{Subscription: newSubscription[T]()}
	sub.cond = sync.NewCond(&sub.qmu)
	sub.stop = func() {
		s.mu.Lock()
		delete(s.subs, sub)
		s.mu.Unlock()
		sub.wake()
	}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	go sub.pump()
	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				sub.Close()
			case <-sub.Done():
			}
		}()
	}
	return sub.Subscription
}

type memorySub[T any] struct {
	*Subscription[T]

	qmu   sync.Mutex
	cond  *sync.Cond
	queue []T
}

func (s *memorySub[T]) enqueue(payload T) {
	s.qmu.Lock()
	s.queue = append(s.queue, payload)
	s.qmu.Unlock()
	s.cond.Signal()
}

func (s *memorySub[T]) wake() {
	s.cond.Signal()
}

func (s *memorySub[T]) pump() {
	defer close(s.ch)
	for {
		s.qmu.Lock()
		for len(s.queue) == 0 {
			if s.cancelled() {
				s.qmu.Unlock()
				return
			}
			s.cond.Wait()
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.qmu.Unlock()

		if !s.deliver(next) {
			return
		}
	}
}

func (s *memorySub[T]) cancelled() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
