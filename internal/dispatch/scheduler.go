// Package dispatch runs inbound events so that one user's events are
// processed strictly in order while different users proceed concurrently.
package dispatch

import (
	"context"
	"errors"
	"sync"

	"healthbot/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrQueueFull is returned when a user already has too many pending events
	ErrQueueFull = errors.New("dispatch: user queue full")
	// ErrClosed is returned when submitting after Close
	ErrClosed = errors.New("dispatch: scheduler closed")
)

// Task processes one event
type Task func(ctx context.Context)

// Options controls the scheduler
type Options struct {
	// Workers bounds how many users are served at the same time
	Workers int
	// QueueSize bounds pending events per user, not counting the running one
	QueueSize int
}

// Scheduler keeps one FIFO per user and drains it on a bounded worker pool
type Scheduler struct {
	ctx    context.Context
	sem    *semaphore.Weighted
	opts   Options
	logger *zap.Logger

	mu     sync.Mutex
	queues map[domain.UserID][]Task
	closed bool
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler. Tasks receive ctx.
func NewScheduler(ctx context.Context, opts Options, logger *zap.Logger) *Scheduler {
	if opts.Workers <= 0 {
		opts.Workers = 64
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 8
	}
	return &Scheduler{
		ctx:    ctx,
		sem:    semaphore.NewWeighted(int64(opts.Workers)),
		opts:   opts,
		logger: logger,
		queues: make(map[domain.UserID][]Task),
	}
}

// Submit queues task behind the user's earlier tasks
func (s *Scheduler) Submit(userID domain.UserID, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	q, draining := s.queues[userID]
	if len(q) >= s.opts.QueueSize {
		return ErrQueueFull
	}
	s.queues[userID] = append(q, task)

	if !draining {
		s.wg.Add(1)
		go s.drain(userID)
	}
	return nil
}

// Close rejects new tasks and waits for queued ones to finish
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
}

// Pending returns the number of users with queued or running tasks
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queues)
}

// drain runs the user's tasks one by one until the queue is empty.
// The map entry exists for as long as a drain goroutine owns the user.
func (s *Scheduler) drain(userID domain.UserID) {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		q := s.queues[userID]
		if len(q) == 0 {
			delete(s.queues, userID)
			s.mu.Unlock()
			return
		}
		task := q[0]
		s.queues[userID] = q[1:]
		s.mu.Unlock()

		_ = s.sem.Acquire(context.Background(), 1)
		s.run(userID, task)
		s.sem.Release(1)
	}
}

func (s *Scheduler) run(userID domain.UserID, task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Task panicked",
				zap.String("user_id", string(userID)),
				zap.Any("panic", r),
			)
		}
	}()
	task(s.ctx)
}
