package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	pkgAuth "github.com/polkiloo/membersonly/internal/pkg/auth"
)

// ErrHashPoolStopped is returned for work submitted while the pool is not running.
var ErrHashPoolStopped = errors.New("hash pool stopped")

type hashJob struct {
	ctx    context.Context
	run    func(context.Context) error
	result chan error
}

// HashPool runs password hashing on a fixed number of goroutines so bcrypt work
// cannot occupy every request goroutine at once. It implements PasswordHasher.
type HashPool struct {
	hasher  pkgAuth.PasswordHasher
	workers int
	logger  *slog.Logger

	jobs    chan hashJob
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	running bool
}

// NewHashPool constructs hash worker pool around hasher.
func NewHashPool(hasher pkgAuth.PasswordHasher, workers int, logger *slog.Logger) *HashPool {
	if workers <= 0 {
		workers = 1
	}
	return &HashPool{
		hasher:  hasher,
		workers: workers,
		logger:  logger,
		jobs:    make(chan hashJob, workers*4),
	}
}

// Start launches the workers. The pool outlives ctx; call Stop to end it.
func (p *HashPool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel
	p.running = true

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}
	p.logger.Debug("hash pool started", slog.Int("workers", p.workers))
}

// Stop waits for in-flight jobs and fails queued ones with ErrHashPoolStopped.
func (p *HashPool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	cancel()
	p.wg.Wait()

	for {
		select {
		case job := <-p.jobs:
			job.result <- ErrHashPoolStopped
		default:
			p.logger.Debug("hash pool stopped")
			return
		}
	}
}

// Hash hashes password on a pool worker.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	var hash string
	err := p.submit(ctx, func(ctx context.Context) error {
		var err error
		hash, err = p.hasher.Hash(ctx, password)
		return err
	})
	if err != nil {
		return "", err
	}
	return hash, nil
}

// Verify compares password with hash on a pool worker.
func (p *HashPool) Verify(ctx context.Context, password, hash string) (bool, error) {
	var ok bool
	err := p.submit(ctx, func(ctx context.Context) error {
		var err error
		ok, err = p.hasher.Verify(ctx, password, hash)
		return err
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (p *HashPool) submit(ctx context.Context, run func(context.Context) error) error {
	job := hashJob{ctx: ctx, run: run, result: make(chan error, 1)}

	p.mu.RLock()
	if !p.running {
		p.mu.RUnlock()
		return ErrHashPoolStopped
	}
	select {
	case p.jobs <- job:
	case <-ctx.Done():
		p.mu.RUnlock()
		return ctx.Err()
	}
	p.mu.RUnlock()

	select {
	case err := <-job.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *HashPool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			if err := job.ctx.Err(); err != nil {
				job.result <- err
				continue
			}
			job.result <- job.run(job.ctx)
		}
	}
}

var _ pkgAuth.PasswordHasher = (*HashPool)(nil)
