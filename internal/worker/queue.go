// Package worker runs background skill extraction for newly registered
// consultants. Jobs are processed one at a time by a single goroutine; a job
// only ever writes the records of its own consultant.
package worker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jonathan/richat-staffing/internal/extraction"
	"github.com/jonathan/richat-staffing/internal/ingestion"
	"github.com/jonathan/richat-staffing/internal/logger"
	"github.com/jonathan/richat-staffing/internal/taxonomy"
	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrQueueFull is returned by Enqueue when the buffer is full
	ErrQueueFull = errors.New("skill extraction queue is full")
	// ErrQueueClosed is returned by Enqueue after Stop
	ErrQueueClosed = errors.New("skill extraction queue is closed")
	// ErrAlreadyStarted is returned by a second call to Start
	ErrAlreadyStarted = errors.New("skill extraction queue already started")
)

const (
	defaultSize  = 64
	defaultLevel = 3
)

// Job asks for the skills of the CV at CVPath to be merged into a consultant
type Job struct {
	ConsultantID string
	CVPath       string
}

// ConsultantStore is the persistence the worker reads and updates
type ConsultantStore interface {
	GetConsultant(ctx context.Context, id string) (*types.Consultant, error)
	SaveConsultant(ctx context.Context, c *types.Consultant) error
}

// ScoreInvalidator drops cached match scores of a consultant whose skills changed
type ScoreInvalidator interface {
	InvalidateConsultant(ctx context.Context, consultantID string)
}

// Options configures a Queue; zero values select defaults
type Options struct {
	Size         int
	DefaultLevel int // level given to newly discovered skills, 1..5
	Taxonomy     *taxonomy.Taxonomy
	Cache        ScoreInvalidator
	Fs           afero.Fs
	Logger       *zap.Logger
}

// Queue is a bounded, non-blocking background job queue
type Queue struct {
	store     ConsultantStore
	cache     ScoreInvalidator
	tax       *taxonomy.Taxonomy
	extractor *extraction.Extractor
	fs        afero.Fs
	level     int
	logger    *zap.Logger

	jobs    chan Job
	mu      sync.RWMutex
	closed  bool
	group   *errgroup.Group
	cancel  context.CancelFunc
	started bool
}

// NewQueue creates a Queue. Jobs may be enqueued before Start.
func NewQueue(store ConsultantStore, opts Options) *Queue {
	if opts.Size <= 0 {
		opts.Size = defaultSize
	}
	if opts.DefaultLevel < 1 || opts.DefaultLevel > 5 {
		opts.DefaultLevel = defaultLevel
	}
	if opts.Taxonomy == nil {
		opts.Taxonomy = taxonomy.Default()
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	return &Queue{
		store:     store,
		cache:     opts.Cache,
		tax:       opts.Taxonomy,
		extractor: extraction.New(opts.Taxonomy),
		fs:        opts.Fs,
		level:     opts.DefaultLevel,
		logger:    logger.WithFields(opts.Logger),
		jobs:      make(chan Job, opts.Size),
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled or
// when Stop has drained the queue.
func (q *Queue) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return ErrAlreadyStarted
	}
	q.started = true

	ctx, q.cancel = context.WithCancel(ctx)
	g, gCtx := errgroup.WithContext(ctx)
	q.group = g
	g.Go(func() error {
		for {
			select {
			case job, ok := <-q.jobs:
				if !ok {
					return nil
				}
				if _, err := q.Process(gCtx, job); err != nil {
					q.logger.Warn("skill extraction failed",
						logger.Consultant(job.ConsultantID),
						zap.String("cv_path", job.CVPath),
						zap.Error(err),
					)
				}
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
	})
	return nil
}

// Enqueue adds a job without blocking
func (q *Queue) Enqueue(job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for the queued jobs to finish. Jobs still
// queued on a queue that was never started are dropped.
func (q *Queue) Stop() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	g, cancel := q.group, q.cancel
	q.mu.Unlock()

	if g == nil {
		return nil
	}
	err := g.Wait()
	cancel()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Process runs one job synchronously and returns the number of skills added
func (q *Queue) Process(ctx context.Context, job Job) (added int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("skill extraction panicked: %v", p)
		}
	}()

	data, err := afero.ReadFile(q.fs, job.CVPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read CV: %w", err)
	}
	res, err := ingestion.Acquire(ingestion.Upload{Filename: filepath.Base(job.CVPath), Data: data})
	if err != nil {
		return 0, err
	}
	profile := q.extractor.Extract(res.Text)

	c, err := q.store.GetConsultant(ctx, job.ConsultantID)
	if err != nil {
		return 0, fmt.Errorf("failed to load consultant: %w", err)
	}
	added = MergeSkills(c, q.tax, profile.Skills, q.level)
	if added == 0 {
		return 0, nil
	}
	if c.PrimaryDomain == types.DomainUndefined {
		c.PrimaryDomain = profile.PrimaryDomain
	}
	if err := q.store.SaveConsultant(ctx, c); err != nil {
		return 0, fmt.Errorf("failed to save consultant: %w", err)
	}
	if q.cache != nil {
		q.cache.InvalidateConsultant(ctx, c.ID)
	}

	q.logger.Info("merged extracted skills",
		logger.Consultant(c.ID),
		zap.Int("added", added),
		zap.Int("total", len(c.SkillLevels)),
	)
	return added, nil
}

// MergeSkills adds the canonical form of each skill the consultant does not
// have yet at the given level, keeping existing levels. It returns the number
// of skills added and recomputes the expertise tier.
func MergeSkills(c *types.Consultant, tax *taxonomy.Taxonomy, skills []string, level int) int {
	levels := make(map[string]int, len(c.SkillLevels)+len(skills))
	for name, l := range c.SkillLevels {
		levels[name] = l
	}
	added := 0
	for _, s := range skills {
		name := s
		if n := tax.CanonicalName(s); n != "" {
			name = n
		}
		if _, ok := levels[name]; ok || name == "" {
			continue
		}
		levels[name] = level
		added++
	}
	c.SetSkillLevels(levels)
	return added
}
