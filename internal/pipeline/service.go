// Package pipeline orchestrates CV standardization: text acquisition, profile
// extraction, canonical PDF rendering, storage of the standardized copy and
// persistence of the profile.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/richat-staffing/internal/extraction"
	"github.com/jonathan/richat-staffing/internal/ingestion"
	"github.com/jonathan/richat-staffing/internal/logger"
	"github.com/jonathan/richat-staffing/internal/pipeline/steps"
	"github.com/jonathan/richat-staffing/internal/rendering"
	"github.com/jonathan/richat-staffing/internal/taxonomy"
	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/jonathan/richat-staffing/internal/worker"
)

// Storage statuses reported in ProcessResult.StorageStatus
const (
	StorageSaved   = "saved"
	StorageFailed  = "failed"
	StorageSkipped = "skipped"
)

// ErrNoQueue is returned by RegisterCV on a service built without a queue
var ErrNoQueue = errors.New("pipeline has no skill extraction queue")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step         string `json:"step"`
	Category     string `json:"category"`
	Message      string `json:"message"`
	ConsultantID string `json:"consultant_id,omitempty"`
	Content      any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// PDFStore persists standardized CVs
type PDFStore interface {
	Save(consultantID string, pdf []byte, at time.Time) (string, error)
}

// ProfileStore persists extracted profiles
type ProfileStore interface {
	SaveProfile(ctx context.Context, consultantID string, p *types.Profile, pdfPath *string) (uuid.UUID, error)
}

// Enqueuer accepts background skill extraction jobs
type Enqueuer interface {
	Enqueue(job worker.Job) error
}

// Options configures a Service. Every collaborator is optional: without a
// PDFStore the standardized copy is not stored, without a ProfileStore the
// profile is not persisted.
type Options struct {
	Taxonomy   *taxonomy.Taxonomy
	Files      PDFStore
	Profiles   ProfileStore
	Queue      Enqueuer
	Logger     *zap.Logger
	Now        func() time.Time
	OnProgress ProgressCallback
}

// Service runs the CV standardization pipeline. It is safe for concurrent use
// when its collaborators are.
type Service struct {
	extractor  *extraction.Extractor
	renderer   *rendering.Renderer
	files      PDFStore
	profiles   ProfileStore
	queue      Enqueuer
	logger     *zap.Logger
	now        func() time.Time
	onProgress ProgressCallback
}

// ProcessResult is the outcome of ProcessCV
type ProcessResult struct {
	ConsultantID  string                  `json:"consultant_id,omitempty"`
	Profile       *types.Profile          `json:"profile"`
	Render        *rendering.RenderResult `json:"render,omitempty"`
	SavedFilePath *string                 `json:"saved_file_path"`
	StorageStatus string                  `json:"storage_status"`
	ProfileID     *uuid.UUID              `json:"profile_id,omitempty"`
	Steps         []steps.StepResult      `json:"steps"`
	Errors        []string                `json:"errors"`

	// PDF holds the rendered canonical CV; nil when rendering failed
	PDF []byte `json:"-"`
}

// NewService creates a Service
func NewService(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		extractor:  extraction.New(opts.Taxonomy),
		renderer:   rendering.NewRenderer(opts.Now),
		files:      opts.Files,
		profiles:   opts.Profiles,
		queue:      opts.Queue,
		logger:     logger.WithFields(opts.Logger),
		now:        opts.Now,
		onProgress: opts.OnProgress,
	}
}

// run records the outcome of one step
type run struct {
	svc          *Service
	consultantID string
	statuses     map[string]steps.Status
	result       *ProcessResult
}

func (r *run) emit(step, message string, content any) {
	if r.svc.onProgress == nil {
		return
	}
	r.svc.onProgress(ProgressEvent{
		Step:         step,
		Category:     steps.StepRegistry[step].Category,
		Message:      message,
		ConsultantID: r.consultantID,
		Content:      content,
	})
}

// do runs fn unless a required dependency did not complete. fn returns
// StatusSkipped to decline work without failing.
func (r *run) do(step string, fn func() (steps.Status, error)) steps.Status {
	started := time.Now()
	status := steps.StatusSkipped
	var err error
	if depErr := steps.ValidateDependencies(r.statuses, step); depErr == nil {
		status, err = fn()
	}
	sr := steps.StepResult{Step: step, Status: status, Duration: time.Since(started).Milliseconds()}
	if err != nil {
		sr.Error = err.Error()
		r.result.Errors = append(r.result.Errors, err.Error())
	}
	r.statuses[step] = status
	r.result.Steps = append(r.result.Steps, sr)
	return status
}

// ProcessCV standardizes one uploaded CV. Acquisition and extraction failures
// (unsupported_format, decode_failed) fail the call with no profile. Later
// failures are reported in the result: a render failure leaves the copy
// unstored, a storage failure sets StorageStatus to "failed" with a nil
// SavedFilePath, and the profile is returned in both cases.
func (s *Service) ProcessCV(ctx context.Context, upload ingestion.Upload, consultantID string) (*ProcessResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := s.logger.With(logger.Consultant(consultantID), zap.String("filename", upload.Filename))
	r := &run{
		svc:          s,
		consultantID: consultantID,
		statuses:     make(map[string]steps.Status),
		result: &ProcessResult{
			ConsultantID:  consultantID,
			StorageStatus: StorageSkipped,
			Steps:         []steps.StepResult{},
			Errors:        []string{},
		},
	}
	res := r.result

	// Step 1: acquire text
	var acquired *ingestion.Result
	var fatal error
	r.do(steps.AcquireText, func() (steps.Status, error) {
		acquired, fatal = ingestion.Acquire(upload)
		if fatal != nil {
			return steps.StatusFailed, fatal
		}
		r.emit(steps.AcquireText, fmt.Sprintf("Acquired %d characters (%s)", len(acquired.Text), acquired.Method), acquired)
		return steps.StatusCompleted, nil
	})
	if fatal != nil {
		log.Warn("CV acquisition failed", zap.Error(fatal))
		return nil, fatal
	}

	// Step 2: extract profile
	r.do(steps.ExtractProfile, func() (steps.Status, error) {
		res.Profile = s.extractor.Extract(acquired.Text)
		if !res.Profile.Success {
			fatal = types.NewError(types.CodeDecodeFailed, "no text to extract", nil)
			return steps.StatusFailed, fatal
		}
		r.emit(steps.ExtractProfile, fmt.Sprintf("Extracted profile (%s, quality %d/100)",
			res.Profile.DetectedFormat, res.Profile.QualityScore), res.Profile)
		return steps.StatusCompleted, nil
	})
	if fatal != nil {
		return nil, fatal
	}

	// Step 3: render the canonical PDF
	r.do(steps.RenderPDF, func() (steps.Status, error) {
		var buf bytes.Buffer
		rendered, err := s.renderer.Render(res.Profile, consultantID, &buf)
		if err != nil {
			log.Warn("CV rendering failed", zap.Error(err))
			return steps.StatusFailed, err
		}
		res.Render, res.PDF = rendered, buf.Bytes()
		r.emit(steps.RenderPDF, fmt.Sprintf("Rendered %d page(s)", rendered.Pages), rendered)
		return steps.StatusCompleted, nil
	})

	// Step 4: store the standardized copy
	r.do(steps.StorePDF, func() (steps.Status, error) {
		if s.files == nil || consultantID == "" {
			return steps.StatusSkipped, nil
		}
		path, err := s.files.Save(consultantID, res.PDF, s.now())
		if err != nil {
			res.StorageStatus = StorageFailed
			log.Warn("failed to store standardized CV", zap.Error(err))
			return steps.StatusFailed, err
		}
		res.SavedFilePath, res.StorageStatus = &path, StorageSaved
		r.emit(steps.StorePDF, "Stored standardized CV at "+path, path)
		return steps.StatusCompleted, nil
	})

	// Step 5: persist the profile
	r.do(steps.PersistProfile, func() (steps.Status, error) {
		if s.profiles == nil || consultantID == "" {
			return steps.StatusSkipped, nil
		}
		id, err := s.profiles.SaveProfile(ctx, consultantID, res.Profile, res.SavedFilePath)
		if err != nil {
			log.Warn("failed to persist profile", zap.Error(err))
			return steps.StatusFailed, fmt.Errorf("failed to persist profile: %w", err)
		}
		res.ProfileID = &id
		r.emit(steps.PersistProfile, "Persisted profile "+id.String(), nil)
		return steps.StatusCompleted, nil
	})

	log.Info("CV processed",
		zap.String("detected_format", string(res.Profile.DetectedFormat)),
		zap.Int("skills", len(res.Profile.Skills)),
		zap.Int("quality_score", res.Profile.QualityScore),
		zap.String("storage_status", res.StorageStatus),
	)
	return res, nil
}

// RegisterCV queues background skill extraction for a newly registered consultant
func (s *Service) RegisterCV(consultantID, cvPath string) error {
	if s.queue == nil {
		return ErrNoQueue
	}
	if err := s.queue.Enqueue(worker.Job{ConsultantID: consultantID, CVPath: cvPath}); err != nil {
		return fmt.Errorf("failed to queue skill extraction for %s: %w", consultantID, err)
	}
	s.logger.Debug("queued skill extraction", logger.Consultant(consultantID), zap.String("cv_path", cvPath))
	return nil
}

// BatchItem is one CV of a batch
type BatchItem struct {
	Upload       ingestion.Upload
	ConsultantID string
}

// BatchResult pairs a batch item with its outcome; exactly one of Result and
// Err is set
type BatchResult struct {
	Item   BatchItem
	Result *ProcessResult
	Err    error
}

// ProcessBatch standardizes several CVs with at most concurrency in flight.
// Results keep the input order; one CV failing does not stop the others.
func (s *Service) ProcessBatch(ctx context.Context, items []BatchItem, concurrency int) ([]BatchResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	out := make([]BatchResult, len(items))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range items {
		g.Go(func() error {
			res, err := s.ProcessCV(gCtx, item.Upload, item.ConsultantID)
			out[i] = BatchResult{Item: item, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}
