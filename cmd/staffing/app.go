package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/richat-staffing/internal/cache"
	"github.com/jonathan/richat-staffing/internal/config"
	"github.com/jonathan/richat-staffing/internal/db"
	"github.com/jonathan/richat-staffing/internal/matching"
	"github.com/jonathan/richat-staffing/internal/notify"
	"github.com/jonathan/richat-staffing/internal/observability"
	"github.com/jonathan/richat-staffing/internal/schemas"
	"github.com/jonathan/richat-staffing/internal/storage"
	"github.com/jonathan/richat-staffing/internal/types"
	schemafiles "github.com/jonathan/richat-staffing/schemas"
)

// store is the persistence the commands need; db.DB and db.MemoryStore both provide it
type store interface {
	matching.Store
	ListConsultants(ctx context.Context) ([]types.Consultant, error)
	ListTenders(ctx context.Context) ([]types.Tender, error)
	ListMatchResults(ctx context.Context, tenderID string) ([]types.MatchResult, error)
	SaveProfile(ctx context.Context, consultantID string, p *types.Profile, pdfPath *string) (uuid.UUID, error)
	LatestProfile(ctx context.Context, consultantID string) (*types.Profile, error)
}

var (
	_ store = (*db.DB)(nil)
	_ store = (*db.MemoryStore)(nil)
)

// app holds the collaborators shared by the commands
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   store
	cache   matching.ScoreCache
	engine  *matching.Engine
	files   *storage.FileStore
	printer *observability.Printer // nil unless verbose
	out     io.Writer
	closers []func()
}

// seeds are JSON files loaded into the store before a command runs
type seeds struct {
	consultants string
	tenders     string
}

// newApp connects to PostgreSQL and Redis when configured and falls back to
// in-memory implementations otherwise
func newApp(ctx context.Context, c *config.Config, l *zap.Logger, out io.Writer, verbose bool) (*app, error) {
	if l == nil {
		l = zap.NewNop()
	}
	a := &app{
		cfg:    c,
		logger: l,
		files:  storage.NewFileStore(c.StorageRoot),
		out:    out,
	}
	if verbose {
		a.printer = observability.NewPrinter(out)
	}

	if c.DatabaseURL != "" {
		database, err := db.Connect(ctx, c.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, database.Close)
		if err := database.Migrate(ctx); err != nil {
			a.Close()
			return nil, err
		}
		a.store = database
	} else {
		l.Debug("no database configured, using in-memory store")
		a.store = db.NewMemoryStore()
	}

	if c.RedisAddr != "" {
		rc, err := cache.Dial(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB, l)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rc.Close() })
		a.cache = rc
	} else {
		a.cache = matching.NewMemoryCache()
	}

	notifiers := notify.Multi{notify.NewLogNotifier(l)}
	if c.EmailEnabled() {
		notifiers = append(notifiers, notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			Username: c.SMTPUsername,
			Password: c.SMTPPassword,
			From:     c.SMTPFrom,
		}, l))
	}

	a.engine = matching.NewEngine(a.store, matching.Options{
		Cache:    a.cache,
		Notifier: notifiers,
		Logger:   l,
	})
	return a, nil
}

// Close releases connections in reverse order of acquisition
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// seed upserts the consultants and tenders of the given JSON files
func (a *app) seed(ctx context.Context, s seeds) error {
	if s.consultants != "" {
		var consultants []types.Consultant
		if err := readJSON(s.consultants, schemafiles.Consultant, &consultants); err != nil {
			return err
		}
		for i := range consultants {
			c := &consultants[i]
			c.SetSkillLevels(c.SkillLevels)
			if err := c.Validate(); err != nil {
				return fmt.Errorf("invalid consultant %q: %w", c.ID, err)
			}
			if err := a.store.SaveConsultant(ctx, c); err != nil {
				return err
			}
			a.cache.InvalidateConsultant(ctx, c.ID)
		}
		a.logger.Debug("loaded consultants", zap.Int("count", len(consultants)))
	}
	if s.tenders != "" {
		var tenders []types.Tender
		if err := readJSON(s.tenders, schemafiles.Tender, &tenders); err != nil {
			return err
		}
		for i := range tenders {
			if err := tenders[i].Validate(); err != nil {
				return fmt.Errorf("invalid tender %q: %w", tenders[i].ID, err)
			}
			if err := a.store.SaveTender(ctx, &tenders[i]); err != nil {
				return err
			}
			a.cache.InvalidateTender(ctx, tenders[i].ID)
		}
		a.logger.Debug("loaded tenders", zap.Int("count", len(tenders)))
	}
	return nil
}

// readJSON decodes a file holding either one document or an array of
// documents into v, validating every document against schemaName first
func readJSON(path, schemaName string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	docs := []json.RawMessage{raw}
	isArray := len(raw) > 0 && raw[0] == '['
	if isArray {
		if err := json.Unmarshal(raw, &docs); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	for i, doc := range docs {
		if err := schemas.Validate(schemaName, doc); err != nil {
			return fmt.Errorf("%s (document %d): %w", path, i+1, err)
		}
	}

	if !isArray {
		// wrap a single document so that callers can always decode into a slice
		data = append(append([]byte{'['}, raw...), ']')
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// emit writes v as indented JSON to path, or to the app output when path is
// empty. A schema mismatch is logged, not fatal.
func (a *app) emit(path, schemaName string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if schemaName != "" {
		if err := schemas.Validate(schemaName, data); err != nil {
			a.logger.Warn("output does not match its schema", zap.String("schema", schemaName), zap.Error(err))
		}
	}
	data = append(data, '\n')

	if path == "" {
		_, err := a.out.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// withApp builds the app for a command, loads the seed files and runs fn
func withApp(ctx context.Context, out io.Writer, s seeds, fn func(a *app) error) error {
	a, err := newApp(ctx, cfg, log, out, verbose)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.seed(ctx, s); err != nil {
		return err
	}
	return fn(a)
}
