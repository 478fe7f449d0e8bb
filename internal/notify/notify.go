// Package notify delivers match validation events to consultants and to the
// operations log.
package notify

import (
	"context"
	"errors"

	"github.com/jonathan/richat-staffing/internal/matching"
	"github.com/jonathan/richat-staffing/internal/types"
	"go.uber.org/zap"
)

var (
	_ matching.Notifier = (*LogNotifier)(nil)
	_ matching.Notifier = (*EmailNotifier)(nil)
	_ matching.Notifier = Multi(nil)
)

// LogNotifier records validation events in the structured log
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) MatchValidated(_ context.Context, ev types.MatchEvent) error {
	n.logger.Info("match validated",
		zap.String("result_id", ev.ResultID.String()),
		zap.String("consultant_id", ev.ConsultantID),
		zap.String("tender_id", ev.TenderID),
		zap.Float64("score", ev.Score),
	)
	return nil
}

// Multi delivers an event to every notifier, even when some fail
type Multi []matching.Notifier

func (m Multi) MatchValidated(ctx context.Context, ev types.MatchEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.MatchValidated(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
