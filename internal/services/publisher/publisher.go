// Package publisher is the delivery boundary for downstream collaborators.
// Chart rendering, chat delivery and narrative generation live behind the
// Publisher interface; the core pipeline only hands over plain data.
package publisher

import (
	"context"

	"go.uber.org/zap"

	"github.com/swingdesk/signum/internal/domain"
)

// Publisher delivers engine output to the outside world.
type Publisher interface {
	// Boot announces that the engine came online.
	Boot(ctx context.Context, message string) error
	// Signal delivers a trade setup. snap.Plan is guaranteed non-nil.
	Signal(ctx context.Context, snap domain.TickSnapshot) error
	// Watch delivers a no-trade status report with the veto reason.
	Watch(ctx context.Context, snap domain.TickSnapshot, reason string) error
}

// LogPublisher writes formatted reports to the structured log. It is the
// default delivery implementation.
type LogPublisher struct {
	l *zap.Logger
}

// NewLogPublisher creates a log-backed publisher.
func NewLogPublisher(l *zap.Logger) *LogPublisher {
	return &LogPublisher{l: l}
}

// Boot implements Publisher.
func (p *LogPublisher) Boot(_ context.Context, message string) error {
	p.l.Info("engine online", zap.String("message", message))
	return nil
}

// Signal implements Publisher.
func (p *LogPublisher) Signal(_ context.Context, snap domain.TickSnapshot) error {
	p.l.Info("trade setup",
		zap.String("tick_id", snap.TickID),
		zap.String("symbol", snap.Symbol),
		zap.String("side", string(snap.Plan.Side)),
		zap.Float64("confidence", snap.Plan.Confidence),
		zap.String("report", FormatSignal(snap)),
	)
	return nil
}

// Watch implements Publisher.
func (p *LogPublisher) Watch(_ context.Context, snap domain.TickSnapshot, reason string) error {
	p.l.Info("market watch",
		zap.String("tick_id", snap.TickID),
		zap.String("symbol", snap.Symbol),
		zap.String("reason", reason),
		zap.String("report", FormatWatch(snap, reason)),
	)
	return nil
}
