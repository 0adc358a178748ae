package internal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/swingdesk/signum/config"
	"github.com/swingdesk/signum/internal/domain"
	"github.com/swingdesk/signum/internal/services/analysis"
	"github.com/swingdesk/signum/internal/services/engine"
	"github.com/swingdesk/signum/internal/services/gate"
	"github.com/swingdesk/signum/internal/services/market/collector"
	"github.com/swingdesk/signum/internal/services/publisher"
	"github.com/swingdesk/signum/internal/storage/journal"
	"github.com/swingdesk/signum/pkg/retry"
)

// SignalBot represents a single analysis instance: it polls candles for one
// instrument, runs the evaluation pipeline and publishes signals or watch
// reports, throttled by the publish journal.
type SignalBot struct {
	Config config.Config

	collector *collector.MarketDataCollector
	engine    *engine.Engine
	journal   *journal.WALStore
	publisher publisher.Publisher
	backoff   retry.Backoff
	logger    *zap.Logger

	mu     sync.RWMutex
	latest *domain.TickSnapshot
}

// NewSignalBot creates a bot instance for one instrument.
func NewSignalBot(conf config.Config, client any, pub publisher.Publisher, logger *zap.Logger) (*SignalBot, error) {
	provider, err := NewKlineProvider(client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create kline provider")
	}

	policy, err := gate.NewPolicy(conf.GatePolicy, gate.Config{MinATR: conf.MinATR})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gate policy")
	}

	jrnl, err := journal.NewWALStore(conf.JournalDir, conf.Pair.Symbol())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open publish journal")
	}

	eng := engine.New(engine.Config{
		Symbol:         conf.Pair.Symbol(),
		EntryTimeframe: conf.EntryTimeframe,
		ZoneTimeframes: conf.ZoneTimeframes,
		Structure:      analysis.StructureConfig{SwingLookback: conf.SwingLookback},
		Zone: analysis.ZoneConfig{
			BaseCandles: conf.ZoneBaseCandles,
			ImpulsePct:  conf.ZoneImpulsePct,
		},
		Liquidity: analysis.LiquidityConfig{
			Lookback:  conf.LiquidityLookback,
			WickRatio: conf.WickRatio,
		},
		Mode: conf.Mode,
	}, policy)

	return &SignalBot{
		Config:    conf,
		collector: collector.NewMarketDataCollector(provider, conf.Pair),
		engine:    eng,
		journal:   jrnl,
		publisher: pub,
		logger:    logger.With(zap.String("pair", conf.Pair.String())),
	}, nil
}

// Close releases the publish journal.
func (b *SignalBot) Close() error {
	return b.journal.Close()
}

// Latest returns the most recent tick snapshot, if any tick completed yet.
func (b *SignalBot) Latest() (domain.TickSnapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.latest == nil {
		return domain.TickSnapshot{}, false
	}
	return *b.latest, true
}

// Run executes the analysis loop until the context is cancelled. Tick errors
// are logged and the loop continues.
func (b *SignalBot) Run(ctx context.Context) error {
	bootMsg := fmt.Sprintf("%s engine online | mode=%s gate=%s poll=%s",
		b.Config.Pair.Symbol(), b.Config.Mode, b.Config.GatePolicy, b.Config.PollInterval)
	if err := b.publisher.Boot(ctx, bootMsg); err != nil {
		b.logger.Warn("boot announcement failed", zap.Error(err))
	}

	ticker := time.NewTicker(b.Config.PollInterval)
	defer ticker.Stop()

	b.logger.Info("starting analysis loop",
		zap.Duration("poll_interval", b.Config.PollInterval),
		zap.String("gate_policy", b.Config.GatePolicy))

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("context done, stopping analysis loop")
			return ctx.Err()
		case <-ticker.C:
			if err := b.tick(ctx); err != nil {
				b.logger.Error("tick failed", zap.Error(err))
			}
		}
	}
}

func (b *SignalBot) tick(ctx context.Context) error {
	frames, err := b.fetchFrames(ctx)
	if err != nil {
		return err
	}

	snap := domain.TickSnapshot{
		TickID:     uuid.NewString(),
		Symbol:     b.Config.Pair.Symbol(),
		Time:       time.Now().UTC(),
		Evaluation: b.engine.Evaluate(frames),
	}

	b.mu.Lock()
	b.latest = &snap
	b.mu.Unlock()

	return b.publish(ctx, snap)
}

func (b *SignalBot) fetchFrames(ctx context.Context) (map[domain.Timeframe]*domain.IndicatorFrame, error) {
	frames := make(map[domain.Timeframe]*domain.IndicatorFrame, len(b.Config.Timeframes))
	for _, tf := range b.Config.Timeframes {
		var frame *domain.IndicatorFrame
		err := b.backoff.Do(ctx, func(ctx context.Context) error {
			var fetchErr error
			frame, fetchErr = b.collector.FetchFrame(ctx, tf, b.Config.Bars)
			return fetchErr
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch frame for timeframe %s", tf)
		}
		frames[tf] = frame
	}
	return frames, nil
}

// publish delivers the tick outcome. Signals and watch reports have
// independent cooldowns so a burst of identical ticks produces one message.
func (b *SignalBot) publish(ctx context.Context, snap domain.TickSnapshot) error {
	state := b.journal.State()
	now := snap.Time

	if snap.GateAllowed && snap.Plan != nil {
		if now.Sub(state.LastSignal) < b.Config.SignalCooldown {
			b.logger.Debug("signal suppressed by cooldown",
				zap.Time("last_signal", state.LastSignal),
				zap.Duration("cooldown", b.Config.SignalCooldown))
			return nil
		}
		if err := b.publisher.Signal(ctx, snap); err != nil {
			return errors.Wrap(err, "failed to publish signal")
		}
		return errors.Wrap(b.journal.MarkSignal(snap.TickID, now), "failed to journal signal publish")
	}

	reason := snap.GateReason
	if snap.GateAllowed {
		reason = "No valid setup"
	}

	if now.Sub(state.LastWatch) < b.Config.WatchCooldown {
		b.logger.Debug("watch report suppressed by cooldown",
			zap.Time("last_watch", state.LastWatch),
			zap.Duration("cooldown", b.Config.WatchCooldown))
		return nil
	}
	if err := b.publisher.Watch(ctx, snap, reason); err != nil {
		return errors.Wrap(err, "failed to publish watch report")
	}
	return errors.Wrap(b.journal.MarkWatch(snap.TickID, now), "failed to journal watch publish")
}
