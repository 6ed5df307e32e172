package rates

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type PriceSource interface {
	Price(ctx context.Context, pair string) (string, error)
}

type RateStore interface {
	Upsert(ctx context.Context, pair, price string) error
}

// Poller refreshes the stored snapshot for each configured pair. A failed
// pair is logged and skipped; the rest of the cycle continues.
type Poller struct {
	source PriceSource
	store  RateStore
	pairs  []string
	every  time.Duration
	logger *zap.Logger
}

func NewPoller(source PriceSource, store RateStore, pairs []string, every time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		source: source,
		store:  store,
		pairs:  pairs,
		every:  every,
		logger: logger,
	}
}

// Run polls once right away, then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.pollOnce(ctx)
	ticker := time.NewTicker(p.every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	for _, pair := range p.pairs {
		price, err := p.source.Price(ctx, pair)
		if err != nil {
			p.logger.Warn("rate poll failed", zap.String("pair", pair), zap.Error(err))
			continue
		}
		if err := p.store.Upsert(ctx, pair, price); err != nil {
			p.logger.Warn("rate snapshot store failed", zap.String("pair", pair), zap.Error(err))
			continue
		}
		p.logger.Info("rate updated", zap.String("pair", pair), zap.String("price", price))
	}
}
