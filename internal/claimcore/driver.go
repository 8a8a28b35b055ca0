package claimcore

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/faucetlab/faucet-claimer/internal/walletdb"
)

// AccountSource yields wallets in ascending id order, a page at a time. An
// empty page means the source is exhausted.
type AccountSource interface {
	NextPage(ctx context.Context, limit int) ([]walletdb.Wallet, error)
}

// Claimer performs one claim attempt for one wallet.
type Claimer interface {
	Claim(ctx context.Context, w walletdb.Wallet) Outcome
}

// Driver sweeps the account source once: page, claim, delay, repeat. A
// fixed inter-claim delay is the only rate limiting toward the endpoint;
// claims are strictly sequential so per-address nonce ordering holds.
type Driver struct {
	source     AccountSource
	claimer    Claimer
	pageSize   int
	delay      time.Duration
	maxWallets int // 0 means unlimited
	log        *logrus.Logger
}

func NewDriver(source AccountSource, claimer Claimer, pageSize int, delay time.Duration, maxWallets int, log *logrus.Logger) *Driver {
	return &Driver{
		source:     source,
		claimer:    claimer,
		pageSize:   pageSize,
		delay:      delay,
		maxWallets: maxWallets,
		log:        log,
	}
}

// Run processes every wallet exactly once until the source is exhausted,
// the max-wallet ceiling is hit, or ctx is cancelled. The final summary is
// logged on every exit path; on cancellation the stats cover the work that
// actually completed and err is ctx.Err().
func (d *Driver) Run(ctx context.Context) (run RunStats, err error) {
	start := time.Now()
	defer func() {
		run.Elapsed = time.Since(start)
		d.logSummary(run)
	}()

	d.log.Infof("starting claims - batch size: %d, delay: %s", d.pageSize, d.delay)

	for {
		if err := ctx.Err(); err != nil {
			d.log.Warn("processing cancelled")
			return run, err
		}

		page, pageErr := d.source.NextPage(ctx, d.pageSize)
		if pageErr != nil {
			return run, fmt.Errorf("fetch wallet page: %w", pageErr)
		}
		if len(page) == 0 {
			return run, nil
		}

		d.log.Infof("processing batch of %d wallets", len(page))
		batchStart := time.Now()
		var batch BatchStats

		for _, w := range page {
			if d.maxWallets > 0 && run.Processed >= d.maxWallets {
				d.log.Infof("reached maximum wallet limit: %d", d.maxWallets)
				d.logBatch(batch, batchStart)
				return run, nil
			}
			if err := ctx.Err(); err != nil {
				d.log.Warn("processing cancelled")
				d.logBatch(batch, batchStart)
				return run, err
			}

			out := d.claimer.Claim(ctx, w)
			batch.Observe(out)
			run.Observe(out)

			if d.delay > 0 {
				if err := sleepCtx(ctx, d.delay); err != nil {
					d.log.Warn("processing cancelled")
					d.logBatch(batch, batchStart)
					return run, err
				}
			}
		}

		d.logBatch(batch, batchStart)
		elapsed := time.Since(start)
		rate := 0.0
		if elapsed > 0 {
			rate = float64(run.Processed) / elapsed.Seconds()
		}
		d.log.Infof("overall progress - processed: %d, success rate: %.1f%%, rate: %.2f claims/sec",
			run.Processed, percent(run.Succeeded, run.Processed), rate)
	}
}

func (d *Driver) logBatch(batch BatchStats, start time.Time) {
	batch.Elapsed = time.Since(start)
	d.log.Infof("batch completed - success: %d, failed: %d, time: %.2fs",
		batch.Succeeded, batch.Failed, batch.Elapsed.Seconds())
}

func (d *Driver) logSummary(run RunStats) {
	d.log.Info("claim pass finished")
	d.log.Infof("total processed: %d", run.Processed)
	d.log.Infof("successful claims: %d", run.Succeeded)
	d.log.Infof("failed claims: %d", run.Failed)
	d.log.Infof("success rate: %.1f%%", run.SuccessRate())
	d.log.Infof("total time: %.2f seconds", run.Elapsed.Seconds())
	d.log.Infof("average rate: %.2f claims/second", run.Throughput())
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
