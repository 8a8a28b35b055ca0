package claimcore

import "time"

// BatchStats counts outcomes for one page of wallets.
type BatchStats struct {
	Processed int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

func (b *BatchStats) Observe(o Outcome) {
	b.Processed++
	if o.Kind.Success() {
		b.Succeeded++
	} else {
		b.Failed++
	}
}

// RunStats aggregates outcomes for one full pass over the store.
type RunStats struct {
	Processed int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

func (r *RunStats) Observe(o Outcome) {
	r.Processed++
	if o.Kind.Success() {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// SuccessRate returns succeeded/processed as a percentage.
func (r RunStats) SuccessRate() float64 {
	if r.Processed == 0 {
		return 0
	}
	return float64(r.Succeeded) / float64(r.Processed) * 100
}

// Throughput returns processed claims per second of elapsed wall time.
func (r RunStats) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Processed) / r.Elapsed.Seconds()
}
