package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/calldwell/go-thread-pool/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// PoolSnapshotProvider provides current pool stats snapshots.
type PoolSnapshotProvider interface {
	Stats() core.PoolStats
}

// SnapshotPoller periodically exports pool Stats() snapshots into Prometheus gauges.
type SnapshotPoller struct {
	interval time.Duration

	poolsMu sync.RWMutex
	pools   map[string]PoolSnapshotProvider

	poolBusy   *prom.GaugeVec
	poolIdle   *prom.GaugeVec
	poolQueued *prom.GaugeVec
	poolMin    *prom.GaugeVec
	poolMax    *prom.GaugeVec
	poolClosed *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	poolBusy := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "threadpool",
		Name:      "pool_busy_threads",
		Help:      "Runners currently executing a job per pool.",
	}, []string{"pool"})
	poolIdle := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "threadpool",
		Name:      "pool_idle_threads",
		Help:      "Parked runners waiting for work per pool.",
	}, []string{"pool"})
	poolQueued := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "threadpool",
		Name:      "pool_queued_jobs",
		Help:      "Jobs waiting for a free runner slot per pool.",
	}, []string{"pool"})
	poolMin := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "threadpool",
		Name:      "pool_min_threads",
		Help:      "Configured lower thread bound per pool.",
	}, []string{"pool"})
	poolMax := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "threadpool",
		Name:      "pool_max_threads",
		Help:      "Configured upper thread bound per pool.",
	}, []string{"pool"})
	poolClosed := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "threadpool",
		Name:      "pool_closed",
		Help:      "Pool closed state (1=closed, 0=open).",
	}, []string{"pool"})

	var err error
	if poolBusy, err = registerCollector(reg, poolBusy); err != nil {
		return nil, err
	}
	if poolIdle, err = registerCollector(reg, poolIdle); err != nil {
		return nil, err
	}
	if poolQueued, err = registerCollector(reg, poolQueued); err != nil {
		return nil, err
	}
	if poolMin, err = registerCollector(reg, poolMin); err != nil {
		return nil, err
	}
	if poolMax, err = registerCollector(reg, poolMax); err != nil {
		return nil, err
	}
	if poolClosed, err = registerCollector(reg, poolClosed); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:   interval,
		pools:      make(map[string]PoolSnapshotProvider),
		poolBusy:   poolBusy,
		poolIdle:   poolIdle,
		poolQueued: poolQueued,
		poolMin:    poolMin,
		poolMax:    poolMax,
		poolClosed: poolClosed,
	}, nil
}

// AddPool adds or replaces a pool snapshot provider by name.
func (p *SnapshotPoller) AddPool(name string, provider PoolSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "pool")
	p.poolsMu.Lock()
	p.pools[name] = provider
	p.poolsMu.Unlock()
}

// RemovePool removes a pool snapshot provider by name.
func (p *SnapshotPoller) RemovePool(name string) {
	if p == nil {
		return
	}
	p.poolsMu.Lock()
	delete(p.pools, normalizeLabel(name, "pool"))
	p.poolsMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	done := make(chan struct{})
	p.done = done
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx, done)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

// PollOnce exports one snapshot of every registered pool immediately.
func (p *SnapshotPoller) PollOnce() {
	if p == nil {
		return
	}

	p.poolsMu.RLock()
	defer p.poolsMu.RUnlock()

	for name, provider := range p.pools {
		stats := provider.Stats()
		p.poolBusy.WithLabelValues(name).Set(float64(stats.Busy))
		p.poolIdle.WithLabelValues(name).Set(float64(stats.Idle))
		p.poolQueued.WithLabelValues(name).Set(float64(stats.Queued))
		p.poolMin.WithLabelValues(name).Set(float64(stats.MinThreads))
		p.poolMax.WithLabelValues(name).Set(float64(stats.MaxThreads))
		if stats.Closed {
			p.poolClosed.WithLabelValues(name).Set(1)
		} else {
			p.poolClosed.WithLabelValues(name).Set(0)
		}
	}
}

func (p *SnapshotPoller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PollOnce()
		}
	}
}
