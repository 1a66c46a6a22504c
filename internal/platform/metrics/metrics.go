package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests     uint64
	errorRequests     uint64
	rateLimited       uint64
	totalDurationMs   uint64
	syncBatches       uint64
	employeesSynced   uint64
	recordsSaved      uint64
	analyses          uint64
	analysisFallbacks uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordSync(employees int) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.syncBatches, 1)
	atomic.AddUint64(&c.employeesSynced, uint64(employees))
}

func (c *Collector) RecordSave() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.recordsSaved, 1)
}

// RecordAnalysis counts an analysis call; fallback is true when a static
// insight was returned instead of provider output.
func (c *Collector) RecordAnalysis(fallback bool) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.analyses, 1)
	if fallback {
		atomic.AddUint64(&c.analysisFallbacks, 1)
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"errorsTotal":            errs,
		"rateLimitedTotal":       limited,
		"avgDurationMs":          avg,
		"totalDurationMs":        totalMs,
		"syncBatchesTotal":       atomic.LoadUint64(&c.syncBatches),
		"employeesSyncedTotal":   atomic.LoadUint64(&c.employeesSynced),
		"recordsSavedTotal":      atomic.LoadUint64(&c.recordsSaved),
		"analysesTotal":          atomic.LoadUint64(&c.analyses),
		"analysisFallbacksTotal": atomic.LoadUint64(&c.analysisFallbacks),
	}
}
