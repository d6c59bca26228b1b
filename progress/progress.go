// Package progress provides a lightweight counter-plus-ticker progress
// model for long-running set walks, grounded on
// eth/stagedsync/stage_log_index.go's logging ticker: advance a counter as
// work happens, and emit a log line on a fixed interval rather than per
// call.
package progress

import (
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Tracker implements revset.ProgressSink: Advance(n, message) bumps both a
// Prometheus counter and an internal tally that is flushed to the log on
// its own ticker, so a tight filter loop never logs once per element.
type Tracker struct {
	Name string

	counter prometheus.Counter
	ticker  *time.Ticker
	done    chan struct{}

	total   int64
	lastMsg atomic.Value
}

// NewTracker builds a Tracker labelled name, logging a progress line every
// interval while work is ongoing. Call Close when the walk finishes to stop
// the ticker goroutine.
func NewTracker(name string, interval time.Duration) *Tracker {
	t := &Tracker{
		Name: name,
		counter: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "revgraph",
			Subsystem: "revset",
			Name:      name + "_visited_total",
			Help:      "revisions visited while evaluating a filter predicate",
		}),
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	prometheus.MustRegister(t.counter)
	go t.run()
	return t
}

func (t *Tracker) run() {
	for {
		select {
		case <-t.ticker.C:
			msg, _ := t.lastMsg.Load().(string)
			log.Info("revset progress", "filter", t.Name, "visited", atomic.LoadInt64(&t.total), "message", msg)
		case <-t.done:
			return
		}
	}
}

// Advance records n more visited revisions. message is the name of the
// filter doing the visiting (FilterRepr.Name); it is surfaced on
// the next ticker log line, not logged per call.
func (t *Tracker) Advance(n int, message string) {
	t.counter.Add(float64(n))
	atomic.AddInt64(&t.total, int64(n))
	if message != "" {
		t.lastMsg.Store(message)
	}
}

// Close stops the ticker goroutine and unregisters the counter.
func (t *Tracker) Close() {
	t.ticker.Stop()
	close(t.done)
	prometheus.Unregister(t.counter)
}
