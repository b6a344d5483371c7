package driver

import (
	"time"

	"github.com/uber-go/tally/v4"
)

// Metrics counts what the driver did. A nil *Metrics records nothing.
type Metrics struct {
	compiled     tally.Counter
	failed       tally.Counter
	importHits   tally.Counter
	importMisses tally.Counter
	placeholders tally.Counter
	latency      tally.Timer
}

const (
	MetricCompiled     = "files_compiled"
	MetricFailed       = "files_failed"
	MetricImportHits   = "typeinfo_hits"
	MetricImportMisses = "typeinfo_misses"
	MetricPlaceholders = "placeholders"
	MetricLatency      = "compile_latency"
)

// NewMetrics registers the driver's counters on scope. A nil scope means
// tally.NoopScope.
func NewMetrics(scope tally.Scope) *Metrics {
	if scope == nil {
		scope = tally.NoopScope
	}
	return &Metrics{
		compiled:     scope.Counter(MetricCompiled),
		failed:       scope.Counter(MetricFailed),
		importHits:   scope.Counter(MetricImportHits),
		importMisses: scope.Counter(MetricImportMisses),
		placeholders: scope.Counter(MetricPlaceholders),
		latency:      scope.Timer(MetricLatency),
	}
}

func (m *Metrics) fileDone(ok bool, elapsed time.Duration, placeholders int) {
	if m == nil {
		return
	}
	if !ok {
		m.failed.Inc(1)
		return
	}
	m.compiled.Inc(1)
	m.latency.Record(elapsed)
	if placeholders > 0 {
		m.placeholders.Inc(int64(placeholders))
	}
}

func (m *Metrics) importLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.importHits.Inc(1)
	} else {
		m.importMisses.Inc(1)
	}
}
