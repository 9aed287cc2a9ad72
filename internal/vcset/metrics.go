package vcset

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/janpfeifer/hexGo/internal/changelog"
	"github.com/janpfeifer/hexGo/internal/vc"
)

// Metrics bundles Prometheus counters of the mutations of connection sets.
//
// The same Metrics can be attached to many sets (clones share it), the counters are safe for
// concurrent use. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Added           *prometheus.CounterVec
	Rejected        *prometheus.CounterVec
	Evicted         *prometheus.CounterVec
	Removed         *prometheus.CounterVec
	Processed       *prometheus.CounterVec
	RevertedEntries *prometheus.CounterVec
	Reverts         prometheus.Counter
}

// NewMetrics registers the connection set metrics against reg, defaulting to the global
// Prometheus registry when nil. If the metrics were already registered, the existing
// collectors are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{}
	var err error
	byKind := []string{"kind"}
	if m.Added, err = registerCounterVec(reg, "vcset_added_total",
		"Connections added to a connection set and kept.", byKind); err != nil {
		return nil, err
	}
	if m.Rejected, err = registerCounterVec(reg, "vcset_rejected_total",
		"Connections not kept by Add: duplicates or worse than everything in a full list.", byKind); err != nil {
		return nil, err
	}
	if m.Evicted, err = registerCounterVec(reg, "vcset_evicted_total",
		"Connections evicted by the soft limit.", byKind); err != nil {
		return nil, err
	}
	if m.Removed, err = registerCounterVec(reg, "vcset_removed_total",
		"Connections explicitly removed.", byKind); err != nil {
		return nil, err
	}
	if m.Processed, err = registerCounterVec(reg, "vcset_processed_total",
		"Connections marked as processed.", byKind); err != nil {
		return nil, err
	}
	if m.RevertedEntries, err = registerCounterVec(reg, "vcset_reverted_entries_total",
		"Log entries undone by Revert, by action.", []string{"action"}); err != nil {
		return nil, err
	}
	reverts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vcset_reverts_total",
		Help: "Number of calls to Revert.",
	})
	if err = reg.Register(reverts); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, errors.Wrap(err, "failed to register vcset_reverts_total")
		}
		reverts = are.ExistingCollector.(prometheus.Counter)
	}
	m.Reverts = reverts
	return m, nil
}

func registerCounterVec(reg prometheus.Registerer, name, help string, labels []string) (*prometheus.CounterVec, error) {
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	if err := reg.Register(cv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, errors.Wrapf(err, "failed to register %s", name)
	}
	return cv, nil
}

func (m *Metrics) observeAdd(kind vc.Kind, added bool, numEvicted int) {
	if m == nil {
		return
	}
	if added {
		m.Added.WithLabelValues(kind.String()).Inc()
	} else {
		m.Rejected.WithLabelValues(kind.String()).Inc()
	}
	if numEvicted > 0 {
		m.Evicted.WithLabelValues(kind.String()).Add(float64(numEvicted))
	}
}

func (m *Metrics) observeRemove(kind vc.Kind) {
	if m == nil {
		return
	}
	m.Removed.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) observeProcessed(kind vc.Kind) {
	if m == nil {
		return
	}
	m.Processed.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) observeRevertedEntry(action changelog.Action) {
	if m == nil {
		return
	}
	m.RevertedEntries.WithLabelValues(action.String()).Inc()
}

func (m *Metrics) observeRevert() {
	if m == nil {
		return
	}
	m.Reverts.Inc()
}
