package pebble

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	reads      prometheus.Counter
	readMisses prometheus.Counter
	writes     prometheus.Counter
	deletes    prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ftstore",
			Name:      "reads",
			Help:      "number of state reads",
		}),
		readMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ftstore",
			Name:      "read_misses",
			Help:      "number of state reads for absent keys",
		}),
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ftstore",
			Name:      "writes",
			Help:      "number of state writes",
		}),
		deletes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ftstore",
			Name:      "deletes",
			Help:      "number of state deletes",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.reads, m.readMisses, m.writes, m.deletes} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}
