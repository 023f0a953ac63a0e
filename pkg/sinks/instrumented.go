package sinks

import (
	kitlog "github.com/go-kit/kit/log"
	level "github.com/go-kit/kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sinkWriteBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bytesink_sink_write_bytes_total",
			Help: "Number of bytes successfully written, by sink",
		},
		[]string{"sink"},
	)
	sinkWriteFaultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bytesink_sink_write_faults_total",
			Help: "Number of failed single byte writes, by sink and kind of fault",
		},
		[]string{"sink", "fault"},
	)
)

type instrumentedSink struct {
	Sink
	logger      kitlog.Logger
	bytesTotal  prometheus.Counter
	faultsTotal *prometheus.CounterVec
}

// NewInstrumentedSink wraps an existing sink, counting every written byte and fault in
// metrics labelled with the given name. Faults are also logged. Errors from the wrapped
// sink are returned unchanged.
func NewInstrumentedSink(logger kitlog.Logger, name string, sink Sink) Sink {
	labels := prometheus.Labels(map[string]string{"sink": name})

	return &instrumentedSink{
		Sink:        sink,
		logger:      kitlog.With(logger, "sink", name),
		bytesTotal:  sinkWriteBytesTotal.With(labels),
		faultsTotal: sinkWriteFaultsTotal.MustCurryWith(labels),
	}
}

func (s *instrumentedSink) WriteByte(b byte) error {
	err := s.Sink.WriteByte(b)
	if err != nil {
		fault := Fault(err)
		level.Error(s.logger).Log("event", "write_fault", "fault", fault, "error", err)
		s.faultsTotal.WithLabelValues(fault).Inc()

		return err
	}

	s.bytesTotal.Inc()
	return nil
}
