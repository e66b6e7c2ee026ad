package prometheus

import (
	"testing"
	"time"

	"github.com/calldwell/go-thread-pool/core"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsExporter_RegistersCollectors(t *testing.T) {
	reg := prom.NewRegistry()

	exporter, err := NewMetricsExporter("testpool", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}
	if exporter == nil {
		t.Fatal("expected an exporter")
	}

	var _ core.Metrics = exporter
}

func TestNewMetricsExporter_RegisterTwiceReusesCollectors(t *testing.T) {
	reg := prom.NewRegistry()

	first, err := NewMetricsExporter("dup", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	second, err := NewMetricsExporter("dup", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("second registration should reuse collectors, got: %v", err)
	}

	first.RecordJobFault("p1", core.FaultKindError)
	second.RecordJobFault("p1", core.FaultKindError)

	got := testutil.ToFloat64(second.jobFaultTotal.WithLabelValues("p1", core.FaultKindError))
	if got != 2 {
		t.Errorf("expected both exporters to share one counter, got %v", got)
	}
}

func TestMetricsExporter_RecordsFaults(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewMetricsExporter("faults", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}

	exporter.RecordJobFault("pool-a", core.FaultKindError)
	exporter.RecordJobFault("pool-a", core.FaultKindError)
	exporter.RecordJobFault("pool-a", core.FaultKindPanic)

	if got := testutil.ToFloat64(exporter.jobFaultTotal.WithLabelValues("pool-a", core.FaultKindError)); got != 2 {
		t.Errorf("expected 2 error faults, got %v", got)
	}
	if got := testutil.ToFloat64(exporter.jobFaultTotal.WithLabelValues("pool-a", core.FaultKindPanic)); got != 1 {
		t.Errorf("expected 1 panic fault, got %v", got)
	}
}

func TestMetricsExporter_RecordsRejectionsAndDepth(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewMetricsExporter("rej", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}

	exporter.RecordJobRejected("pool-a", core.RejectReasonClosed)
	exporter.RecordQueueDepth("pool-a", 7)

	if got := testutil.ToFloat64(exporter.jobRejectedTotal.WithLabelValues("pool-a", core.RejectReasonClosed)); got != 1 {
		t.Errorf("expected 1 rejection, got %v", got)
	}
	if got := testutil.ToFloat64(exporter.queueDepth.WithLabelValues("pool-a")); got != 7 {
		t.Errorf("expected queue depth 7, got %v", got)
	}
}

func TestMetricsExporter_RecordsDurations(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewMetricsExporter("dur", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}

	exporter.RecordJobDuration("pool-a", 15*time.Millisecond)
	exporter.RecordJobDuration("pool-a", 250*time.Millisecond)

	if got := testutil.CollectAndCount(exporter.jobDurationSeconds); got != 1 {
		t.Errorf("expected 1 labeled histogram series, got %d", got)
	}
}

func TestMetricsExporter_EmptyLabelsFallBack(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewMetricsExporter("fallback", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}

	exporter.RecordJobFault("", "")

	if got := testutil.ToFloat64(exporter.jobFaultTotal.WithLabelValues("unknown", "unknown")); got != 1 {
		t.Errorf("expected empty labels to normalize to 'unknown', got %v", got)
	}
}

func TestMetricsExporter_NilReceiverIsSafe(t *testing.T) {
	var exporter *MetricsExporter
	exporter.RecordJobDuration("p", time.Second)
	exporter.RecordJobFault("p", core.FaultKindError)
	exporter.RecordJobRejected("p", core.RejectReasonClosed)
	exporter.RecordQueueDepth("p", 1)
}
