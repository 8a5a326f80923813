package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.FramesRead.Inc()
	m.FramesRead.Inc()
	m.FramesProcessed.Inc()
	m.DetectionsTotal.Add(5)
	m.DetectionsKept.Add(2)
	m.ZoneCount.Set(2)

	if v := testutil.ToFloat64(m.FramesRead); v != 2 {
		t.Errorf("Expected 2 frames read, got %f", v)
	}
	if v := testutil.ToFloat64(m.DetectionsKept); v != 2 {
		t.Errorf("Expected 2 kept detections, got %f", v)
	}
	if n := testutil.CollectAndCount(m.InferenceSeconds); n != 1 {
		t.Errorf("Expected one histogram series, got %d", n)
	}
}

func TestMetrics_Summary(t *testing.T) {
	m := New()
	m.FramesRead.Add(3)
	m.FramesProcessed.Add(3)
	m.ReadFailures.Inc()
	m.ZoneCount.Set(4)
	m.ObserveInference(10 * time.Millisecond)
	m.ObserveInference(30 * time.Millisecond)

	summary, err := m.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	for _, want := range []string{"frames read=3", "processed=3", "read_failures=1", "last_zone_count=4", "avg_inference=20.0ms"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Expected %q in summary: %s", want, summary)
		}
	}
}

func TestMetrics_SummaryEmpty(t *testing.T) {
	summary, err := New().Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if !strings.Contains(summary, "avg_inference=0.0ms") {
		t.Errorf("Expected zero average for empty run: %s", summary)
	}
}
