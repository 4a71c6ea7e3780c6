package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInit(t *testing.T) {
	// Call Init multiple times to test idempotency.
	Init()
	Init()

	if entriesEnqueuedTotal == nil || entriesWrittenTotal == nil ||
		queueDepth == nil || insertDurationSeconds == nil ||
		fetchesTotal == nil || runsTotal == nil {
		t.Fatal("Init() did not initialize metrics collectors")
	}

	// A simple check to see if the collectors can be used.
	ObserveFetch("example.org", "ok")
	if val := testutil.ToFloat64(fetchesTotal.WithLabelValues("example.org", "ok")); val != 1 {
		t.Errorf("Expected fetchesTotal{example.org,ok} to be 1, got %f", val)
	}

	SetQueueDepth(7)
	if val := testutil.ToFloat64(queueDepth); val != 7 {
		t.Errorf("Expected queueDepth to be 7, got %f", val)
	}
}
