package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stitchworks/imagelib/pkg/metrics"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	t.Helper()
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestRemoteCalls_Inc(t *testing.T) {
	metrics.MustRegister()

	before := testutil.ToFloat64(metrics.RemoteCalls.WithLabelValues("uploads", "delete", "error"))

	metrics.RemoteCalls.WithLabelValues("uploads", "delete", "error").Inc()

	if got := testutil.ToFloat64(metrics.RemoteCalls.WithLabelValues("uploads", "delete", "error")); got != before+1 {
		t.Fatalf("RemoteCalls: got=%v want=%v", got, before+1)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("categories", "hit"))
	missBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("categories", "miss"))

	metrics.CacheOps.WithLabelValues("categories", "hit").Inc()
	metrics.CacheOps.WithLabelValues("categories", "hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("categories", "hit")); got != hitBefore+2 {
		t.Fatalf("CacheOps(hit): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("categories", "miss")); got != missBefore {
		t.Fatalf("CacheOps(miss): got=%v want=%v", got, missBefore)
	}
}

func TestCacheSize_GaugeSet(t *testing.T) {
	metrics.MustRegister()

	cur := testutil.ToFloat64(metrics.CacheSize.WithLabelValues("pricing"))

	metrics.CacheSize.WithLabelValues("pricing").Set(cur + 5)
	if got := testutil.ToFloat64(metrics.CacheSize.WithLabelValues("pricing")); got != cur+5 {
		t.Fatalf("CacheSize after +5: got=%v want=%v", got, cur+5)
	}

	metrics.CacheSize.WithLabelValues("pricing").Set(cur) // вернуть как было
	if got := testutil.ToFloat64(metrics.CacheSize.WithLabelValues("pricing")); got != cur {
		t.Fatalf("CacheSize restore: got=%v want=%v", got, cur)
	}
}
