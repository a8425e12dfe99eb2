package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.LessonCompleted()
	m.CourseCompleted()
	m.XPAwarded("lesson_completion", 10)
	m.XPAwardFailed("lesson_completion")
	m.SideEffectFailed("aggregate")
	if m.Registry() != nil {
		t.Fatal("nil metrics should have no registry")
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.LessonCompleted()
	m.LessonCompleted()
	m.XPAwarded("lesson_completion", 60)
	m.XPAwarded("lesson_completion", 0)
	m.XPAwarded("course_completion", 50)

	if got := testutil.ToFloat64(m.lessonCompleted); got != 2 {
		t.Fatalf("lesson completions = %v", got)
	}
	if got := testutil.ToFloat64(m.xpAwarded.WithLabelValues("lesson_completion")); got != 60 {
		t.Fatalf("lesson xp = %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics handler status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "thorbis_xp_awarded_total") {
		t.Fatal("exposition missing xp counter")
	}
}

func TestSampleRatio(t *testing.T) {
	if sampleRatio(0) != 0.1 || sampleRatio(2) != 1 || sampleRatio(0.5) != 0.5 {
		t.Fatal("unexpected sample ratio clamping")
	}
}
