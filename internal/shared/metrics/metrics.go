package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	uploadsTotal          atomic.Uint64
	uploadsFailedTotal    atomic.Uint64
	skillsFallbackTotal   atomic.Uint64
	persistDegradedTotal  atomic.Uint64
	jobSearchFailedTotal  atomic.Uint64
	eventsPublishFailures atomic.Uint64

	intakeDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncUploads counts an upload request entering the intake pipeline.
func IncUploads() {
	uploadsTotal.Add(1)
}

// IncUploadsFailed counts an upload rejected by validation or extraction.
func IncUploadsFailed() {
	uploadsFailedTotal.Add(1)
}

// IncSkillsFallback counts skill extractions served by the keyword fallback.
func IncSkillsFallback() {
	skillsFallbackTotal.Add(1)
}

// IncPersistDegraded counts uploads answered with a synthetic identifier.
func IncPersistDegraded() {
	persistDegradedTotal.Add(1)
}

// IncJobSearchFailed counts job searches that returned nothing because of an error.
func IncJobSearchFailed() {
	jobSearchFailedTotal.Add(1)
}

// IncEventsPublishFailed counts resume events that could not be published.
func IncEventsPublishFailed() {
	eventsPublishFailures.Add(1)
}

// ObserveIntakeDurationMs records an intake pipeline duration in milliseconds.
func ObserveIntakeDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	intakeDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_uploads_total", "Total resume uploads received", uploadsTotal.Load())
	writeCounter(&buf, "resume_uploads_failed_total", "Total resume uploads rejected", uploadsFailedTotal.Load())
	writeCounter(&buf, "skills_fallback_total", "Skill extractions served by the keyword fallback", skillsFallbackTotal.Load())
	writeCounter(&buf, "resume_persist_degraded_total", "Uploads answered with a synthetic identifier", persistDegradedTotal.Load())
	writeCounter(&buf, "job_search_failed_total", "Job searches that failed upstream", jobSearchFailedTotal.Load())
	writeCounter(&buf, "resume_events_publish_failed_total", "Resume events that could not be published", eventsPublishFailures.Load())
	writeHistogram(&buf, "resume_intake_duration_ms", "Intake pipeline duration in milliseconds", intakeDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe stores value in the first bucket whose bound is >= value.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
