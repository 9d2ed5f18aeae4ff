package progress

import (
	"log"
	"sync"
	"time"
)

const alpha = 0.1

// Report logs progress toward a total at most once per interval. The
// finish time comes from exponential moving averages of elapsed time and
// processed data between reports.
type Report struct {
	total    int64
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	start    time.Time
	prevTime time.Time
	prevData int64
	avgTime  float64
	avgData  float64
}

func New(total int64, interval time.Duration) *Report {
	return newReport(total, interval, time.Now)
}

func newReport(total int64, interval time.Duration, now func() time.Time) *Report {
	var t = now()
	return &Report{
		total:    total,
		interval: interval,
		now:      now,
		start:    t,
		prevTime: t,
	}
}

// Show logs a report for done items unless one was logged within the
// interval. It returns whether a report was logged.
func (r *Report) Show(done int64) bool {
	if done == 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var t = r.now()
	if t.Sub(r.prevTime) < r.interval {
		return false
	}
	r.avgTime = alpha*t.Sub(r.prevTime).Seconds() + (1-alpha)*r.avgTime
	r.avgData = alpha*float64(done-r.prevData) + (1-alpha)*r.avgData
	var finish = r.finish(t, done)
	log.Printf("progress %v / %v elapsed %v current %v finish %v",
		done, r.total,
		t.Sub(r.start).Round(time.Second),
		t.Format("2006-01-02 15:04:05"),
		finish.Format("2006-01-02 15:04:05"))
	r.prevData = done
	r.prevTime = t
	return true
}

func (r *Report) finish(t time.Time, done int64) time.Time {
	if r.avgData <= 0 {
		return t
	}
	var secondsPerItem = r.avgTime / r.avgData
	return t.Add(time.Duration(float64(r.total-done) * secondsPerItem * float64(time.Second)))
}

// Finish is the current estimate of the completion time.
func (r *Report) Finish() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finish(r.prevTime, r.prevData)
}
