package progress

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestReport(t *testing.T) {
	var clock = &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	var r = newReport(1000, time.Minute, clock.now)
	if r.Show(0) {
		t.Error("nothing done yet")
	}
	clock.t = clock.t.Add(30 * time.Second)
	if r.Show(50) {
		t.Error("reported before the interval")
	}
	clock.t = clock.t.Add(70 * time.Second)
	if !r.Show(100) {
		t.Fatal("expected a report")
	}
	// 100 items in 100 seconds: 900 remain at one item per second.
	var expected = clock.t.Add(900 * time.Second)
	if d := r.Finish().Sub(expected); d < -time.Second || d > time.Second {
		t.Error(r.Finish(), expected)
	}
	clock.t = clock.t.Add(10 * time.Second)
	if r.Show(200) {
		t.Error("reports must be throttled")
	}
}
