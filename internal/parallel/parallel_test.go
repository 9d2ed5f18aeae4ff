package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	var tests = []struct {
		threads, n, chunk int
	}{
		{1, 10, 3},
		{4, 1000, 7},
		{8, 5, 100},
		{3, 0, 1},
	}
	for _, test := range tests {
		var visits = make([]int32, test.n)
		var err = For(context.Background(), test.threads, test.n, test.chunk,
			func(thread, begin, end int) error {
				if thread < 0 || thread >= test.threads {
					t.Error("bad thread", thread)
				}
				for i := begin; i < end; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
				return nil
			})
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range visits {
			if v != 1 {
				t.Fatal(test, i, v)
			}
		}
	}
}

func TestForError(t *testing.T) {
	var errStop = errors.New("stop")
	var err = For(context.Background(), 4, 1000, 1, func(thread, begin, end int) error {
		if begin == 500 {
			return errStop
		}
		return nil
	})
	if !errors.Is(err, errStop) {
		t.Error(err)
	}
}
