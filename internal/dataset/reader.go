package dataset

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ChizhovVadim/kpptlearn/internal/domain"
)

// Reader streams records from a folder of shard files, passing over every
// shard loops times. Shards are dealt round-robin to per-thread cursors;
// a thread whose cursor is exhausted continues with the other cursors.
type Reader struct {
	loops   int
	cursors []*cursor
	mu      sync.Mutex
	err     error
}

type cursor struct {
	mu    sync.Mutex
	files []string
	loop  int
	index int
	shard *shardReader
	done  bool
	buf   [domain.RecordSize]byte
}

func NewReader(folderPath string, loops, threads int) (*Reader, error) {
	if loops <= 0 || threads <= 0 {
		return nil, fmt.Errorf("bad reader arguments loops=%v threads=%v", loops, threads)
	}
	files, err := shardFiles(folderPath)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no record files in %v", folderPath)
	}
	var cursors = make([]*cursor, min(threads, len(files)))
	for i := range cursors {
		cursors[i] = &cursor{}
	}
	for i, file := range files {
		var c = cursors[i%len(cursors)]
		c.files = append(c.files, file)
	}
	return &Reader{
		loops:   loops,
		cursors: cursors,
	}, nil
}

// Read fills rec with the next record for thread. It returns false when
// every shard has been read loops times or an error occurred (see Err).
func (r *Reader) Read(thread int, rec *domain.Record) bool {
	var n = len(r.cursors)
	for i := 0; i < n; i++ {
		var ok, err = r.cursors[(thread+i)%n].read(r.loops, rec)
		if err != nil {
			r.setErr(err)
			return false
		}
		if ok {
			return true
		}
	}
	return false
}

// ReadN fills recs and returns how many records were read.
func (r *Reader) ReadN(thread int, recs []domain.Record) int {
	for i := range recs {
		if !r.Read(thread, &recs[i]) {
			return i
		}
	}
	return len(recs)
}

func (r *Reader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Reader) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) Close() error {
	var result error
	for _, c := range r.cursors {
		c.mu.Lock()
		if c.shard != nil {
			if err := c.shard.Close(); err != nil && result == nil {
				result = err
			}
			c.shard = nil
		}
		c.done = true
		c.mu.Unlock()
	}
	return result
}

func (c *cursor) read(loops int, rec *domain.Record) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for !c.done {
		if c.shard == nil {
			if c.index == len(c.files) {
				c.index = 0
				c.loop++
				if c.loop >= loops {
					c.done = true
					break
				}
			}
			var sr, err = openShard(c.files[c.index])
			c.index++
			if err != nil {
				c.done = true
				return false, err
			}
			c.shard = sr
		}
		var err = c.shard.next(c.buf[:], rec)
		if err == nil {
			return true, nil
		}
		c.shard.Close()
		c.shard = nil
		if !errors.Is(err, io.EOF) {
			c.done = true
			return false, err
		}
	}
	return false, nil
}
