package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ChizhovVadim/kpptlearn/internal/domain"
	"github.com/klauspost/compress/zstd"
)

// Writer appends records to shard files named by a Printf pattern with one
// integer verb, rolling over to the next shard after MaxRecords records.
// Shards are opened lazily. Writer is safe for concurrent use.
type Writer struct {
	Pattern    string
	MaxRecords int
	Compress   bool

	mu    sync.Mutex
	index int
	count int
	file  *os.File
	enc   *zstd.Encoder
	bw    *bufio.Writer
	buf   [domain.RecordSize]byte
	err   error
}

func NewWriter(pattern string, maxRecords int) *Writer {
	return NewWriterAt(pattern, 0, maxRecords)
}

// NewWriterAt starts shard numbering at first.
func NewWriterAt(pattern string, first, maxRecords int) *Writer {
	return &Writer{
		Pattern:    pattern,
		MaxRecords: maxRecords,
		index:      first,
	}
}

func (w *Writer) Write(rec *domain.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	if w.file != nil && w.MaxRecords > 0 && w.count >= w.MaxRecords {
		if w.err = w.closeShard(); w.err != nil {
			return w.err
		}
	}
	if w.file == nil {
		if w.err = w.openShard(); w.err != nil {
			return w.err
		}
	}
	rec.MarshalTo(w.buf[:])
	if _, w.err = w.bw.Write(w.buf[:]); w.err != nil {
		return w.err
	}
	w.count++
	return nil
}

// Path is the name of the shard with the given number. A pattern without
// a verb names a single file.
func (w *Writer) Path(index int) string {
	if !strings.Contains(w.Pattern, "%") {
		return w.Pattern
	}
	return fmt.Sprintf(w.Pattern, index)
}

func (w *Writer) openShard() error {
	var path = w.Path(w.index)
	var err = os.MkdirAll(filepath.Dir(path), os.ModePerm)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	var dst io.Writer = f
	if w.Compress {
		w.enc, err = zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return err
		}
		dst = w.enc
	}
	w.file = f
	w.bw = bufio.NewWriterSize(dst, 1<<16)
	w.index++
	w.count = 0
	return nil
}

func (w *Writer) closeShard() error {
	var err = w.bw.Flush()
	if w.enc != nil {
		if err2 := w.enc.Close(); err == nil {
			err = err2
		}
		w.enc = nil
	}
	if err2 := w.file.Close(); err == nil {
		err = err2
	}
	w.file = nil
	w.bw = nil
	return err
}

// Close flushes and closes the active shard.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return w.err
	}
	var err = w.closeShard()
	if w.err == nil {
		w.err = err
	}
	return err
}
