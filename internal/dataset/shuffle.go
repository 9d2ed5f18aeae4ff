package dataset

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/ChizhovVadim/kpptlearn/internal/domain"
	"golang.org/x/sync/errgroup"
)

const DefaultShards = 256

// Transform may rewrite a record before it is written; returning false
// drops it.
type Transform func(thread int, rec *domain.Record) (bool, error)

type ShuffleOptions struct {
	InputFolder  string
	OutputFolder string
	Shards       int
	MinPly       int
	MaxPly       int
	Seed         int64
	Threads      int
	Compress     bool
	Transform    Transform
}

func (o *ShuffleOptions) shardPattern() string {
	var ext = ".bin"
	if o.Compress {
		ext = zstdExt
	}
	return filepath.Join(o.OutputFolder, "shuffled.%03d"+ext)
}

// Shuffle spreads the input records over Shards output files at random,
// keeping plies in [MinPly, MaxPly], and then shuffles every output file.
func Shuffle(ctx context.Context, opts ShuffleOptions) (int64, error) {
	log.Println("shuffle started")
	defer log.Println("shuffle finished")

	if opts.Shards <= 0 {
		opts.Shards = DefaultShards
	}
	if opts.Threads <= 0 {
		opts.Threads = 1
	}
	var err = os.MkdirAll(opts.OutputFolder, 0755)
	if err != nil {
		return 0, err
	}
	count, err := divide(ctx, &opts)
	if err != nil {
		return count, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Threads)
	for i := 0; i < opts.Shards; i++ {
		var path = fmt.Sprintf(opts.shardPattern(), i)
		var rnd = rand.New(rand.NewSource(opts.Seed + int64(i) + 1))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return nil
			}
			return ShuffleFile(path, rnd)
		})
	}
	return count, g.Wait()
}

func divide(ctx context.Context, opts *ShuffleOptions) (int64, error) {
	var writers = make([]*Writer, opts.Shards)
	for i := range writers {
		writers[i] = NewWriterAt(opts.shardPattern(), i, 0)
		writers[i].Compress = opts.Compress
	}

	g, ctx := errgroup.WithContext(ctx)
	var records = make(chan domain.Record, 1024)
	var count int64

	g.Go(func() error {
		defer close(records)
		return readPlyRange(ctx, opts, records)
	})

	for i := 0; i < opts.Threads; i++ {
		var thread = i
		var rnd = rand.New(rand.NewSource(opts.Seed - int64(thread)))
		g.Go(func() error {
			for rec := range records {
				if opts.Transform != nil {
					var keep, err = opts.Transform(thread, &rec)
					if err != nil {
						return err
					}
					if !keep {
						continue
					}
				}
				if err := writers[rnd.Intn(len(writers))].Write(&rec); err != nil {
					return err
				}
				atomic.AddInt64(&count, 1)
			}
			return nil
		})
	}

	var err = g.Wait()
	for _, w := range writers {
		if err2 := w.Close(); err == nil {
			err = err2
		}
	}
	log.Println("divide",
		"records", count)
	return count, err
}

// readPlyRange numbers the records of each game from 1, using the last
// position marker as the game boundary.
func readPlyRange(ctx context.Context, opts *ShuffleOptions, records chan<- domain.Record) error {
	var reader, err = NewReader(opts.InputFolder, 1, 1)
	if err != nil {
		return err
	}
	defer reader.Close()
	var ply = 1
	var rec domain.Record
	for reader.Read(0, &rec) {
		if opts.MinPly <= ply && (opts.MaxPly == 0 || ply <= opts.MaxPly) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case records <- rec:
			}
		}
		if rec.LastPosition {
			ply = 1
		} else {
			ply++
		}
	}
	return reader.Err()
}

// ShuffleFile permutes the records of one shard file in memory and
// rewrites it.
func ShuffleFile(path string, rnd *rand.Rand) error {
	var records, err = readShard(path)
	if err != nil {
		return err
	}
	rnd.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	var tmp = path + ".tmp"
	var w = NewWriter(tmp, 0)
	w.Compress = filepath.Ext(path) == zstdExt
	for i := range records {
		if err := w.Write(&records[i]); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func readShard(path string) ([]domain.Record, error) {
	var sr, err = openShard(path)
	if err != nil {
		return nil, err
	}
	defer sr.Close()
	var result []domain.Record
	var buf [domain.RecordSize]byte
	for {
		var rec domain.Record
		var err = sr.next(buf[:], &rec)
		if err != nil {
			if err == io.EOF {
				return result, nil
			}
			return nil, err
		}
		result = append(result, rec)
	}
}
