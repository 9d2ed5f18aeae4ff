package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/ChizhovVadim/kpptlearn/internal/domain"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/slices"
)

const zstdExt = ".zst"

// shardFiles lists the record files of a folder in name order.
func shardFiles(folderPath string) ([]string, error) {
	dirs, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, err
	}
	var result []string
	for _, de := range dirs {
		if de.IsDir() {
			continue
		}
		var ext = filepath.Ext(de.Name())
		if ext == ".bin" || ext == zstdExt {
			result = append(result, filepath.Join(folderPath, de.Name()))
		}
	}
	slices.Sort(result)
	return result, nil
}

type shardReader struct {
	file *os.File
	dec  *zstd.Decoder
	r    io.Reader
}

func openShard(path string) (*shardReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sr = &shardReader{file: f}
	if filepath.Ext(path) == zstdExt {
		sr.dec, err = zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open zstd %v: %w", path, err)
		}
		sr.r = bufio.NewReaderSize(sr.dec, 1<<16)
	} else {
		sr.r = bufio.NewReaderSize(f, 1<<16)
	}
	return sr, nil
}

// next reads one record. It returns io.EOF at the end of the shard.
func (sr *shardReader) next(buf []byte, rec *domain.Record) error {
	var _, err = io.ReadFull(sr.r, buf[:domain.RecordSize])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("truncated record in %v", sr.file.Name())
		}
		return err
	}
	rec.UnmarshalFrom(buf)
	return nil
}

func (sr *shardReader) Close() error {
	if sr.dec != nil {
		sr.dec.Close()
	}
	return sr.file.Close()
}

// LoadRecords reads at most maxCount records (all when maxCount is 0)
// from the shards of folderPath.
func LoadRecords(folderPath string, maxCount int) ([]domain.Record, error) {
	var reader, err = NewReader(folderPath, 1, 1)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	var result []domain.Record
	for maxCount == 0 || len(result) < maxCount {
		var rec domain.Record
		if !reader.Read(0, &rec) {
			break
		}
		result = append(result, rec)
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	log.Println("loadRecords",
		"folder", folderPath,
		"count", len(result))
	return result, nil
}
