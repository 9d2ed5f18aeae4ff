package kppt

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	KKFileName  = "KK_synthesized.bin"
	KKPFileName = "KKP_synthesized.bin"
	KPPFileName = "KPP_synthesized.bin"
)

var ErrShortFile = errors.New("weights file missing or truncated")

// Weights holds the three weight arrays in the order the evaluator reads
// them. Every feature has a color-relative and a turn-relative value.
//
//	KK[(k0*S+k1)*2+w]
//	KKP[((k0*S+k1)*P+p)*2+w]
//	KPP[((k*P+p0)*P+p1)*2+w]
type Weights struct {
	Squares int
	Pieces  int
	KK      []int32
	KKP     []int32
	KPP     []int16
}

func NewWeights(squares, pieces int) *Weights {
	return &Weights{
		Squares: squares,
		Pieces:  pieces,
		KK:      make([]int32, squares*squares*2),
		KKP:     make([]int32, squares*squares*pieces*2),
		KPP:     make([]int16, squares*pieces*pieces*2),
	}
}

func (w *Weights) KKIndex(k0, k1 int) int {
	return (k0*w.Squares + k1) * 2
}

func (w *Weights) KKPIndex(k0, k1, p int) int {
	return ((k0*w.Squares+k1)*w.Pieces + p) * 2
}

func (w *Weights) KPPIndex(k, p0, p1 int) int {
	return ((k*w.Pieces+p0)*w.Pieces + p1) * 2
}

// Load reads the three arrays from folder. The sizes must match exactly.
func (w *Weights) Load(folder string) error {
	var err = loadSlice(filepath.Join(folder, KKFileName), w.KK, 4)
	if err != nil {
		return err
	}
	err = loadSlice(filepath.Join(folder, KKPFileName), w.KKP, 4)
	if err != nil {
		return err
	}
	return loadSlice(filepath.Join(folder, KPPFileName), w.KPP, 2)
}

func (w *Weights) Save(folder string) error {
	var err = os.MkdirAll(folder, 0755)
	if err != nil {
		return err
	}
	err = saveSlice(filepath.Join(folder, KKFileName), w.KK)
	if err != nil {
		return err
	}
	err = saveSlice(filepath.Join(folder, KKPFileName), w.KKP)
	if err != nil {
		return err
	}
	return saveSlice(filepath.Join(folder, KPPFileName), w.KPP)
}

func loadSlice[T int16 | int32](path string, data []T, width int) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShortFile, err)
	}
	if fi.Size() != int64(len(data)*width) {
		return fmt.Errorf("%w: %v has %v bytes, expected %v",
			ErrShortFile, path, fi.Size(), len(data)*width)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return binary.Read(bufio.NewReaderSize(f, 1<<20), binary.LittleEndian, data)
}

func saveSlice[T int16 | int32](path string, data []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	var w = bufio.NewWriterSize(f, 1<<20)
	err = binary.Write(w, binary.LittleEndian, data)
	if err != nil {
		return err
	}
	err = w.Flush()
	if err != nil {
		return err
	}
	return f.Close()
}
