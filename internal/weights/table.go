package weights

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/ChizhovVadim/kpptlearn/internal/feature"
	"github.com/ChizhovVadim/kpptlearn/internal/ml"
	"github.com/ChizhovVadim/kpptlearn/pkg/eval/kppt"
)

// Table is the flat parameter vector. Every flat index has a Cell and a
// stored value in the evaluator arrays; both are addressed by the same
// index.
type Table struct {
	space *feature.Space
	eval  *kppt.Weights
	cells []Cell
}

func New(space *feature.Space) *Table {
	var geo = space.Geometry()
	return &Table{
		space: space,
		eval:  kppt.NewWeights(geo.SquareCount(), geo.PieceCount()),
		cells: make([]Cell, space.Len()),
	}
}

// Load reads an evaluator folder and seeds every cell with its stored value.
func Load(folder string, space *feature.Space) (*Table, error) {
	var t = New(space)
	var err = t.eval.Load(folder)
	if err != nil {
		return nil, fmt.Errorf("load weights %v: %w", folder, err)
	}
	for i := range t.cells {
		t.cells[i].W = float64(t.Value(i))
	}
	log.Println("loadWeights",
		"folder", folder,
		"cells", len(t.cells))
	return t, nil
}

func (t *Table) Save(folder string) error {
	var err = t.eval.Save(folder)
	if err != nil {
		return fmt.Errorf("save weights %v: %w", folder, err)
	}
	return nil
}

func (t *Table) Space() *feature.Space {
	return t.space
}

// Eval exposes the stored arrays to the evaluator.
func (t *Table) Eval() *kppt.Weights {
	return t.eval
}

func (t *Table) Len() int {
	return len(t.cells)
}

func (t *Table) Cell(index int) *Cell {
	return &t.cells[index]
}

// Value is the stored value of a flat index.
func (t *Table) Value(index int) int64 {
	var f = t.space.FamilyOf(index)
	var offset = index - t.space.Min(f)
	switch f {
	case feature.KPP:
		return int64(t.eval.KPP[offset])
	case feature.KKP:
		return int64(t.eval.KKP[offset])
	default:
		return int64(t.eval.KK[offset])
	}
}

// Store sets a cell's value: W is limited to the storage range and its
// rounding is written to the evaluator arrays.
func (t *Table) Store(index int, w float64) {
	var f = t.space.FamilyOf(index)
	var offset = index - t.space.Min(f)
	var c = &t.cells[index]
	switch f {
	case feature.KPP:
		c.W = ml.Clamp[int16](w)
		t.eval.KPP[offset] = ml.RoundClamp[int16](c.W)
	case feature.KKP:
		c.W = ml.Clamp[int32](w)
		t.eval.KKP[offset] = ml.RoundClamp[int32](c.W)
	default:
		c.W = ml.Clamp[int32](w)
		t.eval.KK[offset] = ml.RoundClamp[int32](c.W)
	}
}

// InitRandom draws uniform values in [-scale, scale]. Every symmetry group
// receives one draw so the evaluator starts symmetric.
func (t *Table) InitRandom(rnd *rand.Rand, scale float64) {
	for i := range t.cells {
		var group = t.space.GroupOf(i)
		var origin = i
		for _, m := range group {
			if m.Index < origin {
				origin = m.Index
			}
		}
		if origin != i {
			continue
		}
		var w = (rnd.Float64()*2 - 1) * scale
		if selfNegating(group) {
			w = 0
		}
		for _, m := range group {
			if m.Negate {
				t.Store(m.Index, -w)
			} else {
				t.Store(m.Index, w)
			}
		}
	}
}

// selfNegating reports a group in which some index is its own negation.
func selfNegating(group [feature.GroupSize]feature.IndexMember) bool {
	for _, m := range group {
		if m.Negate && m.Index == group[0].Index {
			return true
		}
	}
	return false
}

// Breed blends two tables: base*ratio + other*(1-ratio). Where one side
// is zero the other side is taken as is.
func Breed(base, other *Table, ratio float64) (*Table, error) {
	if base.Len() != other.Len() {
		return nil, fmt.Errorf("breed: table sizes differ %v %v", base.Len(), other.Len())
	}
	var result = New(base.space)
	for i := range result.cells {
		var a, b = float64(base.Value(i)), float64(other.Value(i))
		var w float64
		switch {
		case a == 0:
			w = b
		case b == 0:
			w = a
		default:
			w = a*ratio + b*(1-ratio)
		}
		result.Store(i, w)
	}
	return result, nil
}
