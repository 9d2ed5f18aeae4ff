package weights

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/ChizhovVadim/kpptlearn/internal/feature"
	"github.com/ChizhovVadim/kpptlearn/pkg/common"
)

func TestNativeLayout(t *testing.T) {
	var space = feature.NewSpace(common.Tiny)
	var table = New(space)
	var rnd = rand.New(rand.NewSource(1))
	for n := 0; n < 5000; n++ {
		var index = rnd.Intn(space.Len())
		var value = float64(rnd.Intn(20001) - 10000)
		table.Store(index, value)
		var k = space.FromIndex(index)
		var w = table.Eval()
		var native int64
		switch k.Family {
		case feature.KPP:
			native = int64(w.KPP[w.KPPIndex(k.King0, k.Piece0, k.Piece1)+int(k.Kind)])
		case feature.KKP:
			native = int64(w.KKP[w.KKPIndex(k.King0, k.King1, k.Piece0)+int(k.Kind)])
		case feature.KK:
			native = int64(w.KK[w.KKIndex(k.King0, k.King1)+int(k.Kind)])
		}
		if native != int64(value) || table.Value(index) != int64(value) {
			t.Fatal(k, value, native, table.Value(index))
		}
	}
}

func TestStoreLimits(t *testing.T) {
	var space = feature.NewSpace(common.Tiny)
	var table = New(space)
	var kpp = space.Min(feature.KPP)
	table.Store(kpp, 1e6)
	if table.Value(kpp) != 32767 || table.Cell(kpp).W != 32767 {
		t.Error(table.Value(kpp), table.Cell(kpp).W)
	}
	var kk = space.Min(feature.KK)
	table.Store(kk, 1e6+0.4)
	if table.Value(kk) != 1000000 {
		t.Error(table.Value(kk))
	}
}

func TestSaveLoad(t *testing.T) {
	var space = feature.NewSpace(common.Tiny)
	var table = New(space)
	table.InitRandom(rand.New(rand.NewSource(2)), 100)
	var dir = t.TempDir()
	if err := table.Save(dir); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(dir, space)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < table.Len(); i++ {
		if loaded.Value(i) != table.Value(i) || loaded.Cell(i).W != float64(table.Value(i)) {
			t.Fatal(i, loaded.Value(i), table.Value(i))
		}
	}
	if _, err := Load(t.TempDir(), space); err == nil {
		t.Error("missing folder accepted")
	}
}

func TestInitRandomSymmetric(t *testing.T) {
	var space = feature.NewSpace(common.Tiny)
	var table = New(space)
	table.InitRandom(rand.New(rand.NewSource(3)), 50)
	var nonZero = 0
	for i := 0; i < table.Len(); i++ {
		var v = table.Value(i)
		if v != 0 {
			nonZero++
		}
		for _, m := range space.GroupOf(i) {
			var expected = v
			if m.Negate {
				expected = -v
			}
			if table.Value(m.Index) != expected {
				t.Fatal(space.FromIndex(i), space.FromIndex(m.Index), v, table.Value(m.Index))
			}
		}
	}
	if nonZero == 0 {
		t.Error("all values are zero")
	}
}

func TestBreed(t *testing.T) {
	var space = feature.NewSpace(common.Tiny)
	var a, b = New(space), New(space)
	var tests = []struct {
		a, b, expected float64
	}{
		{0, 40, 40},
		{40, 0, 40},
		{100, 200, 125},
		{0, 0, 0},
	}
	for i, test := range tests {
		a.Store(i, test.a)
		b.Store(i, test.b)
	}
	var result, err = Breed(a, b, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	for i, test := range tests {
		if result.Value(i) != int64(test.expected) {
			t.Error(test, result.Value(i))
		}
	}
}

func TestAddRawConcurrent(t *testing.T) {
	var c Cell
	var wg = &sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.AddRaw(0.5)
			}
		}()
	}
	wg.Wait()
	if c.Raw() != 4000 {
		t.Error(c.Raw())
	}
	c.ResetGradients()
	if c.Raw() != 0 {
		t.Error(c.Raw())
	}
}
