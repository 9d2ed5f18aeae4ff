package common

import "fmt"

const (
	MaxFiles = 9
	MaxRanks = 9
)

const SquareNone = -1

// Geometry describes the board: its size, how many pieces of each kind may
// be held in hand, and the BonaPiece alphabet derived from them.
type Geometry struct {
	Files             int
	Ranks             int
	HandMax           [KIND_NB]int
	CampRanks         int
	DeclarationPieces int

	handBase     [COLOR_NB][KIND_NB]int
	boardBase    [COLOR_NB][KIND_NB]int
	pieceCount   int
	pieceInfo    []bonaInfo
	mirrorPiece  []int
	inversePiece []int
}

type bonaInfo struct {
	color   Color
	kind    Kind
	value   int // square for board codes, count for hand codes
	onBoard bool
}

var Standard = NewGeometry(9, 9,
	[KIND_NB]int{Pawn: 18, Silver: 4, Gold: 4, Bishop: 2, Rook: 2}, 3, 10)

var Tiny = NewGeometry(3, 3,
	[KIND_NB]int{Pawn: 2, Silver: 2, Gold: 2, Bishop: 1, Rook: 1}, 1, 2)

func NewGeometry(files, ranks int, handMax [KIND_NB]int, campRanks, declarationPieces int) *Geometry {
	if files <= 0 || files > MaxFiles || ranks <= 0 || ranks > MaxRanks {
		panic(fmt.Errorf("bad board size %vx%v", files, ranks))
	}
	var g = &Geometry{
		Files:             files,
		Ranks:             ranks,
		HandMax:           handMax,
		CampRanks:         campRanks,
		DeclarationPieces: declarationPieces,
	}
	g.pieceInfo = append(g.pieceInfo, bonaInfo{})
	var next = 1
	for c := Black; c <= White; c++ {
		for k := Pawn; k <= Rook; k++ {
			g.handBase[c][k] = next
			for n := 1; n <= handMax[k]; n++ {
				g.pieceInfo = append(g.pieceInfo, bonaInfo{color: c, kind: k, value: n})
			}
			next += handMax[k]
		}
	}
	for c := Black; c <= White; c++ {
		for k := Pawn; k <= Rook; k++ {
			g.boardBase[c][k] = next
			for sq := 0; sq < g.SquareCount(); sq++ {
				g.pieceInfo = append(g.pieceInfo, bonaInfo{color: c, kind: k, value: sq, onBoard: true})
			}
			next += g.SquareCount()
		}
	}
	g.pieceCount = next
	g.mirrorPiece = make([]int, next)
	g.inversePiece = make([]int, next)
	for p := 1; p < next; p++ {
		var info = g.pieceInfo[p]
		if info.onBoard {
			g.mirrorPiece[p] = int(g.BoardPiece(info.color, info.kind, g.MirrorSquare(info.value)))
			g.inversePiece[p] = int(g.BoardPiece(info.color.Opposite(), info.kind, g.InverseSquare(info.value)))
		} else {
			g.mirrorPiece[p] = p
			g.inversePiece[p] = int(g.HandPiece(info.color.Opposite(), info.kind, info.value))
		}
	}
	return g
}

func (g *Geometry) String() string {
	return fmt.Sprintf("%vx%v", g.Files, g.Ranks)
}

func (g *Geometry) SquareCount() int {
	return g.Files * g.Ranks
}

// PieceCount is the size of the BonaPiece alphabet, zero code included.
func (g *Geometry) PieceCount() int {
	return g.pieceCount
}

func (g *Geometry) Square(file, rank int) int {
	return file*g.Ranks + rank
}

func (g *Geometry) File(sq int) int {
	return sq / g.Ranks
}

func (g *Geometry) Rank(sq int) int {
	return sq % g.Ranks
}

func (g *Geometry) OnBoard(file, rank int) bool {
	return file >= 0 && file < g.Files && rank >= 0 && rank < g.Ranks
}

func (g *Geometry) MirrorSquare(sq int) int {
	return g.Square(g.Files-1-g.File(sq), g.Rank(sq))
}

func (g *Geometry) InverseSquare(sq int) int {
	return g.SquareCount() - 1 - sq
}

// HandPiece is the code of the count-th piece of kind k in the hand of c.
func (g *Geometry) HandPiece(c Color, k Kind, count int) BonaPiece {
	return BonaPiece(g.handBase[c][k] + count - 1)
}

func (g *Geometry) BoardPiece(c Color, k Kind, sq int) BonaPiece {
	return BonaPiece(g.boardBase[c][k] + sq)
}

func (g *Geometry) MirrorPiece(p int) int {
	return g.mirrorPiece[p]
}

func (g *Geometry) InversePiece(p int) int {
	return g.inversePiece[p]
}

// DescribePiece decodes a BonaPiece. value is a square for board codes and
// a hand count otherwise.
func (g *Geometry) DescribePiece(p BonaPiece) (c Color, k Kind, value int, onBoard bool) {
	var info = g.pieceInfo[p]
	return info.color, info.kind, info.value, info.onBoard
}

// InCamp reports whether sq lies in the promotion zone of side c.
func (g *Geometry) InCamp(c Color, sq int) bool {
	var rank = g.Rank(sq)
	if c == Black {
		return rank < g.CampRanks
	}
	return rank >= g.Ranks-g.CampRanks
}

// LastRank reports whether a piece of side c on sq can never move forward.
func (g *Geometry) LastRank(c Color, sq int) bool {
	var rank = g.Rank(sq)
	if c == Black {
		return rank == 0
	}
	return rank == g.Ranks-1
}

func (g *Geometry) SquareName(sq int) string {
	return fmt.Sprintf("%d%c", g.File(sq)+1, 'a'+g.Rank(sq))
}

func (g *Geometry) ParseSquare(s string) (int, error) {
	if len(s) != 2 {
		return SquareNone, fmt.Errorf("bad square %q", s)
	}
	var file = int(s[0] - '1')
	var rank = int(s[1] - 'a')
	if !g.OnBoard(file, rank) {
		return SquareNone, fmt.Errorf("bad square %q", s)
	}
	return g.Square(file, rank), nil
}
