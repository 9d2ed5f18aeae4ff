package common

import "fmt"

const PackedBoardSize = 64

const (
	packedHandOffset  = (MaxFiles*MaxRanks + 1) / 2
	packedSideOffset  = packedHandOffset + int(COLOR_NB)*int(Rook)
	packedFilesOffset = packedSideOffset + 1
	packedRanksOffset = packedFilesOffset + 1
)

// PackedBoard is the fixed-size board encoding stored in record files: one
// nibble per square, then hand counts, side to move and board size.
type PackedBoard [PackedBoardSize]byte

func (p *Position) Pack() PackedBoard {
	var result PackedBoard
	for sq, piece := range p.board {
		result[sq/2] |= byte(piece) << (4 * (sq % 2))
	}
	for c := Black; c <= White; c++ {
		for k := Pawn; k <= Rook; k++ {
			result[packedHandOffset+int(c)*int(Rook)+int(k-Pawn)] = byte(p.hand[c][k])
		}
	}
	result[packedSideOffset] = byte(p.side)
	result[packedFilesOffset] = byte(p.geo.Files)
	result[packedRanksOffset] = byte(p.geo.Ranks)
	return result
}

// Unpack sets p from a packed board, reusing p's buffers.
func (p *Position) Unpack(geo *Geometry, packed *PackedBoard) error {
	if int(packed[packedFilesOffset]) != geo.Files || int(packed[packedRanksOffset]) != geo.Ranks {
		return fmt.Errorf("packed board is %vx%v, geometry is %v",
			packed[packedFilesOffset], packed[packedRanksOffset], geo)
	}
	var side = Color(packed[packedSideOffset])
	if side != Black && side != White {
		return fmt.Errorf("bad side to move %v", side)
	}
	var board = make([]Piece, geo.SquareCount())
	for sq := range board {
		board[sq] = Piece(packed[sq/2]>>(4*(sq%2))) & 15
	}
	var hand [COLOR_NB][KIND_NB]int
	for c := Black; c <= White; c++ {
		for k := Pawn; k <= Rook; k++ {
			hand[c][k] = int(packed[packedHandOffset+int(c)*int(Rook)+int(k-Pawn)])
		}
	}
	return p.setup(geo, board, hand, side)
}

func NewPositionFromPacked(geo *Geometry, packed *PackedBoard) (*Position, error) {
	var p = &Position{}
	var err = p.Unpack(geo, packed)
	if err != nil {
		return nil, err
	}
	return p, nil
}
