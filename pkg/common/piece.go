package common

type Color int

const (
	Black Color = iota
	White
	COLOR_NB
)

func (c Color) Opposite() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == Black {
		return "b"
	}
	return "w"
}

type Kind int

const (
	Empty Kind = iota
	Pawn
	Silver
	Gold
	Bishop
	Rook
	King
	KIND_NB
)

// Piece is a colored piece on a board square: kind in the low 3 bits,
// color in bit 3.
type Piece uint8

const NoPiece Piece = 0

func MakePiece(c Color, k Kind) Piece {
	return Piece(k) | Piece(c)<<3
}

func (p Piece) Kind() Kind {
	return Kind(p & 7)
}

func (p Piece) Color() Color {
	return Color(p >> 3)
}

// BonaPiece is a code of the piece-on-square alphabet. Codes are relative
// to a perspective: in the black list Black means "friend".
type BonaPiece int

const BonaPieceZero BonaPiece = 0

var PieceValues = [KIND_NB]int{
	Pawn:   90,
	Silver: 495,
	Gold:   540,
	Bishop: 855,
	Rook:   990,
}

type delta struct {
	file, rank int
}

// steps are given for black; white moves mirror the rank direction.
var pieceSteps = [KIND_NB][]delta{
	Pawn:   {{0, -1}},
	Silver: {{0, -1}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}},
	Gold:   {{0, -1}, {-1, -1}, {1, -1}, {-1, 0}, {1, 0}, {0, 1}},
	King:   {{0, -1}, {-1, -1}, {1, -1}, {-1, 0}, {1, 0}, {0, 1}, {-1, 1}, {1, 1}},
}

var pieceSlides = [KIND_NB][]delta{
	Bishop: {{-1, -1}, {1, -1}, {-1, 1}, {1, 1}},
	Rook:   {{0, -1}, {0, 1}, {-1, 0}, {1, 0}},
}

func stepFor(c Color, d delta) delta {
	if c == White {
		d.rank = -d.rank
	}
	return d
}
