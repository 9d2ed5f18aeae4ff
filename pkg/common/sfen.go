package common

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// NewPositionFromSFEN parses "board side hands [ply]". Board rows go from
// the top rank down; each row lists files from the highest to file 1.
func NewPositionFromSFEN(geo *Geometry, sfen string) (*Position, error) {
	var tokens = strings.Fields(sfen)
	if len(tokens) < 3 {
		return nil, fmt.Errorf("bad sfen %q", sfen)
	}
	var rows = strings.Split(tokens[0], "/")
	if len(rows) != geo.Ranks {
		return nil, fmt.Errorf("bad sfen rank count %q", sfen)
	}
	var board = make([]Piece, geo.SquareCount())
	for rank, row := range rows {
		var file = geo.Files - 1
		for _, ch := range row {
			if unicode.IsDigit(ch) {
				file -= int(ch - '0')
				continue
			}
			var piece = parsePiece(ch)
			if piece == NoPiece || file < 0 {
				return nil, fmt.Errorf("bad sfen row %q", row)
			}
			board[geo.Square(file, rank)] = piece
			file--
		}
		if file != -1 {
			return nil, fmt.Errorf("bad sfen row width %q", row)
		}
	}
	var side Color
	switch tokens[1] {
	case "b":
		side = Black
	case "w":
		side = White
	default:
		return nil, fmt.Errorf("bad sfen side %q", tokens[1])
	}
	var hand [COLOR_NB][KIND_NB]int
	if tokens[2] != "-" {
		var count = 0
		for _, ch := range tokens[2] {
			if unicode.IsDigit(ch) {
				count = count*10 + int(ch-'0')
				continue
			}
			var piece = parsePiece(ch)
			if piece == NoPiece || piece.Kind() == King {
				return nil, fmt.Errorf("bad sfen hand %q", tokens[2])
			}
			hand[piece.Color()][piece.Kind()] += Max(count, 1)
			count = 0
		}
	}
	var p = &Position{}
	var err = p.setup(geo, board, hand, side)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Position) String() string {
	var g = p.geo
	var sb = &strings.Builder{}
	for rank := 0; rank < g.Ranks; rank++ {
		if rank > 0 {
			sb.WriteString("/")
		}
		var empty = 0
		for file := g.Files - 1; file >= 0; file-- {
			var piece = p.board[g.Square(file, rank)]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pieceLetter(piece))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	sb.WriteString(" ")
	sb.WriteString(p.side.String())
	sb.WriteString(" ")
	var hasHand = false
	for c := Black; c <= White; c++ {
		for k := Rook; k >= Pawn; k-- {
			var n = p.hand[c][k]
			if n == 0 {
				continue
			}
			hasHand = true
			if n > 1 {
				sb.WriteString(strconv.Itoa(n))
			}
			sb.WriteByte(pieceLetter(MakePiece(c, k)))
		}
	}
	if !hasHand {
		sb.WriteString("-")
	}
	return sb.String()
}
