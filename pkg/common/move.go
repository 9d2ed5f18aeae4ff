package common

import (
	"fmt"
	"strings"
)

// Move packs the destination in bits 0-6, the origin (or the dropped kind)
// in bits 7-13 and the drop flag in bit 14.
type Move uint16

const MoveNone Move = 0

const MaxMoves = 1024

func MakeMove(from, to int) Move {
	return Move(to | from<<7)
}

func MakeDrop(k Kind, to int) Move {
	return Move(to | int(k)<<7 | 1<<14)
}

func (m Move) To() int {
	return int(m & 127)
}

func (m Move) From() int {
	return int(m>>7) & 127
}

func (m Move) IsDrop() bool {
	return m&(1<<14) != 0
}

func (m Move) DropKind() Kind {
	return Kind(m.From())
}

func (g *Geometry) MoveString(m Move) string {
	if m == MoveNone {
		return "none"
	}
	if m.IsDrop() {
		return fmt.Sprintf("%c*%v",
			pieceLetter(MakePiece(Black, m.DropKind())), g.SquareName(m.To()))
	}
	return g.SquareName(m.From()) + g.SquareName(m.To())
}

func (g *Geometry) ParseMove(s string) (Move, error) {
	if len(s) == 4 && s[1] == '*' {
		var p = parsePiece(rune(s[0]))
		if p == NoPiece || p.Kind() == King {
			return MoveNone, fmt.Errorf("bad drop %q", s)
		}
		to, err := g.ParseSquare(s[2:])
		if err != nil {
			return MoveNone, err
		}
		return MakeDrop(p.Kind(), to), nil
	}
	if len(s) != 4 {
		return MoveNone, fmt.Errorf("bad move %q", s)
	}
	from, err := g.ParseSquare(s[:2])
	if err != nil {
		return MoveNone, err
	}
	to, err := g.ParseSquare(s[2:])
	if err != nil {
		return MoveNone, err
	}
	return MakeMove(from, to), nil
}

func (g *Geometry) LineString(line []Move) string {
	var sb = &strings.Builder{}
	for i, m := range line {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(g.MoveString(m))
	}
	return sb.String()
}
