package common

import (
	"strings"
	"unicode"
)

func Max(l, r int) int {
	if l > r {
		return l
	}
	return r
}

func let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}

const pieceLetters = "psgbrk"

func parsePiece(ch rune) Piece {
	var side = let(unicode.IsUpper(ch), int(Black), int(White))
	var i = strings.IndexRune(pieceLetters, unicode.ToLower(ch))
	if i < 0 {
		return NoPiece
	}
	return MakePiece(Color(side), Kind(i+int(Pawn)))
}

func pieceLetter(p Piece) byte {
	var ch = pieceLetters[p.Kind()-Pawn]
	if p.Color() == Black {
		ch -= 'a' - 'A'
	}
	return ch
}
