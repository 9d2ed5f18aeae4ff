package common

// attacked reports whether side by attacks sq.
func (p *Position) attacked(sq int, by Color) bool {
	var g = p.geo
	var file, rank = g.File(sq), g.Rank(sq)
	for k := Pawn; k <= King; k++ {
		var piece = MakePiece(by, k)
		for _, d := range pieceSteps[k] {
			d = stepFor(by, d)
			var f, r = file - d.file, rank - d.rank
			if g.OnBoard(f, r) && p.board[g.Square(f, r)] == piece {
				return true
			}
		}
		for _, d := range pieceSlides[k] {
			for f, r := file-d.file, rank-d.rank; g.OnBoard(f, r); f, r = f-d.file, r-d.rank {
				var other = p.board[g.Square(f, r)]
				if other == NoPiece {
					continue
				}
				if other == piece {
					return true
				}
				break
			}
		}
	}
	return false
}

func (p *Position) IsCheck() bool {
	return p.attacked(p.kings[p.side], p.side.Opposite())
}

func (p *Position) legal(m Move) bool {
	var us = p.side
	p.MakeMove(m)
	var ok = !p.attacked(p.kings[us], us.Opposite())
	p.UnmakeMove()
	return ok
}

func (p *Position) generateBoardMoves(ml []Move, capturesOnly bool) []Move {
	var g = p.geo
	var us = p.side
	for from, piece := range p.board {
		if piece == NoPiece || piece.Color() != us {
			continue
		}
		var k = piece.Kind()
		var file, rank = g.File(from), g.Rank(from)
		for _, d := range pieceSteps[k] {
			d = stepFor(us, d)
			var f, r = file + d.file, rank + d.rank
			if !g.OnBoard(f, r) {
				continue
			}
			var to = g.Square(f, r)
			var target = p.board[to]
			if target != NoPiece && target.Color() == us {
				continue
			}
			if capturesOnly && target == NoPiece {
				continue
			}
			ml = append(ml, MakeMove(from, to))
		}
		for _, d := range pieceSlides[k] {
			for f, r := file+d.file, rank+d.rank; g.OnBoard(f, r); f, r = f+d.file, r+d.rank {
				var to = g.Square(f, r)
				var target = p.board[to]
				if target == NoPiece {
					if !capturesOnly {
						ml = append(ml, MakeMove(from, to))
					}
					continue
				}
				if target.Color() != us {
					ml = append(ml, MakeMove(from, to))
				}
				break
			}
		}
	}
	return ml
}

func (p *Position) generateDrops(ml []Move) []Move {
	var g = p.geo
	var us = p.side
	for k := Pawn; k <= Rook; k++ {
		if p.hand[us][k] == 0 {
			continue
		}
		for to, piece := range p.board {
			if piece != NoPiece {
				continue
			}
			if k == Pawn && (g.LastRank(us, to) || p.pawnOnFile(us, g.File(to))) {
				continue
			}
			ml = append(ml, MakeDrop(k, to))
		}
	}
	return ml
}

func (p *Position) pawnOnFile(c Color, file int) bool {
	var pawn = MakePiece(c, Pawn)
	for rank := 0; rank < p.geo.Ranks; rank++ {
		if p.board[p.geo.Square(file, rank)] == pawn {
			return true
		}
	}
	return false
}

func (p *Position) filterLegal(ml []Move, start int) []Move {
	var n = start
	for _, m := range ml[start:] {
		if p.legal(m) {
			ml[n] = m
			n++
		}
	}
	return ml[:n]
}

// GenerateMoves appends all legal moves to ml.
func (p *Position) GenerateMoves(ml []Move) []Move {
	var start = len(ml)
	ml = p.generateBoardMoves(ml, false)
	ml = p.generateDrops(ml)
	return p.filterLegal(ml, start)
}

// GenerateCaptures appends all legal captures to ml.
func (p *Position) GenerateCaptures(ml []Move) []Move {
	var start = len(ml)
	ml = p.generateBoardMoves(ml, true)
	return p.filterLegal(ml, start)
}

// IsMated reports whether the side to move has no legal move.
func (p *Position) IsMated() bool {
	var buffer [MaxMoves]Move
	return len(p.GenerateMoves(buffer[:0])) == 0
}

// DeclarationWin reports whether the side to move may claim a win by
// entering king: own king in the enemy camp, not in check, with enough
// own pieces in the camp.
func (p *Position) DeclarationWin() bool {
	var us = p.side
	if !p.geo.InCamp(us, p.kings[us]) || p.IsCheck() {
		return false
	}
	var count int
	for sq, piece := range p.board {
		if piece != NoPiece && piece.Color() == us && piece.Kind() != King &&
			p.geo.InCamp(us, sq) {
			count++
		}
	}
	return count >= p.geo.DeclarationPieces
}
