package common

import (
	"errors"
	"fmt"
)

// EvalState is an evaluator-owned accumulator cached per ply.
type EvalState struct {
	Sum      [3][2]int64
	Computed bool
}

// ChangedPiece is one piece-list slot changed by the last move.
type ChangedPiece struct {
	Slot         int
	OldFb, OldFw BonaPiece
	NewFb, NewFw BonaPiece
}

type DirtyPiece struct {
	Pieces    [2]ChangedPiece
	Count     int
	KingMoved bool
}

type stateInfo struct {
	move     Move
	captured Piece
	dirty    DirtyPiece
	eval     EvalState
}

// Position is a mutable board with make/unmake and the two piece lists
// (black's and white's perspective) used by the KPPT evaluator.
type Position struct {
	geo      *Geometry
	board    []Piece
	hand     [COLOR_NB][KIND_NB]int
	side     Color
	kings    [COLOR_NB]int
	material int

	listFb   []BonaPiece
	listFw   []BonaPiece
	slotAt   []int
	handSlot [COLOR_NB][KIND_NB][]int

	states []stateInfo
}

var (
	errKingCount     = errors.New("each side needs exactly one king")
	errOpponentCheck = errors.New("side not to move is in check")
)

// setup rebuilds p from a board array, reusing p's buffers.
func (p *Position) setup(geo *Geometry, board []Piece, hand [COLOR_NB][KIND_NB]int, side Color) error {
	var n = geo.SquareCount()
	if len(board) != n {
		return fmt.Errorf("board has %v squares, geometry %v needs %v", len(board), geo, n)
	}
	p.geo = geo
	p.board = append(p.board[:0], board...)
	p.hand = hand
	p.side = side
	p.material = 0
	p.kings = [COLOR_NB]int{SquareNone, SquareNone}
	p.listFb = p.listFb[:0]
	p.listFw = p.listFw[:0]
	p.slotAt = p.slotAt[:0]
	for c := range p.handSlot {
		for k := range p.handSlot[c] {
			p.handSlot[c][k] = p.handSlot[c][k][:0]
		}
	}

	var counts [KIND_NB]int
	for sq := 0; sq < n; sq++ {
		p.slotAt = append(p.slotAt, -1)
		var piece = board[sq]
		if piece == NoPiece {
			continue
		}
		var c, k = piece.Color(), piece.Kind()
		if k == Empty || k >= KIND_NB || c >= COLOR_NB {
			return fmt.Errorf("bad piece %v on %v", piece, geo.SquareName(sq))
		}
		if k == King {
			if p.kings[c] != SquareNone {
				return errKingCount
			}
			p.kings[c] = sq
			continue
		}
		counts[k]++
		p.slotAt[sq] = p.addSlot(geo.BoardPiece(c, k, sq))
		p.material += let(c == Black, PieceValues[k], -PieceValues[k])
	}
	if p.kings[Black] == SquareNone || p.kings[White] == SquareNone {
		return errKingCount
	}
	for c := Black; c <= White; c++ {
		for k := Pawn; k <= Rook; k++ {
			for i := 1; i <= hand[c][k]; i++ {
				p.handSlot[c][k] = append(p.handSlot[c][k], p.addSlot(geo.HandPiece(c, k, i)))
			}
			counts[k] += hand[c][k]
			p.material += let(c == Black, 1, -1) * hand[c][k] * PieceValues[k]
		}
	}
	for k := Pawn; k <= Rook; k++ {
		if counts[k] > geo.HandMax[k] {
			return fmt.Errorf("too many pieces of kind %v: %v > %v", k, counts[k], geo.HandMax[k])
		}
	}
	p.states = append(p.states[:0], stateInfo{})
	if p.attacked(p.kings[side.Opposite()], side) {
		return errOpponentCheck
	}
	return nil
}

func (p *Position) addSlot(fb BonaPiece) int {
	p.listFb = append(p.listFb, fb)
	p.listFw = append(p.listFw, BonaPiece(p.geo.InversePiece(int(fb))))
	return len(p.listFb) - 1
}

func (p *Position) setSlot(slot int, fb BonaPiece) {
	p.listFb[slot] = fb
	p.listFw[slot] = BonaPiece(p.geo.InversePiece(int(fb)))
}

func (p *Position) markDirty(st *stateInfo, slot int, fb BonaPiece) {
	st.dirty.Pieces[st.dirty.Count] = ChangedPiece{
		Slot:  slot,
		OldFb: p.listFb[slot],
		OldFw: p.listFw[slot],
	}
	p.setSlot(slot, fb)
	st.dirty.Pieces[st.dirty.Count].NewFb = p.listFb[slot]
	st.dirty.Pieces[st.dirty.Count].NewFw = p.listFw[slot]
	st.dirty.Count++
}

func (p *Position) Geometry() *Geometry {
	return p.geo
}

func (p *Position) SideToMove() Color {
	return p.side
}

func (p *Position) KingSquare(c Color) int {
	return p.kings[c]
}

func (p *Position) PieceOn(sq int) Piece {
	return p.board[sq]
}

func (p *Position) HandCount(c Color, k Kind) int {
	return p.hand[c][k]
}

// ListFb returns the piece codes seen from black. The slice is owned by p.
func (p *Position) ListFb() []BonaPiece {
	return p.listFb
}

// ListFw returns the piece codes seen from white, squares inverted.
func (p *Position) ListFw() []BonaPiece {
	return p.listFw
}

// Material is the material balance from the side to move.
func (p *Position) Material() int {
	if p.side == Black {
		return p.material
	}
	return -p.material
}

// Ply is the number of moves made since the position was set up.
func (p *Position) Ply() int {
	return len(p.states) - 1
}

func (p *Position) LastMove() Move {
	return p.states[len(p.states)-1].move
}

// Dirty describes the piece-list changes made by the last move.
func (p *Position) Dirty() DirtyPiece {
	return p.states[len(p.states)-1].dirty
}

func (p *Position) EvalState() *EvalState {
	return &p.states[len(p.states)-1].eval
}

// PrevEvalState is nil at the root.
func (p *Position) PrevEvalState() *EvalState {
	if len(p.states) < 2 {
		return nil
	}
	return &p.states[len(p.states)-2].eval
}

func (p *Position) MakeMove(m Move) {
	p.states = append(p.states, stateInfo{move: m})
	var st = &p.states[len(p.states)-1]
	var us = p.side
	var to = m.To()
	if m.IsDrop() {
		var k = m.DropKind()
		var n = p.hand[us][k]
		var slot = p.handSlot[us][k][n-1]
		p.handSlot[us][k] = p.handSlot[us][k][:n-1]
		p.hand[us][k]--
		p.board[to] = MakePiece(us, k)
		p.slotAt[to] = slot
		p.markDirty(st, slot, p.geo.BoardPiece(us, k, to))
	} else {
		var from = m.From()
		var moved = p.board[from]
		var captured = p.board[to]
		st.captured = captured
		if captured != NoPiece {
			var k = captured.Kind()
			var slot = p.slotAt[to]
			p.hand[us][k]++
			p.handSlot[us][k] = append(p.handSlot[us][k], slot)
			p.markDirty(st, slot, p.geo.HandPiece(us, k, p.hand[us][k]))
			p.material += let(us == Black, 2*PieceValues[k], -2*PieceValues[k])
		}
		p.board[from] = NoPiece
		p.board[to] = moved
		if moved.Kind() == King {
			p.kings[us] = to
			p.slotAt[to] = -1
			st.dirty.KingMoved = true
		} else {
			var slot = p.slotAt[from]
			p.slotAt[from] = -1
			p.slotAt[to] = slot
			p.markDirty(st, slot, p.geo.BoardPiece(us, moved.Kind(), to))
		}
	}
	p.side = us.Opposite()
}

func (p *Position) UnmakeMove() {
	var st = &p.states[len(p.states)-1]
	var m = st.move
	var us = p.side.Opposite()
	var to = m.To()
	if m.IsDrop() {
		var k = m.DropKind()
		var slot = p.slotAt[to]
		p.board[to] = NoPiece
		p.slotAt[to] = -1
		p.hand[us][k]++
		p.handSlot[us][k] = append(p.handSlot[us][k], slot)
		p.setSlot(slot, p.geo.HandPiece(us, k, p.hand[us][k]))
	} else {
		var from = m.From()
		var moved = p.board[to]
		p.board[from] = moved
		if moved.Kind() == King {
			p.kings[us] = from
		} else {
			var slot = p.slotAt[to]
			p.slotAt[from] = slot
			p.setSlot(slot, p.geo.BoardPiece(us, moved.Kind(), from))
		}
		p.board[to] = st.captured
		p.slotAt[to] = -1
		if st.captured != NoPiece {
			var k = st.captured.Kind()
			var n = p.hand[us][k]
			var slot = p.handSlot[us][k][n-1]
			p.handSlot[us][k] = p.handSlot[us][k][:n-1]
			p.hand[us][k]--
			p.slotAt[to] = slot
			p.setSlot(slot, p.geo.BoardPiece(us.Opposite(), k, to))
			p.material -= let(us == Black, 2*PieceValues[k], -2*PieceValues[k])
		}
	}
	p.side = us
	p.states = p.states[:len(p.states)-1]
}

// Mirror reflects the position left-right. Move history is discarded.
func (p *Position) Mirror() error {
	var board = make([]Piece, len(p.board))
	for sq, piece := range p.board {
		board[p.geo.MirrorSquare(sq)] = piece
	}
	return p.setup(p.geo, board, p.hand, p.side)
}
