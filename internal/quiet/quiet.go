package quiet

import (
	"github.com/ChizhovVadim/kpptlearn/pkg/common"
)

const (
	maxHeight = 64
	MateValue = 30000
	Infinity  = MateValue + 1
)

type Evaluator interface {
	Evaluate(p *common.Position) int
}

// QuietService is a capture-only search that also returns its principal
// variation. It is not safe for concurrent use.
type QuietService struct {
	evaluator Evaluator
	stack     [maxHeight + 1]struct {
		buffer []common.Move
		keys   []int
		pv     [maxHeight + 1]common.Move
		pvLen  int
	}
}

func NewQuietService(evaluator Evaluator) *QuietService {
	return &QuietService{
		evaluator: evaluator,
	}
}

// Search returns the value of p for the side to move and the moves leading
// to the leaf that produced it. p is restored before returning; the
// returned slice is valid until the next call.
func (qs *QuietService) Search(p *common.Position) (int, []common.Move) {
	var value = qs.qs(p, -Infinity, Infinity, 0)
	var st = &qs.stack[0]
	return value, st.pv[:st.pvLen]
}

func (qs *QuietService) qs(p *common.Position, alpha, beta, height int) int {
	var st = &qs.stack[height]
	st.pvLen = 0
	var inCheck = p.IsCheck()
	if height >= maxHeight {
		return qs.evaluator.Evaluate(p)
	}
	var best = -Infinity
	if !inCheck {
		best = qs.evaluator.Evaluate(p)
		if best > alpha {
			alpha = best
			if alpha >= beta {
				return best
			}
		}
	}
	var ml []common.Move
	if inCheck {
		ml = p.GenerateMoves(st.buffer[:0])
	} else {
		ml = p.GenerateCaptures(st.buffer[:0])
	}
	st.buffer = ml
	if inCheck && len(ml) == 0 {
		return -MateValue + height
	}
	st.keys = evalMoves(p, ml, st.keys[:0])
	var keys = st.keys
	for i := range ml {
		var move = nextMove(ml, keys, i)
		p.MakeMove(move)
		var score = -qs.qs(p, -beta, -alpha, height+1)
		p.UnmakeMove()
		if score > best {
			best = score
			if score > alpha {
				alpha = score
				var child = &qs.stack[height+1]
				st.pv[0] = move
				copy(st.pv[1:], child.pv[:child.pvLen])
				st.pvLen = child.pvLen + 1
				if alpha >= beta {
					break
				}
			}
		}
	}
	return best
}

var sortPieceValues = [common.KIND_NB]int{
	common.Pawn: 1, common.Silver: 2, common.Gold: 3, common.Bishop: 4, common.Rook: 5, common.King: 6}

func mvvlva(p *common.Position, move common.Move) int {
	if move.IsDrop() {
		return 0
	}
	return 8*sortPieceValues[p.PieceOn(move.To()).Kind()] -
		sortPieceValues[p.PieceOn(move.From()).Kind()]
}

func evalMoves(p *common.Position, ml []common.Move, keys []int) []int {
	for _, move := range ml {
		keys = append(keys, mvvlva(p, move))
	}
	return keys
}

func nextMove(ml []common.Move, keys []int, index int) common.Move {
	var bestIndex = index
	for i := bestIndex + 1; i < len(ml); i++ {
		if keys[i] > keys[bestIndex] {
			bestIndex = i
		}
	}
	if bestIndex != index {
		ml[index], ml[bestIndex] = ml[bestIndex], ml[index]
		keys[index], keys[bestIndex] = keys[bestIndex], keys[index]
	}
	return ml[index]
}
