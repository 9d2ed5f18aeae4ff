package domain

import (
	"encoding/binary"

	"github.com/ChizhovVadim/kpptlearn/pkg/common"
)

// RecordSize is the size of an encoded Record:
// packed board, score, move, game ply, game result, last position flag.
const RecordSize = common.PackedBoardSize + 2 + 2 + 2 + 1 + 1

// ScoreLimit bounds recorded scores; larger magnitudes mean mate.
const ScoreLimit = 32000

// Record is one training position. GameResult is 1, 0 or -1 from the
// side to move.
type Record struct {
	Board        common.PackedBoard
	Score        int16
	Move         uint16
	GamePly      uint16
	GameResult   int8
	LastPosition bool
}

func (r *Record) Win() bool {
	return r.GameResult == 1
}

func (r *Record) MarshalTo(buf []byte) {
	_ = buf[RecordSize-1]
	copy(buf, r.Board[:])
	var b = buf[common.PackedBoardSize:]
	binary.LittleEndian.PutUint16(b[0:], uint16(r.Score))
	binary.LittleEndian.PutUint16(b[2:], r.Move)
	binary.LittleEndian.PutUint16(b[4:], r.GamePly)
	b[6] = byte(r.GameResult)
	b[7] = 0
	if r.LastPosition {
		b[7] = 1
	}
}

func (r *Record) UnmarshalFrom(buf []byte) {
	_ = buf[RecordSize-1]
	copy(r.Board[:], buf)
	var b = buf[common.PackedBoardSize:]
	r.Score = int16(binary.LittleEndian.Uint16(b[0:]))
	r.Move = binary.LittleEndian.Uint16(b[2:])
	r.GamePly = binary.LittleEndian.Uint16(b[4:])
	r.GameResult = int8(b[6])
	r.LastPosition = b[7] != 0
}
