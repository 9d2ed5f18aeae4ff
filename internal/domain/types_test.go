package domain

import "testing"

func TestRecordEncoding(t *testing.T) {
	var tests = []Record{
		{Score: 500, Move: 1234, GamePly: 40, GameResult: 1},
		{Score: -300, GamePly: 65535, GameResult: -1, LastPosition: true},
		{Score: -ScoreLimit, GameResult: 0},
	}
	for i := range tests {
		tests[i].Board[0] = byte(i + 1)
		tests[i].Board[63] = 9
	}
	var buf [RecordSize]byte
	for _, test := range tests {
		test.MarshalTo(buf[:])
		var r Record
		r.UnmarshalFrom(buf[:])
		if r != test {
			t.Error(test, r)
		}
	}
	if RecordSize != 72 {
		t.Error(RecordSize)
	}
}
