package tuner

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const lossFileName = "loss.csv"

var lossColumns = []string{
	"rmse_value",
	"rmse_winning_rate",
	"cross_entropy",
	"cross_entropy_eval",
	"cross_entropy_win",
	"entropy_eval",
	"kld_eval",
	"norm",
	"rmse_win_or_lose",
	"mismatch_rate",
}

// lossLog appends one csv row per mini-batch.
type lossLog struct {
	file *os.File
	w    *csv.Writer
}

func createLossLog(folder string) (*lossLog, error) {
	var err = os.MkdirAll(folder, os.ModePerm)
	if err != nil {
		return nil, err
	}
	file, err := os.Create(filepath.Join(folder, lossFileName))
	if err != nil {
		return nil, err
	}
	var header = []string{"positions", "time", "learning_rate"}
	for _, column := range lossColumns {
		header = append(header, "train_"+column, "test_"+column)
	}
	var l = &lossLog{file: file, w: csv.NewWriter(file)}
	err = l.writeRow(header)
	if err != nil {
		file.Close()
		return nil, err
	}
	return l, nil
}

func (l *lossLog) Write(positions int64, t time.Time, learningRate float64, train, test LossSummary) error {
	var row = []string{
		strconv.FormatInt(positions, 10),
		t.Format(time.RFC3339),
		formatFloat(learningRate),
	}
	var trainValues, testValues = lossValues(train), lossValues(test)
	for i := range trainValues {
		row = append(row, formatFloat(trainValues[i]), formatFloat(testValues[i]))
	}
	return l.writeRow(row)
}

func (l *lossLog) writeRow(row []string) error {
	var err = l.w.Write(row)
	if err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

func (l *lossLog) Close() error {
	l.w.Flush()
	var err = l.w.Error()
	var closeErr = l.file.Close()
	if err != nil {
		return err
	}
	return closeErr
}

func lossValues(s LossSummary) []float64 {
	return []float64{
		s.RMSEValue,
		s.RMSEWinningRate,
		s.CrossEntropy,
		s.CrossEntropyEval,
		s.CrossEntropyWin,
		s.EntropyEval,
		s.KLDEval,
		s.Norm,
		s.RMSEWinOrLose,
		s.MismatchRate(),
	}
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
