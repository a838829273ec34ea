package lib

import (
	"strconv"
	"strings"
	"time"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
)

// ECGRecordRow CSV1行から得られるレコード情報。
// 誘導波形は列に含まれないため、別経路で与えられない場合は空となる。
type ECGRecordRow struct {
	PatientId    string
	Timestamp    time.Time
	HeartRate    int
	PrInterval   int
	QrsDuration  int
	QtInterval   int
	AutoAnalysis string
}

// ECGCSVResult 取り込み結果。SkippedLinesはフィールド数不足などで無視した行数。
type ECGCSVResult struct {
	Rows         []*ECGRecordRow
	SkippedLines int
}

// 先頭6列のみを解釈し、残りは予約列として読み飛ばす。
const (
	csvFieldPatientId = iota
	csvFieldHeartRate
	csvFieldPrInterval
	csvFieldQrsDuration
	csvFieldQtInterval
	csvFieldAutoAnalysis
)

// ParseECGCSV ECGレコードのCSVを解析する。
// 先頭行はヘッダとして読み飛ばし、列数が不足する行はエラーとせずスキップして数える。
func ParseECGCSV(content string, now time.Time) *ECGCSVResult {
	lines := strings.Split(content, "\n")

	result := &ECGCSVResult{
		Rows: []*ECGRecordRow{},
	}

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if len(line) == 0 {
			continue
		}

		values := strings.Split(line, ",")

		if len(values) < C.IngestFieldCount {
			result.SkippedLines++
			continue
		}

		row := &ECGRecordRow{
			PatientId:    strings.TrimSpace(values[csvFieldPatientId]),
			Timestamp:    now,
			HeartRate:    intField(values, csvFieldHeartRate, C.DefaultHeartRate),
			PrInterval:   intField(values, csvFieldPrInterval, C.DefaultPRInterval),
			QrsDuration:  intField(values, csvFieldQrsDuration, C.DefaultQRSDuration),
			QtInterval:   intField(values, csvFieldQtInterval, C.DefaultQTInterval),
			AutoAnalysis: strings.TrimSpace(values[csvFieldAutoAnalysis]),
		}

		if len(row.PatientId) == 0 {
			row.PatientId = defaultPatientId(i)
		}
		if len(row.AutoAnalysis) == 0 {
			row.AutoAnalysis = C.DefaultAutoAnalysis
		}

		result.Rows = append(result.Rows, row)
	}

	return result
}

func intField(values []string, index int, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(values[index]))

	if err != nil {
		return def
	}

	return v
}

func defaultPatientId(line int) string {
	id := strconv.Itoa(line)

	for len(id) < 3 {
		id = "0" + id
	}

	return "P" + id
}
