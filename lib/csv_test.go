package lib

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
)

func TestCSV_Parse(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	content := strings.Join([]string{
		"patientId,heartRate,prInterval,qrsDuration,qtInterval,autoAnalysis,r1,r2,r3,r4,r5,r6",
		"P001,72,155,88,370,Normal sinus rhythm,0,0,0,0,0,0",
		"P002,broken",
		"P003,110,170,95,400,Sinus tachycardia,0,0,0,0,0,0",
		"P004",
		",,,,,,0,0,0,0,0,0",
		"",
	}, "\n")

	result := ParseECGCSV(content, now)

	// 列数の不足する2行はスキップされ、空行は数えない。
	assert.Equal(t, 3, len(result.Rows))
	assert.Equal(t, 2, result.SkippedLines)

	assert.Equal(t, "P001", result.Rows[0].PatientId)
	assert.Equal(t, 72, result.Rows[0].HeartRate)
	assert.Equal(t, 155, result.Rows[0].PrInterval)
	assert.Equal(t, 88, result.Rows[0].QrsDuration)
	assert.Equal(t, 370, result.Rows[0].QtInterval)
	assert.Equal(t, "Normal sinus rhythm", result.Rows[0].AutoAnalysis)
	assert.Equal(t, now, result.Rows[0].Timestamp)

	assert.Equal(t, "P003", result.Rows[1].PatientId)
	assert.Equal(t, "Sinus tachycardia", result.Rows[1].AutoAnalysis)

	// 空のフィールドは既定値で補完される。患者IDは行番号から振られる。
	blank := result.Rows[2]
	assert.Equal(t, "P005", blank.PatientId)
	assert.Equal(t, C.DefaultHeartRate, blank.HeartRate)
	assert.Equal(t, C.DefaultPRInterval, blank.PrInterval)
	assert.Equal(t, C.DefaultQRSDuration, blank.QrsDuration)
	assert.Equal(t, C.DefaultQTInterval, blank.QtInterval)
	assert.Equal(t, C.DefaultAutoAnalysis, blank.AutoAnalysis)
}

func TestCSV_ParseEmpty(t *testing.T) {
	now := time.Now()

	// ヘッダのみ。
	result := ParseECGCSV("patientId,heartRate\n", now)
	assert.Equal(t, 0, len(result.Rows))
	assert.Equal(t, 0, result.SkippedLines)

	// 全行が不正。
	result = ParseECGCSV("header\nbad\nbad,bad\n", now)
	assert.Equal(t, 0, len(result.Rows))
	assert.Equal(t, 2, result.SkippedLines)

	// 空文字列。
	result = ParseECGCSV("", now)
	assert.Equal(t, 0, len(result.Rows))
	assert.Equal(t, 0, result.SkippedLines)
}
