package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
)

func leadInput(names []string, leads [][]float64) *RecordIngestInput {
	return &RecordIngestInput{
		PatientId: "P001",
		LeadNames: names,
		Leads:     leads,
	}
}

func assertLeadShapeMismatch(t *testing.T, err error) {
	assert.Error(t, err)

	e, ok := err.(*C.BadRequestError)
	assert.True(t, ok)
	assert.Equal(t, "lead_shape_mismatch", e.Code())
}

func TestDataset_ValidateLeadShapes(t *testing.T) {
	names := []string{"I", "II"}

	valid := []*RecordIngestInput{
		leadInput(names, [][]float64{{0.1, 0.2}, {0.3, 0.4}}),
		leadInput(names, [][]float64{{0.5, 0.6}, {0.7, 0.8}}),
	}
	assert.NoError(t, validateLeadShapes(valid))

	// 波形を持たないレコードのみの一括登録も許容される。
	empty := []*RecordIngestInput{
		leadInput([]string{}, [][]float64{}),
		leadInput([]string{}, [][]float64{}),
	}
	assert.NoError(t, validateLeadShapes(empty))
}

func TestDataset_ValidateLeadShapes_NamesWithoutLeads(t *testing.T) {
	// 12誘導の名前に対して波形が1本しかないレコードは登録前に弾かれる。
	inputs := []*RecordIngestInput{
		leadInput(C.LeadNames, [][]float64{{0.1, 0.2}}),
	}
	assertLeadShapeMismatch(t, validateLeadShapes(inputs))

	// 先頭は整合していても、後続のレコード内の不整合は検出される。
	names := []string{"I", "II"}
	inputs = []*RecordIngestInput{
		leadInput(names, [][]float64{{0.1}, {0.2}}),
		leadInput(names, [][]float64{{0.3}}),
	}
	assertLeadShapeMismatch(t, validateLeadShapes(inputs))
}

func TestDataset_ValidateLeadShapes_AgainstFirst(t *testing.T) {
	inputs := []*RecordIngestInput{
		leadInput([]string{"I", "II"}, [][]float64{{0.1, 0.2}, {0.3, 0.4}}),
		leadInput([]string{"I", "III"}, [][]float64{{0.5, 0.6}, {0.7, 0.8}}),
	}
	assertLeadShapeMismatch(t, validateLeadShapes(inputs))

	inputs = []*RecordIngestInput{
		leadInput([]string{"I", "II"}, [][]float64{{0.1, 0.2}, {0.3, 0.4}}),
		leadInput([]string{"I", "II"}, [][]float64{{0.5, 0.6}, {0.7}}),
	}
	assertLeadShapeMismatch(t, validateLeadShapes(inputs))
}
