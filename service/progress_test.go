package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
)

// 不正な状態での絞り込みは検索を実行せずに拒否される。
func TestProgress_UserActivities_InvalidStatus(t *testing.T) {
	service := &ProgressService{nil, nil}

	status := C.AnnotationStatus("draft")

	_, err := service.UserActivities(1, &status)

	if assert.Error(t, err) {
		e, ok := err.(*C.BadRequestError)
		assert.True(t, ok)
		assert.Equal(t, "invalid_status", e.Code())
	}
}
