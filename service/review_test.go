package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

// 権限チェックはレコードの存在確認より先に行われる。DBを与えていないため、
// 検索が先に走る実装ではこのテストはパニックする。
func TestServiceReview_ForbiddenBeforeLookup(t *testing.T) {
	service := &ReviewService{nil, nil}

	annotator := &model.Annotator{Id: 1, Username: "alice", Role: C.RoleAnnotator}

	_, err := service.ViewForRecord(annotator, 1, 1)
	if assert.Error(t, err) {
		assert.IsType(t, &C.ForbiddenError{}, err)
	}

	_, err = service.ViewForRecord(annotator, 999, 999)
	if assert.Error(t, err) {
		assert.IsType(t, &C.ForbiddenError{}, err)
	}
}
