package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAnnotator))
	assert.True(t, IsValidRole(RoleExpert))
	assert.True(t, IsValidRole(RoleAdmin))

	assert.False(t, IsValidRole(Role("superuser")))
	assert.False(t, IsValidRole(Role("")))
}

func Test_CanReview(t *testing.T) {
	assert.False(t, CanReview(RoleAnnotator))
	assert.True(t, CanReview(RoleExpert))
	assert.True(t, CanReview(RoleAdmin))

	// 未知の役割にレビュー権限はない。
	assert.False(t, CanReview(Role("superuser")))
}

func Test_IsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusConfirmed))
	assert.True(t, IsValidStatus(StatusUnsure))
	assert.True(t, IsValidStatus(StatusReviewed))

	assert.False(t, IsValidStatus(AnnotationStatus("draft")))
	assert.False(t, IsValidStatus(AnnotationStatus("")))
}

func Test_IsAnnotatableStatus(t *testing.T) {
	assert.True(t, IsAnnotatableStatus(StatusConfirmed))
	assert.True(t, IsAnnotatableStatus(StatusUnsure))

	// reviewedはレビュー操作のみが設定でき、保存時には指定できない。
	assert.False(t, IsAnnotatableStatus(StatusReviewed))
	assert.False(t, IsAnnotatableStatus(AnnotationStatus("draft")))
}
