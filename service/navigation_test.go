package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceNavigation_PreviousNext(t *testing.T) {
	service := &NavigationService{nil, nil}

	// 前は先頭で止まる。
	assert.Equal(t, 0, service.PreviousIndex(0))
	assert.Equal(t, 0, service.PreviousIndex(1))
	assert.Equal(t, 4, service.PreviousIndex(5))

	// 次は末尾で止まる。
	assert.Equal(t, 1, service.NextIndex(0, 3))
	assert.Equal(t, 2, service.NextIndex(1, 3))
	assert.Equal(t, 2, service.NextIndex(2, 3))
	assert.Equal(t, 0, service.NextIndex(0, 0))
}
