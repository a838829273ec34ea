package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(0, 0))
	assert.Equal(t, 0.0, CompletionRate(3, 0))
	assert.Equal(t, 0.0, CompletionRate(0, 10))
	assert.Equal(t, 50.0, CompletionRate(1, 2))
	assert.Equal(t, 100.0, CompletionRate(10, 10))

	// 小数第2位まで丸める。
	assert.Equal(t, 66.67, CompletionRate(2, 3))
	assert.Equal(t, 33.33, CompletionRate(1, 3))
}

func TestResumePosition(t *testing.T) {
	ids := []int{10, 20, 30}

	// 途中まで保存済み。
	index, done := ResumePosition(ids, 10)
	assert.Equal(t, 1, index)
	assert.False(t, done)

	index, done = ResumePosition(ids, 20)
	assert.Equal(t, 2, index)
	assert.False(t, done)

	// 最終レコード保存後は先頭に巻き戻る。
	index, done = ResumePosition(ids, 30)
	assert.Equal(t, 0, index)
	assert.True(t, done)

	// 見つからない場合は先頭から。
	index, done = ResumePosition(ids, 99)
	assert.Equal(t, 0, index)
	assert.False(t, done)

	// 空の列。
	index, done = ResumePosition([]int{}, 10)
	assert.Equal(t, 0, index)
	assert.False(t, done)
}
