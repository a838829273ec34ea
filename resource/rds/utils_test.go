package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUtils_IncrementalPlaceholder(t *testing.T) {
	holder := &incrementalPlaceholder{}

	assert.Equal(t, "n.annotator_id = $1", holder.Generate("n.annotator_id ="))
	assert.Equal(t, "n.status = $2", holder.Generate("n.status ="))
	assert.Equal(t, 3, holder.GetIndex())
}

func TestUtils_AndQueryWhere(t *testing.T) {
	holder := &incrementalPlaceholder{}

	conditions := andQuery().
		add(holder.Generate("n.annotator_id ="), 7).
		add(holder.Generate("n.status ="), "confirmed")

	clause, params := conditions.where()

	assert.Equal(t, "WHERE (n.annotator_id = $1) AND (n.status = $2)", clause)
	assert.Equal(t, []interface{}{7, "confirmed"}, params.values)
}

func TestUtils_AndQueryWhere_Empty(t *testing.T) {
	clause, params := andQuery().where()

	assert.Equal(t, "", clause)
	assert.Equal(t, 0, len(params.values))
}

func TestUtils_AndQueryWhere_Single(t *testing.T) {
	holder := &incrementalPlaceholder{}

	clause, params := andQuery().add(holder.Generate("n.annotator_id ="), 7).where()

	assert.Equal(t, "WHERE n.annotator_id = $1", clause)
	assert.Equal(t, []interface{}{7}, params.values)
}
