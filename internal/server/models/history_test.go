package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinSplitQuestions(t *testing.T) {
	q := []string{"Explain in detail: a?", "Explain in detail: b?"}
	joined := JoinQuestions(q)

	assert.Equal(t, "Explain in detail: a?||Explain in detail: b?", joined)
	assert.Equal(t, q, SplitQuestions(joined))
}

func TestSplitQuestions_Empty(t *testing.T) {
	assert.Empty(t, SplitQuestions(""))
	assert.NotNil(t, SplitQuestions(""))
	assert.Equal(t, "", JoinQuestions(nil))
}
