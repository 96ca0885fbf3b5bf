// Package models defines server-side data models persisted in the database.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/studynotes/internal/common"
)

// History is one processed upload: the summary and study questions produced
// for a document, owned by a user.
type History struct {
	ID     string
	UserID string
	// Email is the owner's address at upload time, kept for display.
	Email      string
	Branch     string
	Subject    string
	Filename   string
	StorageKey string
	Summary    string
	Questions  []string
	CreatedAt  time.Time
}

// JoinQuestions flattens questions into the stored column format.
func JoinQuestions(q []string) string {
	return strings.Join(q, common.QuestionDelimiter)
}

// SplitQuestions reverses JoinQuestions. An empty column yields no questions.
func SplitQuestions(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, common.QuestionDelimiter)
}
