// Package histories persists processed uploads.
package histories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studynotes/internal/common"
	"github.com/dmitrijs2005/studynotes/internal/dbx"
	"github.com/dmitrijs2005/studynotes/internal/server/models"
	"github.com/google/uuid"
)

const selectColumns = `SELECT id, user_id, email, branch, subject, filename, storage_key, summary, questions, created_at
		FROM histories`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, h *models.History) (*models.History, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}

	query :=
		`INSERT INTO histories (id, user_id, email, branch, subject, filename, storage_key, summary, questions, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.Email, h.Branch, h.Subject, h.Filename, h.StorageKey,
		h.Summary, models.JoinQuestions(h.Questions), h.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return h, nil
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID string) ([]*models.History, error) {
	query := selectColumns + `
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.History, 0)
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) LatestByUser(ctx context.Context, userID string) (*models.History, error) {
	query := selectColumns + `
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	h, err := scanHistory(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return h, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHistory(s scanner) (*models.History, error) {
	var (
		h         models.History
		questions string
	)
	err := s.Scan(&h.ID, &h.UserID, &h.Email, &h.Branch, &h.Subject, &h.Filename,
		&h.StorageKey, &h.Summary, &questions, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	h.Questions = models.SplitQuestions(questions)
	return &h, nil
}
