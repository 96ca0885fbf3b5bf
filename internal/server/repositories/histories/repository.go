package histories

import (
	"context"

	"github.com/dmitrijs2005/studynotes/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, h *models.History) (*models.History, error)
	// ListByUser returns the user's records, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.History, error)
	// LatestByUser returns common.ErrorNotFound when the user has no records.
	LatestByUser(ctx context.Context, userID string) (*models.History, error)
}
