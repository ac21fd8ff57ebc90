package repository

import (
	"context"

	"ecotrack/internal/domain/entity"
)

type EcoActionRepository interface {
	Create(ctx context.Context, action *entity.EcoAction) error
	GetByID(ctx context.Context, id string) (*entity.EcoAction, error)
	// UpdateIfPending writes the reviewed submission only when the stored
	// copy is still pending, failing with CONFLICT otherwise. This is the
	// claim step of the review workflow: at most one reviewer wins.
	UpdateIfPending(ctx context.Context, action *entity.EcoAction) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.EcoAction, int64, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.EcoAction, int64, error)
}
