package repository

import (
	"context"

	"ecotrack/internal/domain/entity"
)

type BadgeRepository interface {
	Create(ctx context.Context, template *entity.BadgeTemplate) error
	GetByID(ctx context.Context, id string) (*entity.BadgeTemplate, error)
	Update(ctx context.Context, template *entity.BadgeTemplate) error
	Delete(ctx context.Context, id string) error

	// List returns the whole catalog in stable catalog order (creation
	// order). Progress views and selectors depend on this ordering.
	List(ctx context.Context) ([]entity.BadgeTemplate, error)
}
