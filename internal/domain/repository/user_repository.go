package repository

import (
	"context"

	"ecotrack/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	FindByField(ctx context.Context, field, value string, limit, offset int) ([]*entity.User, int64, error)

	// UpdateProgress runs apply against the user's counters and earned
	// badges inside a single atomic read-modify-write transaction. apply
	// may mutate the snapshot it is given; it returns whether the result
	// should be written back. Two concurrent approvals for the same user
	// therefore never both observe a pre-increment counter value.
	UpdateProgress(ctx context.Context, userID string, apply func(*entity.UserProgress) (bool, error)) error
}
