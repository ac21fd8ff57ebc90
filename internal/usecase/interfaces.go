package usecase

import (
	"context"

	"ecotrack/internal/domain/entity"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
}

// Notifier fans level-ups out to connected clients. Delivery is best-effort
// and happens after the approval transaction commits.
type Notifier interface {
	NotifyLevelUps(userID string, levelUps []entity.LevelUp)
}
