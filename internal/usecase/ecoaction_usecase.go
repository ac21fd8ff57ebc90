package usecase

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"ecotrack/internal/domain/entity"
	"ecotrack/internal/domain/progress"
	"ecotrack/internal/domain/repository"
	"ecotrack/pkg/errors"
	"ecotrack/pkg/logger"
)

const approveMaxRetries = 3

type EcoActionUseCase struct {
	ecoActionRepo repository.EcoActionRepository
	userRepo      repository.UserRepository
	catalog       *CatalogCache
	calculator    *progress.Calculator
	notifier      Notifier
}

func NewEcoActionUseCase(
	ecoActionRepo repository.EcoActionRepository,
	userRepo repository.UserRepository,
	catalog *CatalogCache,
	notifier Notifier,
) *EcoActionUseCase {
	return &EcoActionUseCase{
		ecoActionRepo: ecoActionRepo,
		userRepo:      userRepo,
		catalog:       catalog,
		calculator:    progress.NewCalculator(nil),
		notifier:      notifier,
	}
}

type SubmitEcoActionInput struct {
	Category    string
	Description string
	PhotoURL    string
}

func (uc *EcoActionUseCase) Submit(ctx context.Context, userID string, input SubmitEcoActionInput) (*entity.EcoAction, error) {
	if _, ok := entity.EcoActionCategories[input.Category]; !ok {
		return nil, errors.BadRequest("Unknown eco-action category", nil)
	}

	action := &entity.EcoAction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Category:    input.Category,
		Description: input.Description,
		PhotoURL:    input.PhotoURL,
		Status:      entity.EcoActionStatusPending,
		SubmittedAt: time.Now(),
	}

	if err := uc.ecoActionRepo.Create(ctx, action); err != nil {
		return nil, errors.Internal("Failed to create eco-action", err)
	}

	return action, nil
}

func (uc *EcoActionUseCase) GetByID(ctx context.Context, id string) (*entity.EcoAction, error) {
	action, err := uc.ecoActionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Eco-action", err)
	}
	return action, nil
}

func (uc *EcoActionUseCase) ListOwn(ctx context.Context, userID string, page, limit int) ([]*entity.EcoAction, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.ecoActionRepo.ListByUser(ctx, userID, limit, offset)
}

func (uc *EcoActionUseCase) ListByStatus(ctx context.Context, status string, page, limit int) ([]*entity.EcoAction, int64, error) {
	if status == "" {
		status = entity.EcoActionStatusPending
	}
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.ecoActionRepo.ListByStatus(ctx, status, limit, offset)
}

// Approve confirms a pending submission. The reviewer first claims the
// submission with a compare-and-swap on its pending status, so the counter
// increment runs at most once per submission even when two reviewers race.
// The increment and the read-resolve-write of the student's earned badges
// then happen in one atomic transaction on the user document; contention
// there is retried from a fresh snapshot, which the engine's idempotence
// makes safe.
func (uc *EcoActionUseCase) Approve(ctx context.Context, reviewerID, actionID string) (*entity.EcoAction, []entity.LevelUp, error) {
	action, err := uc.ecoActionRepo.GetByID(ctx, actionID)
	if err != nil {
		return nil, nil, errors.NotFound("Eco-action", err)
	}
	if action.Status != entity.EcoActionStatusPending {
		return nil, nil, errors.Conflict("Eco-action has already been reviewed")
	}

	counterName, ok := entity.EcoActionCategories[action.Category]
	if !ok {
		return nil, nil, errors.BadRequest("Eco-action has an unknown category", nil)
	}

	catalog, err := uc.catalog.Get(ctx)
	if err != nil {
		return nil, nil, errors.Internal("Failed to load badge catalog", err)
	}

	action.Status = entity.EcoActionStatusApproved
	action.ReviewedBy = reviewerID
	action.ReviewedAt = time.Now()

	if err := uc.ecoActionRepo.UpdateIfPending(ctx, action); err != nil {
		return nil, nil, err
	}

	var levelUps []entity.LevelUp
	operation := func() error {
		levelUps = nil
		err := uc.userRepo.UpdateProgress(ctx, action.UserID, func(p *entity.UserProgress) (bool, error) {
			if p.Counters == nil {
				p.Counters = entity.UserCounters{}
			}
			p.Counters[counterName]++
			p.Counters[entity.CounterTotalActions]++

			views := uc.calculator.ComputeProgress(p.Counters, p.EarnedBadges, catalog)
			updated, ups := progress.ResolveLevelUps(p.EarnedBadges, views, time.Now())
			levelUps = ups
			p.EarnedBadges = updated
			return true, nil
		})
		if err != nil && !errors.Is(err, "CONFLICT") {
			return backoff.Permanent(err)
		}
		return err
	}

	if err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), approveMaxRetries)); err != nil {
		// The claim is already committed; the submission stays approved
		// with its increment missing rather than risking a double count.
		logger.Error("Progress update failed after approval of %s: %v", action.ID, err)
		return nil, nil, errors.Internal("Failed to apply eco-action approval", err)
	}

	if len(levelUps) > 0 {
		logger.Info("User %s leveled up %d badge(s) after approval of %s", action.UserID, len(levelUps), action.ID)
		if uc.notifier != nil {
			uc.notifier.NotifyLevelUps(action.UserID, levelUps)
		}
	}

	return action, levelUps, nil
}

func (uc *EcoActionUseCase) Reject(ctx context.Context, reviewerID, actionID, reason string) (*entity.EcoAction, error) {
	action, err := uc.ecoActionRepo.GetByID(ctx, actionID)
	if err != nil {
		return nil, errors.NotFound("Eco-action", err)
	}
	if action.Status != entity.EcoActionStatusPending {
		return nil, errors.Conflict("Eco-action has already been reviewed")
	}

	action.Status = entity.EcoActionStatusRejected
	action.ReviewedBy = reviewerID
	action.ReviewedAt = time.Now()
	action.RejectReason = reason

	if err := uc.ecoActionRepo.UpdateIfPending(ctx, action); err != nil {
		return nil, err
	}

	return action, nil
}
